package rst

import (
	"regexp"
	"strings"
)

var roleRe = regexp.MustCompile("^:([\\w.-]+):`([^`]*)`")

// parseInline splits text into inline nodes. The grammar subset is flat:
// emphasis, strong, inline literals, roles and hyperlinks do not nest.
func parseInline(s string) []Inline {
	var out []Inline
	var text strings.Builder

	flush := func() {
		if text.Len() > 0 {
			out = append(out, Text{Value: text.String()})
			text.Reset()
		}
	}

	i := 0
	for i < len(s) {
		switch {
		case s[i] == '\\' && i+1 < len(s):
			text.WriteByte(s[i+1])
			i += 2

		case strings.HasPrefix(s[i:], "``"):
			end := strings.Index(s[i+2:], "``")
			if end < 0 {
				text.WriteString("``")
				i += 2
				continue
			}
			flush()
			out = append(out, Literal{Text: s[i+2 : i+2+end]})
			i += end + 4

		case strings.HasPrefix(s[i:], "**"):
			end := strings.Index(s[i+2:], "**")
			if end < 0 {
				text.WriteString("**")
				i += 2
				continue
			}
			flush()
			out = append(out, Strong{Text: s[i+2 : i+2+end]})
			i += end + 4

		case s[i] == '*':
			end := strings.IndexByte(s[i+1:], '*')
			if end < 0 {
				text.WriteByte('*')
				i++
				continue
			}
			flush()
			out = append(out, Emphasis{Text: s[i+1 : i+1+end]})
			i += end + 2

		case s[i] == ':':
			m := roleRe.FindStringSubmatch(s[i:])
			if m == nil {
				text.WriteByte(':')
				i++
				continue
			}
			flush()
			out = append(out, Role{Name: strings.ToLower(m[1]), Text: m[2]})
			i += len(m[0])

		case s[i] == '`':
			end := strings.IndexByte(s[i+1:], '`')
			if end < 0 {
				text.WriteByte('`')
				i++
				continue
			}
			inner := s[i+1 : i+1+end]
			rest := i + end + 2
			if rest < len(s) && s[rest] == '_' {
				// Hyperlink reference; a second underscore marks it anonymous.
				if rest+1 < len(s) && s[rest+1] == '_' {
					rest++
				}
				flush()
				out = append(out, parseLink(inner))
				i = rest + 1
				continue
			}
			// Bare interpreted text falls back to the default role.
			flush()
			out = append(out, Role{Name: "title-reference", Text: inner})
			i = rest

		default:
			text.WriteByte(s[i])
			i++
		}
	}
	flush()
	return out
}

// parseLink splits "text <target>" into a Link. Without an embedded target
// the reference text doubles as the (unresolved) target.
func parseLink(inner string) Link {
	if idx := strings.LastIndex(inner, "<"); idx >= 0 && strings.HasSuffix(inner, ">") {
		return Link{
			Text:   strings.TrimSpace(inner[:idx]),
			Target: strings.TrimSpace(inner[idx+1 : len(inner)-1]),
		}
	}
	return Link{Text: strings.TrimSpace(inner)}
}
