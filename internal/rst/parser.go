package rst

import (
	"regexp"
	"strings"
)

// Adornment characters accepted for section titles and transitions.
const adornmentChars = `=-~^"'` + "`" + `#*+.:_`

var (
	directiveRe = regexp.MustCompile(`^\.\. +([A-Za-z][\w.-]*)::(?: +(.*))?$`)
	optionRe    = regexp.MustCompile(`^:([\w-]+):(?: +(.*))?$`)
	fieldRe     = regexp.MustCompile(`^:([A-Za-z][\w .-]*):(?: +(.*))?$`)
	bulletRe    = regexp.MustCompile(`^([-*+]) +`)
	enumRe      = regexp.MustCompile(`^(\d+|#)[.)] +`)
)

// Parse converts ReStructuredText source into a document tree.
func Parse(source string) (*Document, error) {
	source = strings.ReplaceAll(source, "\r\n", "\n")
	source = strings.ReplaceAll(source, "\r", "\n")
	source = strings.ReplaceAll(source, "\t", "    ")

	p := &parser{}
	flat, err := p.parseBlocks(strings.Split(source, "\n"), 0, true)
	if err != nil {
		return nil, err
	}

	doc := &Document{Children: nestSections(flat)}
	promoteTitles(doc)
	extractDocinfo(doc)
	return doc, nil
}

// parser holds cross-block state: the order in which adornment styles first
// appear determines section levels, as in docutils.
type parser struct {
	styles []string
}

// levelFor returns the section level for an adornment style, registering it
// on first use. Styles are the adornment character, prefixed with "o" for
// the overline+underline form.
func (p *parser) levelFor(style string) int {
	for i, s := range p.styles {
		if s == style {
			return i + 1
		}
	}
	p.styles = append(p.styles, style)
	return len(p.styles)
}

// parseBlocks parses a run of dedented lines into a flat node list.
// Section nodes come back with empty Children; nestSections builds the
// hierarchy afterwards. base is the 0-based offset of lines[0] in the
// original source.
func (p *parser) parseBlocks(lines []string, base int, allowSections bool) ([]Node, error) {
	var nodes []Node
	i := 0
	for i < len(lines) {
		line := lines[i]
		if strings.TrimSpace(line) == "" {
			i++
			continue
		}
		lineNo := base + i + 1

		// Explicit markup: directive or comment.
		if line == ".." || strings.HasPrefix(line, ".. ") {
			n, next, err := p.parseExplicit(lines, i, base)
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, n)
			i = next
			continue
		}

		// Indented block at block start: block quote.
		if indentOf(line) > 0 {
			body, next := collectIndented(lines, i, 1)
			children, err := p.parseBlocks(body, base+i, false)
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, &BlockQuote{Line: lineNo, Children: children})
			i = next
			continue
		}

		// Adornment line: overline section or transition.
		if isAdornment(line) {
			if allowSections && i+2 < len(lines) &&
				strings.TrimSpace(lines[i+1]) != "" && !isAdornment(lines[i+1]) &&
				isAdornment(lines[i+2]) && lines[i+2][0] == line[0] {
				if len(strings.TrimRight(line, " ")) != len(strings.TrimRight(lines[i+2], " ")) {
					return nil, parseErrorf(lineNo, "section overline and underline lengths differ")
				}
				title := strings.TrimSpace(lines[i+1])
				level := p.levelFor("o" + string(line[0]))
				nodes = append(nodes, &Section{Line: lineNo, Level: level, Title: parseInline(title)})
				i += 3
				continue
			}
			nodes = append(nodes, &Transition{Line: lineNo})
			i++
			continue
		}

		// Title with underline.
		if allowSections && i+1 < len(lines) && isAdornment(lines[i+1]) &&
			len(lines[i+1]) >= len(strings.TrimRight(line, " ")) {
			title := strings.TrimSpace(line)
			level := p.levelFor(string(lines[i+1][0]))
			nodes = append(nodes, &Section{Line: lineNo, Level: level, Title: parseInline(title)})
			i += 2
			continue
		}

		// Field list.
		if m := fieldRe.FindStringSubmatch(line); m != nil {
			list := &FieldList{Line: lineNo}
			for i < len(lines) {
				fm := fieldRe.FindStringSubmatch(lines[i])
				if fm == nil {
					break
				}
				value := strings.TrimSpace(fm[2])
				i++
				// Indented continuation lines extend the value.
				for i < len(lines) && indentOf(lines[i]) > 0 {
					value = strings.TrimSpace(value + " " + strings.TrimSpace(lines[i]))
					i++
				}
				list.Fields = append(list.Fields, Field{Name: strings.ToLower(fm[1]), Value: value})
			}
			nodes = append(nodes, list)
			continue
		}

		// Bullet list.
		if m := bulletRe.FindStringSubmatch(line); m != nil {
			items, next := p.collectListItems(lines, i, bulletRe)
			parsed, err := p.parseItems(items, base)
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, &BulletList{Line: lineNo, Items: parsed})
			i = next
			continue
		}

		// Enumerated list.
		if m := enumRe.FindStringSubmatch(line); m != nil {
			items, next := p.collectListItems(lines, i, enumRe)
			parsed, err := p.parseItems(items, base)
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, &EnumeratedList{Line: lineNo, Items: parsed})
			i = next
			continue
		}
		// Paragraph: collect until blank line.
		start := i
		for i < len(lines) && strings.TrimSpace(lines[i]) != "" && indentOf(lines[i]) == 0 {
			i++
		}
		text := strings.Join(trimAll(lines[start:i]), "\n")

		// "::" at paragraph end introduces a literal block.
		if text == "::" || strings.HasSuffix(text, "::") {
			body, next := collectIndented(lines, skipBlank(lines, i), 1)
			literal := &LiteralBlock{Line: base + skipBlank(lines, i) + 1, Text: strings.Join(body, "\n")}
			switch {
			case text == "::":
				// Expanded form: no paragraph survives.
			case strings.HasSuffix(text, " ::"):
				nodes = append(nodes, &Paragraph{Line: base + start + 1, Content: parseInline(strings.TrimSuffix(text, " ::"))})
			default:
				nodes = append(nodes, &Paragraph{Line: base + start + 1, Content: parseInline(strings.TrimSuffix(text, "::") + ":")})
			}
			if len(body) > 0 {
				nodes = append(nodes, literal)
				i = next
			}
			continue
		}

		nodes = append(nodes, &Paragraph{Line: base + start + 1, Content: parseInline(text)})
	}
	return nodes, nil
}

// parseExplicit parses a directive or comment starting at lines[i].
// Returns the node and the index of the first unconsumed line.
func (p *parser) parseExplicit(lines []string, i, base int) (Node, int, error) {
	lineNo := base + i + 1
	first := lines[i]
	body, next := collectIndented(lines, i+1, 1)

	m := directiveRe.FindStringSubmatch(first)
	if m == nil {
		text := strings.TrimPrefix(strings.TrimPrefix(first, ".."), " ")
		if len(body) > 0 {
			text = strings.TrimSpace(text + "\n" + strings.Join(body, "\n"))
		}
		return &Comment{Line: lineNo, Text: text}, next, nil
	}

	d := &Directive{Line: lineNo, Name: strings.ToLower(m[1])}
	if arg := strings.TrimSpace(m[2]); arg != "" {
		d.Args = []string{arg}
	}

	// Leading option lines belong to the directive, not its body.
	j := 0
	for j < len(body) {
		if strings.TrimSpace(body[j]) == "" {
			j++
			break
		}
		om := optionRe.FindStringSubmatch(body[j])
		if om == nil {
			break
		}
		if d.Options == nil {
			d.Options = map[string]string{}
		}
		d.Options[strings.ToLower(om[1])] = strings.TrimSpace(om[2])
		j++
	}
	raw := body[j:]
	for len(raw) > 0 && strings.TrimSpace(raw[0]) == "" {
		raw = raw[1:]
	}
	for len(raw) > 0 && strings.TrimSpace(raw[len(raw)-1]) == "" {
		raw = raw[:len(raw)-1]
	}
	d.Raw = raw

	children, err := p.parseBlocks(raw, base+i+1+j, false)
	if err != nil {
		return nil, 0, err
	}
	d.Children = children
	return d, next, nil
}

// collectListItems gathers the raw lines of each item of a list starting at
// lines[i], using markerRe to recognize sibling markers.
func (p *parser) collectListItems(lines []string, i int, markerRe *regexp.Regexp) (items [][]string, next int) {
	for i < len(lines) {
		i = skipBlank(lines, i)
		if i >= len(lines) {
			break
		}
		m := markerRe.FindString(lines[i])
		if m == "" || indentOf(lines[i]) > 0 {
			break
		}
		width := len(m)
		item := []string{lines[i][width:]}
		i++
		for i < len(lines) {
			if strings.TrimSpace(lines[i]) == "" {
				// Blank line: item continues only if more indented content follows.
				if k := skipBlank(lines, i); k < len(lines) && indentOf(lines[k]) >= width {
					item = append(item, "")
					i++
					continue
				}
				break
			}
			if indentOf(lines[i]) < width {
				break
			}
			item = append(item, dedent(lines[i], width))
			i++
		}
		items = append(items, item)
	}
	return items, i
}

func (p *parser) parseItems(items [][]string, base int) ([][]Node, error) {
	parsed := make([][]Node, 0, len(items))
	for _, item := range items {
		children, err := p.parseBlocks(item, base, false)
		if err != nil {
			return nil, err
		}
		parsed = append(parsed, children)
	}
	return parsed, nil
}

// nestSections turns a flat node list with section markers into a tree.
func nestSections(flat []Node) []Node {
	var roots []Node
	var stack []*Section
	for _, n := range flat {
		if s, ok := n.(*Section); ok {
			for len(stack) > 0 && stack[len(stack)-1].Level >= s.Level {
				stack = stack[:len(stack)-1]
			}
			if len(stack) == 0 {
				roots = append(roots, s)
			} else {
				top := stack[len(stack)-1]
				top.Children = append(top.Children, s)
			}
			stack = append(stack, s)
			continue
		}
		if len(stack) == 0 {
			roots = append(roots, n)
		} else {
			top := stack[len(stack)-1]
			top.Children = append(top.Children, n)
		}
	}
	return roots
}

// promoteTitles lifts a lone top-level section title to the document title,
// and a following lone section to the subtitle, mirroring docutils.
func promoteTitles(doc *Document) {
	if s, ok := loneSection(doc.Children); ok {
		doc.Meta.Title = s.TitleText()
		doc.Children = hoist(doc.Children, s)
		if sub, ok := loneSection(doc.Children); ok {
			doc.Meta.Subtitle = sub.TitleText()
			doc.Children = hoist(doc.Children, sub)
		}
	}
}

// loneSection reports whether the node list contains exactly one section and
// no other content apart from comments and field lists.
func loneSection(nodes []Node) (*Section, bool) {
	var found *Section
	for _, n := range nodes {
		switch v := n.(type) {
		case *Section:
			if found != nil {
				return nil, false
			}
			found = v
		case *Comment, *FieldList:
			// ignored for promotion purposes
		default:
			return nil, false
		}
	}
	return found, found != nil
}

// hoist replaces section s with its children, preserving surrounding
// comments and field lists, and shifts nested section levels up by one.
func hoist(nodes []Node, s *Section) []Node {
	var out []Node
	for _, n := range nodes {
		if n == Node(s) {
			out = append(out, s.Children...)
			continue
		}
		out = append(out, n)
	}
	shiftLevels(out)
	return out
}

func shiftLevels(nodes []Node) {
	for _, n := range nodes {
		if s, ok := n.(*Section); ok {
			if s.Level > 1 {
				s.Level--
			}
			shiftLevels(s.Children)
		}
	}
}

// extractDocinfo consumes a leading field list into document metadata.
func extractDocinfo(doc *Document) {
	for idx, n := range doc.Children {
		switch v := n.(type) {
		case *Comment:
			continue
		case *FieldList:
			for _, f := range v.Fields {
				switch f.Name {
				case "author":
					doc.Meta.Authors = append(doc.Meta.Authors, parseAuthor(f.Value))
				case "authors":
					for _, part := range strings.FieldsFunc(f.Value, func(r rune) bool { return r == ';' || r == ',' }) {
						if part = strings.TrimSpace(part); part != "" {
							doc.Meta.Authors = append(doc.Meta.Authors, parseAuthor(part))
						}
					}
				case "email":
					if n := len(doc.Meta.Authors); n > 0 && doc.Meta.Authors[n-1].Email == "" {
						doc.Meta.Authors[n-1].Email = f.Value
					}
				case "date":
					doc.Meta.Date = f.Value
				case "institution", "organization":
					doc.Meta.Institution = f.Value
				}
			}
			doc.Children = append(doc.Children[:idx], doc.Children[idx+1:]...)
			return
		default:
			return
		}
	}
}

// parseAuthor splits "Name <email>" into its parts.
func parseAuthor(s string) Author {
	name, rest, ok := strings.Cut(s, "<")
	if !ok {
		return Author{Name: strings.TrimSpace(s)}
	}
	return Author{
		Name:  strings.TrimSpace(name),
		Email: strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(rest), ">")),
	}
}

// Line helpers.

func indentOf(line string) int {
	return len(line) - len(strings.TrimLeft(line, " "))
}

func dedent(line string, n int) string {
	i := 0
	for i < n && i < len(line) && line[i] == ' ' {
		i++
	}
	return line[i:]
}

func isAdornment(line string) bool {
	line = strings.TrimRight(line, " ")
	if len(line) < 2 {
		return false
	}
	ch := line[0]
	if !strings.ContainsRune(adornmentChars, rune(ch)) {
		return false
	}
	for i := 1; i < len(line); i++ {
		if line[i] != ch {
			return false
		}
	}
	return true
}

// collectIndented gathers lines indented by at least min, plus interior
// blanks, starting at lines[i]. The result is dedented by the common indent.
func collectIndented(lines []string, i, min int) (body []string, next int) {
	start := i
	indent := 0
	for i < len(lines) {
		if strings.TrimSpace(lines[i]) == "" {
			i++
			continue
		}
		if indentOf(lines[i]) < min {
			break
		}
		if indent == 0 || indentOf(lines[i]) < indent {
			indent = indentOf(lines[i])
		}
		i++
	}
	// Trim trailing blanks out of the consumed range.
	end := i
	for end > start && strings.TrimSpace(lines[end-1]) == "" {
		end--
	}
	for j := start; j < end; j++ {
		if strings.TrimSpace(lines[j]) == "" {
			body = append(body, "")
			continue
		}
		body = append(body, dedent(lines[j], indent))
	}
	return body, i
}

func skipBlank(lines []string, i int) int {
	for i < len(lines) && strings.TrimSpace(lines[i]) == "" {
		i++
	}
	return i
}

func trimAll(lines []string) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = strings.TrimSpace(l)
	}
	return out
}
