// Package rst parses ReStructuredText into a document tree.
//
// The parser covers the subset of ReStructuredText that matters for slide
// decks: sections with adornment-derived levels, paragraphs, bullet and
// enumerated lists, literal blocks, block quotes, transitions, comments,
// directives with options and bodies, a docinfo field list, and the common
// inline constructs (emphasis, strong, inline literals, hyperlinks, roles).
//
// It produces a tree of Node values; interpretation of directives is left to
// the caller. Parsing is deliberately lenient: constructs the parser does not
// understand degrade to paragraphs or comments instead of failing the run.
package rst
