// Package pipeline implements the conversion stages between a parsed
// document and the final reveal.js presentation: slide partitioning,
// directive and role rendering, syntax highlighting, the Markdown front-end,
// and document assembly.
package pipeline
