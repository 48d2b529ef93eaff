package pipeline

import (
	"strings"

	"github.com/alnah/go-rst2reveal/internal/rst"
)

// Slide is one screen of the presentation before rendering. A slide with
// Vertical children becomes a nested <section> stack in reveal.js.
type Slide struct {
	Title    string
	TitleRST []rst.Inline
	Nodes    []rst.Node
	Notes    []rst.Node
	Attrs    map[string]string
	Vertical []*Slide
}

// Partition splits a document tree into slides in document order.
//
// Headings at a level at or above splitLevel begin a new slide; with
// splitLevel 2, level-2 sections become vertical slides nested under their
// level-1 parent. Content before the first qualifying heading forms an
// implicit untitled leading slide. An empty tree yields no slides, and a
// splitLevel deeper than every heading yields a single implicit slide
// holding the whole document.
func Partition(doc *rst.Document, splitLevel int) []*Slide {
	if splitLevel < 1 {
		splitLevel = 1
	}
	var slides []*Slide
	var lead []rst.Node

	for _, n := range doc.Children {
		s, ok := n.(*rst.Section)
		if !ok || s.Level > 1 {
			lead = append(lead, n)
			continue
		}
		if len(lead) > 0 {
			slides = append(slides, newSlide("", nil, lead))
			lead = nil
		}
		slides = append(slides, partitionSection(s, splitLevel))
	}
	if len(lead) > 0 {
		slides = append(slides, newSlide("", nil, lead))
	}
	return slides
}

// partitionSection builds the slide for one top-level section, splitting
// its subsections into vertical slides when splitLevel allows.
func partitionSection(s *rst.Section, splitLevel int) *Slide {
	if splitLevel < 2 {
		return newSlide(s.TitleText(), s.Title, s.Children)
	}

	var own []rst.Node
	var vertical []*Slide
	for _, child := range s.Children {
		if sub, ok := child.(*rst.Section); ok && sub.Level == 2 {
			vertical = append(vertical, newSlide(sub.TitleText(), sub.Title, sub.Children))
			continue
		}
		if len(vertical) > 0 {
			// Content after a subsection joins the last vertical slide.
			last := vertical[len(vertical)-1]
			last.Nodes = append(last.Nodes, child)
			continue
		}
		own = append(own, child)
	}

	slide := newSlide(s.TitleText(), s.Title, own)
	slide.Vertical = vertical
	return slide
}

// newSlide creates a slide, pulling notes and background directives out of
// the body.
func newSlide(title string, titleRST []rst.Inline, nodes []rst.Node) *Slide {
	s := &Slide{Title: title, TitleRST: titleRST}
	for _, n := range nodes {
		d, ok := n.(*rst.Directive)
		if !ok {
			s.Nodes = append(s.Nodes, n)
			continue
		}
		switch d.Name {
		case "notes", "speaker-notes":
			s.Notes = append(s.Notes, d.Children...)
		case "background":
			s.setBackground(d)
		default:
			s.Nodes = append(s.Nodes, n)
		}
	}
	return s
}

// setBackground records a per-slide background from a background directive.
// A color argument maps to data-background-color, anything else to
// data-background-image.
func (s *Slide) setBackground(d *rst.Directive) {
	if len(d.Args) == 0 {
		return
	}
	if s.Attrs == nil {
		s.Attrs = map[string]string{}
	}
	arg := d.Args[0]
	if strings.HasPrefix(arg, "#") || isCSSColorName(arg) {
		s.Attrs["data-background-color"] = arg
	} else {
		s.Attrs["data-background-image"] = arg
	}
	if v, ok := d.Option("transition"); ok {
		s.Attrs["data-background-transition"] = v
	}
	if v, ok := d.Option("size"); ok {
		s.Attrs["data-background-size"] = v
	}
}

// isCSSColorName covers the handful of named colors worth recognizing in a
// background directive; anything else is treated as an image path.
func isCSSColorName(s string) bool {
	switch strings.ToLower(s) {
	case "black", "white", "red", "green", "blue", "yellow", "orange",
		"purple", "gray", "grey", "silver", "maroon", "navy", "teal", "aqua",
		"fuchsia", "lime", "olive":
		return true
	}
	return false
}
