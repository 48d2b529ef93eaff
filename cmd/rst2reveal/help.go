package main

import (
	"fmt"
	"io"

	flag "github.com/spf13/pflag"
)

// printUsage prints the usage message.
func printUsage(w io.Writer, fs *flag.FlagSet) {
	fmt.Fprintln(w, "Usage: rst2reveal [flags] <input>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert reStructuredText or Markdown documents to reveal.js presentations.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    Source file (.rst, .txt, .md); sections become slides")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprint(w, fs.FlagUsages())
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Examples:")
	fmt.Fprintln(w, "  rst2reveal talk.rst")
	fmt.Fprintln(w, "  rst2reveal -t moon --transition fade --split-level 2 talk.rst")
	fmt.Fprintln(w, "  rst2reveal -c talk.yaml --pdf")
	fmt.Fprintln(w, "  rst2reveal --gen-config talk.rst")
}
