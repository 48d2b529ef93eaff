package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alnah/go-rst2reveal/internal/config"
)

const testDeck = `Demo Deck
=========

Intro
-----

Hello there.

Wrap Up
-------

Goodbye.
`

// run parses args, appends the input path, and invokes runConvert.
func run(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	flags, fs, positional, err := parseFlags(args)
	if err != nil {
		t.Fatalf("parseFlags(%v) error = %v", args, err)
	}
	var out, errBuf bytes.Buffer
	err = runConvert(context.Background(), positional, flags, fs, &out, &errBuf)
	return out.String(), errBuf.String(), err
}

func writeDeck(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "talk.rst")
	if err := os.WriteFile(path, []byte(testDeck), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRunConvert(t *testing.T) {
	t.Parallel()

	input := writeDeck(t)
	stdout, _, err := run(t, input)
	if err != nil {
		t.Fatalf("runConvert() error = %v", err)
	}

	// Output defaults to the input path with an .html suffix.
	output := strings.TrimSuffix(input, ".rst") + ".html"
	html, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	for _, want := range []string{"Demo Deck", "<h2>Intro</h2>", "Reveal.initialize"} {
		if !strings.Contains(string(html), want) {
			t.Errorf("output missing %q", want)
		}
	}

	if !strings.Contains(stdout, "2 slides") {
		t.Errorf("stdout = %q, want slide count", stdout)
	}
}

func TestRunConvertExplicitOutput(t *testing.T) {
	t.Parallel()

	input := writeDeck(t)
	output := filepath.Join(t.TempDir(), "nested", "deck.html")
	if _, _, err := run(t, "-o", output, input); err != nil {
		t.Fatalf("runConvert() error = %v", err)
	}
	if _, err := os.Stat(output); err != nil {
		t.Errorf("output not written: %v", err)
	}
}

func TestRunConvertLinkedAssets(t *testing.T) {
	t.Parallel()

	input := writeDeck(t)
	outDir := t.TempDir()
	output := filepath.Join(outDir, "deck.html")
	if _, _, err := run(t, "--embed-assets=false", "-o", output, input); err != nil {
		t.Fatalf("runConvert() error = %v", err)
	}

	for _, rel := range []string{
		filepath.Join("static", "css", "rst2reveal.css"),
		filepath.Join("static", "css", "code.css"),
	} {
		if _, err := os.Stat(filepath.Join(outDir, rel)); err != nil {
			t.Errorf("companion asset %s not written: %v", rel, err)
		}
	}
}

func TestRunConvertQuiet(t *testing.T) {
	t.Parallel()

	stdout, _, err := run(t, "-q", writeDeck(t))
	if err != nil {
		t.Fatalf("runConvert() error = %v", err)
	}
	if stdout != "" {
		t.Errorf("stdout = %q, want silence with -q", stdout)
	}
}

func TestRunConvertVerbose(t *testing.T) {
	t.Parallel()

	_, stderr, err := run(t, "--verbose", writeDeck(t))
	if err != nil {
		t.Fatalf("runConvert() error = %v", err)
	}
	if !strings.Contains(stderr, "Converted in") {
		t.Errorf("stderr = %q, want timing line", stderr)
	}
}

func TestRunConvertErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		args    func(t *testing.T) []string
		wantErr error
	}{
		{
			name:    "no input",
			args:    func(t *testing.T) []string { return nil },
			wantErr: ErrNoInput,
		},
		{
			name: "missing input file",
			args: func(t *testing.T) []string {
				return []string{filepath.Join(t.TempDir(), "missing.rst")}
			},
			wantErr: ErrReadInput,
		},
		{
			name: "directory as input",
			args: func(t *testing.T) []string {
				return []string{t.TempDir()}
			},
			wantErr: ErrReadInput,
		},
		{
			name: "directory as stylesheet",
			args: func(t *testing.T) []string {
				return []string{"-s", t.TempDir(), writeDeck(t)}
			},
			wantErr: ErrReadStylesheet,
		},
		{
			name: "missing config file",
			args: func(t *testing.T) []string {
				return []string{"-c", filepath.Join(t.TempDir(), "nope.yaml")}
			},
			wantErr: config.ErrConfigNotFound,
		},
		{
			name: "missing stylesheet",
			args: func(t *testing.T) []string {
				return []string{"-s", filepath.Join(t.TempDir(), "nope.css"), writeDeck(t)}
			},
			wantErr: ErrReadStylesheet,
		},
		{
			name: "bad timeout",
			args: func(t *testing.T) []string {
				return []string{"--timeout", "soon", writeDeck(t)}
			},
			wantErr: ErrBadTimeout,
		},
		{
			name: "negative timeout",
			args: func(t *testing.T) []string {
				return []string{"--timeout", "-5s", writeDeck(t)}
			},
			wantErr: ErrBadTimeout,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, _, err := run(t, tt.args(t)...)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("runConvert() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestRunConvertBadTheme(t *testing.T) {
	t.Parallel()

	_, _, err := run(t, "--theme", "neon", writeDeck(t))
	if err == nil {
		t.Fatal("runConvert() accepted an unknown theme")
	}
	if got := exitCodeFor(err); got != ExitUsage {
		t.Errorf("exit code = %d, want %d", got, ExitUsage)
	}
}

func TestRunConvertWithConfig(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	input := writeDeck(t)
	output := filepath.Join(dir, "deck.html")
	cfgPath := filepath.Join(dir, "deck.yaml")
	cfgText := "input: " + input + "\noutput: " + output + "\ntheme: moon\nslideNumbers: true\n"
	if err := os.WriteFile(cfgPath, []byte(cfgText), 0o644); err != nil {
		t.Fatal(err)
	}

	// Input comes from the config file, not a positional argument.
	if _, _, err := run(t, "-c", cfgPath); err != nil {
		t.Fatalf("runConvert() error = %v", err)
	}

	html, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if !strings.Contains(string(html), "theme/moon.css") {
		t.Error("config theme not applied")
	}
	if !strings.Contains(string(html), "'c/t'") {
		t.Error("config slideNumbers not applied")
	}
}

func TestRunConvertGenConfig(t *testing.T) {
	t.Parallel()

	cfgPath := filepath.Join(t.TempDir(), "starter.yaml")
	stdout, _, err := run(t, "--gen-config", "-c", cfgPath, "talk.rst")
	if err != nil {
		t.Fatalf("runConvert() error = %v", err)
	}
	if !strings.Contains(stdout, "Wrote") {
		t.Errorf("stdout = %q", stdout)
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		t.Fatalf("generated config does not load: %v", err)
	}
	if cfg.Input != "talk.rst" {
		t.Errorf("generated input = %q, want talk.rst", cfg.Input)
	}
}
