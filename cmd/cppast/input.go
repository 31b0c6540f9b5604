package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/dhamidi/cppast/cpp"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// input is a source file, or stdin when no file was given.
type input struct {
	name string
	r    *bufio.Reader
	f    *os.File
}

func openInput(args []string) (*input, error) {
	if len(args) == 0 || args[0] == "-" {
		return &input{name: "<stdin>", r: bufio.NewReader(os.Stdin)}, nil
	}
	f, err := os.Open(args[0])
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	return &input{name: args[0], r: bufio.NewReader(f), f: f}, nil
}

func (in *input) Close() error {
	if in.f == nil {
		return nil
	}
	return in.f.Close()
}

func (in *input) tokenizerOptions(symbols string) ([]cpp.Option, error) {
	opts := []cpp.Option{cpp.WithFile(in.name)}
	switch symbols {
	case "default":
	case "c":
		opts = append(opts, cpp.WithSymbols(cpp.CSymbols...), cpp.WithStringLiterals())
	default:
		return nil, fmt.Errorf("unknown symbol table %q (expected default or c)", symbols)
	}
	return opts, nil
}

var colorMode = "auto"

func setColorMode(mode string) error {
	switch mode {
	case "auto", "always", "never":
		colorMode = mode
		return nil
	}
	return fmt.Errorf("unknown color mode %q (expected auto, always or never)", mode)
}

// styledOutput returns a termenv output for w, or nil when w should get
// plain text.
func styledOutput(w io.Writer) *termenv.Output {
	switch colorMode {
	case "never":
		return nil
	case "always":
		return termenv.NewOutput(w, termenv.WithProfile(termenv.ANSI))
	}
	f, ok := w.(*os.File)
	if !ok || !(isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())) {
		return nil
	}
	return termenv.NewOutput(w)
}
