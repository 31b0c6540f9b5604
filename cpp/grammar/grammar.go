// Package grammar holds the EBNF description of the directive language, a
// reference lexer driven by its lexical productions and a recognizer for its
// syntactic ones.
package grammar

import (
	"bytes"
	_ "embed"
	"fmt"

	"golang.org/x/exp/ebnf"
)

//go:embed cpp.ebnf
var source []byte

// Filename is the name reported in grammar error positions.
const Filename = "cpp.ebnf"

// Start is the production every other production is reachable from.
const Start = "Text"

// Source returns the grammar text.
func Source() []byte {
	return bytes.Clone(source)
}

// Load parses the embedded grammar.
func Load() (ebnf.Grammar, error) {
	g, err := ebnf.Parse(Filename, bytes.NewReader(source))
	if err != nil {
		return nil, fmt.Errorf("parse grammar: %w", err)
	}
	return g, nil
}

// Check parses the embedded grammar and verifies it from Start.
func Check() error {
	g, err := Load()
	if err != nil {
		return err
	}
	return ebnf.Verify(g, Start)
}
