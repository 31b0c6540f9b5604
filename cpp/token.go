package cpp

import (
	"fmt"
	"sort"
)

type Position struct {
	File   string
	Offset int
	Line   int
	Column int
}

func (p Position) String() string {
	if p.File != "" {
		return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// IsValid reports whether the position was set by the tokenizer.
func (p Position) IsValid() bool {
	return p.Line > 0
}

type Span struct {
	Start Position
	End   Position
}

type Kind int

const (
	Symbol Kind = iota
	Word
	Integer
	StringLiteral
	NewLine
)

var kindNames = map[Kind]string{
	Symbol:        "symbol",
	Word:          "word",
	Integer:       "integer",
	StringLiteral: "string",
	NewLine:       "new line",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

type Token struct {
	Kind Kind
	Text string
	Span Span
}

// Equal reports whether t and u have the same kind and text. Positions are
// not compared.
func (t Token) Equal(u Token) bool {
	return t.Kind == u.Kind && t.Text == u.Text
}

// Is reports whether t is of the given kind.
func (t Token) Is(kind Kind) bool {
	return t.Kind == kind
}

// IsSymbol reports whether t is the symbol sym.
func (t Token) IsSymbol(sym string) bool {
	return t.Kind == Symbol && t.Text == sym
}

// IsWord reports whether t is the word w.
func (t Token) IsWord(w string) bool {
	return t.Kind == Word && t.Text == w
}

func (t Token) String() string {
	if t.Kind == NewLine {
		return "new-line"
	}
	return t.Text
}

// quoted is how tokens appear in diagnostics.
func (t Token) quoted() string {
	if t.Kind == NewLine {
		return "new-line"
	}
	return fmt.Sprintf("%q", t.Text)
}

func SymbolToken(text string) Token { return Token{Kind: Symbol, Text: text} }
func WordToken(text string) Token   { return Token{Kind: Word, Text: text} }
func IntToken(text string) Token    { return Token{Kind: Integer, Text: text} }
func NewLineToken() Token           { return Token{Kind: NewLine, Text: "\n"} }

var (
	Hash       = SymbolToken("#")
	LParen     = SymbolToken("(")
	RParen     = SymbolToken(")")
	Comma      = SymbolToken(",")
	LineStart  = SymbolToken("//")
	BlockStart = SymbolToken("/*")
	BlockEnd   = SymbolToken("*/")
	DefineWord = WordToken("define")
)

// DefaultSymbols is the symbol table the tokenizer uses unless configured
// otherwise.
var DefaultSymbols = []string{
	";", "#", ":", ",",
	"(", ")", "[", "]",
	"/", "*", "&",
	"/*", "*/", "//",
	"+", "-",
	"+=", "-=", "*=", "/=",
	"<", "<=", ">", ">=",
}

// CSymbols holds every C punctuator plus the comment delimiters.
var CSymbols = []string{
	"[", "]", "(", ")", "{", "}", ".", "->",
	"++", "--", "&", "*", "+", "-", "~", "!",
	"/", "%", "<<", ">>", "<", ">", "<=", ">=", "==", "!=",
	"^", "|", "&&", "||", "?", ":", ";", "...",
	"=", "*=", "/=", "%=", "+=", "-=", "<<=", ">>=", "&=", "^=", "|=",
	",", "#", "##", "\\",
	"/*", "*/", "//",
}

// symbolTable dedupes symbols and orders them longest first so the first
// match during lookup is the maximal munch.
func symbolTable(symbols []string) [][]rune {
	seen := make(map[string]bool, len(symbols))
	var table [][]rune
	for _, s := range symbols {
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		table = append(table, []rune(s))
	}
	sort.SliceStable(table, func(i, j int) bool {
		return len(table[i]) > len(table[j])
	})
	return table
}
