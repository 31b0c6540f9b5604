package grammar

import (
	"bytes"
	"fmt"
	"io"
	"slices"
	"unicode/utf8"

	"golang.org/x/exp/ebnf"
)

// TokenKinds are the lexical productions the Lexer emits. CommentKinds are
// added by NewDirectiveLexer. SkipKinds are matched the same way and dropped.
var (
	TokenKinds   = []string{"newline", "word", "integer", "symbol"}
	CommentKinds = []string{"lineComment", "blockComment"}
	SkipKinds    = []string{"whitespace"}
)

type Position struct {
	Filename string
	Offset   int
	Line     int
	Column   int
}

func (p Position) String() string {
	if p.Filename != "" {
		return fmt.Sprintf("%s:%d:%d", p.Filename, p.Line, p.Column)
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Token is a lexeme named after the production that matched it.
type Token struct {
	Kind     string
	Literal  string
	Position Position
}

func (t Token) String() string {
	return fmt.Sprintf("%s %s %q", t.Position, t.Kind, t.Literal)
}

type memoKey struct {
	name   string
	offset int
}

// Lexer tokenizes input by trying every token production of a grammar at
// the current offset and keeping the longest match.
type Lexer struct {
	grammar  ebnf.Grammar
	kinds    []string
	input    []byte
	filename string
	pos      int
	line     int
	column   int
	memo     map[memoKey]int
	visiting map[memoKey]bool
}

func NewLexer(grammar ebnf.Grammar, input []byte, filename string) *Lexer {
	return newLexer(grammar, TokenKinds, input, filename)
}

// NewDirectiveLexer returns a lexer that also emits whole comments, which is
// what the syntactic productions expect.
func NewDirectiveLexer(grammar ebnf.Grammar, input []byte, filename string) *Lexer {
	return newLexer(grammar, append(slices.Clone(CommentKinds), TokenKinds...), input, filename)
}

func newLexer(grammar ebnf.Grammar, kinds []string, input []byte, filename string) *Lexer {
	return &Lexer{
		grammar:  grammar,
		kinds:    kinds,
		input:    input,
		filename: filename,
		line:     1,
		column:   1,
		memo:     make(map[memoKey]int),
		visiting: make(map[memoKey]bool),
	}
}

func (l *Lexer) Position() Position {
	return Position{
		Filename: l.filename,
		Offset:   l.pos,
		Line:     l.line,
		Column:   l.column,
	}
}

func (l *Lexer) advance(n int) {
	end := l.pos + n
	for l.pos < end && l.pos < len(l.input) {
		ch, size := utf8.DecodeRune(l.input[l.pos:])
		l.pos += size
		if ch == '\n' {
			l.line++
			l.column = 1
		} else {
			l.column++
		}
	}
}

// NextToken returns the next token, skipping whitespace. At end of input
// it returns an "EOF" token and io.EOF. A character no production matches
// comes back as a one-character "ERROR" token.
func (l *Lexer) NextToken() (Token, error) {
	for {
		if l.pos >= len(l.input) {
			return Token{Kind: "EOF", Position: l.Position()}, io.EOF
		}

		start := l.Position()
		kind, n := l.longestMatch()
		if n <= 0 {
			_, size := utf8.DecodeRune(l.input[l.pos:])
			lit := string(l.input[l.pos : l.pos+size])
			l.advance(size)
			return Token{Kind: "ERROR", Literal: lit, Position: start}, nil
		}

		lit := string(l.input[l.pos : l.pos+n])
		l.advance(n)
		if isSkipped(kind) {
			continue
		}
		return Token{Kind: kind, Literal: lit, Position: start}, nil
	}
}

func (l *Lexer) longestMatch() (string, int) {
	// positions moved since the last token
	l.memo = make(map[memoKey]int)

	var bestKind string
	var bestLen int
	for _, kinds := range [][]string{l.kinds, SkipKinds} {
		for _, name := range kinds {
			prod, ok := l.grammar[name]
			if !ok || prod.Expr == nil {
				continue
			}
			l.visiting = make(map[memoKey]bool)
			if n := l.tryMatch(prod.Expr, l.pos); n > bestLen {
				bestKind, bestLen = name, n
			}
		}
	}
	return bestKind, bestLen
}

func isSkipped(kind string) bool {
	return slices.Contains(SkipKinds, kind)
}

// noMatch is distinct from an empty match, which options and repetitions
// are allowed to make.
const noMatch = -1

// tryMatch returns the length in bytes of the match of expr at offset, or
// noMatch. Repetitions are greedy and never backtrack.
func (l *Lexer) tryMatch(expr ebnf.Expression, offset int) int {
	switch e := expr.(type) {
	case *ebnf.Token:
		return l.tryMatchToken(e.String, offset)

	case *ebnf.Range:
		return l.tryMatchRange(e.Begin.String, e.End.String, offset)

	case ebnf.Sequence:
		total := 0
		for _, item := range e {
			n := l.tryMatch(item, offset+total)
			if n == noMatch {
				return noMatch
			}
			total += n
		}
		return total

	case ebnf.Alternative:
		best := noMatch
		for _, alt := range e {
			best = max(best, l.tryMatch(alt, offset))
		}
		return best

	case *ebnf.Repetition:
		total := 0
		for {
			n := l.tryMatch(e.Body, offset+total)
			if n <= 0 {
				return total
			}
			total += n
		}

	case *ebnf.Option:
		return max(l.tryMatch(e.Body, offset), 0)

	case *ebnf.Group:
		return l.tryMatch(e.Body, offset)

	case *ebnf.Name:
		return l.tryMatchName(e.String, offset)
	}
	return noMatch
}

func (l *Lexer) tryMatchName(name string, offset int) int {
	key := memoKey{name: name, offset: offset}

	if result, ok := l.memo[key]; ok {
		return result
	}

	// left recursion
	if l.visiting[key] {
		return noMatch
	}

	prod, ok := l.grammar[name]
	if !ok || prod.Expr == nil {
		l.memo[key] = noMatch
		return noMatch
	}

	l.visiting[key] = true
	result := l.tryMatch(prod.Expr, offset)
	delete(l.visiting, key)

	l.memo[key] = result
	return result
}

func (l *Lexer) tryMatchToken(token string, offset int) int {
	if bytes.HasPrefix(l.input[offset:], []byte(token)) {
		return len(token)
	}
	return noMatch
}

func (l *Lexer) tryMatchRange(begin, end string, offset int) int {
	if offset >= len(l.input) {
		return noMatch
	}
	lo, _ := utf8.DecodeRuneInString(begin)
	hi, _ := utf8.DecodeRuneInString(end)
	ch, size := utf8.DecodeRune(l.input[offset:])
	if ch >= lo && ch <= hi {
		return size
	}
	return noMatch
}

// Tokenize reads all tokens. The final token is always "EOF".
func (l *Lexer) Tokenize() []Token {
	var tokens []Token
	for {
		tok, err := l.NextToken()
		tokens = append(tokens, tok)
		if err == io.EOF {
			return tokens
		}
	}
}
