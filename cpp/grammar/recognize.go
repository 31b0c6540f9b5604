package grammar

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/exp/ebnf"
)

// SyntaxError is the furthest point a Recognizer got to before every
// alternative failed.
type SyntaxError struct {
	Got      Token
	Expected []string
}

func (e *SyntaxError) Error() string {
	got := "end of input"
	if e.Got.Kind != "EOF" {
		got = e.Got.Kind + " " + strconv.Quote(e.Got.Literal)
	}
	return fmt.Sprintf("%s: unexpected %s, expected one of: %s",
		e.Got.Position, got, strings.Join(e.Expected, ", "))
}

// Recognizer checks a token sequence against the syntactic productions of a
// grammar. Choices are ordered and repetitions are greedy, so the grammar is
// read as a parsing expression grammar. Lowercase names match a token of
// that kind and quoted strings match a token's literal.
type Recognizer struct {
	grammar  ebnf.Grammar
	tokens   []Token
	memo     map[memoKey]int
	visiting map[memoKey]bool

	furthest int
	expected []string
}

// NewRecognizer drops skipped kinds from tokens. The last token should be
// "EOF", as returned by Lexer.Tokenize.
func NewRecognizer(grammar ebnf.Grammar, tokens []Token) *Recognizer {
	var kept []Token
	for _, tok := range tokens {
		if !isSkipped(tok.Kind) {
			kept = append(kept, tok)
		}
	}
	if len(kept) == 0 || kept[len(kept)-1].Kind != "EOF" {
		kept = append(kept, Token{Kind: "EOF"})
	}
	return &Recognizer{
		grammar:  grammar,
		tokens:   kept,
		memo:     make(map[memoKey]int),
		visiting: make(map[memoKey]bool),
	}
}

// Recognize reports whether all tokens derive from production start.
func (r *Recognizer) Recognize(start string) error {
	prod, ok := r.grammar[start]
	if !ok || prod.Expr == nil {
		return fmt.Errorf("production %q not found in grammar", start)
	}

	n := r.match(prod.Expr, 0)
	if n != noMatch && r.tokens[n].Kind == "EOF" {
		return nil
	}
	if n != noMatch && n >= r.furthest {
		r.fail(n, "end of input")
	}
	return &SyntaxError{Got: r.tokens[r.furthest], Expected: r.expected}
}

// fail remembers what was expected at the furthest failing token.
func (r *Recognizer) fail(i int, want string) {
	switch {
	case i > r.furthest:
		r.furthest = i
		r.expected = []string{want}
	case i == r.furthest && !slices.Contains(r.expected, want):
		r.expected = append(r.expected, want)
	}
}

// match returns the index after the match of expr at token i, or noMatch.
func (r *Recognizer) match(expr ebnf.Expression, i int) int {
	switch e := expr.(type) {
	case *ebnf.Token:
		if tok := r.tokens[i]; tok.Kind != "EOF" && tok.Literal == e.String {
			return i + 1
		}
		r.fail(i, strconv.Quote(e.String))
		return noMatch

	case ebnf.Sequence:
		for _, item := range e {
			if i = r.match(item, i); i == noMatch {
				return noMatch
			}
		}
		return i

	case ebnf.Alternative:
		for _, alt := range e {
			if n := r.match(alt, i); n != noMatch {
				return n
			}
		}
		return noMatch

	case *ebnf.Repetition:
		for {
			n := r.match(e.Body, i)
			if n == noMatch || n == i {
				return i
			}
			i = n
		}

	case *ebnf.Option:
		if n := r.match(e.Body, i); n != noMatch {
			return n
		}
		return i

	case *ebnf.Group:
		return r.match(e.Body, i)

	case *ebnf.Name:
		if isLexical(e.String) {
			if r.tokens[i].Kind == e.String {
				return i + 1
			}
			r.fail(i, e.String)
			return noMatch
		}
		return r.matchName(e.String, i)
	}
	return noMatch
}

func (r *Recognizer) matchName(name string, i int) int {
	key := memoKey{name: name, offset: i}
	if n, ok := r.memo[key]; ok {
		return n
	}
	if r.visiting[key] {
		return noMatch
	}

	prod, ok := r.grammar[name]
	if !ok || prod.Expr == nil {
		return noMatch
	}

	r.visiting[key] = true
	n := r.match(prod.Expr, i)
	delete(r.visiting, key)

	r.memo[key] = n
	return n
}

func isLexical(name string) bool {
	ch, _ := utf8.DecodeRuneInString(name)
	return !unicode.IsUpper(ch)
}

// CheckDirectives lexes input with the comment kinds enabled and recognizes
// it from the Directives production.
func CheckDirectives(g ebnf.Grammar, input []byte, filename string) error {
	tokens := NewDirectiveLexer(g, input, filename).Tokenize()
	for _, tok := range tokens {
		if tok.Kind == "ERROR" {
			return &SyntaxError{Got: tok, Expected: slices.Concat(CommentKinds, TokenKinds)}
		}
	}
	return NewRecognizer(g, tokens).Recognize("Directives")
}
