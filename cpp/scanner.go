package cpp

import (
	"errors"
	"io"
	"iter"
)

// Segment is one step of a Scanner: either a parsed statement or an
// ordinary token passed through untouched.
type Segment struct {
	Stmt  Stmt
	Token *Token
}

// Scanner walks arbitrary C source. #define lines and comments are parsed
// into statements with the Parser's productions; every other token,
// including other directives, is passed through.
type Scanner struct {
	t       *Tokenizer
	p       *Parser
	pending []Stmt
	bol     bool
}

// NewScanner returns a scanner whose tokenizer knows the full C punctuator
// set and string literals. opts are applied after those defaults.
func NewScanner(r io.RuneReader, opts ...Option) *Scanner {
	base := []Option{WithSymbols(CSymbols...), WithStringLiterals()}
	return &Scanner{
		t:   NewTokenizer(r, append(base, opts...)...),
		p:   NewParser(),
		bol: true,
	}
}

// Ast returns the statements scanned so far.
func (s *Scanner) Ast() *Ast {
	return s.p.Ast()
}

// Next returns the next segment, or io.EOF after the last one.
func (s *Scanner) Next() (Segment, error) {
	if len(s.pending) > 0 {
		stmt := s.pending[0]
		s.pending = s.pending[1:]
		return Segment{Stmt: stmt}, nil
	}

	tok, err := s.t.Peek()
	if err != nil {
		return Segment{}, err
	}

	if s.startsStatement(tok) {
		stmts, err := s.p.parseSymbolStatement(s.t, tok)
		if err != nil {
			return Segment{}, err
		}
		for _, stmt := range stmts {
			s.p.ast.push(stmt)
		}
		// A block comment on its own leaves the line state alone.
		if c, ok := stmts[0].(*Comment); !ok || c.Kind == CommentLine {
			s.bol = true
		}
		s.pending = stmts[1:]
		return Segment{Stmt: stmts[0]}, nil
	}

	tok, err = s.t.Next()
	if err != nil {
		return Segment{}, err
	}
	s.bol = tok.Is(NewLine)
	return Segment{Token: &tok}, nil
}

func (s *Scanner) startsStatement(tok Token) bool {
	if isCommentStart(tok) {
		return true
	}
	if !s.bol || !tok.Equal(Hash) {
		return false
	}
	next, err := s.t.PeekN(1)
	return err == nil && next.Equal(DefineWord)
}

// All scans the remaining input. It stops after the first error.
func (s *Scanner) All() iter.Seq2[Segment, error] {
	return func(yield func(Segment, error) bool) {
		for {
			seg, err := s.Next()
			if errors.Is(err, io.EOF) {
				return
			}
			if !yield(seg, err) || err != nil {
				return
			}
		}
	}
}
