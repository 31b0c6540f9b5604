package cpp

import (
	"errors"
	"fmt"
	"io"
	"iter"
	"strings"
)

type Option func(*Tokenizer)

// WithFile sets the file name recorded in token positions.
func WithFile(name string) Option {
	return func(t *Tokenizer) {
		t.src.pos.File = name
	}
}

// WithSymbols replaces the symbol table.
func WithSymbols(symbols ...string) Option {
	return func(t *Tokenizer) {
		t.symbols = symbolTable(symbols)
	}
}

// WithStringLiterals makes the tokenizer recognize "..." and '...' as
// StringLiteral tokens instead of failing on the quote character.
func WithStringLiterals() Option {
	return func(t *Tokenizer) {
		t.stringLiterals = true
	}
}

// source is a rune peeker that keeps track of the position of the next
// unconsumed rune.
type source struct {
	*RunePeeker
	pos Position
}

func (s *source) Next() (rune, bool) {
	ch, ok := s.RunePeeker.Next()
	if !ok {
		return ch, false
	}
	s.pos.Offset++
	if ch == '\n' {
		s.pos.Line++
		s.pos.Column = 1
	} else {
		s.pos.Column++
	}
	return ch, true
}

func (s *source) Eat() {
	s.Next()
}

func (s *source) EatN(n int) {
	for i := 0; i < n; i++ {
		if _, ok := s.Next(); !ok {
			return
		}
	}
}

type lexed struct {
	tok Token
	err error
}

// Tokenizer turns runes into tokens on demand. Every token is produced
// once and kept in a lookahead buffer until consumed, so peeking never
// re-runs a production.
type Tokenizer struct {
	src            *source
	symbols        [][]rune
	stringLiterals bool

	buf      []lexed
	pos      int
	finished bool
}

func NewTokenizer(r io.RuneReader, opts ...Option) *Tokenizer {
	t := &Tokenizer{
		src: &source{
			RunePeeker: PeekRunes(r),
			pos:        Position{Line: 1, Column: 1},
		},
		symbols: symbolTable(DefaultSymbols),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func TokenizeString(src string, opts ...Option) *Tokenizer {
	return NewTokenizer(strings.NewReader(src), opts...)
}

func (t *Tokenizer) Peek() (Token, error) {
	return t.PeekN(0)
}

// PeekN returns the token n positions past the next one without consuming
// anything. If producing the tokens up to n fails, the first error is
// returned. io.EOF means the sequence ends before n.
func (t *Tokenizer) PeekN(n int) (Token, error) {
	for len(t.buf)-t.pos <= n {
		if t.finished {
			if err := t.pendingErr(len(t.buf) - t.pos); err != nil {
				return Token{}, err
			}
			return Token{}, io.EOF
		}
		t.buf = append(t.buf, t.produce())
	}
	if err := t.pendingErr(n); err != nil {
		return Token{}, err
	}
	return t.buf[t.pos+n].tok, nil
}

// pendingErr returns the first error among the next n+1 buffered results.
func (t *Tokenizer) pendingErr(n int) error {
	for i := t.pos; i <= t.pos+n && i < len(t.buf); i++ {
		if t.buf[i].err != nil {
			return t.buf[i].err
		}
	}
	return nil
}

func (t *Tokenizer) Next() (Token, error) {
	if t.pos >= len(t.buf) {
		if t.finished {
			return Token{}, io.EOF
		}
		t.buf = append(t.buf, t.produce())
	}
	l := t.buf[t.pos]
	t.pos++
	if t.pos == len(t.buf) {
		t.buf = t.buf[:0]
		t.pos = 0
	}
	return l.tok, l.err
}

// Eat consumes the next token, discarding it.
func (t *Tokenizer) Eat() {
	t.Next()
}

// All returns the remaining tokens as a sequence. It stops after the final
// new line or after the first error.
func (t *Tokenizer) All() iter.Seq2[Token, error] {
	return func(yield func(Token, error) bool) {
		for {
			tok, err := t.Next()
			if errors.Is(err, io.EOF) {
				return
			}
			if !yield(tok, err) || err != nil {
				return
			}
		}
	}
}

func (t *Tokenizer) token(kind Kind, text string, start Position) Token {
	return Token{
		Kind: kind,
		Text: text,
		Span: Span{Start: start, End: t.src.pos},
	}
}

func (t *Tokenizer) produce() lexed {
	EatWhitespaceButLine(t.src)
	start := t.src.pos

	ch, ok := t.src.Peek()
	if !ok {
		t.finished = true
		if err := t.src.Err(); err != nil {
			return lexed{err: &Error{Kind: ErrRead, Pos: start, Err: err}}
		}
		return lexed{tok: t.token(NewLine, "\n", start)}
	}

	switch {
	case ch == '\n':
		t.src.Eat()
		return lexed{tok: t.token(NewLine, "\n", start)}
	case ch == '\r':
		if after, ok := t.src.PeekN(1); ok && after == '\n' {
			t.src.EatN(2)
			return lexed{tok: t.token(NewLine, "\n", start)}
		}
	case IsIdentifierStart(ch):
		return lexed{tok: t.scanWord(start)}
	case isDigit(ch):
		return lexed{tok: t.scanInteger(start)}
	case t.stringLiterals && (ch == '"' || ch == '\''):
		return t.scanString(start)
	}

	return t.scanSymbol(start)
}

func (t *Tokenizer) scanWord(start Position) Token {
	var sb strings.Builder
	for {
		ch, ok := t.src.Peek()
		if !ok || !IsIdentifierChar(ch) {
			break
		}
		sb.WriteRune(ch)
		t.src.Eat()
	}
	return t.token(Word, sb.String(), start)
}

// scanInteger accepts any run of hex digits and 'x' after a leading decimal
// digit. The text is not validated.
func (t *Tokenizer) scanInteger(start Position) Token {
	var sb strings.Builder
	ch, _ := t.src.Next()
	sb.WriteRune(ch)
	for {
		ch, ok := t.src.Peek()
		if !ok || !(isHexDigit(ch) || ch == 'x') {
			break
		}
		sb.WriteRune(ch)
		t.src.Eat()
	}
	return t.token(Integer, sb.String(), start)
}

func (t *Tokenizer) scanString(start Position) lexed {
	var sb strings.Builder
	quote, _ := t.src.Next()
	sb.WriteRune(quote)
	for {
		ch, ok := t.src.Peek()
		if !ok || ch == '\n' {
			t.finished = true
			return lexed{err: &Error{
				Kind:     ErrExpected,
				Token:    t.token(StringLiteral, sb.String(), start),
				Pos:      t.src.pos,
				Expected: []string{fmt.Sprintf("%q", quote)},
			}}
		}
		t.src.Eat()
		sb.WriteRune(ch)
		if ch == quote {
			break
		}
		if ch == '\\' {
			if esc, ok := t.src.Peek(); ok && esc != '\n' {
				t.src.Eat()
				sb.WriteRune(esc)
			}
		}
	}
	return lexed{tok: t.token(StringLiteral, sb.String(), start)}
}

// scanSymbol tries the symbol table longest first, so the first complete
// match is the maximal munch.
func (t *Tokenizer) scanSymbol(start Position) lexed {
next:
	for _, sym := range t.symbols {
		for i, want := range sym {
			got, ok := t.src.PeekN(i)
			if !ok || got != want {
				continue next
			}
		}
		t.src.EatN(len(sym))
		return lexed{tok: t.token(Symbol, string(sym), start)}
	}

	t.finished = true
	ch, _ := t.src.Peek()
	bad := Token{Kind: Symbol, Text: string(ch), Span: Span{Start: start, End: start}}
	return lexed{err: newError(ErrUnknownToken, bad)}
}

func (t *Tokenizer) checkDrained(what string) {
	if t.pos < len(t.buf) {
		panic(&InternalError{Err: errors.New(what + " with tokens still buffered")})
	}
}

// readLineComment returns the rest of the current line verbatim, leaving
// the line terminator for the next token.
func (t *Tokenizer) readLineComment() string {
	t.checkDrained("reading line comment")
	var sb strings.Builder
	for {
		ch, ok := t.src.Peek()
		if !ok || ch == '\n' {
			break
		}
		if ch == '\r' {
			if after, ok := t.src.PeekN(1); ok && after == '\n' {
				break
			}
		}
		sb.WriteRune(ch)
		t.src.Eat()
	}
	return sb.String()
}

// readBlockComment returns everything up to the closing "*/" verbatim and
// consumes the delimiter. Block comments do not nest.
func (t *Tokenizer) readBlockComment(open Token) (string, error) {
	t.checkDrained("reading block comment")
	var sb strings.Builder
	for {
		ch, ok := t.src.Peek()
		if !ok {
			t.finished = true
			return sb.String(), &Error{
				Kind:     ErrUnexpectedEndOfInput,
				Token:    open,
				Pos:      t.src.pos,
				Expected: []string{BlockEnd.quoted()},
			}
		}
		if ch == '*' {
			if after, ok := t.src.PeekN(1); ok && after == '/' {
				t.src.EatN(2)
				return sb.String(), nil
			}
		}
		sb.WriteRune(ch)
		t.src.Eat()
	}
}

// position returns the position of the next unconsumed character.
func (t *Tokenizer) position() Position {
	return t.src.pos
}

func isDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}

func isHexDigit(ch rune) bool {
	return isDigit(ch) || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}
