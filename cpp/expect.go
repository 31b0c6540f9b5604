package cpp

import (
	"errors"
	"io"
)

// Expectation checks the result of Tokenizer.Next or Tokenizer.Peek.
//
// Check is for input the caller has not looked at yet and returns the
// mismatch as an *Error. Assert is for tokens the caller has already peeked
// and validated; a mismatch there is a parser bug and panics with an
// *InternalError.
type Expectation struct {
	match    func(Token) bool
	expected []string
	kind     ErrorKind
}

// Something accepts any token.
var Something = Expectation{
	match: func(Token) bool { return true },
	kind:  ErrUnexpectedEndOfInput,
}

// ExpectToken accepts tokens equal to want.
func ExpectToken(want Token) Expectation {
	return Expectation{
		match:    want.Equal,
		expected: []string{want.quoted()},
		kind:     ErrExpected,
	}
}

// ExpectKind accepts tokens of any of the given kinds.
func ExpectKind(kinds ...Kind) Expectation {
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = k.String()
	}
	return Expectation{
		match: func(tok Token) bool {
			for _, k := range kinds {
				if tok.Is(k) {
					return true
				}
			}
			return false
		},
		expected: names,
		kind:     ErrExpectedOneOf,
	}
}

// ExpectOneOf accepts tokens equal to any of the given tokens.
func ExpectOneOf(tokens ...Token) Expectation {
	names := make([]string, len(tokens))
	for i, t := range tokens {
		names[i] = t.quoted()
	}
	return Expectation{
		match: func(tok Token) bool {
			for _, t := range tokens {
				if tok.Equal(t) {
					return true
				}
			}
			return false
		},
		expected: names,
		kind:     ErrExpectedOneOf,
	}
}

// Expected lists what the expectation accepts, as it appears in messages.
func (e Expectation) Expected() []string {
	return e.expected
}

func (e Expectation) Check(tok Token, err error) (Token, error) {
	if errors.Is(err, io.EOF) {
		return Token{}, &Error{Kind: ErrUnexpectedEndOfInput, Expected: e.expected}
	}
	if err != nil {
		return Token{}, err
	}
	if !e.match(tok) {
		return tok, &Error{Kind: e.kind, Token: tok, Pos: tok.Span.Start, Expected: e.expected}
	}
	return tok, nil
}

func (e Expectation) Assert(tok Token, err error) Token {
	tok, err = e.Check(tok, err)
	if err != nil {
		panic(&InternalError{Err: err})
	}
	return tok
}
