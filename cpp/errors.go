package cpp

import (
	"errors"
	"fmt"
	"strings"
)

type ErrorKind int

const (
	// ErrUnknownToken is the lexical error: no production matches the
	// input. The parser reuses it for tokens that cannot start a statement.
	ErrUnknownToken ErrorKind = iota
	ErrUnexpectedToken
	ErrUnexpectedEndOfInput
	ErrInvalidIdentifier
	ErrUnknownDirective
	ErrExpected
	ErrExpectedOneOf
	ErrExpectedIdentifier
	ErrRead
)

var errorKindNames = map[ErrorKind]string{
	ErrUnknownToken:         "UnknownToken",
	ErrUnexpectedToken:      "UnexpectedToken",
	ErrUnexpectedEndOfInput: "UnexpectedEndOfInput",
	ErrInvalidIdentifier:    "InvalidIdentifier",
	ErrUnknownDirective:     "UnknownDirective",
	ErrExpected:             "Expected",
	ErrExpectedOneOf:        "ExpectedOneOf",
	ErrExpectedIdentifier:   "ExpectedIdentifier",
	ErrRead:                 "Read",
}

func (k ErrorKind) String() string {
	if name, ok := errorKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// Error is a tokenizer or parser failure. Token is the offending token, or
// for ErrUnknownToken a pseudo-token holding the unmatched character.
type Error struct {
	Kind     ErrorKind
	Token    Token
	Pos      Position
	Expected []string
	Err      error
}

func (e *Error) Error() string {
	if !e.Pos.IsValid() {
		return e.Message()
	}
	return e.Pos.String() + ": " + e.Message()
}

// Message is the error text without the position.
func (e *Error) Message() string {
	switch e.Kind {
	case ErrUnknownToken:
		return "unknown token: " + e.Token.String()
	case ErrUnexpectedToken:
		return "unexpected token: " + e.Token.String()
	case ErrUnexpectedEndOfInput:
		if len(e.Expected) > 0 {
			return "unexpected end of input, " + expectedText(e.Expected)
		}
		return "unexpected end of input"
	case ErrInvalidIdentifier:
		return "invalid identifier: " + e.Token.String()
	case ErrUnknownDirective:
		return "unknown directive: " + e.Token.String()
	case ErrExpected, ErrExpectedOneOf:
		return expectedText(e.Expected)
	case ErrExpectedIdentifier:
		return "expected identifier"
	case ErrRead:
		return fmt.Sprintf("read: %v", e.Err)
	}
	return "unknown error"
}

func expectedText(expected []string) string {
	if len(expected) == 1 {
		return "expected " + expected[0]
	}
	return "expected one of: " + strings.Join(expected, ", ")
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsKind reports whether err is, or wraps, an *Error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}

func newError(kind ErrorKind, tok Token) *Error {
	return &Error{Kind: kind, Token: tok, Pos: tok.Span.Start}
}

// InternalError is the panic value for states the parser rules out before
// reaching them. Seeing one means the parser has a bug; it is never the
// result of bad input.
type InternalError struct {
	Err error
}

func (e *InternalError) Error() string {
	return "cpp: internal error: " + e.Err.Error()
}

func (e *InternalError) Unwrap() error {
	return e.Err
}
