package cpp

import (
	"errors"
	"io"
	"testing"
)

func TestExpectationCheck(t *testing.T) {
	tests := []struct {
		name   string
		expect Expectation
		tok    Token
		err    error
		kind   ErrorKind
		msg    string
	}{
		{"token mismatch", ExpectToken(LParen), WordToken("x"), nil, ErrExpected, `expected "("`},
		{"kind mismatch", ExpectKind(Word), IntToken("1"), nil, ErrExpectedOneOf, "expected word"},
		{"kinds mismatch", ExpectKind(Word, NewLine), IntToken("1"), nil, ErrExpectedOneOf, "expected one of: word, new line"},
		{"one of mismatch", ExpectOneOf(Comma, RParen), WordToken("x"), nil, ErrExpectedOneOf, `expected one of: ",", ")"`},
		{"new line in list", ExpectOneOf(NewLineToken()), WordToken("x"), nil, ErrExpectedOneOf, "expected new-line"},
		{"end of input", ExpectToken(RParen), Token{}, io.EOF, ErrUnexpectedEndOfInput, `unexpected end of input, expected ")"`},
		{"something at end", Something, Token{}, io.EOF, ErrUnexpectedEndOfInput, "unexpected end of input"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.expect.Check(tt.tok, tt.err)
			if !IsKind(err, tt.kind) {
				t.Fatalf("Check() error = %v, want kind %v", err, tt.kind)
			}
			if err.Error() != tt.msg {
				t.Errorf("Error() = %q, want %q", err.Error(), tt.msg)
			}
		})
	}
}

func TestExpectationCheckAccepts(t *testing.T) {
	tests := []struct {
		name   string
		expect Expectation
		tok    Token
	}{
		{"token", ExpectToken(Hash), Hash},
		{"kind", ExpectKind(Integer), IntToken("7")},
		{"one of", ExpectOneOf(Comma, RParen), RParen},
		{"something", Something, NewLineToken()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.expect.Check(tt.tok, nil)
			if err != nil {
				t.Fatalf("Check() error = %v", err)
			}
			if !got.Equal(tt.tok) {
				t.Errorf("Check() = %v, want %v", got, tt.tok)
			}
		})
	}
}

func TestExpectationPassesThroughErrors(t *testing.T) {
	boom := errors.New("boom")
	if _, err := Something.Check(Token{}, boom); !errors.Is(err, boom) {
		t.Errorf("Check() error = %v, want %v", err, boom)
	}
}

func TestExpectationAssertPanics(t *testing.T) {
	defer func() {
		r := recover()
		ie, ok := r.(*InternalError)
		if !ok {
			t.Fatalf("recovered %v, want *InternalError", r)
		}
		if !IsKind(ie, ErrExpected) {
			t.Errorf("InternalError wraps %v, want an expected error", ie.Err)
		}
	}()
	ExpectToken(Hash).Assert(WordToken("define"), nil)
	t.Error("Assert did not panic")
}

func TestExpectationAssertReturnsToken(t *testing.T) {
	got := ExpectToken(DefineWord).Assert(WordToken("define"), nil)
	if !got.Equal(DefineWord) {
		t.Errorf("Assert() = %v, want define", got)
	}
}
