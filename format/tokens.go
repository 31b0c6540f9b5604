package format

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/dhamidi/cppast/cpp"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/termenv"
)

type TokenEncoder interface {
	Encode(tok cpp.Token) error
}

// TokenNames lists the token formats accepted by NewTokenEncoder, default
// first.
var TokenNames = []string{"text", "json"}

// NewTokenEncoder returns the token encoder registered under name. out
// styles text output and may be nil.
func NewTokenEncoder(name string, w io.Writer, out *termenv.Output) (TokenEncoder, error) {
	switch name {
	case "text":
		return NewTokenTextEncoder(w, out), nil
	case "json":
		return NewTokenJSONEncoder(w), nil
	}
	return nil, fmt.Errorf("unknown token format %q", name)
}

const (
	positionWidth = 10
	kindWidth     = 9
)

// TokenTextEncoder writes one aligned line per token:
//
//	1:1       symbol   "#"
type TokenTextEncoder struct {
	w   io.Writer
	out *termenv.Output
}

func NewTokenTextEncoder(w io.Writer, out *termenv.Output) *TokenTextEncoder {
	return &TokenTextEncoder{w: w, out: out}
}

func (e *TokenTextEncoder) Encode(tok cpp.Token) error {
	text, err := e.MarshalText(tok)
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *TokenTextEncoder) MarshalText(tok cpp.Token) ([]byte, error) {
	pos := runewidth.FillRight(tok.Span.Start.String(), positionWidth)
	kind := runewidth.FillRight(tok.Kind.String(), kindWidth)
	text := strconv.Quote(tok.Text)
	if e.out != nil {
		pos = e.out.String(pos).Faint().String()
		kind = e.out.String(kind).Foreground(e.out.Color(kindColor(tok.Kind))).String()
	}
	return []byte(pos + kind + text + "\n"), nil
}

// kindColor is an ANSI color index.
func kindColor(k cpp.Kind) string {
	switch k {
	case cpp.Symbol:
		return "5"
	case cpp.Word:
		return "4"
	case cpp.Integer:
		return "3"
	case cpp.StringLiteral:
		return "2"
	}
	return "8"
}

// TokenJSONEncoder writes one JSON object per line.
type TokenJSONEncoder struct {
	enc *json.Encoder
}

func NewTokenJSONEncoder(w io.Writer) *TokenJSONEncoder {
	return &TokenJSONEncoder{enc: json.NewEncoder(w)}
}

type tokenJSON struct {
	Kind  string          `json:"kind"`
	Text  string          `json:"text"`
	Start astJSONPosition `json:"start"`
	End   astJSONPosition `json:"end"`
}

func (e *TokenJSONEncoder) Encode(tok cpp.Token) error {
	return e.enc.Encode(tokenJSON{
		Kind:  tok.Kind.String(),
		Text:  tok.Text,
		Start: astJSONPosition{Line: tok.Span.Start.Line, Column: tok.Span.Start.Column},
		End:   astJSONPosition{Line: tok.Span.End.Line, Column: tok.Span.End.Column},
	})
}
