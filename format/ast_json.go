package format

import (
	"encoding/json"
	"errors"
	"io"

	"github.com/dhamidi/cppast/cpp"
)

type ASTJSONEncoder struct {
	w io.Writer
}

func NewASTJSONEncoder(w io.Writer) *ASTJSONEncoder {
	return &ASTJSONEncoder{w: w}
}

func (e *ASTJSONEncoder) Encode(ast *cpp.Ast) error {
	text, err := e.MarshalText(ast)
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *ASTJSONEncoder) MarshalText(ast *cpp.Ast) ([]byte, error) {
	data, err := json.MarshalIndent(ast, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// EncodeResult writes the statements of a possibly failed parse together
// with the error that stopped it.
func (e *ASTJSONEncoder) EncodeResult(ast *cpp.Ast, parseErr error) error {
	doc := astJSONResult{AST: ast}
	if parseErr != nil {
		doc.Error = errorToJSON(parseErr)
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	_, err = e.w.Write(append(data, '\n'))
	return err
}

type astJSONResult struct {
	AST   *cpp.Ast      `json:"ast"`
	Error *astJSONError `json:"error,omitempty"`
}

type astJSONError struct {
	Message  string           `json:"message"`
	Kind     string           `json:"kind,omitempty"`
	Expected []string         `json:"expected,omitempty"`
	Got      string           `json:"got,omitempty"`
	Position *astJSONPosition `json:"position,omitempty"`
}

type astJSONPosition struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

func errorToJSON(err error) *astJSONError {
	je := &astJSONError{Message: err.Error()}

	var e *cpp.Error
	if !errors.As(err, &e) {
		return je
	}
	je.Kind = e.Kind.String()
	je.Expected = e.Expected
	if e.Token.Text != "" {
		je.Got = e.Token.String()
	}
	if e.Pos.IsValid() {
		je.Position = &astJSONPosition{Line: e.Pos.Line, Column: e.Pos.Column}
	}
	return je
}
