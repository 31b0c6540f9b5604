package format

import (
	"io"

	"github.com/dhamidi/cppast/cpp"
)

// TreeEncoder writes one line per statement, children indented.
type TreeEncoder struct {
	w io.Writer
}

func NewTreeEncoder(w io.Writer) *TreeEncoder {
	return &TreeEncoder{w: w}
}

func (e *TreeEncoder) Encode(ast *cpp.Ast) error {
	text, err := e.MarshalText(ast)
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *TreeEncoder) MarshalText(ast *cpp.Ast) ([]byte, error) {
	return []byte(ast.String()), nil
}
