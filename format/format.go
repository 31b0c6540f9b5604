package format

import (
	"fmt"
	"io"

	"github.com/dhamidi/cppast/cpp"
)

type Encoder interface {
	Encode(ast *cpp.Ast) error
}

// Names lists the AST formats accepted by New, default first.
var Names = []string{"tree", "json", "line", "c"}

func New(name string, w io.Writer) (Encoder, error) {
	switch name {
	case "tree":
		return NewTreeEncoder(w), nil
	case "json":
		return NewASTJSONEncoder(w), nil
	case "line":
		return NewLineEncoder(w), nil
	case "c":
		return NewPrettyPrinter(w), nil
	}
	return nil, fmt.Errorf("unknown format %q", name)
}
