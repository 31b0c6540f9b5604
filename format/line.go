package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/dhamidi/cppast/cpp"
)

// LineEncoder writes one tab separated line per define:
//
//	kind	name	params	expr	position
//
// Missing columns are written as "-".
type LineEncoder struct {
	w io.Writer
}

func NewLineEncoder(w io.Writer) *LineEncoder {
	return &LineEncoder{w: w}
}

func (e *LineEncoder) Encode(ast *cpp.Ast) error {
	text, err := e.MarshalText(ast)
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *LineEncoder) MarshalText(ast *cpp.Ast) ([]byte, error) {
	var sb strings.Builder
	for _, d := range ast.Defines() {
		fmt.Fprintf(&sb, "%s\t%s\t%s\t%s\t%s\n",
			defineKind(d),
			d.DefineName().Name,
			paramsStr(d),
			exprStr(d.Body()),
			positionStr(d.NodeSpan().Start),
		)
	}
	return []byte(sb.String()), nil
}

func defineKind(d cpp.Define) string {
	if _, ok := d.(*cpp.Function); ok {
		return "function"
	}
	return "constant"
}

func paramsStr(d cpp.Define) string {
	f, ok := d.(*cpp.Function)
	if !ok {
		return "-"
	}
	names := make([]string, len(f.Params))
	for i, p := range f.Params {
		names[i] = p.Name
	}
	return "(" + strings.Join(names, ",") + ")"
}

func exprStr(e cpp.Expr) string {
	if e == nil {
		return "-"
	}
	return e.String()
}

func positionStr(p cpp.Position) string {
	if !p.IsValid() {
		return "-"
	}
	return p.String()
}
