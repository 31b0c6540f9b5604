package format

import (
	"io"
	"strings"

	"github.com/dhamidi/cppast/cpp"
)

// PrettyPrinter writes an Ast back as directive source. A comment that
// started on the line of the define before it stays on that line.
type PrettyPrinter struct {
	w io.Writer
}

func NewPrettyPrinter(w io.Writer) *PrettyPrinter {
	return &PrettyPrinter{w: w}
}

func (p *PrettyPrinter) Encode(ast *cpp.Ast) error {
	text, err := p.MarshalText(ast)
	if err != nil {
		return err
	}
	_, err = p.w.Write(text)
	return err
}

func (p *PrettyPrinter) MarshalText(ast *cpp.Ast) ([]byte, error) {
	var sb strings.Builder
	p.printStmts(&sb, ast.Nodes)
	if sb.Len() > 0 {
		sb.WriteString("\n")
	}
	return []byte(sb.String()), nil
}

// printStmts separates statements with new lines and leaves the last line
// open.
func (p *PrettyPrinter) printStmts(sb *strings.Builder, stmts []cpp.Stmt) {
	for i, stmt := range stmts {
		switch {
		case i == 0:
		case trailsDefine(stmts[i-1], stmt):
			sb.WriteString(" ")
		default:
			sb.WriteString("\n")
		}
		p.printStmt(sb, stmt)
	}
}

func (p *PrettyPrinter) printStmt(sb *strings.Builder, stmt cpp.Stmt) {
	switch s := stmt.(type) {
	case *cpp.Constant:
		sb.WriteString("#define " + s.Name.Name)
		if s.Expr != nil {
			sb.WriteString(" " + s.Expr.String())
		}
	case *cpp.Function:
		sb.WriteString("#define " + s.Signature())
		if s.Expr != nil {
			sb.WriteString(" " + s.Expr.String())
		}
	case *cpp.Comment:
		if s.Kind == cpp.CommentLine {
			sb.WriteString("//" + s.Body)
		} else {
			sb.WriteString("/*" + s.Body + "*/")
		}
	case *cpp.Block:
		p.printStmts(sb, s.Stmts)
	}
}

func trailsDefine(prev, stmt cpp.Stmt) bool {
	if _, ok := prev.(cpp.Define); !ok {
		return false
	}
	c, ok := stmt.(*cpp.Comment)
	if !ok {
		return false
	}
	start, end := c.Span.Start, prev.NodeSpan().End
	return start.IsValid() && end.IsValid() && start.Line == end.Line
}
