package cpp

import (
	"strconv"
	"strings"
	"unicode"
)

// IsIdentifierStart reports whether ch may begin an identifier.
func IsIdentifierStart(ch rune) bool {
	return ch == '_' || unicode.IsLetter(ch)
}

// IsIdentifierChar reports whether ch may appear after the first character
// of an identifier.
func IsIdentifierChar(ch rune) bool {
	return ch == '_' || unicode.IsLetter(ch) || unicode.IsNumber(ch)
}

type Identifier struct {
	Name string
}

// NewIdentifier validates name and returns it as an Identifier. The second
// result is false for an empty name or one containing characters outside
// the identifier alphabet.
func NewIdentifier(name string) (Identifier, bool) {
	if name == "" {
		return Identifier{}, false
	}
	for i, ch := range name {
		if i == 0 && !IsIdentifierStart(ch) {
			return Identifier{}, false
		}
		if !IsIdentifierChar(ch) {
			return Identifier{}, false
		}
	}
	return Identifier{Name: name}, true
}

func (id Identifier) String() string {
	return id.Name
}

// Expr is either an Identifier or an IntegerLiteral.
type Expr interface {
	exprNode()
	String() string
}

type IntegerLiteral struct {
	Text string
}

func (lit IntegerLiteral) String() string {
	return lit.Text
}

func (Identifier) exprNode()     {}
func (IntegerLiteral) exprNode() {}

// Stmt is one of *Constant, *Function, *Comment or *Block.
type Stmt interface {
	stmtNode()
	NodeSpan() Span
}

// Define is a #define directive: *Constant or *Function.
type Define interface {
	Stmt
	defineNode()
	DefineName() Identifier
	Body() Expr
}

// Constant is an object-like macro: `#define ABC` or `#define ABC 1`.
type Constant struct {
	Name Identifier
	Expr Expr
	Span Span
}

// Function is a function-like macro: `#define F(a, b) a`.
type Function struct {
	Name   Identifier
	Params []Identifier
	Expr   Expr
	Span   Span
}

type CommentKind int

const (
	CommentBlock CommentKind = iota
	CommentLine
)

func (k CommentKind) String() string {
	if k == CommentLine {
		return "Line"
	}
	return "Block"
}

type Comment struct {
	Kind CommentKind
	Body string
	Span Span
}

// Block groups statements.
type Block struct {
	Stmts []Stmt
	Span  Span
}

func (*Constant) stmtNode() {}
func (*Function) stmtNode() {}
func (*Comment) stmtNode()  {}
func (*Block) stmtNode()    {}

func (*Constant) defineNode() {}
func (*Function) defineNode() {}

func (c *Constant) NodeSpan() Span { return c.Span }
func (f *Function) NodeSpan() Span { return f.Span }
func (c *Comment) NodeSpan() Span  { return c.Span }
func (b *Block) NodeSpan() Span    { return b.Span }

func (c *Constant) DefineName() Identifier { return c.Name }
func (f *Function) DefineName() Identifier { return f.Name }

func (c *Constant) Body() Expr { return c.Expr }
func (f *Function) Body() Expr { return f.Expr }

// Signature renders the macro head, e.g. "F(a, b)".
func (f *Function) Signature() string {
	names := make([]string, len(f.Params))
	for i, p := range f.Params {
		names[i] = p.Name
	}
	return f.Name.Name + "(" + strings.Join(names, ", ") + ")"
}

// Ast holds the statements of one parse in source order.
type Ast struct {
	Nodes []Stmt
}

func NewAst() *Ast {
	return &Ast{}
}

func (a *Ast) push(stmt Stmt) {
	a.Nodes = append(a.Nodes, stmt)
}

// Defines returns the #define statements in source order.
func (a *Ast) Defines() []Define {
	var defines []Define
	for _, node := range a.Nodes {
		if d, ok := node.(Define); ok {
			defines = append(defines, d)
		}
	}
	return defines
}

// FindDefine returns the last definition of name, or nil.
func (a *Ast) FindDefine(name string) Define {
	var found Define
	for _, d := range a.Defines() {
		if d.DefineName().Name == name {
			found = d
		}
	}
	return found
}

// DefineAt returns the define whose span covers the given 1-based line and
// column, or nil.
func (a *Ast) DefineAt(line, column int) Define {
	for _, d := range a.Defines() {
		if spanContains(d.NodeSpan(), line, column) {
			return d
		}
	}
	return nil
}

func spanContains(s Span, line, column int) bool {
	if line < s.Start.Line || line > s.End.Line {
		return false
	}
	if line == s.Start.Line && column < s.Start.Column {
		return false
	}
	if line == s.End.Line && column > s.End.Column {
		return false
	}
	return true
}

func (a *Ast) String() string {
	var sb strings.Builder
	for _, node := range a.Nodes {
		writeStmt(&sb, node, 0)
	}
	return sb.String()
}

func writeStmt(sb *strings.Builder, stmt Stmt, indent int) {
	sb.WriteString(strings.Repeat("  ", indent))
	switch s := stmt.(type) {
	case *Constant:
		sb.WriteString("Define.Constant " + s.Name.Name)
		if s.Expr != nil {
			sb.WriteString(" = " + exprString(s.Expr))
		}
		sb.WriteString("\n")
	case *Function:
		sb.WriteString("Define.Function " + s.Signature())
		if s.Expr != nil {
			sb.WriteString(" = " + exprString(s.Expr))
		}
		sb.WriteString("\n")
	case *Comment:
		sb.WriteString("Comment." + s.Kind.String())
		if s.Body != "" {
			sb.WriteString(" " + strconv.Quote(strings.TrimSpace(s.Body)))
		}
		sb.WriteString("\n")
	case *Block:
		sb.WriteString("Block\n")
		for _, child := range s.Stmts {
			writeStmt(sb, child, indent+1)
		}
	}
}

func exprString(e Expr) string {
	switch e := e.(type) {
	case Identifier:
		return "Identifier(" + e.Name + ")"
	case IntegerLiteral:
		return "IntegerLiteral(" + e.Text + ")"
	}
	return "?"
}
