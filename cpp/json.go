package cpp

import "encoding/json"

type jsonStmt struct {
	Kind   string      `json:"kind"`
	Span   *jsonSpan   `json:"span,omitempty"`
	Name   string      `json:"name,omitempty"`
	Params []string    `json:"params,omitempty"`
	Expr   *jsonExpr   `json:"expr,omitempty"`
	Body   string      `json:"body,omitempty"`
	Stmts  []*jsonStmt `json:"stmts,omitempty"`
}

type jsonExpr struct {
	Kind  string `json:"kind"`
	Value string `json:"value"`
}

type jsonSpan struct {
	Start jsonPosition `json:"start"`
	End   jsonPosition `json:"end"`
}

type jsonPosition struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

func (a *Ast) MarshalJSON() ([]byte, error) {
	nodes := make([]*jsonStmt, len(a.Nodes))
	for i, node := range a.Nodes {
		nodes[i] = stmtToJSON(node)
	}
	return json.Marshal(struct {
		Nodes []*jsonStmt `json:"nodes"`
	}{nodes})
}

func stmtToJSON(stmt Stmt) *jsonStmt {
	js := &jsonStmt{}
	if span := stmt.NodeSpan(); span.Start.IsValid() {
		js.Span = &jsonSpan{
			Start: jsonPosition{Line: span.Start.Line, Column: span.Start.Column},
			End:   jsonPosition{Line: span.End.Line, Column: span.End.Column},
		}
	}

	switch s := stmt.(type) {
	case *Constant:
		js.Kind = "Define.Constant"
		js.Name = s.Name.Name
		js.Expr = exprToJSON(s.Expr)
	case *Function:
		js.Kind = "Define.Function"
		js.Name = s.Name.Name
		js.Params = make([]string, len(s.Params))
		for i, param := range s.Params {
			js.Params[i] = param.Name
		}
		js.Expr = exprToJSON(s.Expr)
	case *Comment:
		js.Kind = "Comment." + s.Kind.String()
		js.Body = s.Body
	case *Block:
		js.Kind = "Block"
		for _, child := range s.Stmts {
			js.Stmts = append(js.Stmts, stmtToJSON(child))
		}
	}
	return js
}

func exprToJSON(e Expr) *jsonExpr {
	switch e := e.(type) {
	case Identifier:
		return &jsonExpr{Kind: "Identifier", Value: e.Name}
	case IntegerLiteral:
		return &jsonExpr{Kind: "IntegerLiteral", Value: e.Text}
	}
	return nil
}
