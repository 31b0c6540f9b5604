package cpp

import (
	"encoding/json"
	"testing"
)

func TestNewIdentifier(t *testing.T) {
	tests := []struct {
		name string
		ok   bool
	}{
		{"ABC", true},
		{"_x", true},
		{"a1_b2", true},
		{"größe", true},
		{"", false},
		{"1abc", false},
		{"a-b", false},
		{"a b", false},
	}

	for _, tt := range tests {
		id, ok := NewIdentifier(tt.name)
		if ok != tt.ok {
			t.Errorf("NewIdentifier(%q) ok = %v, want %v", tt.name, ok, tt.ok)
		}
		if ok && id.Name != tt.name {
			t.Errorf("NewIdentifier(%q).Name = %q", tt.name, id.Name)
		}
	}
}

func TestIntegerTokenBecomesLiteral(t *testing.T) {
	tok := IntToken("0x1F")
	if !tok.Is(Integer) || tok.Kind.String() != "integer" {
		t.Errorf("IntToken kind = %v, want integer", tok.Kind)
	}

	ast := mustParse(t, "#define M 0x1F\n")
	if got := ast.FindDefine("M").Body(); got != (IntegerLiteral{Text: tok.Text}) {
		t.Errorf("Body() = %#v, want IntegerLiteral %q", got, tok.Text)
	}
}

func TestFunctionSignature(t *testing.T) {
	f := &Function{
		Name:   Identifier{Name: "MAX"},
		Params: []Identifier{{Name: "a"}, {Name: "b"}},
	}
	if got := f.Signature(); got != "MAX(a, b)" {
		t.Errorf("Signature() = %q, want %q", got, "MAX(a, b)")
	}
}

func TestAstFindDefine(t *testing.T) {
	ast := mustParse(t, "#define A 1\n#define B\n#define A 2\n")

	d := ast.FindDefine("A")
	if d == nil {
		t.Fatal("FindDefine(A) = nil")
	}
	if d.Body() != (IntegerLiteral{Text: "2"}) {
		t.Errorf("FindDefine(A).Body() = %v, want the later definition", d.Body())
	}
	if ast.FindDefine("C") != nil {
		t.Error("FindDefine(C) found a define")
	}
}

func TestAstDefineAt(t *testing.T) {
	ast := mustParse(t, "// x\n#define A 1\n#define F(a) a\n")

	tests := []struct {
		line, col int
		want      string
	}{
		{1, 2, ""},
		{2, 1, "A"},
		{2, 9, "A"},
		{3, 9, "F"},
		{3, 50, ""},
		{4, 1, ""},
	}
	for _, tt := range tests {
		got := ""
		if d := ast.DefineAt(tt.line, tt.col); d != nil {
			got = d.DefineName().Name
		}
		if got != tt.want {
			t.Errorf("DefineAt(%d, %d) = %q, want %q", tt.line, tt.col, got, tt.want)
		}
	}
}

func TestAstMarshalJSON(t *testing.T) {
	ast := mustParse(t, "#define F(a, b) a\n/* c */\n")

	data, err := json.Marshal(ast)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var got struct {
		Nodes []struct {
			Kind   string   `json:"kind"`
			Name   string   `json:"name"`
			Params []string `json:"params"`
			Expr   *struct {
				Kind  string `json:"kind"`
				Value string `json:"value"`
			} `json:"expr"`
			Body string `json:"body"`
			Span struct {
				Start struct{ Line, Column int }
			} `json:"span"`
		} `json:"nodes"`
	}
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	if len(got.Nodes) != 2 {
		t.Fatalf("got %d nodes, want 2: %s", len(got.Nodes), data)
	}
	fn := got.Nodes[0]
	if fn.Kind != "Define.Function" || fn.Name != "F" || len(fn.Params) != 2 {
		t.Errorf("node 0 = %+v", fn)
	}
	if fn.Expr == nil || fn.Expr.Kind != "Identifier" || fn.Expr.Value != "a" {
		t.Errorf("node 0 expr = %+v", fn.Expr)
	}
	if fn.Span.Start.Line != 1 || fn.Span.Start.Column != 1 {
		t.Errorf("node 0 start = %+v", fn.Span.Start)
	}
	c := got.Nodes[1]
	if c.Kind != "Comment.Block" || c.Body != " c " {
		t.Errorf("node 1 = %+v", c)
	}
	if c.Span.Start.Line != 2 {
		t.Errorf("node 1 start line = %d, want 2", c.Span.Start.Line)
	}
}

func TestAstMarshalJSONEmpty(t *testing.T) {
	data, err := json.Marshal(NewAst())
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `{"nodes":[]}` {
		t.Errorf("Marshal(empty) = %s", data)
	}
}
