package grammar

import (
	"strings"
	"testing"

	"github.com/dhamidi/cppast/cpp"
)

func TestCheck(t *testing.T) {
	if err := Check(); err != nil {
		t.Fatalf("Check() = %v", err)
	}
}

func TestProductions(t *testing.T) {
	g, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range append(append([]string{Start, "Define", "Params", "Expr"}, TokenKinds...), SkipKinds...) {
		if _, ok := g[name]; !ok {
			t.Errorf("production %s missing", name)
		}
	}
}

func TestSymbolsMatchTokenizer(t *testing.T) {
	g, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	for _, sym := range cpp.DefaultSymbols {
		toks := NewLexer(g, []byte(sym), "").Tokenize()
		if len(toks) != 2 || toks[0].Kind != "symbol" || toks[0].Literal != sym {
			t.Errorf("symbol %q lexed as %v", sym, toks)
		}
	}
}

var kindNames = map[cpp.Kind]string{
	cpp.Symbol:  "symbol",
	cpp.Word:    "word",
	cpp.Integer: "integer",
	cpp.NewLine: "newline",
}

func TestLexerAgreesWithTokenizer(t *testing.T) {
	g, err := Load()
	if err != nil {
		t.Fatal(err)
	}

	inputs := []string{
		"#define X 1",
		"#define F(a, b) a\r\n",
		"#define MASK 0xFF // mask\n",
		"/* c */\n#define A\n\n",
		"x+=y<=z>=w",
		"a\rb\tc\v\fd",
		"12abx 1g _x9",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			var want []string
			for tok, err := range cpp.TokenizeString(input).All() {
				if err != nil {
					t.Fatalf("tokenizer error: %v", err)
				}
				want = append(want, kindNames[tok.Kind]+" "+tok.Text)
			}
			// the tokenizer always closes with a synthetic new line
			want = want[:len(want)-1]

			var got []string
			for _, tok := range NewLexer(g, []byte(input), "").Tokenize() {
				if tok.Kind == "EOF" {
					break
				}
				lit := tok.Literal
				if tok.Kind == "newline" {
					lit = "\n"
				}
				got = append(got, tok.Kind+" "+lit)
			}

			if strings.Join(got, "|") != strings.Join(want, "|") {
				t.Errorf("grammar lexer:\n got %q\nwant %q", got, want)
			}
		})
	}
}

func TestLexerPositions(t *testing.T) {
	g, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	toks := NewLexer(g, []byte("#define\n  X"), "x.h").Tokenize()
	if len(toks) != 5 {
		t.Fatalf("got %d tokens, want 5: %v", len(toks), toks)
	}
	x := toks[3]
	if x.Literal != "X" || x.Position.Line != 2 || x.Position.Column != 3 {
		t.Errorf("X token = %v, want at 2:3", x)
	}
	if x.Position.String() != "x.h:2:3" {
		t.Errorf("Position.String() = %q", x.Position.String())
	}
}

func TestLexerErrorToken(t *testing.T) {
	g, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	toks := NewLexer(g, []byte("a@b"), "").Tokenize()
	var kinds []string
	for _, tok := range toks {
		kinds = append(kinds, tok.Kind)
	}
	if strings.Join(kinds, " ") != "word ERROR word EOF" {
		t.Errorf("kinds = %v", kinds)
	}
}

func TestDirectiveLexerComments(t *testing.T) {
	g, err := Load()
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		input string
		want  string
	}{
		{"/**/", "blockComment"},
		{"/* a * b **/", "blockComment"},
		{"/* a */ x", "blockComment word"},
		{"// x */\n", "lineComment newline"},
		{"/* open", "symbol word"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			var kinds []string
			for _, tok := range NewDirectiveLexer(g, []byte(tt.input), "").Tokenize() {
				if tok.Kind != "EOF" {
					kinds = append(kinds, tok.Kind)
				}
			}
			if got := strings.Join(kinds, " "); got != tt.want {
				t.Errorf("kinds = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCheckDirectivesAgreesWithParser(t *testing.T) {
	g, err := Load()
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		input string
		ok    bool
	}{
		{"", true},
		{"#define X 1\n", true},
		{"#define F(a, b) a\n", true},
		{"#define F(a,,b)\n", true},
		{"# define E\r\n", true},
		{"// c\n#define A\n\n", true},
		{"/* c */\n", true},
		{"#define A 1 // one\n", true},
		{"#define A /* x */\n", true},
		{"x\n", false},
		{"#define 1\n", false},
		{"#define A B C\n", false},
		{"#define F(a b) a\n", false},
		{"#undef A\n", false},
		{"#define A /* open\n", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, parseErr := cpp.ParseString(tt.input)
			if (parseErr == nil) != tt.ok {
				t.Fatalf("parser error = %v, want ok %v", parseErr, tt.ok)
			}
			checkErr := CheckDirectives(g, []byte(tt.input), "")
			if (checkErr == nil) != tt.ok {
				t.Errorf("CheckDirectives() = %v, want ok %v", checkErr, tt.ok)
			}
		})
	}
}

func TestSyntaxErrorMessage(t *testing.T) {
	g, err := Load()
	if err != nil {
		t.Fatal(err)
	}

	err = CheckDirectives(g, []byte("#define A B C\n"), "x.h")
	want := `x.h:1:13: unexpected word "C", expected one of: lineComment, blockComment, newline`
	if err == nil || err.Error() != want {
		t.Errorf("error = %v\nwant %s", err, want)
	}

	if err := CheckDirectives(g, []byte("#define A @\n"), ""); err == nil || !strings.Contains(err.Error(), `unexpected ERROR "@"`) {
		t.Errorf("error = %v, want an ERROR token", err)
	}
}
