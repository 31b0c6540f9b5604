package cpp

import (
	"strings"
	"testing"
)

func scanAll(t *testing.T, src string) ([]Segment, *Scanner) {
	t.Helper()
	s := NewScanner(strings.NewReader(src))
	var segs []Segment
	for seg, err := range s.All() {
		if err != nil {
			t.Fatalf("scan error: %v", err)
		}
		segs = append(segs, seg)
	}
	return segs, s
}

func segmentString(seg Segment) string {
	switch {
	case seg.Stmt != nil:
		switch s := seg.Stmt.(type) {
		case *Constant:
			return "define " + s.Name.Name
		case *Function:
			return "define " + s.Signature()
		case *Comment:
			return "comment " + s.Kind.String()
		}
		return "stmt"
	case seg.Token != nil:
		return seg.Token.String()
	}
	return "?"
}

func TestScanner(t *testing.T) {
	src := "#include <y.h>\n" +
		"int x = 1; // c\n" +
		"#define A 2\n" +
		"char *s = \"//\";\n" +
		"a #define B\n"

	segs, s := scanAll(t, src)
	var got []string
	for _, seg := range segs {
		got = append(got, segmentString(seg))
	}

	want := []string{
		"#", "include", "<", "y", ".", "h", ">", "new-line",
		"int", "x", "=", "1", ";", "comment Line",
		"define A",
		"char", "*", "s", "=", `"//"`, ";", "new-line",
		"a", "#", "define", "B", "new-line",
		"new-line",
	}
	if strings.Join(got, " | ") != strings.Join(want, " | ") {
		t.Errorf("segments:\n got %v\nwant %v", got, want)
	}

	if n := len(s.Ast().Nodes); n != 2 {
		t.Errorf("ast has %d nodes, want 2: %v", n, s.Ast())
	}
	if s.Ast().FindDefine("B") != nil {
		t.Error("#define after other tokens on the line was parsed")
	}
}

func TestScannerTrailingComment(t *testing.T) {
	segs, s := scanAll(t, "#define A 1 /* one */\n#define B\n")
	var got []string
	for _, seg := range segs {
		got = append(got, segmentString(seg))
	}
	want := []string{"define A", "comment Block", "define B", "new-line"}
	if strings.Join(got, " | ") != strings.Join(want, " | ") {
		t.Errorf("segments = %v, want %v", got, want)
	}
	if n := len(s.Ast().Defines()); n != 2 {
		t.Errorf("got %d defines, want 2", n)
	}
}

func TestScannerDefineAfterBlockComment(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"at line start", "/* c */ #define A\n", []string{"comment Block", "define A", "new-line"}},
		{"after code", "x /* c */ #define A\n", []string{"x", "comment Block", "#", "define", "A", "new-line", "new-line"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			segs, _ := scanAll(t, tt.input)
			var got []string
			for _, seg := range segs {
				got = append(got, segmentString(seg))
			}
			if strings.Join(got, " | ") != strings.Join(tt.want, " | ") {
				t.Errorf("segments = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestScannerStopsAtError(t *testing.T) {
	s := NewScanner(strings.NewReader("x;\n#define 1\ny;\n"))
	var n int
	var last error
	for _, err := range s.All() {
		n++
		last = err
	}
	if !IsKind(last, ErrExpectedIdentifier) {
		t.Fatalf("last error = %v, want expected identifier", last)
	}
	if n != 4 {
		t.Errorf("got %d segments, want 4", n)
	}
}
