package cpp

import (
	"errors"
	"strings"
	"testing"
)

func TestPeekerPeekDoesNotConsume(t *testing.T) {
	p := PeekSlice([]int{1, 2, 3})

	for i := 0; i < 3; i++ {
		if got, ok := p.Peek(); !ok || got != 1 {
			t.Fatalf("Peek() = %d, %v, want 1, true", got, ok)
		}
	}
	if got, _ := p.Next(); got != 1 {
		t.Errorf("Next() = %d, want 1", got)
	}
	if got, _ := p.Next(); got != 2 {
		t.Errorf("Next() = %d, want 2", got)
	}
}

func TestPeekerPeekN(t *testing.T) {
	p := PeekSlice([]rune("abc"))

	tests := []struct {
		n    int
		want rune
		ok   bool
	}{
		{0, 'a', true},
		{2, 'c', true},
		{1, 'b', true},
		{3, 0, false},
		{-1, 0, false},
	}
	for _, tt := range tests {
		got, ok := p.PeekN(tt.n)
		if got != tt.want || ok != tt.ok {
			t.Errorf("PeekN(%d) = %q, %v, want %q, %v", tt.n, got, ok, tt.want, tt.ok)
		}
	}

	var rest []rune
	for {
		ch, ok := p.Next()
		if !ok {
			break
		}
		rest = append(rest, ch)
	}
	if string(rest) != "abc" {
		t.Errorf("consumed %q after peeking, want %q", string(rest), "abc")
	}
}

func TestPeekerPullsEachElementOnce(t *testing.T) {
	pulls := 0
	xs := []int{10, 20, 30, 40}
	p := NewPeeker(func() (int, bool) {
		if pulls >= len(xs) {
			return 0, false
		}
		pulls++
		return xs[pulls-1], true
	})

	p.PeekN(2)
	p.PeekN(2)
	p.Peek()
	if pulls != 3 {
		t.Errorf("pulls after PeekN(2) = %d, want 3", pulls)
	}
	if p.Buffered() != 3 {
		t.Errorf("Buffered() = %d, want 3", p.Buffered())
	}

	p.EatN(2)
	if got, _ := p.Next(); got != 30 {
		t.Errorf("Next() = %d, want 30", got)
	}
	if pulls != 3 {
		t.Errorf("pulls after replay = %d, want 3", pulls)
	}
}

func TestPeekerEatPastEnd(t *testing.T) {
	p := PeekSlice([]int{1})
	p.EatN(5)
	if _, ok := p.Peek(); ok {
		t.Error("Peek() after EatN past end returned a value")
	}
	p.Eat()
	if _, ok := p.Next(); ok {
		t.Error("Next() after end returned a value")
	}
}

func TestEatWhitespaceButLine(t *testing.T) {
	tests := []struct {
		name  string
		input string
		next  rune
		ok    bool
	}{
		{"spaces and tabs", " \t  x", 'x', true},
		{"stops at newline", "  \nx", '\n', true},
		{"stops at crlf", " \r\nx", '\r', true},
		{"lone cr is whitespace", " \r x", 'x', true},
		{"vertical tab and form feed", "\v\fx", 'x', true},
		{"no-break space", "\u00a0x", 'x', true},
		{"ideographic space", "\u3000\tx", 'x', true},
		{"unicode space before newline", "\u00a0\nx", '\n', true},
		{"no whitespace", "x ", 'x', true},
		{"only whitespace", " \t ", 0, false},
		{"empty", "", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := PeekRunes(strings.NewReader(tt.input))
			EatWhitespaceButLine(p)
			got, ok := p.Peek()
			if got != tt.next || ok != tt.ok {
				t.Errorf("next = %q, %v, want %q, %v", got, ok, tt.next, tt.ok)
			}
		})
	}
}

type failingReader struct {
	data []rune
	err  error
}

func (r *failingReader) ReadRune() (rune, int, error) {
	if len(r.data) == 0 {
		return 0, 0, r.err
	}
	ch := r.data[0]
	r.data = r.data[1:]
	return ch, 1, nil
}

func TestPeekRunesRecordsReadError(t *testing.T) {
	boom := errors.New("boom")
	p := PeekRunes(&failingReader{data: []rune("ab"), err: boom})

	p.EatN(2)
	if _, ok := p.Next(); ok {
		t.Fatal("Next() after failing read returned a value")
	}
	if !errors.Is(p.Err(), boom) {
		t.Errorf("Err() = %v, want %v", p.Err(), boom)
	}
}
