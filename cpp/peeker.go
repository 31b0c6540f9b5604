package cpp

import (
	"errors"
	"io"
	"unicode"
)

// Peeker wraps a pull-style source and supports lookahead of any depth.
//
// Elements pulled from the source land in buf and are replayed from there,
// so every source element is pulled exactly once no matter how often it is
// peeked at.
type Peeker[T any] struct {
	next func() (T, bool)
	buf  []T
	pos  int
	done bool
}

func NewPeeker[T any](next func() (T, bool)) *Peeker[T] {
	return &Peeker[T]{next: next}
}

// PeekSlice returns a peeker over the elements of xs.
func PeekSlice[T any](xs []T) *Peeker[T] {
	i := 0
	return NewPeeker(func() (T, bool) {
		if i >= len(xs) {
			var zero T
			return zero, false
		}
		x := xs[i]
		i++
		return x, true
	})
}

// RunePeeker is a Peeker over the runes of an io.RuneReader. A read error
// other than io.EOF ends the sequence and is reported by Err.
type RunePeeker struct {
	*Peeker[rune]
	err error
}

func PeekRunes(r io.RuneReader) *RunePeeker {
	rp := &RunePeeker{}
	rp.Peeker = NewPeeker(func() (rune, bool) {
		ch, _, err := r.ReadRune()
		if err != nil {
			if !errors.Is(err, io.EOF) {
				rp.err = err
			}
			return 0, false
		}
		return ch, true
	})
	return rp
}

func (rp *RunePeeker) Err() error {
	return rp.err
}

// fill makes sure at least n elements are buffered past the cursor and
// reports whether it succeeded.
func (p *Peeker[T]) fill(n int) bool {
	for len(p.buf)-p.pos < n {
		if p.done {
			return false
		}
		x, ok := p.next()
		if !ok {
			p.done = true
			return false
		}
		p.buf = append(p.buf, x)
	}
	return true
}

func (p *Peeker[T]) Peek() (T, bool) {
	return p.PeekN(0)
}

// PeekN returns the element n positions past the next one without
// consuming anything. PeekN(0) is Peek.
func (p *Peeker[T]) PeekN(n int) (T, bool) {
	if n < 0 || !p.fill(n+1) {
		var zero T
		return zero, false
	}
	return p.buf[p.pos+n], true
}

func (p *Peeker[T]) Next() (T, bool) {
	x, ok := p.Peek()
	if !ok {
		return x, false
	}
	p.pos++
	if p.pos == len(p.buf) {
		p.buf = p.buf[:0]
		p.pos = 0
	}
	return x, true
}

func (p *Peeker[T]) Eat() {
	p.Next()
}

// EatN consumes up to n elements, stopping early at the end of the source.
func (p *Peeker[T]) EatN(n int) {
	for i := 0; i < n; i++ {
		if _, ok := p.Next(); !ok {
			return
		}
	}
}

// Buffered returns the number of elements pulled from the source but not
// consumed yet.
func (p *Peeker[T]) Buffered() int {
	return len(p.buf) - p.pos
}

// RuneLookahead is the subset of a rune peeker EatWhitespaceButLine needs.
type RuneLookahead interface {
	Peek() (rune, bool)
	PeekN(n int) (rune, bool)
	Eat()
}

// EatWhitespaceButLine consumes unicode.IsSpace runes up to, but not
// including, the next line terminator. "\r\n" is a terminator; a lone '\r'
// is whitespace.
func EatWhitespaceButLine(p RuneLookahead) {
	for {
		ch, ok := p.Peek()
		if !ok || ch == '\n' || !unicode.IsSpace(ch) {
			return
		}
		if ch == '\r' {
			if after, ok := p.PeekN(1); ok && after == '\n' {
				return
			}
		}
		p.Eat()
	}
}
