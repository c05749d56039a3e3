// Package source implements the interpreter's input-source stack: the
// terminal plus up to three nested include files, pushed and popped so that
// an included file's tokens are consumed to completion (or EOF) before
// control returns to whatever was reading before it.
package source

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/offforth/off/internal/runeio"
)

// MaxDepth is the maximum number of stacked input frames (the terminal plus
// up to three nested include files).
const MaxDepth = 4

// ErrStackOverflow is returned by Push when the stack already holds MaxDepth
// frames.
var ErrStackOverflow = errors.New("input source stack overflow")

// Location names a line within a named input stream.
type Location struct {
	Name string
	Line int
}

// Line combines a Location with the bytes scanned (or last scanned) on it.
type Line struct {
	Location
	bytes.Buffer
}

func (loc Location) String() string { return fmt.Sprintf("%v:%v", loc.Name, loc.Line) }
func (il Line) String() string      { return fmt.Sprintf("%v %q", il.Location, il.Buffer.String()) }

// Stack implements the nested input-source frames: always at least the
// terminal, up to MaxDepth-1 further frames pushed by `include`/`"`.
type Stack struct {
	rr     io.RuneReader
	cur    io.Reader // the active frame as pushed, closed once it drains
	frames []io.Reader

	Last Line
	Scan Line
}

// Depth reports the number of frames currently pushed, not counting the one
// actively being read from.
func (s *Stack) Depth() int { return len(s.frames) }

// Push stacks a new input source to be read to completion before returning
// to whatever is currently active. The terminal itself should be pushed
// first. Returns ErrStackOverflow once MaxDepth frames, counting the active
// one, are already held.
func (s *Stack) Push(r io.Reader) error {
	held := len(s.frames)
	if s.rr != nil {
		held++
	}
	if held >= MaxDepth {
		return ErrStackOverflow
	}
	// prepend: the most recently pushed source is read to exhaustion next,
	// then control returns to whatever was queued before it.
	s.frames = append(s.frames, nil)
	copy(s.frames[1:], s.frames)
	s.frames[0] = r
	return nil
}

// ReadRune reads one rune from the active input stream, tracking Scan/Last
// line state, and falling through to the next stacked frame on EOF.
func (s *Stack) ReadRune() (rune, int, error) {
	if s.rr == nil && !s.advance() {
		return 0, 0, io.EOF
	}

	r, n, err := s.rr.ReadRune()
	if err == io.EOF {
		if s.advance() {
			return s.ReadRune()
		}
		return 0, n, io.EOF
	}
	if err != nil {
		return 0, n, err
	}

	if r == '\n' {
		s.nextLine()
	} else {
		s.Scan.WriteRune(r)
	}
	return r, n, nil
}

func (s *Stack) nextLine() {
	s.Last.Reset()
	s.Last.Name = s.Scan.Name
	s.Last.Line = s.Scan.Line
	s.Last.Write(s.Scan.Bytes())
	s.Scan.Reset()
	s.Scan.Line++
}

// advance pops the exhausted frame, closing it, and starts reading from
// the next stacked one, if any.
func (s *Stack) advance() bool {
	s.nextLine()
	if s.rr != nil {
		if cl, ok := s.cur.(io.Closer); ok {
			cl.Close()
		}
		s.rr = nil
		s.cur = nil
	}
	if len(s.frames) > 0 {
		r := s.frames[0]
		s.frames = s.frames[1:]
		s.cur = r
		s.rr = runeio.NewReader(r)
		s.Scan.Name = nameOf(r)
		s.Scan.Line = 1
	}
	return s.rr != nil
}

func nameOf(obj interface{}) string {
	if nom, ok := obj.(interface{ Name() string }); ok {
		return nom.Name()
	}
	return fmt.Sprintf("<unnamed %T>", obj)
}
