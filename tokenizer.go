package main

import (
	"io"
	"strings"

	"github.com/offforth/off/internal/source"
)

// eofToken is returned by Tokenizer.Next once every input frame has
// drained. The outer loop handles it directly (step1/handleEof); it is not
// looked up in the dictionary.
const eofToken = "<eof>"

// Tokenizer extracts whitespace-delimited tokens from a stack of input
// sources, recognizing EOL to support `\`-comments, and prompting only
// when the active frame is the terminal.
type Tokenizer struct {
	in       *source.Stack
	isTerm   func(name string) bool
	prompt   func()
	inCmt    bool
}

// NewTokenizer wraps an input-source stack. isTerm reports whether a given
// frame name is the terminal (so Next knows when to prompt); prompt writes
// the prompt string.
func NewTokenizer(in *source.Stack, isTerm func(string) bool, prompt func()) *Tokenizer {
	return &Tokenizer{in: in, isTerm: isTerm, prompt: prompt}
}

// Next returns the next token, or eofToken once every input frame has
// drained. Whitespace and `\` comments are skipped inside Next, so it never
// returns an empty token.
func (t *Tokenizer) Next() (string, error) {
	if t.prompt != nil && t.isTerm != nil && t.in.Depth() == 0 && t.isTerm(t.in.Scan.Name) {
		t.prompt()
	}

	var sb strings.Builder
	for {
		r, _, err := t.in.ReadRune()
		if err != nil {
			if err == io.EOF {
				if sb.Len() > 0 {
					return sb.String(), nil
				}
				return eofToken, nil
			}
			return "", err
		}

		if t.inCmt {
			if r == '\n' {
				t.inCmt = false
			}
			continue
		}

		switch r {
		case '\\':
			if sb.Len() == 0 {
				t.inCmt = true
				continue
			}
			sb.WriteRune(r)
		case ' ', '\t', '\r', '\n':
			if sb.Len() > 0 {
				return sb.String(), nil
			}
			// pure whitespace before any token content: keep scanning
			continue
		default:
			sb.WriteRune(r)
		}
	}
}

// ReadUntil reads raw runes (ignoring all tokenizing/comment rules) up to
// and excluding the first occurrence of delim, used by `.(` to echo a
// literal run of text up to a closing paren.
func (t *Tokenizer) ReadUntil(delim rune) (string, error) {
	var sb strings.Builder
	for {
		r, _, err := t.in.ReadRune()
		if err != nil {
			if err == io.EOF {
				return sb.String(), nil
			}
			return "", err
		}
		if r == delim {
			return sb.String(), nil
		}
		sb.WriteRune(r)
	}
}
