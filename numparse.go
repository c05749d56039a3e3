package main

import (
	"strings"

	"github.com/offforth/off/internal/runeio"
)

// parseNumber converts tok to a Cell using base, honoring the per-token
// prefix overrides: a leading '-' or '+' sets the sign; '$' or '0x'/'0X'
// forces hex; a leading '0' (with more digits following) forces octal.
// Digits are 0-9a-z case-insensitively. Returns ok=false (not an error) if
// tok contains no digits at all that are valid in the effective base, so
// the caller can distinguish "not a number" from "malformed number".
func parseNumber(tok string, base int) (Cell, bool, error) {
	if tok == "" {
		return 0, false, nil
	}

	neg := false
	s := tok
	switch s[0] {
	case '-':
		neg = true
		s = s[1:]
	case '+':
		s = s[1:]
	}
	if s == "" {
		return 0, false, nil
	}

	switch {
	case strings.HasPrefix(s, "$"):
		base = 16
		s = s[1:]
	case strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X"):
		base = 16
		s = s[2:]
	case len(s) > 1 && s[0] == '0':
		base = 8
		s = s[1:]
	}
	if s == "" {
		return 0, false, nil
	}
	hasDigit := false
	for i := 0; i < len(s); i++ {
		if d, ok := digitValue(s[i]); ok && d < base {
			hasDigit = true
			break
		}
	}
	if !hasDigit {
		return 0, false, nil
	}

	var v Cell
	for i := 0; i < len(s); i++ {
		d, ok := digitValue(s[i])
		if !ok || d >= base {
			return 0, true, badLiteral("", tok, rune(s[i]))
		}
		v = v*Cell(base) + Cell(d)
	}
	if neg {
		v = -v
	}
	return v, true, nil
}

// parseRuneLiteral recognizes a quoted-character token the number grammar
// itself rejects outright: 'x', caret-escapes like ^C, or named mnemonics
// like <ESC>. Grounded on the teacher's own `runeLiteral` fallback in its
// number parser (internals.go), generalized through runeio.UnquoteRune's
// broader control-mnemonic table instead of bare quote-parsing.
func parseRuneLiteral(tok string) (Cell, bool) {
	r, err := runeio.UnquoteRune(tok)
	if err != nil {
		return 0, false
	}
	return Cell(r), true
}

// digitValue maps a single byte to its digit value in the widest supported
// base (36), case-insensitively. ok is false for bytes that are never
// digits in any base.
func digitValue(b byte) (int, bool) {
	switch {
	case b >= '0' && b <= '9':
		return int(b - '0'), true
	case b >= 'a' && b <= 'z':
		return int(b-'a') + 10, true
	case b >= 'A' && b <= 'Z':
		return int(b-'A') + 10, true
	default:
		return 0, false
	}
}
