package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseNumber_Decimal(t *testing.T) {
	v, ok, err := parseNumber("123", 10)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, Cell(123), v)
}

func TestParseNumber_Signs(t *testing.T) {
	v, ok, err := parseNumber("-42", 10)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, Cell(-42), v)

	v, ok, err = parseNumber("+42", 10)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, Cell(42), v)
}

func TestParseNumber_DollarHexPrefix(t *testing.T) {
	v, ok, err := parseNumber("$ff", 10)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, Cell(255), v)
}

func TestParseNumber_0xHexPrefix(t *testing.T) {
	for _, tok := range []string{"0xFF", "0Xff"} {
		v, ok, err := parseNumber(tok, 10)
		require.NoError(t, err, tok)
		require.True(t, ok, tok)
		require.Equal(t, Cell(255), v, tok)
	}
}

func TestParseNumber_LeadingZeroOctal(t *testing.T) {
	v, ok, err := parseNumber("017", 10)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, Cell(15), v)
}

func TestParseNumber_NegativeHexPrefix(t *testing.T) {
	v, ok, err := parseNumber("-$ff", 10)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, Cell(-255), v)
}

func TestParseNumber_CaseInsensitiveDigits(t *testing.T) {
	lower, _, _ := parseNumber("ff", 16)
	upper, _, _ := parseNumber("FF", 16)
	require.Equal(t, lower, upper)
	require.Equal(t, Cell(255), lower)
}

func TestParseNumber_BadLiteralReportsOffendingChar(t *testing.T) {
	_, ok, err := parseNumber("12g", 10)
	require.True(t, ok, "a token with digits is recognized as an attempted number even if malformed")
	require.Equal(t, BadLiteralCode, codeOf(err))
	fe, isFE := err.(forthError)
	require.True(t, isFE)
	require.Contains(t, fe.detail, "'g'")
}

func TestParseNumber_NotANumber(t *testing.T) {
	_, ok, err := parseNumber("foo", 10)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestParseNumber_EmptyToken(t *testing.T) {
	_, ok, err := parseNumber("", 10)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestParseNumber_BareSignIsNotANumber(t *testing.T) {
	_, ok, err := parseNumber("-", 10)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestFormatCell_NegativeAndZero(t *testing.T) {
	require.Equal(t, "0", formatCell(0, 10))
	require.Equal(t, "-5", formatCell(-5, 10))
	require.Equal(t, "ff", formatCell(255, 16))
}
