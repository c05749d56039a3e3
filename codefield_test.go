package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCodeField_StringCoversEveryKind(t *testing.T) {
	cases := map[CodeFieldKind]string{
		KindColon:        "(colon)",
		KindLiteral:      "(literal)",
		KindBranch:       "branch",
		KindQBranch:      "?branch",
		KindDoInit:       "(do)",
		KindDoLoop:       "(loop)",
		KindDoPLoop:      "(+loop)",
		KindPushPfa:      "pushPfa",
		KindPushPfaFetch: "pushPfaFetch",
		KindVariable:     "variable",
		KindConstant:     "constant",
		KindDoes:         "does>",
	}
	for kind, want := range cases {
		require.Equal(t, want, CodeField{Kind: kind}.String(), "kind=%v", kind)
	}
}

func TestCodeField_StringPrimitiveNamesTheTableEntry(t *testing.T) {
	require.NotEmpty(t, primitiveTable)
	cf := CodeField{Kind: KindPrimitive, Primitive: 0}
	require.Equal(t, "primitive:"+primitiveTable[0].name, cf.String())
}

func TestCodeField_StringPrimitiveOutOfRangeIsUnknown(t *testing.T) {
	cf := CodeField{Kind: KindPrimitive, Primitive: len(primitiveTable) + 10}
	require.Equal(t, "primitive:?", cf.String())
}

func TestCodeField_StringUnknownKindFallsBack(t *testing.T) {
	cf := CodeField{Kind: CodeFieldKind(9999)}
	require.Equal(t, "?", cf.String())
}
