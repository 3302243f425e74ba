package sgf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSimple(t *testing.T) {
	coll, err := Parse("(;GM[1])")
	require.NoError(t, err)
	require.Len(t, coll.GameTrees, 1)

	root := coll.GameTrees[0]
	assert.Empty(t, root.Children)
	require.Len(t, root.Sequence.Nodes, 1)
	require.Len(t, root.Sequence.Nodes[0].Properties, 1)
	assert.Equal(t, Property{Ident: "GM", Values: []string{"1"}}, root.Sequence.Nodes[0].Properties[0])
}

func TestParseMultiValueProperty(t *testing.T) {
	coll, err := Parse("(;GM[1]AW[ab][bc])")
	require.NoError(t, err)

	props := coll.GameTrees[0].Sequence.Nodes[0].Properties
	require.Len(t, props, 2)
	assert.Equal(t, Property{Ident: "AW", Values: []string{"ab", "bc"}}, props[1])
}

func TestParseTwoNodes(t *testing.T) {
	coll, err := Parse("(;GM[1];B[cc])")
	require.NoError(t, err)
	assert.Len(t, coll.GameTrees[0].Sequence.Nodes, 2)
}

func TestParseEscapedValue(t *testing.T) {
	coll, err := Parse(`(;ZZ[aoeu [1k\]])`)
	require.NoError(t, err)

	props := coll.GameTrees[0].Sequence.Nodes[0].Properties
	require.Len(t, props, 1)
	require.Len(t, props[0].Values, 1)
	// the literal '[' and the escaped ']' survive inside the value
	assert.Equal(t, `aoeu [1k\]`, props[0].Values[0])
}

func TestParseNestedVariations(t *testing.T) {
	coll, err := Parse("(;GM[1](;B[aa];W[ab])(;B[ab];W[ac]))")
	require.NoError(t, err)
	require.Len(t, coll.GameTrees, 1)

	root := coll.GameTrees[0]
	require.Len(t, root.Children, 2)
	for _, child := range root.Children {
		assert.Len(t, child.Sequence.Nodes, 2)
		assert.Empty(t, child.Children)
	}
}

func TestParseRealGameRecords(t *testing.T) {
	for _, text := range realRecords {
		coll, err := Parse(text)
		require.NoError(t, err)
		require.NotEmpty(t, coll.GameTrees)
	}
}

func TestParseEmptyValue(t *testing.T) {
	coll, err := Parse("(;B[])")
	require.NoError(t, err)

	props := coll.GameTrees[0].Sequence.Nodes[0].Properties
	require.Len(t, props, 1)
	// "[]" still counts toward the at-least-one-value requirement
	assert.Equal(t, []string{""}, props[0].Values)
}

func TestParseLeadingGarbage(t *testing.T) {
	coll, err := Parse("Copyright 2024, some server\n(;GM[1])")
	require.NoError(t, err)
	require.Len(t, coll.GameTrees, 1)
	assert.Equal(t, "(;GM[1])", coll.String())
}

func TestParseEmptyInput(t *testing.T) {
	_, err := Parse("")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEmptyFile)
}

func TestParseOnlyNewline(t *testing.T) {
	_, err := Parse("\n")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot have empty collection")
}

func TestParseTruncatedAfterNodeStart(t *testing.T) {
	_, err := Parse("(\n;")
	require.Error(t, err)
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
}

func TestParseUnterminatedValue(t *testing.T) {
	_, err := Parse("(;A[")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "eof while waiting for ']'")
}

func TestParseLowercaseIdent(t *testing.T) {
	_, err := Parse("(;gm[1])")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse_error at")
}

func TestParseValueWithoutIdent(t *testing.T) {
	_, err := Parse("(;[1])")
	require.Error(t, err)
}

func TestParsePropertyWithoutValue(t *testing.T) {
	_, err := Parse("(;C)")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot have empty property list")
}

func TestParseMissingSemicolonInVariation(t *testing.T) {
	_, err := Parse("(;GM[1](;B[aa]W[ab])(;B[ab];W[ac]))")
	require.Error(t, err)
}

func TestParseGarbageOnly(t *testing.T) {
	_, err := Parse("I am a banana")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot have empty collection")
}

func TestParseErrorPosition(t *testing.T) {
	_, err := Parse("(;gm[1])")
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	// the lowercase identifier sits on row 1 right after "(;"
	assert.Equal(t, 1, perr.Pos.Row)
}

func TestParseWrapsScanError(t *testing.T) {
	_, err := Parse("(;GM[99999999999999999999999])")
	require.Error(t, err)

	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	var serr *ScanError
	assert.ErrorAs(t, err, &serr)
	assert.Contains(t, err.Error(), "scan_error at")
}

func TestParseMultipleGameTrees(t *testing.T) {
	coll, err := Parse("(;GM[1])(;GM[1];B[aa])")
	require.NoError(t, err)
	require.Len(t, coll.GameTrees, 2)
	assert.Len(t, coll.GameTrees[1].Sequence.Nodes, 2)
}

func TestParseValueKeepsInnerWhitespace(t *testing.T) {
	coll, err := Parse("(;C[line one\nline two,  tab\there])")
	require.NoError(t, err)

	// a whitespace run inside a value renders as a single space, a newline
	// run as a single newline; everything else is verbatim
	props := coll.GameTrees[0].Sequence.Nodes[0].Properties
	assert.Equal(t, "line one\nline two, tab here", props[0].Values[0])
}
