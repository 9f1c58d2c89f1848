package lex_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ippcode/ippc21/internal/lex"
)

func TestVariable(t *testing.T) {
	assert.True(t, lex.Variable("GF@x"))
	assert.True(t, lex.Variable("LF@my-var_1"))
	assert.True(t, lex.Variable("TF@a&b%c*d!e?f"))
	assert.False(t, lex.Variable("XF@x"))
	assert.False(t, lex.Variable("GF@1x"))
	assert.False(t, lex.Variable("GF@"))

	frame, name := lex.SplitVariable("LF@count")
	assert.Equal(t, "LF", frame)
	assert.Equal(t, "count", name)
}

func TestLiteralPredicates(t *testing.T) {
	assert.True(t, lex.Int("123"))
	assert.True(t, lex.Int("-123"))
	assert.False(t, lex.Int("1.5"))
	assert.False(t, lex.Int(""))

	assert.True(t, lex.Bool("true"))
	assert.True(t, lex.Bool("false"))
	assert.False(t, lex.Bool("True"))

	assert.True(t, lex.Nil("nil"))
	assert.False(t, lex.Nil(""))

	assert.True(t, lex.Type("int"))
	assert.True(t, lex.Type("string"))
	assert.True(t, lex.Type("bool"))
	assert.False(t, lex.Type("label"))
}

func TestStringPredicate(t *testing.T) {
	assert.True(t, lex.String(""))
	assert.True(t, lex.String("hello"))
	assert.True(t, lex.String(`hello\032world`))
	assert.False(t, lex.String("has space"))
	assert.False(t, lex.String("has#hash"))
	assert.False(t, lex.String(`bad\5x`))
}

func TestDecodeString(t *testing.T) {
	out, err := lex.DecodeString(`hello\032world`)
	require.NoError(t, err)
	assert.Equal(t, "hello world", out)

	out, err = lex.DecodeString("plain")
	require.NoError(t, err)
	assert.Equal(t, "plain", out)

	_, err = lex.DecodeString(`bad\99`)
	require.Error(t, err)
}
