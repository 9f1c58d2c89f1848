package loader_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ippcode/ippc21/internal/errcode"
	"github.com/ippcode/ippc21/internal/ir"
	"github.com/ippcode/ippc21/internal/loader"
)

const helloWorld = `<?xml version="1.0" encoding="UTF-8"?>
<program language="IPPcode21">
	<instruction order="1" opcode="DEFVAR">
		<arg1 type="var">GF@x</arg1>
	</instruction>
	<instruction order="2" opcode="MOVE">
		<arg2 type="string">hello</arg2>
		<arg1 type="var">GF@x</arg1>
	</instruction>
	<instruction order="3" opcode="WRITE">
		<arg1 type="var">GF@x</arg1>
	</instruction>
</program>`

func TestLoadHappyPath(t *testing.T) {
	prog, err := loader.Load(strings.NewReader(helloWorld))
	require.NoError(t, err)
	require.Equal(t, 3, prog.Len())

	assert.Equal(t, ir.DEFVAR, prog.At(0).Opcode)
	assert.Equal(t, ir.MOVE, prog.At(1).Opcode)

	move := prog.At(1)
	require.Len(t, move.Operands, 2)
	assert.True(t, move.Operands[0].IsVar())
	assert.Equal(t, "hello", move.Operands[1].Literal.String())
}

func TestLoadRejectsWrongLanguage(t *testing.T) {
	src := `<program language="other"></program>`

	_, err := loader.Load(strings.NewReader(src))
	require.Error(t, err)

	var coded *errcode.Error
	require.ErrorAs(t, err, &coded)
	assert.Equal(t, errcode.InvalidStruct, coded.Code)
}

func TestLoadRejectsMalformedXML(t *testing.T) {
	_, err := loader.Load(strings.NewReader("<program"))
	require.Error(t, err)

	var coded *errcode.Error
	require.ErrorAs(t, err, &coded)
	assert.Equal(t, errcode.InvalidFormat, coded.Code)
}

func TestLoadRejectsUnknownOpcode(t *testing.T) {
	src := `<program language="IPPcode21">
		<instruction order="1" opcode="FROBNICATE"></instruction>
	</program>`

	_, err := loader.Load(strings.NewReader(src))
	require.Error(t, err)

	var coded *errcode.Error
	require.ErrorAs(t, err, &coded)
	assert.Equal(t, errcode.InvalidStruct, coded.Code)
}

func TestLoadRejectsDuplicateOrder(t *testing.T) {
	src := `<program language="IPPcode21">
		<instruction order="1" opcode="CREATEFRAME"></instruction>
		<instruction order="1" opcode="PUSHFRAME"></instruction>
	</program>`

	_, err := loader.Load(strings.NewReader(src))
	require.Error(t, err)

	var coded *errcode.Error
	require.ErrorAs(t, err, &coded)
	assert.Equal(t, errcode.InvalidStruct, coded.Code)
}

func TestLoadRejectsWrongArgCount(t *testing.T) {
	src := `<program language="IPPcode21">
		<instruction order="1" opcode="ADD">
			<arg1 type="var">GF@r</arg1>
			<arg2 type="int">1</arg2>
		</instruction>
	</program>`

	_, err := loader.Load(strings.NewReader(src))
	require.Error(t, err)
}

func TestLoadNormalizesLiteralToSymb(t *testing.T) {
	src := `<program language="IPPcode21">
		<instruction order="1" opcode="PUSHS">
			<arg1 type="bool">true</arg1>
		</instruction>
	</program>`

	prog, err := loader.Load(strings.NewReader(src))
	require.NoError(t, err)
	assert.Equal(t, ir.PUSHS, prog.At(0).Opcode)
}
