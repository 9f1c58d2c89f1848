package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ippcode/ippc21/internal/engine"
	"github.com/ippcode/ippc21/internal/value"
)

func TestRegistersFrameOfGFAlwaysPresent(t *testing.T) {
	r := engine.NewRegisters()

	f, err := r.FrameOf(value.GF)
	require.NoError(t, err)
	assert.NotNil(t, f)
}

func TestRegistersFrameOfTFAbsent(t *testing.T) {
	r := engine.NewRegisters()

	_, err := r.FrameOf(value.TF)
	assertExitCode(t, err, errcodeFrame)
}

func TestRegistersFrameOfLFEmpty(t *testing.T) {
	r := engine.NewRegisters()

	_, err := r.FrameOf(value.LF)
	assertExitCode(t, err, errcodeFrame)
}

func TestRegistersPushPopFrame(t *testing.T) {
	r := engine.NewRegisters()

	r.CreateFrame()
	require.NoError(t, r.PushFrame())

	f, err := r.FrameOf(value.LF)
	require.NoError(t, err)
	assert.NotNil(t, f)

	require.NoError(t, r.PopFrame())

	_, err = r.FrameOf(value.LF)
	assertExitCode(t, err, errcodeFrame)
}

func TestRegistersPushFrameWithoutTFFails(t *testing.T) {
	r := engine.NewRegisters()

	err := r.PushFrame()
	assertExitCode(t, err, errcodeFrame)
}

func TestRegistersPopFrameEmptyFails(t *testing.T) {
	r := engine.NewRegisters()

	err := r.PopFrame()
	assertExitCode(t, err, errcodeFrame)
}
