package dcc

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAddressBytes(t *testing.T) {
	assert.Equal(t, []byte{0x03}, AddressBytes(3, false), "short address")
	assert.Equal(t, []byte{0xC3, 0xE8}, AddressBytes(1000, true), "long address 1000")
	assert.Equal(t, []byte{0xC0, 0x03}, AddressBytes(3, true), "long address below 256")
}

func TestSpeedInstruction128(t *testing.T) {
	instruction, err := SpeedInstruction(3, false, Steps128, Forward, 50)
	assert.NoError(t, err)
	assert.Equal(t, []byte{0x03, 0x3F, 0xB4}, instruction, "128-step command carries the 0x3F prefix")
}

func TestSpeedInstruction28(t *testing.T) {
	instruction, err := SpeedInstruction(3, false, Steps28, Reverse, 1)
	assert.NoError(t, err)
	assert.Equal(t, []byte{0x03, 0x42}, instruction, "28-step command is a single combined byte")
}

func TestSpeedInstructionLongAddress(t *testing.T) {
	instruction, err := SpeedInstruction(1000, true, Steps128, Forward, 0)
	assert.NoError(t, err)
	assert.Equal(t, []byte{0xC3, 0xE8, 0x3F, 0x80}, instruction)
}

func TestSpeedInstruction14Unsupported(t *testing.T) {
	_, err := SpeedInstruction(3, false, Steps14, Forward, 5)
	assert.True(t, errors.Is(err, ErrUnsupportedSpeedMode), "14 steps must fail, not mis-encode")
}

func TestFunctionInstruction(t *testing.T) {
	g := NewFunctionGroups()
	g.Set(0, true)
	assert.Equal(t, []byte{0x03, 0x90}, FunctionInstruction(3, false, g[0]))
	assert.Equal(t, []byte{0xC3, 0xE8, 0xB0}, FunctionInstruction(1000, true, g[1]))
}
