package cm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRegister(t *testing.T) {
	table := []struct {
		name string
		reg  Register
	}{
		{"x0", 0},
		{"X5", 5},
		{"x31", 31},
		{"zero", 0},
		{"ra", 1},
		{"sp", 2},
		{"t0", 5},
		{"fp", 8},
		{"s0", 8},
		{"a0", 10},
		{"s11", 27},
		{"t6", 31},
		{"17", 17},
		{" a7 ", 17},
	}

	for _, entry := range table {
		t.Run(entry.name, func(t *testing.T) {
			reg, err := ParseRegister(entry.name)
			assert.NoError(t, err)
			assert.Equal(t, entry.reg, reg)
		})
	}
}

func TestParseRegister_Invalid(t *testing.T) {
	for _, name := range []string{"", "x32", "32", "x-1", "pc", "q0", "x"} {
		_, err := ParseRegister(name)
		assert.ErrorIs(t, err, ErrRegisterInvalid, name)
		assert.Equal(t, ErrRegisterName(name), err, name)
	}
}

func TestRegister_Names(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("x7", Register(7).String())
	assert.Equal("t2", Register(7).ABI())
	assert.Equal("", Register(40).ABI())
	assert.True(Register(31).Valid())
	assert.False(Register(32).Valid())
}
