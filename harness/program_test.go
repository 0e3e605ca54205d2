package harness

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHex(t *testing.T) {
	assert := assert.New(t)

	text := `
# bring-up program
0ab00293   # addi x5, x0, 171
0x0CD00313
0x0ef0_0393

0000006f
`
	program, err := ParseHex(strings.NewReader(text))
	assert.NoError(err)
	assert.Equal([]uint32{0x0ab00293, 0x0cd00313, 0x0ef00393, 0x0000006f}, program)

	_, err = ParseHex(strings.NewReader("0x1\nxyzzy\n"))
	var line *ErrProgramLine
	require.ErrorAs(t, err, &line)
	assert.Equal(2, line.Line)
	assert.Equal("xyzzy", line.Text)

	_, err = ParseHex(strings.NewReader("100000000\n"))
	assert.Error(err)
}

func TestParseBinary(t *testing.T) {
	assert := assert.New(t)

	var buf bytes.Buffer
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, VERIFY_PROGRAM))

	program, err := ParseBinary(&buf)
	assert.NoError(err)
	assert.Equal(VERIFY_PROGRAM, program)

	_, err = ParseBinary(bytes.NewReader([]byte{1, 2, 3}))
	assert.ErrorIs(err, ErrProgramLength(3))
}

func TestReadProgram(t *testing.T) {
	assert := assert.New(t)
	dir := t.TempDir()

	bin := filepath.Join(dir, "verify.bin")
	require.NoError(t, os.WriteFile(bin, []byte{0x93, 0x02, 0xb0, 0x0a}, 0o644))
	hex := filepath.Join(dir, "verify.hex")
	require.NoError(t, os.WriteFile(hex, []byte("0ab00293\n"), 0o644))

	for _, path := range []string{bin, hex} {
		program, err := ReadProgram(path)
		assert.NoError(err, path)
		assert.Equal([]uint32{0x0ab00293}, program, path)
	}

	_, err := ReadProgram(filepath.Join(dir, "missing.hex"))
	assert.Error(err)
}
