//go:build linux

package bus

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMmap_File(t *testing.T) {
	assert := assert.New(t)

	page := uint32(os.Getpagesize())
	path := filepath.Join(t.TempDir(), "mem")
	require.NoError(t, os.WriteFile(path, make([]byte, 4*page), 0o600))

	// The second region starts mid-page to exercise alignment slack.
	mm, err := OpenMmap(path,
		Region{Base: page, Size: 0x100},
		Region{Base: 2*page + 0x40, Size: 0x40},
	)
	require.NoError(t, err)

	mm.Write32(page+0x10, 0x12345678)
	assert.Equal(uint32(0x12345678), mm.Read32(page+0x10))

	mm.Write32(2*page+0x44, 0xcafef00d)
	assert.Equal(uint32(0xcafef00d), mm.Read32(2*page+0x44))

	// Outside every window.
	mm.Write32(0, 0xffffffff)
	assert.Equal(uint32(0), mm.Read32(0))

	require.NoError(t, mm.Close())

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(uint32(0x12345678), binary.LittleEndian.Uint32(raw[page+0x10:]))
	assert.Equal(uint32(0xcafef00d), binary.LittleEndian.Uint32(raw[2*page+0x44:]))
	assert.Equal(uint32(0), binary.LittleEndian.Uint32(raw[0:]))
}

func TestMmap_Errors(t *testing.T) {
	assert := assert.New(t)

	_, err := OpenMmap(filepath.Join(t.TempDir(), "missing"), Region{Size: 4})
	assert.Error(err)

	path := filepath.Join(t.TempDir(), "mem")
	require.NoError(t, os.WriteFile(path, make([]byte, 4096), 0o600))
	_, err = OpenMmap(path, Region{Base: 0, Size: 0})
	assert.ErrorIs(err, ErrRegionEmpty)
}
