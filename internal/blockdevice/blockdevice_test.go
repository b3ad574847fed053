package blockdevice_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sscafiti/fat12nav/internal/blockdevice"
)

func writeTestFile(t *testing.T, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "disk.img")
	require.NoError(t, os.WriteFile(path, data, 0644))
	return path
}

func TestBlockDevice_ReadSector(t *testing.T) {
	data := make([]byte, 1536) // 3 sectors of 512 bytes
	copy(data[512:], "SECTOR-ONE-CONTENT")
	path := writeTestFile(t, data)

	dev, err := blockdevice.Open(path)
	require.NoError(t, err)
	defer dev.Close()

	require.Equal(t, uint32(blockdevice.DefaultSectorSize), dev.SectorSize())

	out := make([]byte, 512)
	n, err := dev.ReadSector(1, out)
	require.NoError(t, err)
	require.Equal(t, 512, n)
	require.Contains(t, string(out), "SECTOR-ONE-CONTENT")
}

func TestBlockDevice_ReadSectors_Multiple(t *testing.T) {
	data := make([]byte, 1536)
	copy(data[0:512], "A")
	copy(data[512:1024], "B")
	copy(data[1024:1536], "C")
	path := writeTestFile(t, data)

	dev, err := blockdevice.Open(path)
	require.NoError(t, err)
	defer dev.Close()

	out := make([]byte, 1536)
	n, err := dev.ReadSectors(0, 3, out)
	require.NoError(t, err)
	require.Equal(t, 1536, n)
	require.Equal(t, byte('A'), out[0])
	require.Equal(t, byte('B'), out[512])
	require.Equal(t, byte('C'), out[1024])
}

func TestBlockDevice_SetSectorSize_RejectsInvalid(t *testing.T) {
	path := writeTestFile(t, make([]byte, 512))
	dev, err := blockdevice.Open(path)
	require.NoError(t, err)
	defer dev.Close()

	got := dev.SetSectorSize(0)
	require.Equal(t, uint32(blockdevice.DefaultSectorSize), got)

	got = dev.SetSectorSize(513) // not a multiple of 512
	require.Equal(t, uint32(blockdevice.DefaultSectorSize), got)

	got = dev.SetSectorSize(4096)
	require.Equal(t, uint32(4096), got)
}

func TestBlockDevice_ReadSectors_BufferTooSmall(t *testing.T) {
	path := writeTestFile(t, make([]byte, 512))
	dev, err := blockdevice.Open(path)
	require.NoError(t, err)
	defer dev.Close()

	_, err = dev.ReadSectors(0, 1, make([]byte, 10))
	require.Error(t, err)
}

func TestBlockDevice_Open_MissingFile(t *testing.T) {
	_, err := blockdevice.Open(filepath.Join(t.TempDir(), "nope.img"))
	require.Error(t, err)
}
