package fat12_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sscafiti/fat12nav/internal/fat12"
)

// fakeSectorReader serves ReadSectors out of an in-memory byte slice,
// treating index 0 as the start of the slice (sector-size granularity).
type fakeSectorReader struct {
	data       []byte
	sectorSize uint32
}

func (f *fakeSectorReader) SectorSize() uint32 { return f.sectorSize }

func (f *fakeSectorReader) ReadSectors(index, count uint32, out []byte) (int, error) {
	off := int64(index) * int64(f.sectorSize)
	want := int(count) * int(f.sectorSize)
	n := copy(out, f.data[off:off+int64(want)])
	return n, nil
}

func TestLoadFatTable_ReadsEntries(t *testing.T) {
	entries := []uint16{0xFF0, 0xFFF, 0x003, 0xFF8, 0x000}
	fatBytes := packFAT12(entries, 512)

	dev := &fakeSectorReader{data: fatBytes, sectorSize: 512}
	table, err := fat12.LoadFatTable(dev, 0, 1)
	require.NoError(t, err)

	for i, want := range entries {
		got, err := table.ReadEntry(uint16(i))
		require.NoError(t, err)
		require.Equal(t, want, got, "cluster %d", i)
	}
}

func TestReadEntry_EvenOddPacking(t *testing.T) {
	// cluster 2 -> 0xABC, cluster 3 -> 0xDEF: adjacent odd/even pair
	// sharing a byte, the classic FAT12 nibble-swap case.
	entries := make([]uint16, 4)
	entries[2] = 0xABC
	entries[3] = 0xDEF
	fatBytes := packFAT12(entries, 512)

	dev := &fakeSectorReader{data: fatBytes, sectorSize: 512}
	table, err := fat12.LoadFatTable(dev, 0, 1)
	require.NoError(t, err)

	even, err := table.ReadEntry(2)
	require.NoError(t, err)
	require.Equal(t, uint16(0xABC), even)

	odd, err := table.ReadEntry(3)
	require.NoError(t, err)
	require.Equal(t, uint16(0xDEF), odd)
}

func TestReadEntry_OutOfRange(t *testing.T) {
	dev := &fakeSectorReader{data: make([]byte, 512), sectorSize: 512}
	table, err := fat12.LoadFatTable(dev, 0, 1)
	require.NoError(t, err)

	_, err = table.ReadEntry(65000)
	require.ErrorIs(t, err, fat12.ErrCorruptChain)
}
