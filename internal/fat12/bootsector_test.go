package fat12_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sscafiti/fat12nav/internal/fat12"
)

func TestParseBootSector_Valid(t *testing.T) {
	raw := buildBootSector(512, 1, 1, 2, 16, 7, 1)

	info, err := fat12.ParseBootSector(raw)
	require.NoError(t, err)
	require.Equal(t, uint16(512), info.BytesPerSector)
	require.Equal(t, uint8(1), info.SectorsPerCluster)
	require.Equal(t, uint32(3), info.RootDirSector) // reserved(1) + fatCount(2)*sectorsPerFat(1)
	require.Equal(t, uint32(1), info.RootDirSectors) // 16*32 = 512 bytes = 1 sector
	require.Equal(t, uint32(4), info.DataRegionSector)
	require.Equal(t, "FAT12", info.FatTypeLabelString())
}

func TestParseBootSector_WrongSize(t *testing.T) {
	_, err := fat12.ParseBootSector(make([]byte, 100))
	require.ErrorIs(t, err, fat12.ErrBadBootSector)
}

func TestParseBootSector_RejectsBadBytesPerSector(t *testing.T) {
	raw := buildBootSector(500, 1, 1, 2, 16, 7, 1)
	_, err := fat12.ParseBootSector(raw)
	require.True(t, errors.Is(err, fat12.ErrBadBootSector))
}

func TestParseBootSector_RejectsZeroReservedSectors(t *testing.T) {
	raw := buildBootSector(512, 1, 0, 2, 16, 7, 1)
	_, err := fat12.ParseBootSector(raw)
	require.ErrorIs(t, err, fat12.ErrBadBootSector)
}

func TestParseBootSector_RejectsSingleFat(t *testing.T) {
	raw := buildBootSector(512, 1, 1, 1, 16, 7, 1)
	_, err := fat12.ParseBootSector(raw)
	require.ErrorIs(t, err, fat12.ErrBadBootSector)
}

func TestParseBootSector_RejectsRootEntryCountNotMultipleOf16(t *testing.T) {
	raw := buildBootSector(512, 1, 1, 2, 17, 7, 1)
	_, err := fat12.ParseBootSector(raw)
	require.ErrorIs(t, err, fat12.ErrBadBootSector)
}

func TestClusterToSector(t *testing.T) {
	raw := buildBootSector(512, 1, 1, 2, 16, 20, 1)
	info, err := fat12.ParseBootSector(raw)
	require.NoError(t, err)

	require.Equal(t, info.DataRegionSector, info.ClusterToSector(2))
	require.Equal(t, info.DataRegionSector+2, info.ClusterToSector(4))
}

func TestMaxDataCluster(t *testing.T) {
	raw := buildBootSector(512, 1, 1, 2, 16, 7, 1)
	info, err := fat12.ParseBootSector(raw)
	require.NoError(t, err)

	// dataSectors = 7 - 4 = 3, totalDataClusters = 3, max cluster = 4
	require.Equal(t, uint16(4), info.MaxDataCluster())
}
