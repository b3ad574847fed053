package fat12

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// BootSectorSize is the fixed size of a FAT12 boot sector.
const BootSectorSize = 512

// Boot sector field offsets, little-endian where multi-byte.
const (
	offBytesPerSector    = 11
	offSectorsPerCluster = 13
	offReservedSectors   = 14
	offFatCount          = 16
	offRootEntryCount    = 17
	offTotalSectors16    = 19
	offSectorsPerFat     = 22
	offMediaSignature    = 38
	offFatTypeLabel      = 54
	fatTypeLabelSize     = 8
)

// BootSectorInfo is the decoded and validated BIOS Parameter Block, plus the
// geometry values derived once from it.
type BootSectorInfo struct {
	BytesPerSector    uint16
	SectorsPerCluster uint8
	ReservedSectors   uint16
	FatCount          uint8
	RootEntryCount    uint16
	TotalSectors16    uint16
	SectorsPerFat     uint16
	MediaSignature    uint8
	FatTypeLabel      [fatTypeLabelSize]byte

	// Derived geometry, computed once in Parse.
	RootDirSector    uint32
	RootDirSectors   uint32
	DataRegionSector uint32
}

// ParseBootSector decodes and validates a 512-byte boot sector. It returns
// ErrBadBootSector (wrapped with the failing reason) if any invariant in the
// BPB does not hold.
func ParseBootSector(raw []byte) (*BootSectorInfo, error) {
	if len(raw) != BootSectorSize {
		return nil, fmt.Errorf("fat12: boot sector must be %d bytes, got %d: %w", BootSectorSize, len(raw), ErrBadBootSector)
	}

	info := &BootSectorInfo{
		BytesPerSector:    binary.LittleEndian.Uint16(raw[offBytesPerSector:]),
		SectorsPerCluster: raw[offSectorsPerCluster],
		ReservedSectors:   binary.LittleEndian.Uint16(raw[offReservedSectors:]),
		FatCount:          raw[offFatCount],
		RootEntryCount:    binary.LittleEndian.Uint16(raw[offRootEntryCount:]),
		TotalSectors16:    binary.LittleEndian.Uint16(raw[offTotalSectors16:]),
		SectorsPerFat:     binary.LittleEndian.Uint16(raw[offSectorsPerFat:]),
		MediaSignature:    raw[offMediaSignature],
	}
	copy(info.FatTypeLabel[:], raw[offFatTypeLabel:offFatTypeLabel+fatTypeLabelSize])

	if err := info.validate(); err != nil {
		return nil, err
	}

	info.RootDirSector = uint32(info.ReservedSectors) + uint32(info.FatCount)*uint32(info.SectorsPerFat)
	rootDirBytes := uint32(info.RootEntryCount) * 32
	info.RootDirSectors = (rootDirBytes + uint32(info.BytesPerSector) - 1) / uint32(info.BytesPerSector)
	info.DataRegionSector = info.RootDirSector + info.RootDirSectors

	return info, nil
}

// validate is the single intended conjunction of the source's ambiguously
// parenthesized predicate: every clause must hold for the boot sector to be
// accepted (see the design notes on the original mixed &&/|| expression).
func (b *BootSectorInfo) validate() error {
	switch {
	case b.BytesPerSector == 0 || b.BytesPerSector%512 != 0:
		return fmt.Errorf("fat12: bytes per sector %d is not a positive multiple of 512: %w", b.BytesPerSector, ErrBadBootSector)
	case b.ReservedSectors < 1:
		return fmt.Errorf("fat12: reserved sector count %d must be at least 1: %w", b.ReservedSectors, ErrBadBootSector)
	case b.FatCount < 2:
		return fmt.Errorf("fat12: fat count %d must be at least 2: %w", b.FatCount, ErrBadBootSector)
	case b.RootEntryCount%16 != 0:
		return fmt.Errorf("fat12: root entry count %d is not a multiple of 16: %w", b.RootEntryCount, ErrBadBootSector)
	}
	return nil
}

// ClusterToSector converts a logical cluster number (clusters are numbered
// from 2) to a physical sector index in the data region.
func (b *BootSectorInfo) ClusterToSector(cluster uint16) uint32 {
	return b.DataRegionSector + (uint32(cluster)-2)*uint32(b.SectorsPerCluster)
}

// FatRegionSector is the sector index of the first (and, in this read-only
// navigator, only consulted) FAT copy.
func (b *BootSectorInfo) FatRegionSector() uint32 {
	return uint32(b.ReservedSectors)
}

// FatTypeLabelString trims trailing spaces from the informational label.
func (b *BootSectorInfo) FatTypeLabelString() string {
	return string(bytes.TrimRight(b.FatTypeLabel[:], " "))
}

// MaxDataCluster returns the highest logical cluster number the data region
// can address, used by ChainWalker as the upper bound of a well-formed
// chain (clusters run from 2 up to and including this value).
func (b *BootSectorInfo) MaxDataCluster() uint16 {
	if b.TotalSectors16 <= uint16(b.DataRegionSector) || b.SectorsPerCluster == 0 {
		return 1 // no valid data cluster; any chain walk will be out of range
	}
	dataSectors := uint32(b.TotalSectors16) - b.DataRegionSector
	totalDataClusters := dataSectors / uint32(b.SectorsPerCluster)
	return uint16(totalDataClusters) + 1
}
