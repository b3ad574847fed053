package fat12

import "fmt"

// FAT12 cluster-value sentinels.
const (
	clusterFree     = 0x000
	clusterReserved = 0x001
	clusterBad      = 0xFF7
	clusterEOCMin   = 0xFF8

	// firstDataCluster is the lowest valid logical cluster number; clusters
	// are numbered starting at 2, the two before it being reserved for the
	// media descriptor / EOC convention inherited from FAT's history.
	firstDataCluster = 2
)

// SectorReader is the minimal read seam FatTable and the directory reader
// need from a block device. blockdevice.BlockDevice satisfies it.
type SectorReader interface {
	ReadSectors(index uint32, count uint32, out []byte) (int, error)
	SectorSize() uint32
}

// FatTable holds one FAT copy's raw bytes, decoded on demand.
type FatTable struct {
	raw []byte
}

// LoadFatTable reads sectorsPerFat contiguous sectors starting at
// startSector (the first FAT's physical location) into an owned buffer.
func LoadFatTable(dev SectorReader, startSector uint32, sectorsPerFat uint16) (*FatTable, error) {
	size := int(sectorsPerFat) * int(dev.SectorSize())
	raw := make([]byte, size)

	n, err := dev.ReadSectors(startSector, uint32(sectorsPerFat), raw)
	if err != nil {
		return nil, fmt.Errorf("fat12: read FAT table: %w", err)
	}
	if n < size {
		return nil, fmt.Errorf("fat12: FAT table: read %d of %d bytes: %w", n, size, ErrShortRead)
	}
	return &FatTable{raw: raw}, nil
}

// ReadEntry decodes the 12-bit FAT entry at the given logical cluster index.
func (t *FatTable) ReadEntry(cluster uint16) (uint16, error) {
	off := int(cluster) * 3 / 2
	if off+1 >= len(t.raw) {
		return 0, fmt.Errorf("fat12: cluster %d is outside the FAT table: %w", cluster, ErrCorruptChain)
	}

	var entry uint16
	if cluster%2 == 0 {
		entry = uint16(t.raw[off]) | (uint16(t.raw[off+1]&0x0F) << 8)
	} else {
		entry = uint16(t.raw[off]>>4) | (uint16(t.raw[off+1]) << 4)
	}
	return entry & 0x0FFF, nil
}

// isEndOfChain reports whether a FAT entry value terminates a cluster chain.
func isEndOfChain(entry uint16) bool {
	return entry >= clusterEOCMin
}
