package fat12

import "fmt"

// RootDirCluster is the sentinel logical cluster naming the fixed-location
// root directory, which lives outside the cluster-addressed data region.
const RootDirCluster = 0

// Sink receives one cluster's worth of bytes at a time from ReadFile. It
// must not retain buf past the call.
type Sink func(buf []byte) error

// DirectoryReader reads either the fixed root directory region or a
// subdirectory's cluster chain and parses the 32-byte entries it finds.
type DirectoryReader struct {
	dev  SectorReader
	boot *BootSectorInfo
	fat  *FatTable
}

// NewDirectoryReader builds a reader over an already-parsed boot sector and
// loaded FAT table.
func NewDirectoryReader(dev SectorReader, boot *BootSectorInfo, fat *FatTable) *DirectoryReader {
	return &DirectoryReader{dev: dev, boot: boot, fat: fat}
}

// ReadDir returns the filtered, on-disk-ordered listing of firstCluster:
// the root directory when firstCluster == RootDirCluster, otherwise a
// subdirectory's cluster chain.
func (r *DirectoryReader) ReadDir(firstCluster uint16) ([]DirectoryEntry, error) {
	buf, err := r.readRegion(firstCluster)
	if err != nil {
		return nil, err
	}
	return parseDirectoryEntries(buf), nil
}

// readRegion reads the raw bytes of a directory (root or subdirectory)
// without parsing, following the corrected design (a full cluster is read
// per chain node, not one sector per node as the source's subdirectory path
// does).
func (r *DirectoryReader) readRegion(firstCluster uint16) ([]byte, error) {
	if firstCluster == RootDirCluster {
		size := r.boot.RootDirSectors * uint32(r.boot.BytesPerSector)
		buf := make([]byte, size)
		n, err := r.dev.ReadSectors(r.boot.RootDirSector, r.boot.RootDirSectors, buf)
		if err != nil {
			return nil, fmt.Errorf("fat12: read root directory: %w", err)
		}
		if uint32(n) < size {
			return nil, fmt.Errorf("fat12: root directory: read %d of %d bytes: %w", n, size, ErrShortRead)
		}
		return buf, nil
	}

	chain, err := WalkChain(r.fat, firstCluster, r.boot.MaxDataCluster())
	if err != nil {
		return nil, err
	}

	clusterBytes := uint32(r.boot.SectorsPerCluster) * uint32(r.boot.BytesPerSector)
	buf := make([]byte, 0, clusterBytes*uint32(len(chain)))
	scratch := make([]byte, clusterBytes)

	for _, c := range chain {
		n, err := r.dev.ReadSectors(r.boot.ClusterToSector(c), uint32(r.boot.SectorsPerCluster), scratch)
		if err != nil {
			return nil, fmt.Errorf("fat12: read cluster %d: %w", c, err)
		}
		if uint32(n) < clusterBytes {
			return nil, fmt.Errorf("fat12: cluster %d: read %d of %d bytes: %w", c, n, clusterBytes, ErrShortRead)
		}
		buf = append(buf, scratch...)
	}
	return buf, nil
}

// ReadFile walks firstCluster's chain and invokes sink once per cluster,
// streaming the file without assembling it in memory. The sink is not told
// the entry's logical size; callers that need trailing-byte trimming pass
// the DirectoryEntry.Size separately.
func (r *DirectoryReader) ReadFile(firstCluster uint16, sink Sink) error {
	if firstCluster == 0 {
		// A zero-length file is commonly stored with FirstCluster == 0:
		// no data cluster was ever allocated, so there is nothing to walk.
		return nil
	}

	chain, err := WalkChain(r.fat, firstCluster, r.boot.MaxDataCluster())
	if err != nil {
		return err
	}

	clusterBytes := uint32(r.boot.SectorsPerCluster) * uint32(r.boot.BytesPerSector)
	buf := make([]byte, clusterBytes)

	for _, c := range chain {
		n, err := r.dev.ReadSectors(r.boot.ClusterToSector(c), uint32(r.boot.SectorsPerCluster), buf)
		if err != nil {
			return fmt.Errorf("fat12: read cluster %d: %w", c, err)
		}
		if uint32(n) < clusterBytes {
			return fmt.Errorf("fat12: cluster %d: read %d of %d bytes: %w", c, n, clusterBytes, ErrShortRead)
		}
		if err := sink(buf); err != nil {
			return err
		}
	}
	return nil
}
