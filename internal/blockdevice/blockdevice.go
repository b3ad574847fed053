// Package blockdevice translates logical sector reads against a disk image
// into physical byte-offset reads, and holds the sector size that a higher
// layer (the FAT12 boot-sector parser) discovers only after opening.
package blockdevice

import (
	"fmt"
	"io"

	"github.com/sscafiti/fat12nav/internal/disk"
	"github.com/sscafiti/fat12nav/internal/fs"
	"github.com/sscafiti/fat12nav/internal/mmap"
)

// readerAtCloser is the minimal seam a backend must satisfy: random-access
// reads plus a release step. Both internal/fs.File and internal/mmap.File
// already implement it.
type readerAtCloser interface {
	io.ReaderAt
	io.Closer
}

// BlockDevice reads whole sectors out of a backend by logical sector index.
// Its sector size is mutable until the caller finalizes it via
// SetSectorSize, after the boot sector has told them what it should be.
type BlockDevice struct {
	backend    readerAtCloser
	sectorSize uint32
}

// Open acquires a read handle on path. It prefers memory-mapping the file
// (internal/mmap), since a navigator issues many small repeated reads
// against one static image; it falls back to internal/fs's cross-platform
// raw-open path (used unconditionally on Windows, and whenever mmap fails
// for any other reason, e.g. a non-regular file). The initial sector size
// is 512, per spec.
func Open(path string) (*BlockDevice, error) {
	path = disk.NormalizeVolumePath(path)

	if m, err := mmap.Open(path); err == nil {
		return &BlockDevice{backend: m, sectorSize: DefaultSectorSize}, nil
	}

	f, err := fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("blockdevice: open %q: %w", path, err)
	}
	return &BlockDevice{backend: f, sectorSize: DefaultSectorSize}, nil
}

// DefaultSectorSize is the sector size assumed before the boot sector has
// been parsed.
const DefaultSectorSize = 512

// SetSectorSize finalizes the device's sector size. It accepts only n > 0
// that is a multiple of 512; any other value is rejected and the current
// size is returned unchanged.
func (d *BlockDevice) SetSectorSize(n uint32) uint32 {
	if n > 0 && n%DefaultSectorSize == 0 {
		d.sectorSize = n
	}
	return d.sectorSize
}

// SectorSize returns the device's current sector size.
func (d *BlockDevice) SectorSize() uint32 {
	return d.sectorSize
}

// ReadSector reads exactly one sector at the given logical index into out,
// which must be at least SectorSize() bytes. It returns the number of bytes
// actually read; a short read is reported via the count, not an error, to
// match the source HAL's contract; callers that need a hard error compare
// the count against the requested size, as the fat12 package does when it
// returns ErrShortRead.
func (d *BlockDevice) ReadSector(index uint32, out []byte) (int, error) {
	return d.ReadSectors(index, 1, out)
}

// ReadSectors reads count contiguous sectors starting at the logical index
// into out, which must be at least count*SectorSize() bytes.
func (d *BlockDevice) ReadSectors(index uint32, count uint32, out []byte) (int, error) {
	want := int(count) * int(d.sectorSize)
	if len(out) < want {
		return 0, fmt.Errorf("blockdevice: output buffer too small: need %d bytes, have %d", want, len(out))
	}

	off := int64(index) * int64(d.sectorSize)
	n, err := d.backend.ReadAt(out[:want], off)
	if err != nil && err != io.EOF {
		return n, fmt.Errorf("blockdevice: read sector %d (count %d): %w", index, count, err)
	}
	return n, nil
}

// Close releases the underlying handle.
func (d *BlockDevice) Close() error {
	return d.backend.Close()
}
