package fat12

import (
	"fmt"

	"github.com/sscafiti/fat12nav/internal/blockdevice"
	"github.com/sscafiti/fat12nav/internal/logger"
)

// Filesystem is the lifetime owner of a BlockDevice, a parsed BootSectorInfo,
// and a loaded FatTable. It is the entry point interactive shells and other
// front ends call into; every operation runs on the calling goroutine to
// completion: single-threaded, synchronous, no cancellation.
type Filesystem struct {
	dev  *blockdevice.BlockDevice
	boot *BootSectorInfo
	fat  *FatTable
	dir  *DirectoryReader

	ready     bool
	log       *logger.Logger
	blockSize uint32
}

// New returns an uninitialized Filesystem bound to a logger; call Init to
// reach the Ready state.
func New(log *logger.Logger) *Filesystem {
	if log == nil {
		log = logger.New(nopWriter{}, logger.ErrorLevel)
	}
	return &Filesystem{log: log}
}

// SetBlockSizeHint overrides the sector size BlockDevice assumes before the
// boot sector is read. It only matters for probing non-standard images;
// call it before Init. A hint of 0 restores the default (512).
func (f *Filesystem) SetBlockSizeHint(n uint32) {
	f.blockSize = n
}

// Init opens the image at path, reads sector 0, parses and validates the
// boot sector, finalizes the device's sector size, and loads the FAT table.
// On any failure it leaves the Filesystem Uninitialized and returns the
// cause: ErrFailedToOpen or ErrBadBootSector (wrapped), or, when the FAT
// table cannot be read in full, ErrShortRead or the wrapped read error.
func (f *Filesystem) Init(path string) error {
	f.log.Debugf("opening %s", path)

	dev, err := blockdevice.Open(path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrFailedToOpen, err)
	}
	if f.blockSize != 0 {
		dev.SetSectorSize(f.blockSize)
	}

	raw := make([]byte, dev.SectorSize())
	n, err := dev.ReadSector(0, raw)
	if err != nil || n < BootSectorSize {
		dev.Close()
		return fmt.Errorf("%w: could not read boot sector", ErrFailedToOpen)
	}

	boot, err := ParseBootSector(raw[:BootSectorSize])
	if err != nil {
		dev.Close()
		return err
	}
	f.log.Debugf("geometry: root dir at sector %d (%d sectors), data region at sector %d",
		boot.RootDirSector, boot.RootDirSectors, boot.DataRegionSector)

	dev.SetSectorSize(uint32(boot.BytesPerSector))

	fat, err := LoadFatTable(dev, boot.FatRegionSector(), boot.SectorsPerFat)
	if err != nil {
		dev.Close()
		return err
	}

	f.dev = dev
	f.boot = boot
	f.fat = fat
	f.dir = NewDirectoryReader(dev, boot, fat)
	f.ready = true
	return nil
}

// ReadDir lists the root directory (cluster RootDirCluster) or a
// subdirectory's contents. Valid only once Init has succeeded.
func (f *Filesystem) ReadDir(cluster uint16) ([]DirectoryEntry, error) {
	if !f.ready {
		return nil, ErrNotReady
	}
	return f.dir.ReadDir(cluster)
}

// ReadFile streams a file's cluster chain to sink, one cluster at a time.
// Valid only once Init has succeeded.
func (f *Filesystem) ReadFile(cluster uint16, sink Sink) error {
	if !f.ready {
		return ErrNotReady
	}
	return f.dir.ReadFile(cluster, sink)
}

// BootInfo exposes the parsed boot sector for callers that need geometry
// (e.g. SectorsPerCluster to size a per-cluster buffer). It is nil until
// Init has succeeded.
func (f *Filesystem) BootInfo() *BootSectorInfo {
	return f.boot
}

// ClearListing documents the transient-ownership boundary: a
// DirectoryListing returned by ReadDir must be dropped by the caller before
// the next ReadDir call. Go's GC reclaims the backing array once the caller
// drops its reference; this call exists for API symmetry with the source
// design and as a place future callers can hook an explicit release if that
// ever stops being true.
func (f *Filesystem) ClearListing() {}

// Deinit releases the FAT table and closes the device, returning the
// Filesystem to Uninitialized. Idempotent.
func (f *Filesystem) Deinit() error {
	if !f.ready {
		return nil
	}
	f.ready = false
	f.fat = nil
	f.dir = nil
	dev := f.dev
	f.dev = nil
	return dev.Close()
}

// Ready reports whether Init has succeeded and Deinit has not since run.
func (f *Filesystem) Ready() bool {
	return f.ready
}

type nopWriter struct{}

func (nopWriter) Write(p []byte) (int, error) { return len(p), nil }
