//go:build !windows
// +build !windows

package mmap

import (
	"fmt"
	"io"
	"os"
	"syscall"
)

// File is a memory-mapped view of a disk image, used by blockdevice as a
// faster backend than per-sector pread for the repeated small reads a
// directory navigator issues against one static file.
type File struct {
	data []byte
	file *os.File
	size int
}

// Open memory-maps the whole of the file at path for reading.
func Open(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("mmap: open %q: %w", path, err)
	}

	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("mmap: stat %q: %w", path, err)
	}
	size := int(fi.Size())
	if size == 0 {
		f.Close()
		return nil, fmt.Errorf("mmap: %q is empty, cannot mmap", path)
	}

	data, err := syscall.Mmap(int(f.Fd()), 0, size, syscall.PROT_READ, syscall.MAP_SHARED)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("mmap: mmap %q (%d bytes): %w", path, size, err)
	}

	return &File{data: data, file: f, size: size}, nil
}

// ReadAt implements io.ReaderAt by copying out of the mapping directly,
// with no syscall per call.
func (m *File) ReadAt(p []byte, off int64) (int, error) {
	if off < 0 || off >= int64(m.size) {
		return 0, io.EOF
	}
	n := copy(p, m.data[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

// Size returns the mapped file's byte length.
func (m *File) Size() int64 {
	return int64(m.size)
}

// Close unmaps the region and closes the underlying file.
func (m *File) Close() error {
	var err error
	if m.data != nil {
		if uerr := syscall.Munmap(m.data); uerr != nil {
			err = fmt.Errorf("mmap: munmap: %w", uerr)
		}
		m.data = nil
	}
	if m.file != nil {
		if cerr := m.file.Close(); cerr != nil {
			if err != nil {
				return fmt.Errorf("%w (also failed to close file: %v)", err, cerr)
			}
			err = fmt.Errorf("mmap: close: %w", cerr)
		}
		m.file = nil
	}
	return err
}
