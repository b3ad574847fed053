//go:build windows
// +build windows

package mmap

import "fmt"

// File is the Windows stand-in: this platform's raw-volume access goes
// through internal/fs's overlapped ReadFile path instead, so mmap is never
// the selected backend there (see blockdevice.Open).
type File struct{}

// Open always fails on Windows; blockdevice falls back to the fs.File backend.
func Open(path string) (*File, error) {
	return nil, fmt.Errorf("mmap: not supported on windows")
}

func (m *File) ReadAt(p []byte, off int64) (int, error) { return 0, fmt.Errorf("mmap: not supported on windows") }

func (m *File) Size() int64 { return 0 }

func (m *File) Close() error { return nil }
