//go:build linux
// +build linux

// Copyright (c) 2025 Stefano Scafiti
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

// Package fusefs projects a fat12.Filesystem as a read-only bazil.org/fuse
// tree: directories map to directory entries, files map to file entries,
// and every Lookup/ReadDirAll re-reads the live directory rather than
// caching it, consistent with the core's "listings don't outlive their
// call" rule.
package fusefs

import (
	"bytes"
	"context"
	"os"
	"sync"

	"bazil.org/fuse"
	fusepkg "bazil.org/fuse/fs"

	"github.com/sscafiti/fat12nav/internal/fat12"
)

// FS is the mounted filesystem. A single mutex serializes calls into the
// wrapped *fat12.Filesystem: the kernel can issue concurrent Lookup/Read
// requests, but the core assumes single-threaded, synchronous callers.
type FS struct {
	mu   sync.Mutex
	fsys *fat12.Filesystem
}

// New wraps fsys (already Init'd) for mounting.
func New(fsys *fat12.Filesystem) *FS {
	return &FS{fsys: fsys}
}

func (f *FS) Root() (fusepkg.Node, error) {
	return &Dir{fs: f, cluster: fat12.RootDirCluster}, nil
}

// Dir is a directory node addressed by its first logical cluster (the root
// directory uses the RootDirCluster sentinel).
type Dir struct {
	fs      *FS
	cluster uint16
}

func (d *Dir) Attr(ctx context.Context, a *fuse.Attr) error {
	a.Mode = os.ModeDir | 0555
	return nil
}

func (d *Dir) Lookup(ctx context.Context, name string) (fusepkg.Node, error) {
	d.fs.mu.Lock()
	defer d.fs.mu.Unlock()

	listing, err := d.fs.fsys.ReadDir(d.cluster)
	if err != nil {
		return nil, err
	}
	for _, e := range listing {
		if !equalFold(e.DisplayName(), name) {
			continue
		}
		if e.IsDirectory() {
			return &Dir{fs: d.fs, cluster: e.FirstCluster}, nil
		}
		return &File{fs: d.fs, entry: e}, nil
	}
	return nil, fuse.ENOENT
}

func (d *Dir) ReadDirAll(ctx context.Context) ([]fuse.Dirent, error) {
	d.fs.mu.Lock()
	defer d.fs.mu.Unlock()

	listing, err := d.fs.fsys.ReadDir(d.cluster)
	if err != nil {
		return nil, err
	}

	dirents := make([]fuse.Dirent, 0, len(listing))
	for i, e := range listing {
		typ := fuse.DT_File
		if e.IsDirectory() {
			typ = fuse.DT_Dir
		}
		dirents = append(dirents, fuse.Dirent{
			Inode: uint64(i + 1),
			Name:  e.DisplayName(),
			Type:  typ,
		})
	}
	return dirents, nil
}

// File is a regular-file node. Its cluster chain is materialized in full on
// ReadAll: POSIX read(2) is offset/length addressed and cannot be serviced
// by the core's cluster-at-a-time sink contract, so this is the one place
// in the repository that holds a whole file's bytes at once.
type File struct {
	fs    *FS
	entry fat12.DirectoryEntry
}

func (f *File) Attr(ctx context.Context, a *fuse.Attr) error {
	a.Mode = 0444
	a.Size = uint64(f.entry.Size)
	return nil
}

func (f *File) ReadAll(ctx context.Context) ([]byte, error) {
	f.fs.mu.Lock()
	defer f.fs.mu.Unlock()

	var buf bytes.Buffer
	err := f.fs.fsys.ReadFile(f.entry.FirstCluster, func(b []byte) error {
		_, err := buf.Write(b)
		return err
	})
	if err != nil {
		return nil, err
	}

	data := buf.Bytes()
	if uint32(len(data)) > f.entry.Size {
		data = data[:f.entry.Size]
	}
	return data, nil
}

func equalFold(a, b string) bool {
	return len(a) == len(b) && bytes.EqualFold([]byte(a), []byte(b))
}
