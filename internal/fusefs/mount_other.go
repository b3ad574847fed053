//go:build !linux
// +build !linux

package fusefs

import (
	"fmt"

	"github.com/sscafiti/fat12nav/internal/fat12"
)

// Mount is unavailable outside Linux: bazil.org/fuse only backs the kernel
// FUSE protocol found there.
func Mount(mountpoint string, fsys *fat12.Filesystem) error {
	return fmt.Errorf("FUSE mount is only supported on Linux")
}
