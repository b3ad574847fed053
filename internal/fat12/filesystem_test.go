package fat12_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sscafiti/fat12nav/internal/fat12"
)

// buildTestImage writes a minimal but complete FAT12 image to a temp file:
//
//	sector 0       boot sector
//	sector 1       FAT copy 1
//	sector 2       FAT copy 2
//	sector 3       root directory (HELLO.TXT, SUBDIR)
//	sector 4 (c2)  HELLO.TXT data
//	sector 5 (c3)  SUBDIR directory (INNER.TXT, EMPTY.TXT)
//	sector 6 (c4)  INNER.TXT data
//
// and returns its path.
func buildTestImage(t *testing.T) string {
	t.Helper()

	boot := buildBootSector(512, 1, 1, 2, 16, 7, 1)

	fatEntries := []uint16{0xFF0, 0xFFF, 0xFFF, 0xFFF, 0xFFF}
	fat := packFAT12(fatEntries, 512)

	root := make([]byte, 512)
	copy(root[0:32], direntryBytes(name83("HELLO", "TXT"), fat12.AttrArchive, 2, 5))
	copy(root[32:64], direntryBytes(name83("SUBDIR", ""), fat12.AttrDirectory, 3, 0))

	helloData := make([]byte, 512)
	copy(helloData, "HELLO")

	subdir := make([]byte, 512)
	copy(subdir[0:32], direntryBytes(name83(".", ""), fat12.AttrDirectory, 3, 0))
	copy(subdir[32:64], direntryBytes(name83("..", ""), fat12.AttrDirectory, 0, 0))
	copy(subdir[64:96], direntryBytes(name83("INNER", "TXT"), fat12.AttrArchive, 4, 3))
	copy(subdir[96:128], direntryBytes(name83("EMPTY", "TXT"), fat12.AttrArchive, 0, 0))

	innerData := make([]byte, 512)
	copy(innerData, "BYE")

	var image []byte
	image = append(image, boot...)
	image = append(image, fat...)
	image = append(image, fat...) // second FAT copy, unused by a read-only navigator
	image = append(image, root...)
	image = append(image, helloData...)
	image = append(image, subdir...)
	image = append(image, innerData...)

	path := filepath.Join(t.TempDir(), "test.img")
	require.NoError(t, os.WriteFile(path, image, 0644))
	return path
}

func TestFilesystem_InitAndReadRootDir(t *testing.T) {
	path := buildTestImage(t)

	fsys := fat12.New(nil)
	require.NoError(t, fsys.Init(path))
	defer fsys.Deinit()

	require.True(t, fsys.Ready())

	listing, err := fsys.ReadDir(fat12.RootDirCluster)
	require.NoError(t, err)
	require.Len(t, listing, 2)

	require.Equal(t, "HELLO.TXT", listing[0].DisplayName())
	require.False(t, listing[0].IsDirectory())
	require.Equal(t, uint32(5), listing[0].Size)

	require.Equal(t, "SUBDIR", listing[1].DisplayName())
	require.True(t, listing[1].IsDirectory())
}

func TestFilesystem_ReadSubdirectory(t *testing.T) {
	path := buildTestImage(t)

	fsys := fat12.New(nil)
	require.NoError(t, fsys.Init(path))
	defer fsys.Deinit()

	root, err := fsys.ReadDir(fat12.RootDirCluster)
	require.NoError(t, err)

	var subdirCluster uint16
	for _, e := range root {
		if e.DisplayName() == "SUBDIR" {
			subdirCluster = e.FirstCluster
		}
	}
	require.NotZero(t, subdirCluster)

	listing, err := fsys.ReadDir(subdirCluster)
	require.NoError(t, err)

	names := make([]string, 0, len(listing))
	for _, e := range listing {
		names = append(names, e.DisplayName())
	}
	require.Equal(t, []string{".", "..", "INNER.TXT", "EMPTY.TXT"}, names)
}

func TestFilesystem_ReadFile(t *testing.T) {
	path := buildTestImage(t)

	fsys := fat12.New(nil)
	require.NoError(t, fsys.Init(path))
	defer fsys.Deinit()

	var buf []byte
	err := fsys.ReadFile(2, func(b []byte) error {
		buf = append(buf, b...)
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, "HELLO", string(buf[:5]))
}

func TestFilesystem_ReadFile_EmptyFile(t *testing.T) {
	path := buildTestImage(t)

	fsys := fat12.New(nil)
	require.NoError(t, fsys.Init(path))
	defer fsys.Deinit()

	called := false
	err := fsys.ReadFile(0, func(b []byte) error {
		called = true
		return nil
	})
	require.NoError(t, err)
	require.False(t, called)
}

func TestFilesystem_NotReadyBeforeInit(t *testing.T) {
	fsys := fat12.New(nil)
	_, err := fsys.ReadDir(fat12.RootDirCluster)
	require.ErrorIs(t, err, fat12.ErrNotReady)
}

func TestFilesystem_DeinitIsIdempotent(t *testing.T) {
	path := buildTestImage(t)

	fsys := fat12.New(nil)
	require.NoError(t, fsys.Init(path))
	require.NoError(t, fsys.Deinit())
	require.NoError(t, fsys.Deinit())
	require.False(t, fsys.Ready())
}

func TestFilesystem_InitRejectsBadBootSector(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.img")
	require.NoError(t, os.WriteFile(path, make([]byte, 512), 0644))

	fsys := fat12.New(nil)
	err := fsys.Init(path)
	require.ErrorIs(t, err, fat12.ErrBadBootSector)
}

func TestFilesystem_InitRejectsMissingImage(t *testing.T) {
	fsys := fat12.New(nil)
	err := fsys.Init(filepath.Join(t.TempDir(), "missing.img"))
	require.ErrorIs(t, err, fat12.ErrFailedToOpen)
}

func TestResolvePath(t *testing.T) {
	path := buildTestImage(t)

	fsys := fat12.New(nil)
	require.NoError(t, fsys.Init(path))
	defer fsys.Deinit()

	entry, err := fat12.ResolvePath(fsys, "/SUBDIR/INNER.TXT")
	require.NoError(t, err)
	require.Equal(t, "INNER.TXT", entry.DisplayName())
	require.Equal(t, uint32(3), entry.Size)

	_, err = fat12.ResolvePath(fsys, "/SUBDIR/MISSING.TXT")
	require.ErrorIs(t, err, fat12.ErrNotFound)

	_, err = fat12.ResolvePath(fsys, "/HELLO.TXT/NOPE")
	require.ErrorIs(t, err, fat12.ErrNotFound)
}
