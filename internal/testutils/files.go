package testutils

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/termie/go-shutil"
)

// CopyTree copies the fixture directory src into dst, which must not exist yet.
func CopyTree(t *testing.T, src, dst string) {
	t.Helper()

	err := shutil.CopyTree(src, dst, &shutil.CopyTreeOptions{Symlinks: true, CopyFunction: shutil.Copy})
	require.NoError(t, err, "Setup: can't copy fixture %s to %s", src, dst)
}

// MakeReadOnly makes dest read only and restores permission on cleanup.
func MakeReadOnly(t *testing.T, dest string) {
	t.Helper()

	fi, err := os.Stat(dest)
	require.NoError(t, err, "Setup: Cannot stat %s", dest)
	mode := fi.Mode()

	err = os.Chmod(dest, 0400)
	if fi.IsDir() {
		// Keep the directory traversable, so that contained files can be read.
		err = os.Chmod(dest, 0500)
	}
	require.NoError(t, err, "Setup: Cannot make %s read only", dest)

	t.Cleanup(func() {
		err := os.Chmod(dest, mode)
		require.NoError(t, err, "Teardown: Cannot restore permission of %s", dest)
	})
}

// Entry is the state of one element of a directory tree.
type Entry struct {
	Mode    fs.FileMode
	Content string
}

// SnapshotTree returns the relative path, mode and content of every element under root.
// Comparing two snapshots proves that nothing changed on disk in between.
func SnapshotTree(t *testing.T, root string) map[string]Entry {
	t.Helper()

	snapshot := make(map[string]Entry)
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		fi, err := os.Lstat(path)
		if err != nil {
			return err
		}
		e := Entry{Mode: fi.Mode()}
		switch {
		case fi.Mode().IsRegular():
			b, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			e.Content = string(b)
		case fi.Mode()&fs.ModeSymlink != 0:
			dst, err := os.Readlink(path)
			if err != nil {
				return err
			}
			e.Content = dst
		}
		snapshot[rel] = e
		return nil
	})
	require.NoError(t, err, "Cannot snapshot %s", root)

	return snapshot
}

// WriteFile creates path with content and mode, creating parent directories.
func WriteFile(t *testing.T, path, content string, mode fs.FileMode) {
	t.Helper()

	err := os.MkdirAll(filepath.Dir(path), 0750)
	require.NoError(t, err, "Setup: can't create parent directory of %s", path)
	err = os.WriteFile(path, []byte(content), mode)
	require.NoError(t, err, "Setup: can't write %s", path)
	// Enforce mode regardless of the umask.
	err = os.Chmod(path, mode)
	require.NoError(t, err, "Setup: can't set mode of %s", path)
}
