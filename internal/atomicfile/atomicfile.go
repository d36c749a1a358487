// Package atomicfile replaces file content without ever exposing a partially written file.
//
// The new content is written to a temporary file next to the destination, synced to disk, given
// the permissions of the file it replaces and finally renamed over it. Concurrent readers see
// either the old or the new content. Any failure before the rename leaves the destination as it
// was and removes the temporary file.
package atomicfile

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"syscall"
	"time"

	"github.com/google/uuid"
)

// DefaultMode is used for files which don't exist yet.
const DefaultMode fs.FileMode = 0644

// ErrInvalidPath is returned when the destination has no parent directory.
var ErrInvalidPath = errors.New("path has no parent directory")

type options struct {
	beforeRename func(tmp string) error
}

// Option customizes Write.
type Option func(*options)

// Write atomically replaces the content of path by data.
func Write(path string, data []byte, opts ...Option) (err error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	base := filepath.Base(path)
	if path == "" || base == string(filepath.Separator) || base == "." || base == ".." {
		return fmt.Errorf("%w: %q", ErrInvalidPath, path)
	}
	dir := filepath.Dir(path)

	mode := DefaultMode
	uid, gid := -1, -1
	fi, err := os.Stat(path)
	switch {
	case err == nil:
		mode = fi.Mode().Perm() | fi.Mode()&(fs.ModeSetuid|fs.ModeSetgid|fs.ModeSticky)
		if st, ok := fi.Sys().(*syscall.Stat_t); ok {
			uid, gid = int(st.Uid), int(st.Gid)
		}
	case errors.Is(err, fs.ErrNotExist):
	default:
		return err
	}

	tmp := filepath.Join(dir, tempName(base))
	// nolint:gosec // G302 the final permissions are applied below, before the rename.
	f, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0600)
	if err != nil {
		return err
	}
	defer func() {
		if err == nil {
			return
		}
		// f may already be closed.
		_ = f.Close()
		_ = os.Remove(tmp)
	}()

	if _, err := f.Write(data); err != nil {
		return err
	}
	if err := f.Sync(); err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	if err := keepOwner(tmp, uid, gid); err != nil {
		return err
	}
	if err := os.Chmod(tmp, mode); err != nil {
		return err
	}

	if o.beforeRename != nil {
		if err := o.beforeRename(tmp); err != nil {
			return err
		}
	}

	if err := os.Rename(tmp, path); err != nil {
		return err
	}

	syncDir(dir)

	return nil
}

// tempName returns a name unique across processes (pid and time) and within a process (random suffix).
// The leading dot hides it from tools iterating over PAM services.
func tempName(base string) string {
	return fmt.Sprintf(".%s.%d-%d-%s.tmp", base, os.Getpid(), time.Now().UnixNano(), uuid.NewString()[:8])
}

// keepOwner gives tmp the owner of the replaced file when they differ.
func keepOwner(tmp string, uid, gid int) error {
	if uid < 0 && gid < 0 {
		return nil
	}
	fi, err := os.Stat(tmp)
	if err != nil {
		return err
	}
	st, ok := fi.Sys().(*syscall.Stat_t)
	if !ok || (int(st.Uid) == uid && int(st.Gid) == gid) {
		return nil
	}
	return os.Chown(tmp, uid, gid)
}

// syncDir persists the rename in the directory entry. Failures are ignored: the content is
// already consistent, only its durability across a power loss is at stake.
func syncDir(dir string) {
	d, err := os.Open(dir)
	if err != nil {
		return
	}
	defer d.Close()
	_ = d.Sync()
}
