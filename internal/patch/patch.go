// Package patch resolves the configuration lines to insert in a PAM file.
//
// Two sources are supported. By default, the builtin configuration of the known services is
// used. When a patches directory is configured, the content is instead read from a fragment
// file mirroring the target path under that directory:
//
//	/etc/pam.d/sudo -> <patches dir>/etc/pam.d/sudo.patch
package patch

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/xerolinux/xfprintd-gui/internal/errkind"
	"github.com/xerolinux/xfprintd-gui/internal/services"
)

// Extension is appended to the target path to build the fragment file name.
const Extension = ".patch"

// Resolver returns the patch content for a target path.
// The zero value resolves from the builtin service configurations.
type Resolver struct {
	patchesDir string
}

// Option customizes a Resolver.
type Option func(*Resolver)

// WithPatchesDir reads fragments from dir instead of the builtin configurations.
// An empty dir keeps the builtin configurations.
func WithPatchesDir(dir string) Option {
	return func(r *Resolver) {
		r.patchesDir = dir
	}
}

// NewResolver returns a Resolver configured by opts.
func NewResolver(opts ...Option) Resolver {
	var r Resolver
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// PatchesDir returns the fragments directory, empty when builtin configurations are used.
func (r Resolver) PatchesDir() string {
	return r.patchesDir
}

// Resolve returns the content to fence into path, without markers nor trailing whitespace.
func (r Resolver) Resolve(path string) (string, error) {
	if r.patchesDir == "" {
		s, ok := services.FromPath(path)
		if !ok {
			return "", errkind.New(errkind.UnknownTarget, path, nil)
		}
		return s.Patch(), nil
	}

	fragment, err := FragmentPath(r.patchesDir, path)
	if err != nil {
		return "", err
	}

	// #nosec G304: fragment is confined to the patches directory by FragmentPath.
	b, err := os.ReadFile(fragment)
	if errors.Is(err, fs.ErrNotExist) {
		return "", errkind.New(errkind.NotFound, fragment, nil)
	}
	if err != nil {
		return "", errkind.FromIO(fragment, err)
	}

	return strings.TrimRightFunc(string(b), unicode.IsSpace), nil
}

// FragmentPath returns the fragment file for target under patchesDir.
// The extension is appended, never substituted, so that two targets can't share a fragment.
func FragmentPath(patchesDir, target string) (string, error) {
	rel := strings.TrimPrefix(target, "/")
	if rel == "" || !filepath.IsLocal(rel) {
		return "", errkind.New(errkind.UnknownTarget, target, nil)
	}
	return filepath.Join(patchesDir, rel+Extension), nil
}
