// Package allowlist restricts the files the helper may modify.
//
// The check is a plain textual prefix match on the path as given by the caller. Symlinks and
// ".." components are not resolved, so the allowlist is not a defense against a caller able to
// craft such paths: the privilege boundary is the interactive elevation prompt.
package allowlist

import (
	"slices"
	"strings"

	"github.com/xerolinux/xfprintd-gui/internal/consts"
)

// Allowlist is a fixed set of approved directory prefixes.
type Allowlist struct {
	prefixes []string
}

// New returns an Allowlist accepting paths starting with one of prefixes.
// Empty prefixes are ignored: they would allow everything.
func New(prefixes ...string) Allowlist {
	var a Allowlist
	for _, p := range prefixes {
		if p == "" {
			continue
		}
		a.prefixes = append(a.prefixes, p)
	}
	return a
}

// Default returns the allowlist of system PAM directories.
func Default() Allowlist {
	return New(consts.AllowedDirs...)
}

// Allowed reports whether path starts with one of the approved prefixes.
func (a Allowlist) Allowed(path string) bool {
	for _, p := range a.prefixes {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

// Prefixes returns a copy of the approved prefixes.
func (a Allowlist) Prefixes() []string {
	return slices.Clone(a.prefixes)
}
