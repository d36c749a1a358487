// Package pamconfig applies, removes and checks the fingerprint block of PAM service files.
//
// Every operation works on a single target and is idempotent: applying twice leaves one block,
// removing from a file without block leaves it untouched. Mutations go through an atomic write so
// that a failure never leaves a partially written PAM file behind.
package pamconfig

import (
	"context"
	"errors"
	"io/fs"
	"os"

	"github.com/xerolinux/xfprintd-gui/internal/allowlist"
	"github.com/xerolinux/xfprintd-gui/internal/atomicfile"
	"github.com/xerolinux/xfprintd-gui/internal/consts"
	"github.com/xerolinux/xfprintd-gui/internal/errkind"
	"github.com/xerolinux/xfprintd-gui/internal/log"
	"github.com/xerolinux/xfprintd-gui/internal/pamfile"
	"github.com/xerolinux/xfprintd-gui/internal/services"
)

// Resolver returns the patch content to insert in a given file.
type Resolver interface {
	Resolve(path string) (string, error)
}

// Manager runs the PAM operations on targets.
type Manager struct {
	resolver  Resolver
	allowlist allowlist.Allowlist
	targets   []services.Target
}

type options struct {
	allowlist allowlist.Allowlist
	targets   []services.Target
}

// Option represents an optional function to change Manager behavior.
type Option func(*options)

// WithAllowlist restricts mutations to a personalized set of directories.
func WithAllowlist(a allowlist.Allowlist) Option {
	return func(o *options) {
		o.allowlist = a
	}
}

// WithTargets replaces the targets of the batch operations.
func WithTargets(targets []services.Target) Option {
	return func(o *options) {
		o.targets = targets
	}
}

// New returns a manager resolving patch content with r.
func New(r Resolver, opts ...Option) *Manager {
	o := options{
		allowlist: allowlist.Default(),
		targets:   services.Targets(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	return &Manager{
		resolver:  r,
		allowlist: o.allowlist,
		targets:   o.targets,
	}
}

// Targets returns the targets of the batch operations.
func (m *Manager) Targets() []services.Target {
	return m.targets
}

// Apply inserts a fresh fingerprint block after the header of t.File, replacing any existing one.
// When t.File does not exist, the content starts from t.Default if it is a regular file, or from
// a bare PAM header otherwise.
func (m *Manager) Apply(ctx context.Context, t services.Target) error {
	ctx = log.WithTarget(ctx, t.File)

	if !m.allowlist.Allowed(t.File) {
		return errkind.New(errkind.Forbidden, t.File, nil)
	}

	patch, err := m.resolver.Resolve(t.File)
	if err != nil {
		return err
	}

	base, err := m.baseContent(ctx, t)
	if err != nil {
		return err
	}

	content := pamfile.InsertAfterHeader(pamfile.Strip(base), patch)
	if err := atomicfile.Write(t.File, []byte(content)); err != nil {
		return errkind.FromIO(t.File, err)
	}
	log.Info(ctx, "Fingerprint configuration applied")

	return nil
}

// baseContent is the content to insert the block into.
func (m *Manager) baseContent(ctx context.Context, t services.Target) (string, error) {
	b, err := os.ReadFile(t.File)
	if err == nil {
		return string(b), nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return "", errkind.FromIO(t.File, err)
	}

	if t.Default != "" {
		fi, err := os.Stat(t.Default)
		switch {
		case err == nil && fi.Mode().IsRegular():
			b, err := os.ReadFile(t.Default)
			if err != nil {
				return "", errkind.FromIO(t.Default, err)
			}
			log.Debugf(ctx, "Starting from default template %s", t.Default)
			return string(b), nil
		case err == nil:
			log.Debugf(ctx, "Ignoring default template %s: not a regular file", t.Default)
		case errors.Is(err, fs.ErrNotExist):
			log.Debugf(ctx, "Default template %s does not exist", t.Default)
		default:
			return "", errkind.FromIO(t.Default, err)
		}
	}

	log.Debug(ctx, "Starting from an empty PAM file")
	return consts.PAMHeader + "\n", nil
}

// Remove strips the fingerprint block from t.File. A missing file or a file outside of the
// allowlist has nothing to remove, and the file is not rewritten when it holds no block.
func (m *Manager) Remove(ctx context.Context, t services.Target) error {
	ctx = log.WithTarget(ctx, t.File)

	if _, err := os.Lstat(t.File); errors.Is(err, fs.ErrNotExist) {
		log.Debug(ctx, "File does not exist, nothing to remove")
		return nil
	}
	if !m.allowlist.Allowed(t.File) {
		log.Warning(ctx, "File is not in an allowed directory, nothing removed")
		return nil
	}

	b, err := os.ReadFile(t.File)
	if errors.Is(err, fs.ErrNotExist) {
		log.Debug(ctx, "File does not exist, nothing to remove")
		return nil
	} else if err != nil {
		return errkind.FromIO(t.File, err)
	}

	orig := string(b)
	content := pamfile.Strip(orig)
	if content == orig {
		log.Debug(ctx, "No fingerprint configuration to remove")
		return nil
	}

	if err := atomicfile.Write(t.File, []byte(content)); err != nil {
		return errkind.FromIO(t.File, err)
	}
	log.Info(ctx, "Fingerprint configuration removed")

	return nil
}

// Check reports if t.File contains a fingerprint block. It never modifies anything and is not
// restricted by the allowlist.
func (m *Manager) Check(ctx context.Context, t services.Target) (applied bool, err error) {
	ctx = log.WithTarget(ctx, t.File)

	b, err := os.ReadFile(t.File)
	if errors.Is(err, fs.ErrNotExist) {
		log.Debug(ctx, "File does not exist")
		return false, nil
	} else if err != nil {
		return false, errkind.FromIO(t.File, err)
	}

	applied = pamfile.HasBlock(string(b))
	log.Debugf(ctx, "Fingerprint configuration applied: %t", applied)

	return applied, nil
}
