// Package privilege gates mutating operations behind an effective root user.
package privilege

import (
	"context"

	"github.com/xerolinux/xfprintd-gui/internal/errkind"
	"github.com/xerolinux/xfprintd-gui/internal/log"
	"golang.org/x/sys/unix"
)

// Gate checks the effective user before a mutating operation.
type Gate struct {
	euid func() int
}

type options struct {
	euid func() int
}

// Option customizes the gate.
type Option func(*options)

// WithEuid overrides the effective uid source.
func WithEuid(euid func() int) Option {
	return func(o *options) {
		o.euid = euid
	}
}

// New returns a gate reading the effective uid of the current process.
func New(opts ...Option) Gate {
	o := options{euid: unix.Geteuid}
	for _, opt := range opts {
		opt(&o)
	}
	return Gate{euid: o.euid}
}

// RequireRoot returns a PermissionDenied error unless the process runs as root.
func (g Gate) RequireRoot(ctx context.Context) error {
	euid := g.euid()
	if euid == 0 {
		return nil
	}
	log.Debugf(ctx, "Refusing mutating operation for effective uid %d", euid)
	return errkind.New(errkind.PermissionDenied, "", nil)
}
