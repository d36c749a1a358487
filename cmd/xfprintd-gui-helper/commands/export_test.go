package commands

import (
	"errors"
	"io"

	"github.com/godbus/dbus/v5"
	"github.com/xerolinux/xfprintd-gui/internal/allowlist"
	"github.com/xerolinux/xfprintd-gui/internal/privilege"
	"github.com/xerolinux/xfprintd-gui/internal/services"
)

// Option is a functional option of the app.
type Option = option

// WithConfigDirs searches the configuration file in dirs.
func WithConfigDirs(dirs ...string) func(o *options) {
	return func(o *options) {
		o.configDirs = dirs
	}
}

// WithAllowlist restricts modifications to prefixes.
func WithAllowlist(prefixes ...string) func(o *options) {
	return func(o *options) {
		a := allowlist.New(prefixes...)
		o.allowlist = &a
	}
}

// WithTargets replaces the known services targets for batch commands.
func WithTargets(targets ...services.Target) func(o *options) {
	return func(o *options) {
		o.targets = targets
	}
}

// WithEuid overrides the effective uid of the process.
func WithEuid(euid int) func(o *options) {
	return func(o *options) {
		o.privilege = append(o.privilege, privilege.WithEuid(func() int { return euid }))
	}
}

// WithoutSystemBus makes the system bus unreachable.
func WithoutSystemBus() func(o *options) {
	return func(o *options) {
		o.systemBus = func() (*dbus.Conn, error) { return nil, errors.New("no system bus in tests") }
	}
}

// SetArgs sets the command line arguments of the app.
func (a *App) SetArgs(args ...string) {
	a.rootCmd.SetArgs(args)
}

// SetOutput redirects the command outputs to w.
func (a *App) SetOutput(w io.Writer) {
	a.rootCmd.SetOut(w)
	a.rootCmd.SetErr(w)
}
