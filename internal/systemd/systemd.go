// Package systemd provides a read-only wrapper around systemd dbus API to query unit states.
package systemd

import (
	"context"
	"fmt"

	systemdDbus "github.com/coreos/go-systemd/v22/dbus"
	"github.com/godbus/dbus/v5"
	"github.com/ubuntu/decorate"
	"github.com/xerolinux/xfprintd-gui/internal/i18n"
)

// unitPropertyGetter is the subset of the systemd connection we rely on.
type unitPropertyGetter interface {
	GetUnitPropertyContext(ctx context.Context, unit string, propertyName string) (*systemdDbus.Property, error)
}

// DefaultCaller is the default implementation of the systemd wrapper.
type DefaultCaller struct {
	conn unitPropertyGetter
}

// New returns a new systemdCaller using the given dbus connection.
func New(bus *dbus.Conn) (*DefaultCaller, error) {
	conn, err := systemdDbus.NewConnection(func() (*dbus.Conn, error) { return bus, nil })
	if err != nil {
		return nil, err
	}

	return &DefaultCaller{conn: conn}, nil
}

// UnitActiveState returns the ActiveState of the given unit, like "active" or "inactive".
func (s DefaultCaller) UnitActiveState(ctx context.Context, unit string) (state string, err error) {
	defer decorate.OnError(&err, i18n.G("failed to get state of unit %s"), unit)

	p, err := s.conn.GetUnitPropertyContext(ctx, unit, "ActiveState")
	if err != nil {
		return "", err
	}

	state, ok := p.Value.Value().(string)
	if !ok {
		return "", fmt.Errorf(i18n.G("unexpected ActiveState value %v"), p.Value)
	}
	return state, nil
}
