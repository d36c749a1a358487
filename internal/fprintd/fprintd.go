// Package fprintd is a read-only client of the fingerprint daemon over the system bus.
//
// It only lists devices and enrolled fingers. Claiming a device, enrolling, verifying or
// deleting prints is left to the graphical application.
package fprintd

import (
	"context"
	"errors"
	"fmt"

	"github.com/godbus/dbus/v5"
	"github.com/ubuntu/decorate"
	"github.com/xerolinux/xfprintd-gui/internal/consts"
	"github.com/xerolinux/xfprintd-gui/internal/i18n"
	"github.com/xerolinux/xfprintd-gui/internal/log"
)

// errNoEnrolledPrints is returned by fprintd when a user has no enrolled finger on a device.
const errNoEnrolledPrints = "net.reactivated.Fprint.Error.NoEnrolledPrints"

// objecter returns the remote objects of a bus connection.
type objecter interface {
	Object(dest string, path dbus.ObjectPath) dbus.BusObject
}

// Client queries fprintd.
type Client struct {
	bus objecter
}

func withBus(b objecter) func(*Client) {
	return func(c *Client) {
		c.bus = b
	}
}

// New returns a new fprintd client on the bus connection.
func New(bus *dbus.Conn, options ...func(*Client)) *Client {
	c := Client{bus: bus}
	for _, option := range options {
		option(&c)
	}
	return &c
}

// Device describes a fingerprint reader.
type Device struct {
	Path            dbus.ObjectPath
	Name            string
	ScanType        string
	NumEnrollStages int32
}

// Devices returns the object paths of all fingerprint readers.
func (c Client) Devices(ctx context.Context) (devices []dbus.ObjectPath, err error) {
	defer decorate.OnError(&err, i18n.G("can't list fingerprint devices"))

	manager := c.bus.Object(consts.FprintdDbusRegisteredName, consts.FprintdDbusManagerPath)
	if err := manager.CallWithContext(ctx, consts.FprintdDbusManagerInterface+".GetDevices", 0).Store(&devices); err != nil {
		return nil, err
	}
	log.Debugf(ctx, "fprintd reports %d device(s)", len(devices))

	return devices, nil
}

// Device returns the properties of the reader at path.
func (c Client) Device(ctx context.Context, path dbus.ObjectPath) (d Device, err error) {
	defer decorate.OnError(&err, i18n.G("can't get properties of fingerprint device %s", path))

	obj := c.bus.Object(consts.FprintdDbusRegisteredName, path)
	d.Path = path
	if err := property(obj, "name", &d.Name); err != nil {
		return Device{}, err
	}
	if err := property(obj, "scan-type", &d.ScanType); err != nil {
		return Device{}, err
	}
	if err := property(obj, "num-enroll-stages", &d.NumEnrollStages); err != nil {
		return Device{}, err
	}

	return d, nil
}

// EnrolledFingers returns the names of the fingers user enrolled on the reader at path.
// A user without any enrolled finger gets an empty list.
func (c Client) EnrolledFingers(ctx context.Context, path dbus.ObjectPath, user string) (fingers []string, err error) {
	defer decorate.OnError(&err, i18n.G("can't list enrolled fingers of %q on %s", user, path))

	obj := c.bus.Object(consts.FprintdDbusRegisteredName, path)
	err = obj.CallWithContext(ctx, consts.FprintdDbusDeviceInterface+".ListEnrolledFingers", 0, user).Store(&fingers)
	var dbusErr dbus.DBusError
	if errors.As(err, &dbusErr) {
		if name, _ := dbusErr.DBusError(); name == errNoEnrolledPrints {
			return []string{}, nil
		}
	}
	if err != nil {
		return nil, err
	}

	return fingers, nil
}

// property stores the device property name in v.
func property[T any](obj dbus.BusObject, name string, v *T) error {
	variant, err := obj.GetProperty(consts.FprintdDbusDeviceInterface + "." + name)
	if err != nil {
		return err
	}
	val, ok := variant.Value().(T)
	if !ok {
		return fmt.Errorf(i18n.G("unexpected type %s for property %s"), variant.Signature(), name)
	}
	*v = val
	return nil
}
