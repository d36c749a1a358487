package fprintd

import (
	"context"
	"errors"
	"strings"

	"github.com/godbus/dbus/v5"
)

var WithBus = withBus

// BusMock is a fake fprintd on the system bus.
type BusMock struct {
	Devices    []dbus.ObjectPath
	Properties map[dbus.ObjectPath]map[string]interface{}
	// Fingers are the enrolled fingers per device. A device without entry has no enrolled prints.
	Fingers map[dbus.ObjectPath][]string

	WantManagerError bool
	WantDeviceError  bool

	// Users records the users whose fingers were listed.
	Users []string
}

// Object returns a fake remote object at path.
func (b *BusMock) Object(dest string, path dbus.ObjectPath) dbus.BusObject {
	return &objectMock{bus: b, path: path}
}

type objectMock struct {
	dbus.BusObject

	bus  *BusMock
	path dbus.ObjectPath
}

func (o *objectMock) CallWithContext(_ context.Context, method string, _ dbus.Flags, args ...interface{}) *dbus.Call {
	switch {
	case strings.HasSuffix(method, ".GetDevices"):
		if o.bus.WantManagerError {
			return &dbus.Call{Err: errors.New("fprintd is not running")}
		}
		return &dbus.Call{Body: []interface{}{o.bus.Devices}}
	case strings.HasSuffix(method, ".ListEnrolledFingers"):
		if o.bus.WantDeviceError {
			return &dbus.Call{Err: errors.New("device is gone")}
		}
		user, _ := args[0].(string)
		o.bus.Users = append(o.bus.Users, user)
		fingers, ok := o.bus.Fingers[o.path]
		if !ok {
			return &dbus.Call{Err: dbus.Error{Name: "net.reactivated.Fprint.Error.NoEnrolledPrints", Body: []interface{}{"No fingerprints enrolled"}}}
		}
		return &dbus.Call{Body: []interface{}{fingers}}
	}
	return &dbus.Call{Err: errors.New("unexpected method " + method)}
}

func (o *objectMock) GetProperty(p string) (dbus.Variant, error) {
	if o.bus.WantDeviceError {
		return dbus.Variant{}, errors.New("device is gone")
	}
	v, ok := o.bus.Properties[o.path][strings.TrimPrefix(p, "net.reactivated.Fprint.Device.")]
	if !ok {
		return dbus.Variant{}, errors.New("no such property " + p)
	}
	return dbus.MakeVariant(v), nil
}
