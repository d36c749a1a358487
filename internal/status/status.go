// Package status gathers a read-only diagnostic of the fingerprint setup: fprintd service and
// readers state, and which PAM services have the fingerprint configuration applied.
package status

import (
	"context"
	"io"
	"os/exec"
	"slices"

	"github.com/godbus/dbus/v5"
	"github.com/maruel/natural"
	"github.com/ubuntu/decorate"
	"github.com/xerolinux/xfprintd-gui/internal/consts"
	"github.com/xerolinux/xfprintd-gui/internal/fprintd"
	"github.com/xerolinux/xfprintd-gui/internal/i18n"
	"github.com/xerolinux/xfprintd-gui/internal/log"
	"github.com/xerolinux/xfprintd-gui/internal/pamconfig"
	"gopkg.in/yaml.v3"
)

// FprintdClient lists fingerprint readers and enrolled fingers.
type FprintdClient interface {
	Devices(ctx context.Context) ([]dbus.ObjectPath, error)
	Device(ctx context.Context, path dbus.ObjectPath) (fprintd.Device, error)
	EnrolledFingers(ctx context.Context, path dbus.ObjectPath, user string) ([]string, error)
}

// UnitStater returns the state of a systemd unit.
type UnitStater interface {
	UnitActiveState(ctx context.Context, unit string) (string, error)
}

// Checker checks the fingerprint configuration of the known PAM services.
type Checker interface {
	CheckAll(ctx context.Context) pamconfig.Report
}

// Report is the diagnostic, serialized as YAML.
type Report struct {
	Fprintd  Fprintd   `yaml:"fprintd"`
	Pkexec   string    `yaml:"pkexec"`
	Services []Service `yaml:"services"`

	pamCode int
}

// Fprintd is the state of the fingerprint daemon.
type Fprintd struct {
	Service string   `yaml:"service"`
	Devices []Device `yaml:"devices"`
	Error   string   `yaml:"error,omitempty"`
}

// Device is a fingerprint reader with the fingers enrolled by the user.
type Device struct {
	Path         string   `yaml:"path"`
	Name         string   `yaml:"name,omitempty"`
	ScanType     string   `yaml:"scan-type,omitempty"`
	EnrollStages int32    `yaml:"enroll-stages,omitempty"`
	Enrolled     []string `yaml:"enrolled"`
	Error        string   `yaml:"error,omitempty"`
}

// Service is the fingerprint configuration state of a PAM service file.
type Service struct {
	File    string `yaml:"file"`
	Default string `yaml:"default,omitempty"`
	Applied bool   `yaml:"applied"`
	Error   string `yaml:"error,omitempty"`
}

// stateUnknown is reported when a state can't be queried.
const stateUnknown = "unknown"

type options struct {
	fprintd  FprintdClient
	systemd  UnitStater
	lookPath func(string) (string, error)
}

// Option reprents an optional function to change the collected sources.
type Option func(*options)

// WithFprintd queries readers from c. Readers are reported as unknown without it.
func WithFprintd(c FprintdClient) Option {
	return func(o *options) {
		o.fprintd = c
	}
}

// WithSystemd queries the fprintd service state from s. The state is unknown without it.
func WithSystemd(s UnitStater) Option {
	return func(o *options) {
		o.systemd = s
	}
}

// Collect builds the report for user. Failing to reach fprintd or systemd is reported inside it
// and never fails the collection.
func Collect(ctx context.Context, checker Checker, user string, opts ...Option) Report {
	o := options{lookPath: exec.LookPath}
	for _, opt := range opts {
		opt(&o)
	}

	var r Report
	r.Fprintd = collectFprintd(ctx, o, user)

	r.Pkexec = stateUnknown
	if p, err := o.lookPath("pkexec"); err != nil {
		log.Warningf(ctx, "pkexec not found, PAM configuration can't be changed from the application: %v", err)
	} else {
		r.Pkexec = p
	}

	pam := checker.CheckAll(ctx)
	for _, res := range pam.Results {
		s := Service{File: res.Target.File, Default: res.Target.Default, Applied: res.Applied}
		if res.Err != nil {
			s.Error = res.Err.Error()
		}
		r.Services = append(r.Services, s)
	}
	if pam.ExitCode() == pamconfig.ExitCheckError {
		r.pamCode = pamconfig.ExitCheckError
	}

	return r
}

func collectFprintd(ctx context.Context, o options, user string) Fprintd {
	f := Fprintd{Service: stateUnknown, Devices: []Device{}}

	if o.systemd != nil {
		state, err := o.systemd.UnitActiveState(ctx, consts.FprintdUnit)
		if err != nil {
			log.Warning(ctx, err)
		} else {
			f.Service = state
		}
	}
	if f.Service != "active" {
		log.Warningf(ctx, "%s is %s, you may need to start it", consts.FprintdUnit, f.Service)
	}

	if o.fprintd == nil {
		f.Error = i18n.G("system bus is not available")
		return f
	}

	paths, err := o.fprintd.Devices(ctx)
	if err != nil {
		f.Error = err.Error()
		return f
	}
	// Device/10 is listed after Device/9.
	slices.SortFunc(paths, func(a, b dbus.ObjectPath) int {
		switch {
		case natural.Less(string(a), string(b)):
			return -1
		case natural.Less(string(b), string(a)):
			return 1
		}
		return 0
	})
	for _, p := range paths {
		f.Devices = append(f.Devices, collectDevice(ctx, o.fprintd, p, user))
	}

	return f
}

func collectDevice(ctx context.Context, c FprintdClient, path dbus.ObjectPath, user string) Device {
	d := Device{Path: string(path), Enrolled: []string{}}

	info, err := c.Device(ctx, path)
	if err != nil {
		d.Error = err.Error()
		return d
	}
	d.Name, d.ScanType, d.EnrollStages = info.Name, info.ScanType, info.NumEnrollStages

	fingers, err := c.EnrolledFingers(ctx, path, user)
	if err != nil {
		d.Error = err.Error()
		return d
	}
	d.Enrolled = fingers

	return d
}

// ExitCode is pamconfig.ExitCheckError if a PAM service could not be checked, pamconfig.ExitOK otherwise.
func (r Report) ExitCode() int {
	if r.pamCode != 0 {
		return r.pamCode
	}
	return pamconfig.ExitOK
}

// Write serializes the report as YAML to w.
func (r Report) Write(w io.Writer) (err error) {
	defer decorate.OnError(&err, i18n.G("can't write status"))

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return err
	}
	return enc.Close()
}
