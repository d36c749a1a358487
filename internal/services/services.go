// Package services lists the PAM services the helper knows how to configure and parses the
// targets given on the command line.
package services

import (
	"fmt"
	"path/filepath"

	"github.com/xerolinux/xfprintd-gui/internal/consts"
)

// Service is one of the PAM services with a known fingerprint configuration.
type Service int

// Known services. The set is closed: every switch on a Service covers all of them.
const (
	Login Service = iota
	Sudo
	Polkit
)

// All returns the services handled by the batch commands, in processing order.
func All() []Service {
	return []Service{Login, Sudo, Polkit}
}

// Name is the PAM service name, which is also the file name under /etc/pam.d.
func (s Service) Name() string {
	switch s {
	case Login:
		return "login"
	case Sudo:
		return "sudo"
	case Polkit:
		return "polkit-1"
	}
	panic(fmt.Sprintf("unknown service %d", int(s)))
}

// Path is the live PAM configuration file of the service.
func (s Service) Path() string {
	return filepath.Join(consts.PAMDir, s.Name())
}

// DefaultTemplate is the stock configuration to start from when Path does not exist yet.
// It is empty for services which are always shipped under /etc/pam.d.
func (s Service) DefaultTemplate() string {
	switch s {
	case Login, Sudo:
		return ""
	case Polkit:
		// polkit only ships its configuration under the vendor directory.
		return filepath.Join(consts.PAMVendorDir, s.Name())
	}
	panic(fmt.Sprintf("unknown service %d", int(s)))
}

// Patch is the configuration inserted for the service, without markers.
func (s Service) Patch() string {
	switch s {
	case Login:
		return "auth    [success=1 default=ignore]  pam_succeed_if.so service in sudo:su:su-l tty in :unknown\n" +
			"auth    sufficient  pam_fprintd.so"
	case Sudo:
		return "auth    [success=1  default=ignore] pam_succeed_if.so service in sudo:su:su-l tty in :unknown\n" +
			"auth    sufficient  pam_fprintd.so"
	case Polkit:
		return "auth    [success=1 default=ignore]  pam_succeed_if.so service in sudo:su:su-l tty in :unknown\n" +
			"auth    sufficient  pam_fprintd.so\n" +
			"auth    sufficient  pam_unix.so try_first_pass likeauth nullok"
	}
	panic(fmt.Sprintf("unknown service %d", int(s)))
}

// Target returns the target to patch for the service.
func (s Service) Target() Target {
	return Target{File: s.Path(), Default: s.DefaultTemplate()}
}

// String returns the service name.
func (s Service) String() string {
	return s.Name()
}

// FromPath returns the service whose live configuration is path.
func FromPath(path string) (Service, bool) {
	for _, s := range All() {
		if s.Path() == path {
			return s, true
		}
	}
	return 0, false
}

// FromName returns the service named name.
func FromName(name string) (Service, bool) {
	for _, s := range All() {
		if s.Name() == name {
			return s, true
		}
	}
	return 0, false
}

// Targets returns the targets of all known services, in processing order.
func Targets() []Target {
	var targets []Target
	for _, s := range All() {
		targets = append(targets, s.Target())
	}
	return targets
}
