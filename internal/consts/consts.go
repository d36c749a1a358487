// Package consts defines the constants used by the project
package consts

import log "github.com/sirupsen/logrus"

const (
	// TEXTDOMAIN is the gettext domain for l10n
	TEXTDOMAIN = "xfprintd-gui"

	// CmdName is the name of the privileged helper binary.
	CmdName = "xfprintd-gui-helper"

	// DefaultLogLevel is the default logging level selected without any option
	DefaultLogLevel = log.WarnLevel

	// DefaultConfigDir is the only directory searched for a configuration file.
	// The helper runs elevated, so it never looks into user writable places.
	DefaultConfigDir = "/etc/xfprintd-gui"

	// DefaultPatchesDir is where packaged patch fragments are installed.
	DefaultPatchesDir = "/opt/xfprintd-gui/patches"

	// PAMDir is the live PAM configuration directory.
	PAMDir = "/etc/pam.d"

	// PAMVendorDir is where some distributions ship stock PAM configurations.
	PAMVendorDir = "/usr/lib/pam.d"

	// PAMHeader is the first line expected by libpam in a service file.
	PAMHeader = "#%PAM-1.0"

	// BeginMarker opens the block managed by the helper.
	BeginMarker = "# BEGIN xfprintd-gui"
	// EndMarker closes the block managed by the helper.
	EndMarker = "# END xfprintd-gui"

	// FprintdUnit is the systemd unit of the fingerprint daemon.
	FprintdUnit = "fprintd.service"

	// FprintdDbusRegisteredName is the well-known bus name of fprintd.
	FprintdDbusRegisteredName = "net.reactivated.Fprint"
	// FprintdDbusManagerPath is the object path of the fprintd manager.
	FprintdDbusManagerPath = "/net/reactivated/Fprint/Manager"
	// FprintdDbusManagerInterface is the fprintd manager interface.
	FprintdDbusManagerInterface = "net.reactivated.Fprint.Manager"
	// FprintdDbusDeviceInterface is the fprintd device interface.
	FprintdDbusDeviceInterface = "net.reactivated.Fprint.Device"
)

// Version is the version of the executable
var Version = "dev"

// AllowedDirs are the directory prefixes the helper is permitted to modify.
var AllowedDirs = []string{PAMDir}
