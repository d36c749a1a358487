// Package generators contains helpers for the build time generators of packaging assets.
package generators

import (
	"fmt"
	"os"
	"os/exec"
)

const installVar = "GENERATE_ONLY_INSTALL_TO_DESTDIR"

// CleanDirectory removes a directory and recreates it empty.
func CleanDirectory(p string) error {
	if err := os.RemoveAll(p); err != nil {
		return fmt.Errorf("couldn't delete %q: %w", p, err)
	}
	if err := CreateDirectory(p, 0750); err != nil {
		return fmt.Errorf("couldn't create %q: %w", p, err)
	}
	return nil
}

// InstallOnlyMode returns if assets are only installed to the packaging directory.
func InstallOnlyMode() bool {
	return os.Getenv(installVar) != ""
}

// DestDirectory returns the packaging directory if set, p otherwise.
func DestDirectory(p string) string {
	if installDir := os.Getenv(installVar); installDir != "" {
		return installDir
	}
	return p
}

// CreateDirectory creates dir and its parents with perm. An existing directory is left untouched.
//
// mkdir is called instead of os.MkdirAll so that fakeroot keeps track of the created directories.
func CreateDirectory(dir string, perm uint32) error {
	// #nosec:G204 - we control the mode and directory we run mkdir on
	cmd := exec.Command("mkdir", "-m", fmt.Sprintf("%o", perm), "-p", dir)
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("couldn't create directory %q: %s", dir, output)
	}
	return nil
}
