package testutils

import (
	"os"
	"testing"
)

// SkipUnlessRoot skips the test if the current user is not root.
func SkipUnlessRoot(t *testing.T) {
	t.Helper()

	if os.Geteuid() != 0 {
		t.Skip("Test has to be run as root, skipping...")
	}
}

// SkipIfRoot skips the test if the current user is root, as permissions are not enforced for it.
func SkipIfRoot(t *testing.T) {
	t.Helper()

	if os.Geteuid() == 0 {
		t.Skip("Test can't be run as root, skipping...")
	}
}
