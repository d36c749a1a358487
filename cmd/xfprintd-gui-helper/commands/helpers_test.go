package commands_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xerolinux/xfprintd-gui/cmd/xfprintd-gui-helper/commands"
	"github.com/xerolinux/xfprintd-gui/internal/patch"
	"github.com/xerolinux/xfprintd-gui/internal/testutils"
)

const fingerprintPatch = "auth    sufficient  pam_fprintd.so"

// runApp runs a new app with args and returns its output with the process exit code.
func runApp(t *testing.T, args []string, opts ...commands.Option) (out string, code int) {
	t.Helper()

	opts = append([]commands.Option{commands.WithConfigDirs(t.TempDir())}, opts...)
	a := commands.New(opts...)
	var b bytes.Buffer
	a.SetOutput(&b)
	a.SetArgs(args...)

	err := a.Run()
	if err == nil {
		return b.String(), 0
	}

	var exitErr commands.ExitError
	if errors.As(err, &exitErr) {
		return b.String(), exitErr.Code
	}
	if a.UsageError() {
		return b.String(), 2
	}
	return b.String(), 1
}

// setupRoot creates a PAM directory and a patches directory with a fragment for each of files.
// It returns the PAM directory and the patches directory.
func setupRoot(t *testing.T, files map[string]string) (pamDir, patchesDir string) {
	t.Helper()

	root := t.TempDir()
	pamDir = filepath.Join(root, "etc", "pam.d")
	patchesDir = filepath.Join(root, "patches")
	require.NoError(t, os.MkdirAll(pamDir, 0700), "Setup: could not create PAM directory")

	for name, content := range files {
		p := filepath.Join(pamDir, name)
		if content != "" {
			testutils.WriteFile(t, p, content, 0644)
		}

		fragment, err := patch.FragmentPath(patchesDir, p)
		require.NoError(t, err, "Setup: could not compute fragment path")
		testutils.WriteFile(t, fragment, fingerprintPatch+"\n", 0644)
	}

	return pamDir, patchesDir
}

func readFile(t *testing.T, path string) string {
	t.Helper()

	b, err := os.ReadFile(path)
	require.NoError(t, err, "Setup: could not read %s", path)
	return string(b)
}
