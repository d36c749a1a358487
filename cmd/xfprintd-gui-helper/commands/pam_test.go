package commands_test

import (
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xerolinux/xfprintd-gui/cmd/xfprintd-gui-helper/commands"
	"github.com/xerolinux/xfprintd-gui/internal/pamfile"
	"github.com/xerolinux/xfprintd-gui/internal/services"
	"github.com/xerolinux/xfprintd-gui/internal/testutils"
)

const (
	noBlock   = "#%PAM-1.0\nauth       include    system-auth\n"
	withBlock = "#%PAM-1.0\n" + "# BEGIN xfprintd-gui\n" + fingerprintPatch + "\n# END xfprintd-gui\n" + "auth       include    system-auth\n"
)

func TestPAMCommands(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		cmd     string
		files   map[string]string
		targets []string
		euid    int
		outside bool

		wantFiles map[string]string
		wantLines []string
		wantCode  int
	}{
		"Apply to file without block": {
			cmd:       "apply",
			files:     map[string]string{"sudo": noBlock},
			targets:   []string{"sudo"},
			wantFiles: map[string]string{"sudo": withBlock},
			wantLines: []string{"Success: applied configuration to %s/sudo"},
		},
		"Apply to several files": {
			cmd:       "apply",
			files:     map[string]string{"sudo": noBlock, "login": withBlock},
			targets:   []string{"sudo", "login"},
			wantFiles: map[string]string{"sudo": withBlock, "login": withBlock},
			wantLines: []string{"Success: applied configuration to %s/sudo", "Success: applied configuration to %s/login"},
		},
		"Apply creates missing file": {
			cmd:       "apply",
			files:     map[string]string{"svc": ""},
			targets:   []string{"svc"},
			wantFiles: map[string]string{"svc": "#%PAM-1.0\n" + pamfile.Block(fingerprintPatch)},
			wantLines: []string{"Success: applied configuration to %s/svc"},
		},
		"Remove block": {
			cmd:       "remove",
			files:     map[string]string{"sudo": withBlock},
			targets:   []string{"sudo"},
			wantFiles: map[string]string{"sudo": noBlock},
			wantLines: []string{"Success: removed configuration from %s/sudo"},
		},
		"Remove on missing file succeeds": {
			cmd:       "remove",
			files:     map[string]string{"svc": ""},
			targets:   []string{"svc"},
			wantLines: []string{"Success: removed configuration from %s/svc"},
		},
		"Check applied file": {
			cmd:       "check",
			files:     map[string]string{"sudo": withBlock},
			targets:   []string{"sudo"},
			wantFiles: map[string]string{"sudo": withBlock},
			wantLines: []string{"applied: %s/sudo"},
		},
		"Check does not need privileges": {
			cmd:       "check",
			files:     map[string]string{"sudo": withBlock},
			targets:   []string{"sudo"},
			euid:      1000,
			wantFiles: map[string]string{"sudo": withBlock},
			wantLines: []string{"applied: %s/sudo"},
		},

		// Per target failures
		"Check exits with 1 when any file is not applied": {
			cmd:       "check",
			files:     map[string]string{"sudo": withBlock, "login": noBlock},
			targets:   []string{"sudo", "login"},
			wantFiles: map[string]string{"sudo": withBlock, "login": noBlock},
			wantLines: []string{"applied: %s/sudo", "not-applied: %s/login"},
			wantCode:  1,
		},
		"Check exits with 2 when any target can't be checked": {
			cmd:       "check",
			files:     map[string]string{"login": noBlock},
			targets:   []string{"login", ""},
			wantFiles: map[string]string{"login": noBlock},
			wantLines: []string{"not-applied: %s/login", "Error: checking : "},
			wantCode:  2,
		},
		"Apply keeps going after a failing target": {
			cmd:       "apply",
			files:     map[string]string{"sudo": noBlock},
			targets:   []string{"nofragment", "sudo"},
			wantFiles: map[string]string{"sudo": withBlock},
			wantLines: []string{"Error: applying configuration to %s/nofragment: ", "Success: applied configuration to %s/sudo"},
			wantCode:  1,
		},
		"Apply refuses files outside of allowed directories": {
			cmd:       "apply",
			files:     map[string]string{"sudo": noBlock},
			targets:   []string{"sudo"},
			outside:   true,
			wantFiles: map[string]string{"sudo": noBlock},
			wantLines: []string{"Error: applying configuration to %s/sudo: "},
			wantCode:  1,
		},
		"Remove leaves files outside of allowed directories untouched": {
			cmd:       "remove",
			files:     map[string]string{"sudo": withBlock},
			targets:   []string{"sudo", "svc"},
			outside:   true,
			wantFiles: map[string]string{"sudo": withBlock},
			wantLines: []string{"Success: removed configuration from %s/sudo", "Success: removed configuration from %s/svc"},
		},

		// Privileges
		"Apply requires root": {
			cmd:       "apply",
			files:     map[string]string{"sudo": noBlock},
			targets:   []string{"sudo"},
			euid:      1000,
			wantFiles: map[string]string{"sudo": noBlock},
			wantCode:  126,
		},
		"Remove requires root": {
			cmd:       "remove",
			files:     map[string]string{"sudo": withBlock},
			targets:   []string{"sudo"},
			euid:      1000,
			wantFiles: map[string]string{"sudo": withBlock},
			wantCode:  126,
		},

		// Usage errors
		"Apply without targets is a usage error":  {cmd: "apply", wantCode: 2},
		"Remove without targets is a usage error": {cmd: "remove", wantCode: 2},
		"Check without targets is a usage error":  {cmd: "check", wantCode: 2},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			pamDir, patchesDir := setupRoot(t, tc.files)

			allowed := pamDir
			if tc.outside {
				allowed = filepath.Join(t.TempDir(), "etc", "pam.d")
			}

			args := []string{tc.cmd, "--patches-dir", patchesDir}
			for _, target := range tc.targets {
				if target == "" {
					args = append(args, target)
					continue
				}
				args = append(args, filepath.Join(pamDir, target))
			}

			out, code := runApp(t, args, commands.WithEuid(tc.euid), commands.WithAllowlist(allowed))
			require.Equal(t, tc.wantCode, code, "Command should exit with expected code")

			if tc.wantCode == 2 && len(tc.targets) == 0 {
				return
			}

			lines := splitLines(out)
			require.Len(t, lines, len(tc.wantLines), "Command should print one line per target")
			for i, want := range tc.wantLines {
				want = strings.ReplaceAll(want, "%s", pamDir)
				// Failures are only matched up to the error message.
				if strings.HasSuffix(want, ": ") {
					require.True(t, strings.HasPrefix(lines[i], want), "Line should report target failure, got %q", lines[i])
					continue
				}
				require.Equal(t, want, lines[i], "Line should report target status")
			}

			for name := range tc.files {
				p := filepath.Join(pamDir, name)
				want, ok := tc.wantFiles[name]
				if !ok {
					require.NoFileExists(t, p, "File should not be created")
					continue
				}
				require.Equal(t, want, readFile(t, p), "File should have expected content")
			}
		})
	}
}

func TestBatchCommands(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		cmd   string
		files map[string]string
		euid  int

		wantFiles map[string]string
		wantLines []string
		wantCode  int
	}{
		"Apply to all targets": {
			cmd:       "apply-all",
			files:     map[string]string{"login": noBlock, "sudo": withBlock},
			wantFiles: map[string]string{"login": withBlock, "sudo": withBlock},
			wantLines: []string{"Success: applied configuration to %s/login", "Success: applied configuration to %s/sudo"},
		},
		"Remove from all targets": {
			cmd:       "remove-all",
			files:     map[string]string{"login": noBlock, "sudo": withBlock},
			wantFiles: map[string]string{"login": noBlock, "sudo": noBlock},
			wantLines: []string{"Success: removed configuration from %s/login", "Success: removed configuration from %s/sudo"},
		},
		"Check all targets": {
			cmd:       "check-all",
			files:     map[string]string{"login": noBlock, "sudo": withBlock},
			wantFiles: map[string]string{"login": noBlock, "sudo": withBlock},
			wantLines: []string{"not-applied: %s/login", "applied: %s/sudo"},
			wantCode:  1,
		},
		"Check all targets does not need privileges": {
			cmd:       "check-all",
			files:     map[string]string{"login": withBlock, "sudo": withBlock},
			euid:      1000,
			wantFiles: map[string]string{"login": withBlock, "sudo": withBlock},
			wantLines: []string{"applied: %s/login", "applied: %s/sudo"},
		},

		"Apply to all targets requires root": {
			cmd:       "apply-all",
			files:     map[string]string{"login": noBlock, "sudo": noBlock},
			euid:      1000,
			wantFiles: map[string]string{"login": noBlock, "sudo": noBlock},
			wantCode:  126,
		},
		"Remove from all targets requires root": {
			cmd:       "remove-all",
			files:     map[string]string{"login": withBlock, "sudo": withBlock},
			euid:      1000,
			wantFiles: map[string]string{"login": withBlock, "sudo": withBlock},
			wantCode:  126,
		},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			pamDir, patchesDir := setupRoot(t, tc.files)
			targets := []services.Target{
				{File: filepath.Join(pamDir, "login")},
				{File: filepath.Join(pamDir, "sudo")},
			}

			out, code := runApp(t, []string{tc.cmd, "--patches-dir", patchesDir},
				commands.WithEuid(tc.euid), commands.WithAllowlist(pamDir), commands.WithTargets(targets...))
			require.Equal(t, tc.wantCode, code, "Command should exit with expected code")

			lines := splitLines(out)
			require.Len(t, lines, len(tc.wantLines), "Command should print one line per target")
			for i, want := range tc.wantLines {
				require.Equal(t, strings.ReplaceAll(want, "%s", pamDir), lines[i], "Line should report target status")
			}

			for name, want := range tc.wantFiles {
				require.Equal(t, want, readFile(t, filepath.Join(pamDir, name)), "File should have expected content")
			}
		})
	}
}

func TestBatchCommandsRefuseArguments(t *testing.T) {
	t.Parallel()

	for _, cmd := range []string{"apply-all", "remove-all", "check-all"} {
		t.Run(cmd, func(t *testing.T) {
			t.Parallel()

			_, code := runApp(t, []string{cmd, "sudo"}, commands.WithEuid(0))
			require.Equal(t, 2, code, "Command with arguments is a usage error")
		})
	}
}

func TestApplyRemoveScenario(t *testing.T) {
	t.Parallel()

	pamDir, patchesDir := setupRoot(t, map[string]string{"sudo": noBlock})
	target := filepath.Join(pamDir, "sudo")
	opts := []commands.Option{commands.WithEuid(0), commands.WithAllowlist(pamDir)}

	for i := 0; i < 2; i++ {
		_, code := runApp(t, []string{"apply", "--patches-dir", patchesDir, target}, opts...)
		require.Equal(t, 0, code, "Apply should succeed")
		require.Equal(t, withBlock, readFile(t, target), "Applying is idempotent")
	}

	out, code := runApp(t, []string{"check", "--patches-dir", patchesDir, target}, opts...)
	require.Equal(t, 0, code, "Check should report applied")
	require.Equal(t, fmt.Sprintf("applied: %s\n", target), out, "Check should print target status")

	_, code = runApp(t, []string{"remove", "--patches-dir", patchesDir, target}, opts...)
	require.Equal(t, 0, code, "Remove should succeed")
	require.Equal(t, noBlock, readFile(t, target), "Remove should restore original content")

	out, code = runApp(t, []string{"check", "--patches-dir", patchesDir, target}, opts...)
	require.Equal(t, 1, code, "Check should report not applied")
	require.Equal(t, fmt.Sprintf("not-applied: %s\n", target), out, "Check should print target status")
}

func TestApplyFailsOnReadOnlyDirectory(t *testing.T) {
	testutils.SkipIfRoot(t)
	t.Parallel()

	pamDir, patchesDir := setupRoot(t, map[string]string{"sudo": noBlock})
	testutils.MakeReadOnly(t, pamDir)

	out, code := runApp(t, []string{"apply", "--patches-dir", patchesDir, filepath.Join(pamDir, "sudo")},
		commands.WithEuid(0), commands.WithAllowlist(pamDir))
	require.Equal(t, 1, code, "Apply should fail")
	require.Contains(t, out, "Error: applying configuration to", "Apply should report the failure")
	require.Equal(t, noBlock, readFile(t, filepath.Join(pamDir, "sudo")), "File should be left untouched")
}

func splitLines(out string) []string {
	var lines []string
	for _, l := range strings.Split(strings.TrimSuffix(out, "\n"), "\n") {
		if l == "" {
			continue
		}
		lines = append(lines, l)
	}
	return lines
}
