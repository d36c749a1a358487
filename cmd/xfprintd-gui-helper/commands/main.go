// Package commands is the xfprintd-gui-helper command handling.
package commands

import (
	"fmt"

	"github.com/godbus/dbus/v5"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/ubuntu/decorate"
	"github.com/xerolinux/xfprintd-gui/internal/allowlist"
	"github.com/xerolinux/xfprintd-gui/internal/cmdhandler"
	"github.com/xerolinux/xfprintd-gui/internal/config"
	"github.com/xerolinux/xfprintd-gui/internal/consts"
	"github.com/xerolinux/xfprintd-gui/internal/i18n"
	"github.com/xerolinux/xfprintd-gui/internal/pamconfig"
	"github.com/xerolinux/xfprintd-gui/internal/patch"
	"github.com/xerolinux/xfprintd-gui/internal/privilege"
	"github.com/xerolinux/xfprintd-gui/internal/services"
)

// App encapsulates the commands and configuration of the helper application.
type App struct {
	rootCmd cobra.Command
	viper   *viper.Viper

	config  config.Helper
	options options
}

// options are the configurable functional options of the application.
type options struct {
	configDirs []string
	allowlist  *allowlist.Allowlist
	targets    []services.Target
	privilege  []privilege.Option
	systemBus  func() (*dbus.Conn, error)
}
type option func(*options)

// ExitError is returned when the command ran to completion but the process must exit with Code.
// Err, when set, is the reason to report.
type ExitError struct {
	Code int
	Err  error
}

func (e ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return e.Err.Error()
}

func (e ExitError) Unwrap() error {
	return e.Err
}

// New registers commands and return a new App.
func New(opts ...option) *App {
	// Set default options.
	args := options{
		configDirs: []string{consts.DefaultConfigDir},
		systemBus:  dbus.SystemBus,
	}

	// Apply given options.
	for _, o := range opts {
		o(&args)
	}

	a := App{options: args}
	a.viper = viper.New()
	a.rootCmd = cobra.Command{
		Use:   fmt.Sprintf("%s COMMAND", consts.CmdName),
		Short: i18n.G("Apply, remove or check the fingerprint PAM configuration"),
		Long: i18n.G(`Apply, remove or check the fingerprint authentication block in PAM service files.

Targets are PAM service files given as an absolute path, a service name (login, sudo, polkit-1)
or a JSON object {"file":"/etc/pam.d/polkit-1","default":"/usr/lib/pam.d/polkit-1"}, where default
is the template to start from when the file does not exist yet.
Modifying commands must be run as root, typically through pkexec.`),
		Args: cmdhandler.SubcommandsRequiredWithSuggestions,
		RunE: cmdhandler.NoCmd,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Command parsing has been successful. Returns runtime (or
			// configuration) error now and so, don't print usage.
			a.rootCmd.SilenceUsage = true

			return config.Init(consts.CmdName, *cmd, a.viper, a.options.configDirs, func() error {
				return config.LoadConfig(&a.config, a.viper)
			})
		},

		// We display usage error ourselves
		SilenceErrors: true,
	}

	a.rootCmd.PersistentFlags().CountP("verbose", "v", i18n.G("issue INFO (-v), DEBUG (-vv) or DEBUG with caller (-vvv) output"))
	err := a.viper.BindPFlag("verbose", a.rootCmd.PersistentFlags().Lookup("verbose"))
	decorate.LogOnError(&err)

	a.rootCmd.PersistentFlags().StringP("config", "c", "", i18n.G("use a specific configuration file"))

	a.rootCmd.PersistentFlags().String("patches-dir", "", i18n.G("read patch fragments from this directory, like %s, instead of the builtin configurations", consts.DefaultPatchesDir))
	err = a.viper.BindPFlag("patches-dir", a.rootCmd.PersistentFlags().Lookup("patches-dir"))
	decorate.LogOnError(&err)

	// Install subcommands
	a.installPAM()
	a.installStatus()
	a.installVersion()
	cmdhandler.InstallCompletionCmd(&a.rootCmd)

	return &a
}

// Run executes the app.
func (a *App) Run() error {
	return a.rootCmd.Execute()
}

// UsageError returns if the error is a command parsing or runtime one.
func (a App) UsageError() bool {
	return !a.rootCmd.SilenceUsage
}

// RootCmd returns a copy of the root command for the app. Shouldn't be in general necessary apart when running generators.
func (a App) RootCmd() cobra.Command {
	return a.rootCmd
}

// manager returns the PAM operations manager for the loaded configuration.
func (a App) manager() *pamconfig.Manager {
	var resolverOpts []patch.Option
	if a.config.PatchesDir != "" {
		resolverOpts = append(resolverOpts, patch.WithPatchesDir(a.config.PatchesDir))
	}

	var opts []pamconfig.Option
	if a.options.allowlist != nil {
		opts = append(opts, pamconfig.WithAllowlist(*a.options.allowlist))
	}
	if a.options.targets != nil {
		opts = append(opts, pamconfig.WithTargets(a.options.targets))
	}

	return pamconfig.New(patch.NewResolver(resolverOpts...), opts...)
}
