package commands

import (
	"os/user"

	"github.com/spf13/cobra"
	"github.com/xerolinux/xfprintd-gui/internal/cmdhandler"
	"github.com/xerolinux/xfprintd-gui/internal/fprintd"
	"github.com/xerolinux/xfprintd-gui/internal/i18n"
	"github.com/xerolinux/xfprintd-gui/internal/log"
	"github.com/xerolinux/xfprintd-gui/internal/pamconfig"
	"github.com/xerolinux/xfprintd-gui/internal/status"
	"github.com/xerolinux/xfprintd-gui/internal/systemd"
)

func (a *App) installStatus() {
	var userName *string
	cmd := &cobra.Command{
		Use:   "status",
		Short: i18n.G("Print fingerprint readers and PAM configuration state"),
		Long: i18n.G(`Print, as YAML, the fprintd service state, the fingerprint readers with the fingers enrolled
by the user and which known PAM services have the fingerprint configuration applied.
This command does not need any privilege and never modifies anything.`),
		Args:              cobra.NoArgs,
		ValidArgsFunction: cmdhandler.NoValidArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			name := *userName
			if name == "" {
				u, err := user.Current()
				if err != nil {
					return err
				}
				name = u.Username
			}

			var opts []status.Option
			if bus, err := a.options.systemBus(); err != nil {
				log.Warningf(ctx, i18n.G("Can't connect to the system bus: %v"), err)
			} else {
				opts = append(opts, status.WithFprintd(fprintd.New(bus)))
				if s, err := systemd.New(bus); err != nil {
					log.Warning(ctx, err)
				} else {
					opts = append(opts, status.WithSystemd(s))
				}
			}

			r := status.Collect(ctx, a.manager(), name, opts...)
			if err := r.Write(cmd.OutOrStdout()); err != nil {
				return err
			}
			if code := r.ExitCode(); code != pamconfig.ExitOK {
				return ExitError{Code: code}
			}
			return nil
		},
	}
	userName = cmd.Flags().StringP("user", "u", "", i18n.G("list enrolled fingers of this user instead of the current one"))

	a.rootCmd.AddCommand(cmd)
}
