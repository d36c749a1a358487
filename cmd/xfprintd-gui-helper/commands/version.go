package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/xerolinux/xfprintd-gui/internal/cmdhandler"
	"github.com/xerolinux/xfprintd-gui/internal/consts"
	"github.com/xerolinux/xfprintd-gui/internal/i18n"
)

func (a *App) installVersion() {
	cmd := &cobra.Command{
		Use:               "version",
		Short:             i18n.G("Returns version of the helper and exits"),
		Args:              cobra.NoArgs,
		ValidArgsFunction: cmdhandler.NoValidArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", consts.CmdName, consts.Version)
			return err
		},
	}
	a.rootCmd.AddCommand(cmd)
}
