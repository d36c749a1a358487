package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/xerolinux/xfprintd-gui/internal/cmdhandler"
	"github.com/xerolinux/xfprintd-gui/internal/i18n"
	"github.com/xerolinux/xfprintd-gui/internal/pamconfig"
	"github.com/xerolinux/xfprintd-gui/internal/privilege"
	"github.com/xerolinux/xfprintd-gui/internal/services"
)

func (a *App) installPAM() {
	a.rootCmd.AddCommand(&cobra.Command{
		Use:   "apply TARGET...",
		Short: i18n.G("Insert the fingerprint configuration block in PAM files"),
		Long: i18n.G(`Insert the fingerprint configuration block right after the header of each TARGET.
An existing block is replaced, so that applying several times is safe.
A missing file is created from its default template, if any, or from an empty PAM file.`),
		Args:              cobra.MinimumNArgs(1),
		ValidArgsFunction: serviceNames,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runTargets(cmd, pamconfig.OpApply, args)
		},
	})
	a.rootCmd.AddCommand(&cobra.Command{
		Use:               "remove TARGET...",
		Short:             i18n.G("Remove the fingerprint configuration block from PAM files"),
		Long:              i18n.G(`Remove the fingerprint configuration block from each TARGET. Missing files and files outside of the allowed directories are left untouched.`),
		Args:              cobra.MinimumNArgs(1),
		ValidArgsFunction: serviceNames,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runTargets(cmd, pamconfig.OpRemove, args)
		},
	})
	a.rootCmd.AddCommand(&cobra.Command{
		Use:   "check TARGET...",
		Short: i18n.G("Check if the fingerprint configuration is applied to PAM files"),
		Long: i18n.G(`Check if the fingerprint configuration block is present in each TARGET.
Exits with 0 if all targets are applied, 1 if any is not, and 2 if any could not be read.
This command does not need any privilege and never modifies anything.`),
		Args:              cobra.MinimumNArgs(1),
		ValidArgsFunction: serviceNames,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runTargets(cmd, pamconfig.OpCheck, args)
		},
	})

	a.rootCmd.AddCommand(&cobra.Command{
		Use:               "apply-all",
		Short:             i18n.G("Insert the fingerprint configuration block for all known services"),
		Args:              cobra.NoArgs,
		ValidArgsFunction: cmdhandler.NoValidArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runAll(cmd, pamconfig.OpApply)
		},
	})
	a.rootCmd.AddCommand(&cobra.Command{
		Use:               "remove-all",
		Short:             i18n.G("Remove the fingerprint configuration block from all known services"),
		Args:              cobra.NoArgs,
		ValidArgsFunction: cmdhandler.NoValidArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runAll(cmd, pamconfig.OpRemove)
		},
	})
	a.rootCmd.AddCommand(&cobra.Command{
		Use:               "check-all",
		Short:             i18n.G("Check if the fingerprint configuration is applied to all known services"),
		Args:              cobra.NoArgs,
		ValidArgsFunction: cmdhandler.NoValidArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runAll(cmd, pamconfig.OpCheck)
		},
	})
}

func (a App) runTargets(cmd *cobra.Command, op pamconfig.Operation, args []string) error {
	ctx := cmd.Context()
	if err := a.requirePrivileges(ctx, op); err != nil {
		return err
	}
	return printReport(cmd.OutOrStdout(), a.manager().Run(ctx, op, args))
}

func (a App) runAll(cmd *cobra.Command, op pamconfig.Operation) error {
	ctx := cmd.Context()
	if err := a.requirePrivileges(ctx, op); err != nil {
		return err
	}

	m := a.manager()
	var r pamconfig.Report
	switch op {
	case pamconfig.OpApply:
		r = m.ApplyAll(ctx)
	case pamconfig.OpRemove:
		r = m.RemoveAll(ctx)
	case pamconfig.OpCheck:
		r = m.CheckAll(ctx)
	}
	return printReport(cmd.OutOrStdout(), r)
}

// requirePrivileges fails before touching any file if op modifies them and we are not root.
func (a App) requirePrivileges(ctx context.Context, op pamconfig.Operation) error {
	if op == pamconfig.OpCheck {
		return nil
	}
	if err := privilege.New(a.options.privilege...).RequireRoot(ctx); err != nil {
		return ExitError{Code: pamconfig.ExitPermissions, Err: err}
	}
	return nil
}

// printReport prints one line per target and returns the report exit code as an error if not successful.
func printReport(w io.Writer, r pamconfig.Report) error {
	for _, l := range r.Lines() {
		if _, err := fmt.Fprintln(w, l); err != nil {
			return err
		}
	}
	if code := r.ExitCode(); code != pamconfig.ExitOK {
		return ExitError{Code: code}
	}
	return nil
}

// serviceNames completes targets with the known service names.
func serviceNames(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	var names []string
	for _, s := range services.All() {
		names = append(names, s.Name())
	}
	return names, cobra.ShellCompDirectiveDefault
}
