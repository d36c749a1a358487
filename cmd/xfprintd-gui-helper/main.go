// Package main is the entry point for xfprintd-gui-helper command line.
//
// xfprintd-gui-helper is the privileged helper, run through pkexec, which applies, removes and
// checks the fingerprint authentication block in PAM service files.
package main

import (
	"errors"
	"os"

	"github.com/coreos/go-systemd/v22/journal"
	log "github.com/sirupsen/logrus"
	"github.com/xerolinux/xfprintd-gui/cmd/xfprintd-gui-helper/commands"
	"github.com/xerolinux/xfprintd-gui/internal/consts"
	"github.com/xerolinux/xfprintd-gui/internal/i18n"
	"github.com/xerolinux/xfprintd-gui/internal/loghooks"
)

type app interface {
	Run() error
	UsageError() bool
}

func run(a app) int {
	i18n.InitI18nDomain(consts.TEXTDOMAIN)
	log.SetFormatter(&log.TextFormatter{
		DisableLevelTruncation: true,
		DisableTimestamp:       true,
	})
	log.SetOutput(os.Stderr)

	err := a.Run()
	if err == nil {
		return 0
	}

	// Per target errors are already printed on stdout.
	var exitErr commands.ExitError
	if errors.As(err, &exitErr) {
		if exitErr.Err != nil {
			log.Error(exitErr.Err)
		}
		return exitErr.Code
	}

	log.Error(err)
	if a.UsageError() {
		return 2
	}
	return 1
}

//go:generate go run ../generate_completion_documentation.go completion ../../generated
//go:generate go run ../generate_completion_documentation.go man ../../generated
//go:generate go run ../generate_completion_documentation.go patches ../../generated

func main() {
	// Changes requested through pkexec are traced in the journal.
	if journal.Enabled() {
		log.AddHook(loghooks.NewJournal())
	}

	os.Exit(run(commands.New()))
}
