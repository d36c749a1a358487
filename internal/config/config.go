// Package config loads the helper configuration from flags and an optional root owned file.
package config

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/ubuntu/decorate"
	"github.com/xerolinux/xfprintd-gui/internal/consts"
	"github.com/xerolinux/xfprintd-gui/internal/i18n"
	"github.com/xerolinux/xfprintd-gui/internal/log"
)

// Helper is the configuration of the helper commands.
type Helper struct {
	Verbose int `mapstructure:"verbose"`
	// PatchesDir is the directory holding the patch fragments. Builtin patches are used when empty.
	PatchesDir string `mapstructure:"patches-dir"`
}

// SetVerboseMode change ErrorFormat and logs between very, middly and non verbose.
func SetVerboseMode(level int) {
	var reportCaller bool
	switch level {
	case 0:
		logrus.SetLevel(consts.DefaultLogLevel)
	case 1:
		logrus.SetLevel(logrus.InfoLevel)
	case 3:
		reportCaller = true
		fallthrough
	default:
		logrus.SetLevel(logrus.DebugLevel)
	}
	log.SetReportCaller(reportCaller)
}

// Init sets verbosity level and loads the configuration file <name>.yaml, then calls configLoaded
// to let the caller deserialize it.
//
// The file is the one given by the config flag, or is searched for in configDirs only: the helper
// runs elevated and must not pick up a configuration from the invoking user. Environment
// variables are not read for the same reason.
func Init(name string, cmd cobra.Command, vip *viper.Viper, configDirs []string, configLoaded func() error) (err error) {
	defer decorate.OnError(&err, i18n.G("can't load configuration"))

	// Force a visit of the local flags so persistent flags for all parents are merged.
	cmd.LocalFlags()

	// Get cmdline flag for verbosity to configure logger until we have everything parsed.
	v, err := cmd.Flags().GetCount("verbose")
	if err != nil {
		return fmt.Errorf("internal error: no persistent verbose flag installed on cmd: %w", err)
	}

	SetVerboseMode(v)

	if v, err := cmd.Flags().GetString("config"); err == nil && v != "" {
		vip.SetConfigFile(v)
	} else {
		vip.SetConfigName(name)
		vip.SetConfigType("yaml")
		for _, d := range configDirs {
			vip.AddConfigPath(d)
		}
	}

	if err := vip.ReadInConfig(); err != nil {
		var e viper.ConfigFileNotFoundError
		if errors.As(err, &e) {
			log.Infof(context.Background(), "No configuration file: %v.\nWe will only use the defaults or flags.", e)
		} else {
			return fmt.Errorf("invalid configuration file: %w", err)
		}
	} else {
		log.Infof(context.Background(), "Using configuration file: %v", vip.ConfigFileUsed())
		// The verbosity level can be set in the configuration file.
		if vip.IsSet("verbose") && !cmd.Flags().Changed("verbose") {
			SetVerboseMode(vip.GetInt("verbose"))
		}
	}

	return configLoaded()
}

// LoadConfig takes c and unmarshall current configuration to it.
func LoadConfig(c interface{}, viper *viper.Viper) error {
	if err := viper.Unmarshal(&c); err != nil {
		return fmt.Errorf("unable to decode configuration into struct: %w", err)
	}
	return nil
}
