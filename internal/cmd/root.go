package cmd

import (
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/stateful/qedit/internal/config"
	"github.com/stateful/qedit/internal/log"
)

var (
	fChdir      string
	fConfigName string
	fVerbose    bool

	cfg *config.Config
)

func Root() *cobra.Command {
	cmd := cobra.Command{
		Use:           "qedit",
		Short:         "Convert, inspect and edit question documents",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return loadConfig()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			log.Flush()
		},
	}

	pflags := cmd.PersistentFlags()

	pflags.StringVar(&fChdir, "chdir", ".", "Switch to a different working directory before executing the command.")
	pflags.StringVar(&fConfigName, "config", "qedit", "A name of the YAML configuration file, without extension.")
	pflags.BoolVarP(&fVerbose, "verbose", "v", false, "Log debug messages to stderr.")

	cmd.AddCommand(fmtCmd())
	cmd.AddCommand(treeCmd())
	cmd.AddCommand(tableCmd())
	cmd.AddCommand(replayCmd())

	return &cmd
}

func loadConfig() error {
	if err := os.Chdir(fChdir); err != nil {
		return errors.Wrapf(err, "failed to change directory to %q", fChdir)
	}

	var err error
	cfg, err = config.NewLoader(fConfigName, "yaml", os.DirFS("."), config.WithLogger(log.Get())).Load()
	if err != nil {
		return err
	}

	switch {
	case fVerbose:
		err = log.Set("", true)
	case cfg.Log.Enabled:
		err = log.Set(cfg.Log.Path, cfg.Log.Verbose)
	}
	if err != nil {
		return errors.Wrap(err, "failed to set up logger")
	}

	log.Get().Debug("loaded config", zap.String("name", fConfigName), zap.Any("config", cfg))
	return nil
}
