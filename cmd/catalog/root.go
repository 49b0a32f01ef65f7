// Root command for the catalog CLI.
package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/gamecatalog/internal/logging"
	"github.com/mesh-intelligence/gamecatalog/internal/menu"
	"github.com/mesh-intelligence/gamecatalog/internal/paths"
	"github.com/mesh-intelligence/gamecatalog/pkg/gamecatalog"
)

// app holds global flag values and the config and logger built before any
// subcommand runs.
type app struct {
	flagConfigDir string
	flagDataDir   string
	flagLogLevel  string

	configDir string
	cfg       *viper.Viper
	logger    *zap.Logger
}

// newRootCmd creates the top-level "catalog" command with global flags and
// all subcommands registered. Run without a subcommand it starts the
// interactive menu.
func newRootCmd() *cobra.Command {
	a := &app{logger: zap.NewNop()}

	root := &cobra.Command{
		Use:     "catalog",
		Short:   "A personal video-game catalog",
		Long:    "Catalog keeps a local list of games with their platform, genre and play status.\nRun without arguments for the interactive menu.",
		Version: gamecatalog.Version,
		Args:    cobra.NoArgs,
		// Errors are printed once by main.
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.logger.Sync()
		},
		RunE: a.runMenu,
	}

	root.PersistentFlags().StringVar(&a.flagConfigDir, "config-dir", "", "configuration directory (default: platform config dir)")
	root.PersistentFlags().StringVar(&a.flagDataDir, "data-dir", "", "data directory (default: platform data dir)")
	root.PersistentFlags().StringVar(&a.flagLogLevel, "log-level", "", "log level: debug, info, warn, error (overrides config)")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newInitCmd(a))
	root.AddCommand(newAddCmd(a))
	root.AddCommand(newListCmd(a))
	root.AddCommand(newUpdateCmd(a))
	root.AddCommand(newDeleteCmd(a))

	return root
}

// setup resolves the config directory, loads config.yaml, and builds the
// logger. The version command needs none of it.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	if cmd.Name() == "version" {
		return nil
	}

	configDir, err := paths.ResolveConfigDir(a.flagConfigDir)
	if err != nil {
		return sysError(err)
	}
	v, err := loadConfig(configDir)
	if err != nil {
		return sysError(err)
	}

	opts := logOptions(v)
	if a.flagLogLevel != "" {
		opts.Level = a.flagLogLevel
	}
	logger, err := logging.New(opts)
	if err != nil {
		return userError(err)
	}

	a.configDir = configDir
	a.cfg = v
	a.logger = logger
	return nil
}

func (a *app) runMenu(cmd *cobra.Command, args []string) error {
	store, err := a.newStore()
	if err != nil {
		return err
	}
	return menu.New(store, cmd.InOrStdin(), cmd.OutOrStdout(), a.logger).Run(cmd.Context())
}
