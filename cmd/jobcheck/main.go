// Package main provides jobcheck, a command-line tool that validates and
// inspects job definition files.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/cory-johannsen/oddjobs/internal/config"
	"github.com/cory-johannsen/oddjobs/internal/observability"
)

// app carries the state shared by every subcommand once the root command's
// pre-run hook has loaded configuration.
type app struct {
	cfg    config.Config
	logger *zap.Logger
}

func (a *app) setup(cmd *cobra.Command, v *viper.Viper) error {
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return err
	}
	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config file: %w", err)
		}
	}
	cfg, err := config.LoadFromViper(v)
	if err != nil {
		return err
	}
	logger, err := observability.NewLogger(cfg.Logging, zapcore.Lock(zapcore.AddSync(cmd.ErrOrStderr())))
	if err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	a.cfg = cfg
	a.logger = logger
	return nil
}

func newRootCmd() *cobra.Command {
	a := &app{logger: zap.NewNop()}
	v := config.NewViper()

	root := &cobra.Command{
		Use:           "jobcheck",
		Short:         "Validate and inspect job definition files",
		Long:          "jobcheck parses job definition YAML files, reports structural errors, and decodes class and weapon category codes.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd, v)
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			_ = a.logger.Sync()
		},
	}
	flags := root.PersistentFlags()
	flags.String("config", "", "path to configuration file")
	flags.String("jobs-dir", "", "directory of job YAML files (overrides content.jobs_dir)")
	flags.String("log-level", "", "minimum log level (overrides logging.level)")
	_ = v.BindPFlag("content.jobs_dir", flags.Lookup("jobs-dir"))
	_ = v.BindPFlag("logging.level", flags.Lookup("log-level"))

	root.AddCommand(
		newValidateCmd(a),
		newShowCmd(a),
		newListCmd(a),
		newCodesCmd(),
		newDecodeCmd(),
	)
	return root
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
