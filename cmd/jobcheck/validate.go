package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cory-johannsen/oddjobs/internal/game/ruleset"
)

func newValidateCmd(a *app) *cobra.Command {
	var single bool
	cmd := &cobra.Command{
		Use:   "validate [FILE...]",
		Short: "Parse job files and report the first structural error",
		Long: "Without arguments, validate loads every job collection in the jobs directory. " +
			"With arguments, each file is parsed as a job collection, or as a single job with --single.",
		RunE: func(cmd *cobra.Command, args []string) error {
			start := time.Now()
			if len(args) == 0 {
				return a.validateDir(cmd, start)
			}
			total := 0
			for _, path := range args {
				n, err := validateFile(path, single)
				if err != nil {
					a.logger.Error("job file invalid", zap.String("file", path), zap.Error(err))
					return err
				}
				a.logger.Debug("job file valid", zap.String("file", path), zap.Int("jobs", n))
				total += n
			}
			a.logger.Info("job files valid",
				zap.Int("files", len(args)),
				zap.Int("jobs", total),
				zap.Duration("elapsed", time.Since(start)),
			)
			fmt.Fprintf(cmd.OutOrStdout(), "%d jobs OK\n", total)
			return nil
		},
	}
	cmd.Flags().BoolVar(&single, "single", false, "parse each file as one job instead of a collection")
	return cmd
}

func (a *app) validateDir(cmd *cobra.Command, start time.Time) error {
	dir := a.cfg.Content.JobsDir
	reg, err := ruleset.LoadJobs(cmd.Context(), dir)
	if err != nil {
		a.logger.Error("job directory invalid", zap.String("dir", dir), zap.Error(err))
		return err
	}
	for _, name := range reg.Names() {
		job, _ := reg.Job(name)
		a.logger.Debug("job valid", zap.String("job", name), zap.String("summary", job.Describe()))
	}
	a.logger.Info("job directory valid",
		zap.String("dir", dir),
		zap.Int("jobs", reg.Len()),
		zap.Duration("elapsed", time.Since(start)),
	)
	fmt.Fprintf(cmd.OutOrStdout(), "%d jobs OK\n", reg.Len())
	return nil
}

func validateFile(path string, single bool) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()
	if single {
		if _, err := ruleset.ReadJob(f); err != nil {
			return 0, fmt.Errorf("parsing job file %s: %w", path, err)
		}
		return 1, nil
	}
	jobs, err := ruleset.ReadJobs(f)
	if err != nil {
		return 0, fmt.Errorf("parsing job file %s: %w", path, err)
	}
	return len(jobs), nil
}
