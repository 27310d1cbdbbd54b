package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/cory-johannsen/oddjobs/internal/game/ruleset"
)

func newShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show NAME",
		Short: "Print one job from the jobs directory in canonical form",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := ruleset.LoadJobs(cmd.Context(), a.cfg.Content.JobsDir)
			if err != nil {
				return err
			}
			job, ok := reg.Job(args[0])
			if !ok {
				return fmt.Errorf("job %q not found in %s", args[0], a.cfg.Content.JobsDir)
			}
			out, err := ruleset.MarshalJobs(map[string]*ruleset.Job{args[0]: job})
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
}

func newListCmd(a *app) *cobra.Command {
	var className, locationName string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List job names, optionally filtered by class or location",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			reg, err := ruleset.LoadJobs(cmd.Context(), a.cfg.Content.JobsDir)
			if err != nil {
				return err
			}
			names := reg.Names()
			if className != "" {
				c, err := parseClassArg(className)
				if err != nil {
					return err
				}
				names = intersect(names, reg.JobsForClass(c))
			}
			if locationName != "" {
				loc, ok := ruleset.ParseLocation(locationName)
				if !ok {
					return fmt.Errorf("unknown location %q", locationName)
				}
				names = intersect(names, reg.JobsAt(loc))
			}
			for _, name := range names {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&className, "class", "", "class name or numeric code")
	cmd.Flags().StringVar(&locationName, "location", "", "location name")
	return cmd
}

// parseClassArg accepts a symbolic class name or its numeric code.
func parseClassArg(s string) (ruleset.Class, error) {
	if c, ok := ruleset.ParseClass(s); ok {
		return c, nil
	}
	code, err := strconv.ParseUint(s, 10, 16)
	if err != nil {
		return 0, fmt.Errorf("unknown class %q", s)
	}
	return ruleset.ClassFromCode(uint16(code))
}

// intersect keeps the members of a that also appear in b, in a's order.
func intersect(a, b []string) []string {
	keep := make(map[string]bool, len(b))
	for _, s := range b {
		keep[s] = true
	}
	var out []string
	for _, s := range a {
		if keep[s] {
			out = append(out, s)
		}
	}
	return out
}
