package main

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cory-johannsen/oddjobs/internal/game/ruleset"
)

func newCodesCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "codes [classes|weapons]",
		Short:     "Print the class or weapon category code tables",
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"classes", "weapons"},
		RunE: func(cmd *cobra.Command, args []string) error {
			which := "classes"
			if len(args) == 1 {
				which = args[0]
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			switch which {
			case "classes":
				fmt.Fprintln(tw, "CODE\tNAME\tLABEL")
				for _, c := range ruleset.Classes() {
					fmt.Fprintf(tw, "%d\t%s\t%s\n", c.Code(), c.Name(), c)
				}
			case "weapons":
				fmt.Fprintln(tw, "CODE\tNAME\tLABEL\tPLURAL")
				for _, w := range ruleset.WeaponCategories() {
					fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", w.Code(), w.Name(), w, w.Plural())
				}
			}
			return tw.Flush()
		},
	}
}

func newDecodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "decode class|weapon CODE",
		Short:     "Decode a numeric class or weapon category code",
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{"class", "weapon"},
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "class":
				code, err := strconv.ParseUint(args[1], 10, 16)
				if err != nil {
					return fmt.Errorf("class code %q: %w", args[1], err)
				}
				c, err := ruleset.ClassFromCode(uint16(code))
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%d %s (%s)\n", c.Code(), c.Name(), c)
			case "weapon":
				code, err := strconv.ParseUint(args[1], 10, 8)
				if err != nil {
					return fmt.Errorf("weapon category code %q: %w", args[1], err)
				}
				w, err := ruleset.WeaponCategoryFromCode(uint8(code))
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%d %s (%s)\n", w.Code(), w.Name(), w)
			default:
				return fmt.Errorf("unknown identifier family %q (expected class or weapon)", args[0])
			}
			return nil
		},
	}
}
