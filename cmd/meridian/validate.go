package main

import (
	"fmt"

	"github.com/aretw0/meridian"
	"github.com/aretw0/meridian/internal/validator"
	"github.com/spf13/cobra"
)

func newValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check the world for authoring mistakes",
		Long: `Loads the world without building an engine and reports duplicate areas,
dangling edges, broken corridors and areas no seed can reach.
Errors fail the command; warnings are printed but tolerated.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup(cmd)
			if err != nil {
				return err
			}
			loader, err := meridian.OpenLoader(cfg.World, logger)
			if err != nil {
				return err
			}
			data, err := loader.Load(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to load world: %w", err)
			}
			if len(cfg.Seeds) > 0 {
				data.Seeds = cfg.Seeds
			}

			report := validator.Validate(data)
			out := cmd.OutOrStdout()

			if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
				if err := writeJSON(out, report); err != nil {
					return err
				}
				return report.Err()
			}

			for _, issue := range report.Issues {
				fmt.Fprintf(out, "%-7s %s\n", issue.Severity, issue)
			}
			if err := report.Err(); err != nil {
				return fmt.Errorf("validation failed: %w", err)
			}
			fmt.Fprintf(out, "World is valid! ✅ (%d areas, %d sequences, %d warnings)\n",
				report.Areas, report.Sequences, len(report.Issues))
			return nil
		},
	}
	cmd.Flags().Bool("json", false, "Print the report as JSON")
	return cmd
}
