package main

import (
	"fmt"

	"github.com/aretw0/meridian"
	loamAdapter "github.com/aretw0/meridian/pkg/adapters/loam"
	"github.com/spf13/cobra"
)

func newExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export DIR",
		Short: "Write the world as a directory of area documents",
		Long: `Reads the world and writes one markdown document per area, plus one per
authored corridor, into DIR. The directory can be passed back as --world and
watched for hot reload by serve --watch.`,
		Args: cobra.ExactArgs(1),
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

			n, err := loamAdapter.Export(cmd.Context(), args[0], data)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d documents to %s\n", n, args[0])
			return nil
		},
	}
}
