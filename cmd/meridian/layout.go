package main

import (
	"github.com/aretw0/meridian/internal/presentation/tui"
	"github.com/spf13/cobra"
)

func newLayoutCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Build the hex layout from the world seeds",
		Long: `Runs the breadth-first hex placement from every seed and draws the result.
Layouts are cached under a key derived from the world fingerprint, the seeds
and the search radius, so repeated calls are served from the cache backend.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, _, _, err := openRuntime(cmd)
			if err != nil {
				return err
			}
			defer rt.Close()

			if fresh, _ := cmd.Flags().GetBool("fresh"); fresh {
				if err := rt.Engine.InvalidateLayout(cmd.Context()); err != nil {
					return err
				}
			}

			layout, err := rt.Engine.Layout(cmd.Context())
			if err != nil {
				return err
			}
			if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
				return writeJSON(cmd.OutOrStdout(), layout)
			}
			tui.RenderLayout(cmd.OutOrStdout(), layout)
			return nil
		},
	}
	cmd.Flags().Bool("json", false, "Print positions as JSON")
	cmd.Flags().Bool("fresh", false, "Drop the cached layout before building")
	return cmd
}
