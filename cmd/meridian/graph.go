package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newGraphCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Export the world graph visualization",
		Long: `Outputs a Mermaid flowchart of areas grouped by region, with corridors drawn
as dashed edges and seeds highlighted. --current and --visited overlay a walked trail.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, _, _, err := openRuntime(cmd)
			if err != nil {
				return err
			}
			defer rt.Close()

			current, _ := cmd.Flags().GetString("current")
			visited, _ := cmd.Flags().GetStringSlice("visited")
			fmt.Fprint(cmd.OutOrStdout(), rt.Engine.MermaidTrail(current, visited))
			return nil
		},
	}
	cmd.Flags().String("current", "", "Area to mark as current")
	cmd.Flags().StringSlice("visited", nil, "Areas to mark as visited")
	return cmd
}
