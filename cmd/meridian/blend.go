package main

import (
	"fmt"

	"github.com/aretw0/meridian/internal/presentation/tui"
	"github.com/aretw0/meridian/pkg/domain"
	"github.com/spf13/cobra"
)

func newBlendCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "blend",
		Short: "Blend a tile map toward its neighbors' climates",
		Long: `Generates a tile map and runs the climate transition pass over it.
With --area the map takes the area's climate and biome, and its adjacent areas
supply neighbor climates. --neighbor entries override or add to those, e.g.
--neighbor N=COLD,E=ARID.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			area, _ := flags.GetString("area")
			climateName, _ := flags.GetString("climate")
			fill, _ := flags.GetString("fill")
			width, _ := flags.GetInt("width")
			height, _ := flags.GetInt("height")
			rawNeighbors, _ := flags.GetStringToString("neighbor")

			req := domain.BlendRequest{
				Area:    area,
				Climate: domain.ParseClimate(climateName),
				Fill:    domain.ParseBiome(fill),
				Width:   width,
				Height:  height,
			}
			if area == "" && climateName == "" {
				return fmt.Errorf("either --area or --climate is required")
			}
			if len(rawNeighbors) > 0 {
				req.Neighbors = make(map[domain.Direction]domain.Climate, len(rawNeighbors))
				for k, v := range rawNeighbors {
					dir, err := domain.ParseDirection(k)
					if err != nil {
						return err
					}
					req.Neighbors[dir] = domain.ParseClimate(v)
				}
			}

			rt, _, _, err := openRuntime(cmd)
			if err != nil {
				return err
			}
			defer rt.Close()

			res, err := rt.Engine.Blend(req)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if asJSON, _ := flags.GetBool("json"); asJSON {
				return writeJSON(out, res)
			}
			tui.RenderTiles(out, res.Map)
			fmt.Fprintf(out, "%d tiles rewritten\n", len(res.Zones))
			return nil
		},
	}
	cmd.Flags().String("area", "", "Area whose climate, biome and neighbors seed the pass")
	cmd.Flags().String("climate", "", "Source climate when no area is given")
	cmd.Flags().String("fill", "", "Biome to fill the generated map with")
	cmd.Flags().Int("width", 0, "Map width (default 32)")
	cmd.Flags().Int("height", 0, "Map height (default 32)")
	cmd.Flags().StringToString("neighbor", nil, "Neighbor climates by direction, e.g. N=COLD")
	cmd.Flags().Bool("json", false, "Print the map and transition zones as JSON")
	return cmd
}
