package main

import (
	"fmt"

	"github.com/aretw0/meridian/internal/cli"
	"github.com/aretw0/meridian/internal/presentation/tui"
	"github.com/aretw0/meridian/pkg/domain"
	"github.com/spf13/cobra"
)

func newNavigateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "navigate AREA [DIRECTION]",
		Short: "Move through the world",
		Long: `With a direction, resolves a single move and prints the outcome: an adjacent
area, a liminal crossing or a random-exploration fallback.
Without one, starts an interactive session at AREA reading moves from stdin.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, _, logger, err := openRuntime(cmd)
			if err != nil {
				return err
			}
			defer rt.Close()

			out := cmd.OutOrStdout()
			render := tui.NewRenderer(tui.Width(out, 80))

			if len(args) == 1 {
				x := &cli.Explorer{
					Engine: rt.Engine,
					In:     cmd.InOrStdin(),
					Out:    out,
					Render: render,
					Logger: logger,
				}
				_, err := x.Run(cmd.Context(), args[0])
				return err
			}

			dir, err := domain.ParseDirection(args[1])
			if err != nil {
				return err
			}
			res := rt.Engine.Next(args[0], dir)
			if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
				return writeJSON(out, res)
			}
			card, err := render(tui.NavigationCard(args[0], dir, res))
			if err != nil {
				return err
			}
			fmt.Fprint(out, card)
			return nil
		},
	}
	cmd.Flags().Bool("json", false, "Print the single-move result as JSON")
	return cmd
}

func newEdgeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edge AREA DIRECTION",
		Short: "Classify one edge without gameplay fallback",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := domain.ParseDirection(args[1])
			if err != nil {
				return err
			}
			rt, _, _, err := openRuntime(cmd)
			if err != nil {
				return err
			}
			defer rt.Close()

			res := rt.Engine.Edge(args[0], dir)
			out := cmd.OutOrStdout()
			if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
				return writeJSON(out, res)
			}
			switch res.Kind {
			case domain.EdgeAdjacent:
				fmt.Fprintf(out, "%s %s: adjacent %s\n", res.From, dir.Name(), res.Target)
			case domain.EdgeLiminal:
				fmt.Fprintf(out, "%s %s: liminal %s -> %s (%d steps)\n",
					res.From, dir.Name(), res.Target, res.Sequence.Destination, len(res.Sequence.Steps))
			default:
				fmt.Fprintf(out, "%s %s: unknown (%s)\n", res.From, dir.Name(), res.Reason)
			}
			return nil
		},
	}
	cmd.Flags().Bool("json", false, "Print the resolution as JSON")
	return cmd
}
