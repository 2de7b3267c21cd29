package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/meridian/internal/presentation/tui"
	"github.com/aretw0/meridian/pkg/domain"
	"github.com/spf13/cobra"
)

func newSequencesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sequences [KEY]",
		Short: "List liminal corridors, derived reverses included",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, _, _, err := openRuntime(cmd)
			if err != nil {
				return err
			}
			defer rt.Close()

			seqs := rt.Engine.Sequences()
			if len(args) == 1 {
				seq, ok := rt.Engine.Sequence(args[0])
				if !ok {
					return fmt.Errorf("sequence %q not found", args[0])
				}
				seqs = []domain.LiminalSequence{seq}
			}

			out := cmd.OutOrStdout()
			if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
				return writeJSON(out, seqs)
			}
			rendered, err := tui.NewRenderer(tui.Width(out, 100))(sequenceTable(seqs))
			if err != nil {
				return err
			}
			fmt.Fprint(out, rendered)
			return nil
		},
	}
	cmd.Flags().Bool("json", false, "Print sequences as JSON")
	return cmd
}

func sequenceTable(seqs []domain.LiminalSequence) string {
	var sb strings.Builder
	sb.WriteString("| Key | Origin | Destination | Steps | Derived |\n|---|---|---|---|---|\n")
	for _, s := range seqs {
		steps := make([]string, len(s.Steps))
		for i, step := range s.Steps {
			steps[i] = string(step)
		}
		origin := s.Origin
		if origin == "" {
			origin = "-"
		}
		derived := ""
		if s.Derived {
			derived = "yes"
		}
		fmt.Fprintf(&sb, "| %s | %s | %s | %s | %s |\n", s.Key, origin, s.Destination, strings.Join(steps, " → "), derived)
	}
	return sb.String()
}
