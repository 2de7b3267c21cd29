package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/meridian"
	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of meridian",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "meridian version %s\n", strings.TrimSpace(meridian.Version))
		},
	}
}
