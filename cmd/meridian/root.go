package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/aretw0/meridian/internal/cli"
	"github.com/aretw0/meridian/internal/config"
	"github.com/spf13/cobra"
)

// NewRootCmd assembles the command tree. Each call returns fresh flag state.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "meridian",
		Short: "Meridian is a procedural world topology engine",
		Long: `Meridian turns an authored adjacency graph of named areas into a navigable
world: hex layouts seeded from real positions, liminal corridors between
distant areas and climate-blended tile maps at area borders.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().StringP("world", "w", "", "World file (YAML/JSON) or directory of area documents")
	rootCmd.PersistentFlags().StringP("config", "c", "meridian.yaml", "Config file; missing files are ignored")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn or error")
	rootCmd.PersistentFlags().String("cache", "", "Layout cache backend: none, memory, file or redis")

	rootCmd.AddCommand(
		newValidateCmd(),
		newLayoutCmd(),
		newNavigateCmd(),
		newEdgeCmd(),
		newSequencesCmd(),
		newGraphCmd(),
		newBlendCmd(),
		newExportCmd(),
		newServeCmd(),
		newMCPCmd(),
		newVersionCmd(),
	)
	return rootCmd
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setup resolves config (flag > env > file > default) and the logger.
func setup(cmd *cobra.Command) (*config.Config, *slog.Logger, error) {
	flags := cmd.Flags()
	configPath, _ := flags.GetString("config")
	world, _ := flags.GetString("world")
	level, _ := flags.GetString("log-level")
	cache, _ := flags.GetString("cache")

	cfg, err := cli.LoadConfig(configPath, cli.Overrides{World: world, LogLevel: level, Cache: cache})
	if err != nil {
		return nil, nil, err
	}
	logger, err := cli.NewLogger(cfg.LogLevel)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}

// openRuntime builds the engine for commands that need one.
func openRuntime(cmd *cobra.Command, opts ...cli.FactoryOption) (*cli.Runtime, *config.Config, *slog.Logger, error) {
	cfg, logger, err := setup(cmd)
	if err != nil {
		return nil, nil, nil, err
	}
	rt, err := cli.CreateEngine(cmd.Context(), cfg, logger, opts...)
	if err != nil {
		return nil, nil, nil, err
	}
	return rt, cfg, logger, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
