package main

import (
	"fmt"
	"os"

	"fleetreap/cmd/fleetreap/ui"
	"fleetreap/config"
	"fleetreap/internal/logging"
	"fleetreap/internal/support/buildinfo"

	"github.com/spf13/cobra"
)

func main() {
	var (
		debug         bool
		noInteraction bool
		configPath    string
	)

	root := &cobra.Command{
		Use:           "fleetreap",
		Short:         "Reap containers by image ancestry and age",
		Version:       buildinfo.Version,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			ui.ConfigureInteraction(noInteraction)

			level := logging.LevelInfo
			if cfg, err := config.Load(configPath); err == nil && cfg.LogLevel != "" {
				level = cfg.LogLevel
			}
			if debug {
				level = logging.LevelDebug
			}
			return logging.Configure(level)
		},
	}
	root.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")
	root.PersistentFlags().BoolVar(&noInteraction, "no-interaction", false, "Disable colors and in-place terminal redraw")
	root.PersistentFlags().StringVar(&configPath, "config", "", "Config file path (default "+config.Path()+")")

	root.AddCommand(runCmd(&configPath))
	root.AddCommand(watchCmd(&configPath))
	root.AddCommand(listCmd(&configPath))

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
