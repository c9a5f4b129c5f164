package main

import (
	"fmt"

	"fleetreap/cmd/fleetreap/ui"
	"fleetreap/config"
	"fleetreap/internal/adapter/docker"
	"fleetreap/internal/fleet"

	"github.com/spf13/cobra"
)

func listCmd(configPath *string) *cobra.Command {
	var image string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show the fleet and container ages without reaping",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			target := firstNonEmpty(image, cfg.Image, DefaultImage)

			rt, err := docker.NewRuntime()
			if err != nil {
				return err
			}
			defer func() { _ = rt.Close() }()

			containers, err := rt.ListByAncestor(cmd.Context(), target)
			if err != nil {
				return err
			}
			if len(containers) == 0 {
				fmt.Println(ui.Muted("no containers found for " + target))
				return nil
			}

			now := fleet.RealClock{}.Now()
			rows := make([][]string, 0, len(containers))
			for _, c := range containers {
				age := ui.Warn("unknown")
				if minutes, err := fleet.EvaluateAge(c, now); err == nil {
					age = humanAge(minutes)
				}
				rows = append(rows, []string{fleet.ShortID(c.ID), c.Image, age, c.RawCreated})
			}
			fmt.Println(ui.Table([]string{"CONTAINER", "IMAGE", "AGE", "CREATED"}, rows))
			fmt.Println(ui.InfoMsg("%d container(s) descend from %s", len(containers), target))
			return nil
		},
	}

	cmd.Flags().StringVar(&image, "image", "", "Ancestor image identifying the fleet (default "+DefaultImage+")")
	return cmd
}
