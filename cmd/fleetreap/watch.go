package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fleetreap/internal/adapter/docker"
	"fleetreap/internal/clockcheck"
	"fleetreap/internal/fleet"
	"fleetreap/internal/loop"

	"github.com/spf13/cobra"
)

func watchCmd(configPath *string) *cobra.Command {
	var (
		rf       reapFlags
		interval time.Duration
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Reap on an interval until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			settings, err := rf.Resolve(cmd, *configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("interval") {
				settings.Interval = interval
			}
			if settings.Interval <= 0 {
				settings.Interval = loop.DefaultInterval
			}

			rt, err := docker.NewRuntime()
			if err != nil {
				return err
			}
			defer func() { _ = rt.Close() }()

			var checker *clockcheck.Checker
			if settings.ClockCheck {
				checker = clockcheck.New(fleet.RealClock{})
				go checker.Run(ctx)
			}

			reaper := &fleet.Reaper{Runtime: rt, Image: settings.Image, Policy: settings.Policy}
			slog.Info("watching fleet",
				"image", settings.Image,
				"interval", settings.Interval,
				"dry_run", settings.Policy.DryRun)

			runner := &loop.Runner{
				Interval: settings.Interval,
				Pass: func(ctx context.Context) error {
					if checker != nil {
						if s := checker.Status(); s.Error == "" && !s.CheckedAt.IsZero() && !s.Healthy {
							slog.Warn("host clock skewed", "offset", s.Offset)
						}
					}

					outcomes, err := reaper.Pass(ctx)
					if err != nil {
						return err
					}
					s := fleet.Summarize(outcomes)
					slog.Info("pass complete",
						"discovered", s.Discovered,
						"evicted", s.Evicted,
						"would_evict", s.WouldEvict,
						"retained", s.Retained,
						"skipped", s.Skipped,
						"failed", s.Failed)
					return nil
				},
			}
			return runner.Run(ctx)
		},
	}

	rf.Bind(cmd)
	cmd.Flags().DurationVar(&interval, "interval", loop.DefaultInterval, "Time between passes")
	return cmd
}
