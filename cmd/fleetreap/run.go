package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"fleetreap/cmd/fleetreap/ui"
	"fleetreap/internal/adapter/docker"
	"fleetreap/internal/clockcheck"
	"fleetreap/internal/fleet"
	"fleetreap/internal/telemetry"

	"github.com/docker/go-units"
	"github.com/spf13/cobra"
)

func runCmd(configPath *string) *cobra.Command {
	var (
		rf     reapFlags
		strict bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a single reap pass",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			settings, err := rf.Resolve(cmd, *configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("strict") {
				settings.Strict = strict
			}

			rt, err := docker.NewRuntime()
			if err != nil {
				return err
			}
			defer func() { _ = rt.Close() }()

			outcomes, err := reapOnce(ctx, rt, settings)
			if err != nil {
				return err
			}

			printOutcomes(outcomes)
			summary := fleet.Summarize(outcomes)
			printSummary(summary, settings.Policy.DryRun)

			return strictErr(summary, settings.Strict)
		},
	}

	rf.Bind(cmd)
	cmd.Flags().BoolVar(&strict, "strict", false, "Exit non-zero when any eviction fails")
	return cmd
}

// reapOnce runs one pass as a traced operation so the terminal UI can
// render step progress while the pass works.
func reapOnce(ctx context.Context, rt fleet.ContainerRuntime, settings reapSettings) ([]fleet.Outcome, error) {
	out := ui.NewTelemetryOutput()
	defer out.Close()
	tracer := out.Tracer("fleetreap/cmd")

	var steps []telemetry.PlannedStep
	if settings.ClockCheck {
		steps = append(steps, telemetry.PlannedStep{ID: "clock-check", Title: "checking host clock"})
	}
	steps = append(steps, telemetry.PlannedStep{ID: "reap", Title: "reaping " + settings.Image})

	op, err := telemetry.EmitPlan(ctx, tracer, "reap.pass", telemetry.Plan{Steps: steps})
	if err != nil {
		return nil, err
	}

	if settings.ClockCheck {
		// Skew is reported, never enforced, so the step cannot fail.
		_ = op.RunStep(op.Context(), "clock-check", func(context.Context) error {
			warnOnSkew(clockcheck.New(fleet.RealClock{}).CheckOnce())
			return nil
		})
	}

	var outcomes []fleet.Outcome
	err = op.RunStep(op.Context(), "reap", func(ctx context.Context) error {
		reaper := &fleet.Reaper{Runtime: rt, Image: settings.Image, Policy: settings.Policy}
		var passErr error
		outcomes, passErr = reaper.Pass(ctx)
		return passErr
	})
	op.End(err)
	if err != nil {
		return nil, err
	}
	return outcomes, nil
}

// strictErr maps eviction failures to the process exit code. Outside
// strict mode a pass with failed evictions still exits clean; the
// failures are in the outcomes and the log.
func strictErr(s fleet.Summary, strict bool) error {
	if strict && s.Failed > 0 {
		return fmt.Errorf("%d eviction(s) failed", s.Failed)
	}
	return nil
}

func warnOnSkew(status clockcheck.Status) {
	switch {
	case status.Error != "":
		fmt.Println(ui.WarnMsg("clock check failed: %s", status.Error))
	case !status.Healthy:
		fmt.Println(ui.WarnMsg("host clock is %v off NTP time; container ages may be wrong", status.Offset))
	}
}

func printOutcomes(outcomes []fleet.Outcome) {
	if len(outcomes) == 0 {
		fmt.Println(ui.Muted("no containers found"))
		return
	}

	rows := make([][]string, 0, len(outcomes))
	for _, o := range outcomes {
		rows = append(rows, []string{
			fleet.ShortID(o.ID),
			o.Image,
			ageCell(o),
			decisionCell(o.Decision),
		})
	}
	fmt.Println(ui.Table([]string{"CONTAINER", "IMAGE", "AGE", "DECISION"}, rows))
}

func ageCell(o fleet.Outcome) string {
	if o.Decision == fleet.SkippedUnparsable {
		return ui.Warn("unknown")
	}
	return humanAge(o.AgeMinutes)
}

// humanAge renders a parsed age for table output. Negative ages come
// from containers whose creation time is ahead of the host clock.
func humanAge(minutes int64) string {
	if minutes < 0 {
		return "in the future"
	}
	return units.HumanDuration(time.Duration(minutes) * time.Minute)
}

func decisionCell(d fleet.Decision) string {
	switch d {
	case fleet.Evicted:
		return ui.Success(d.String())
	case fleet.EvictionFailed:
		return ui.ErrorStyle.Render(d.String())
	case fleet.RetainedWouldEvict, fleet.SkippedUnparsable:
		return ui.Warn(d.String())
	default:
		return ui.Muted(d.String())
	}
}

func printSummary(s fleet.Summary, dryRun bool) {
	fmt.Print(ui.KeyValues("",
		ui.KV("discovered", strconv.Itoa(s.Discovered)),
		ui.KV("evicted", strconv.Itoa(s.Evicted)),
		ui.KV("would evict", strconv.Itoa(s.WouldEvict)),
		ui.KV("retained", strconv.Itoa(s.Retained)),
		ui.KV("skipped", strconv.Itoa(s.Skipped)),
		ui.KV("failed", strconv.Itoa(s.Failed)),
		ui.KV("dry run", ui.Bool(dryRun)),
	))

	switch {
	case s.Failed > 0:
		fmt.Println(ui.ErrorMsg("%d eviction(s) failed; see log for details", s.Failed))
	case s.Evicted > 0:
		fmt.Println(ui.SuccessMsg("evicted %d container(s)", s.Evicted))
	}
}
