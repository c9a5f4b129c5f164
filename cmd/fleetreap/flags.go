package main

import (
	"fmt"
	"strings"
	"time"

	"fleetreap/config"
	"fleetreap/internal/fleet"

	"github.com/spf13/cobra"
)

// DefaultImage is the emulator lineage reaped when neither flag nor
// config names one.
const DefaultImage = "happysixd/osworld-docker"

// reapFlags binds the retention flags shared by run and watch.
type reapFlags struct {
	image      string
	minAge     int64
	reapAll    bool
	dryRun     bool
	clockCheck bool
}

func (f *reapFlags) Bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.image, "image", "", "Ancestor image identifying the fleet (default "+DefaultImage+")")
	cmd.Flags().Int64Var(&f.minAge, "min-age", 0, "Evict containers at least this many minutes old")
	cmd.Flags().BoolVar(&f.reapAll, "reap-all", false, "Evict every discovered container regardless of age")
	cmd.Flags().BoolVar(&f.dryRun, "dry-run", false, "Report decisions without removing anything")
	cmd.Flags().BoolVar(&f.clockCheck, "clock-check", false, "Warn when the host clock is skewed before reaping")
}

// reapSettings is the fully resolved input for one or more passes.
type reapSettings struct {
	Image      string
	Policy     fleet.Policy
	ClockCheck bool
	Interval   time.Duration // watch cadence from config; zero means unset
	Strict     bool
}

// Resolve merges command-line flags over the config file. The eviction
// scope must be selected explicitly by one of the two layers: an unset
// --min-age never widens into reap-everything.
func (f *reapFlags) Resolve(cmd *cobra.Command, configPath string) (reapSettings, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return reapSettings{}, err
	}

	policy, err := selectPolicy(cfg, modeSelection{
		MinAge:     f.minAge,
		MinAgeSet:  cmd.Flags().Changed("min-age"),
		ReapAllSet: cmd.Flags().Changed("reap-all") && f.reapAll,
	})
	if err != nil {
		return reapSettings{}, err
	}

	if cmd.Flags().Changed("dry-run") {
		policy.DryRun = f.dryRun
	} else {
		policy.DryRun = cfg.DryRun
	}

	s := reapSettings{
		Image:    firstNonEmpty(f.image, cfg.Image, DefaultImage),
		Policy:   policy,
		Interval: cfg.Interval(),
		Strict:   cfg.Strict,
	}
	if cmd.Flags().Changed("clock-check") {
		s.ClockCheck = f.clockCheck
	} else {
		s.ClockCheck = cfg.ClockCheck
	}
	return s, nil
}

// modeSelection carries what the command line explicitly said about
// eviction scope. ReapAllSet is true only for --reap-all passed as
// true; --reap-all=false declines the mode rather than choosing it.
type modeSelection struct {
	MinAge     int64
	MinAgeSet  bool
	ReapAllSet bool
}

// selectPolicy picks the retention mode. Flags beat config; within each
// layer age-gating and reap-all are mutually exclusive; when neither
// layer chooses, there is no default.
func selectPolicy(cfg *config.Config, sel modeSelection) (fleet.Policy, error) {
	if sel.MinAgeSet && sel.ReapAllSet {
		return fleet.Policy{}, fmt.Errorf("--min-age and --reap-all are mutually exclusive")
	}
	if sel.MinAgeSet {
		if sel.MinAge < 0 {
			return fleet.Policy{}, fmt.Errorf("--min-age must not be negative, got %d", sel.MinAge)
		}
		return fleet.Policy{MinAgeMinutes: sel.MinAge}, nil
	}
	if sel.ReapAllSet {
		return fleet.Policy{ReapAll: true}, nil
	}

	cfgMinAge := cfg.MinAgeMinutes != nil
	cfgReapAll := cfg.ReapAll != nil && *cfg.ReapAll
	switch {
	case cfgMinAge && cfgReapAll:
		return fleet.Policy{}, fmt.Errorf("config file sets both min_age_minutes and reap_all: true")
	case cfgMinAge:
		if *cfg.MinAgeMinutes < 0 {
			return fleet.Policy{}, fmt.Errorf("config min_age_minutes must not be negative, got %d", *cfg.MinAgeMinutes)
		}
		return fleet.Policy{MinAgeMinutes: *cfg.MinAgeMinutes}, nil
	case cfgReapAll:
		return fleet.Policy{ReapAll: true}, nil
	}
	return fleet.Policy{}, fmt.Errorf("no eviction scope selected: pass --min-age or --reap-all, or set min_age_minutes or reap_all in %s", config.Path())
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
