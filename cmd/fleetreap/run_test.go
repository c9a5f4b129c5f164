package main

import (
	"testing"

	"fleetreap/internal/fleet"
)

func TestStrictErr(t *testing.T) {
	failed := fleet.Summary{Discovered: 3, Evicted: 2, Failed: 1}
	clean := fleet.Summary{Discovered: 3, Evicted: 3}

	if err := strictErr(failed, false); err != nil {
		t.Errorf("strictErr(failed, strict=false) = %v, want nil", err)
	}
	if err := strictErr(failed, true); err == nil {
		t.Error("strictErr(failed, strict=true) = nil, want error")
	}
	if err := strictErr(clean, true); err != nil {
		t.Errorf("strictErr(clean, strict=true) = %v, want nil", err)
	}
}

func TestHumanAge(t *testing.T) {
	tests := []struct {
		minutes int64
		want    string
	}{
		{125, "2 hours"},
		{10, "10 minutes"},
		{-30, "in the future"},
	}
	for _, tt := range tests {
		if got := humanAge(tt.minutes); got != tt.want {
			t.Errorf("humanAge(%d) = %q, want %q", tt.minutes, got, tt.want)
		}
	}
}
