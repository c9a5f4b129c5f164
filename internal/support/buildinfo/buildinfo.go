// Package buildinfo exposes the version stamped at build time.
package buildinfo

// Version is set via -ldflags "-X fleetreap/internal/support/buildinfo.Version=v1.2.3".
var Version = "dev"
