// Package version exposes the build version stamped in via
// -ldflags "-X github.com/bookscoutapp/bookscout/pkg/version.Version=...".
package version

// Version reports "dev" for local builds.
var Version = "dev"
