package config

import "fmt"

// Set at build time with -ldflags "-X github.com/notaspie/notaspie/config.Version=...".
var (
	Version       = "dev"
	CommitHash    = "n/a"
	BuildTime     = "n/a"
	VersionString = fmt.Sprintf("%s-%s (%s)", Version, CommitHash, BuildTime)
)

// UserAgent identifies notaspie to the grammar checking service.
func UserAgent() string {
	return "notaspie/" + Version
}
