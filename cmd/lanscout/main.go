// Command lanscout is the entry point for the LAN scanner CLI.
package main

import "github.com/lanscout/cmd/cli"

// Build information - set by ldflags during build.
var (
	version   = "dev"
	commit    = "none"
	buildTime = "unknown"
)

func main() {
	cli.SetVersion(version, commit, buildTime)
	cli.Execute()
}
