// Package main is the entry point for the slurmtopo CLI.
//
// slurmtopo generates Slurm topology and cloud node configuration for
// elastically provisioned clusters. It reads the node group layout from a
// YAML configuration file, discovers live instances from an inventory
// source, and renders topology.conf-compatible switch trees.
//
// Commands: generate, serve, hostlist, version.
//
// For detailed usage information, run:
//
//	slurmtopo --help
package main

import (
	"fmt"
	"os"

	"github.com/hpcops/slurmtopo/cmd/slurmtopo/commands"
)

// Version information set by goreleaser at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersionInfo(version, commit, date)
	if err := commands.Root().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
