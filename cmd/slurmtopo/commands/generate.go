package commands

import (
	"github.com/spf13/cobra"

	"github.com/hpcops/slurmtopo/cmd/slurmtopo/handlers"
)

// Generate returns the command that performs a single generation run.
//
// It loads the cluster configuration, queries the inventory source once,
// writes cloud_topology.conf and cloud.conf into the configured output
// directory and exits.
//
// Optional flags:
//
//	--config, -c: Path to cluster configuration YAML file (default: slurmtopo.yaml)
//	--canonical:  Rename switches to compact canonical names (s0, s0_0, ...)
//
// Environment variables:
//
//	HCLOUD_TOKEN: Hetzner Cloud API token (required for the hcloud inventory source)
func Generate() *cobra.Command {
	var (
		configPath string
		canonical  bool
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate topology and cloud node configuration once",
		Long: `Generate Slurm topology configuration from the current inventory.

This command reads the node group layout from the configuration file,
lists live instances from the configured inventory source and writes
cloud_topology.conf and cloud.conf atomically into the output directory.

Examples:
  # Generate using slurmtopo.yaml in the current directory
  slurmtopo generate

  # Generate using a specific config file
  slurmtopo generate -c production.yaml

  # Generate with canonical switch names
  slurmtopo generate --canonical`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Generate(cmd.Context(), configPath, canonical)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: slurmtopo.yaml)")
	cmd.Flags().BoolVar(&canonical, "canonical", false, "Rename switches to canonical names")

	return cmd
}
