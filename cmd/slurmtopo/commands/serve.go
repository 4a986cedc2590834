package commands

import (
	"github.com/spf13/cobra"

	"github.com/hpcops/slurmtopo/cmd/slurmtopo/handlers"
)

// Serve returns the command that runs the generator as a long-lived daemon.
//
// The daemon regenerates the topology on a fixed interval and exposes
// Prometheus metrics and a health endpoint.
//
// Optional flags:
//
//	--config, -c: Path to cluster configuration YAML file (default: slurmtopo.yaml)
//	--listen:     Address for the metrics and health endpoints (default: :9090)
func Serve() *cobra.Command {
	var (
		configPath string
		listenAddr string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the generator as a daemon with periodic regeneration",
		Long: `Run the topology generator continuously.

The daemon regenerates cloud_topology.conf and cloud.conf on the interval
configured by generate_interval, and serves /metrics and /healthz on the
listen address. It shuts down cleanly on SIGINT or SIGTERM.

Examples:
  # Serve with the default config and listen address
  slurmtopo serve

  # Serve with a custom metrics port
  slurmtopo serve --listen :8080`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Serve(cmd.Context(), configPath, listenAddr)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: slurmtopo.yaml)")
	cmd.Flags().StringVar(&listenAddr, "listen", ":9090", "Listen address for metrics and health endpoints")

	return cmd
}
