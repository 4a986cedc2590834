package commands

import (
	"github.com/spf13/cobra"

	"github.com/hpcops/slurmtopo/cmd/slurmtopo/handlers"
)

// Hostlist returns the parent command for hostlist expression utilities.
//
// These subcommands mirror what "scontrol show hostlist" and
// "scontrol show hostnames" do, which is handy when debugging generated
// topology files by hand.
func Hostlist() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hostlist",
		Short: "Compress and expand Slurm hostlist expressions",
	}

	cmd.AddCommand(hostlistCompress())
	cmd.AddCommand(hostlistExpand())

	return cmd
}

func hostlistCompress() *cobra.Command {
	return &cobra.Command{
		Use:   "compress NODE...",
		Short: "Compress node names into a hostlist expression",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return handlers.HostlistCompress(cmd.OutOrStdout(), args)
		},
	}
}

func hostlistExpand() *cobra.Command {
	return &cobra.Command{
		Use:   "expand EXPRESSION",
		Short: "Expand a hostlist expression into node names",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return handlers.HostlistExpand(cmd.OutOrStdout(), args[0])
		},
	}
}
