package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "agentteam",
	Short: "Multi-agent content team",
	Long: `Agentteam turns a user request into a coordinated project for a team
of specialist agents (researcher, writer, critic, analyst), drives the task
graph to completion, and returns a single validated deliverable.

With no arguments, launches an interactive session where you can submit
requests and inspect system status.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInteractive()
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(typesCmd)
	rootCmd.AddCommand(versionCmd)
}
