package main

import (
	"fmt"

	"github.com/ali3dev/ali3dev-agentic-ai-by-aliarslan/internal/version"
	"github.com/spf13/cobra"
)

// Version returns the current version
func Version() string {
	return version.Get()
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("agentteam version %s\n", Version())
	},
}
