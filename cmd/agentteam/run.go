package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ali3dev/ali3dev-agentic-ai-by-aliarslan/internal/config"
	"github.com/ali3dev/ali3dev-agentic-ai-by-aliarslan/internal/coordinator"
)

var runCmd = &cobra.Command{
	Use:   "run <request>",
	Short: "Handle a single request and print the result",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runOnce,
}

func runOnce(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	sys, err := buildSystem(cfg)
	if err != nil {
		return err
	}

	request := strings.Join(args, " ")
	result := sys.loop.Submit(context.Background(), request)

	fmt.Println(result)

	input, output := sys.client.Tracker().Total()
	color.New(color.Faint).Printf("\n[%d calls, %d in / %d out tokens]\n",
		sys.client.Tracker().Calls(), input, output)
	return nil
}

var typesCmd = &cobra.Command{
	Use:   "types",
	Short: "List available project types",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		registry := coordinator.DefaultTemplates()
		if cfg.Templates.Path != "" {
			registry, err = coordinator.LoadTemplates(cfg.Templates.Path)
			if err != nil {
				return fmt.Errorf("load templates: %w", err)
			}
		}

		for _, typ := range registry.Types() {
			tasks, _ := registry.Tasks(typ)
			fmt.Printf("%s (%d tasks: ", typ, len(tasks))
			names := make([]string, len(tasks))
			for i, t := range tasks {
				names[i] = t.Name
			}
			fmt.Printf("%s)\n", strings.Join(names, ", "))
		}
		return nil
	},
}
