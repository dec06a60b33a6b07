package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/fatih/color"

	"github.com/ali3dev/ali3dev-agentic-ai-by-aliarslan/internal/config"
)

func runInteractive() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	sys, err := buildSystem(cfg)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	heading := color.New(color.FgCyan, color.Bold)
	heading.Println("agentteam interactive session")
	fmt.Println("Type a request, or: status, reset, help, quit")

	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 64*1024), 64*1024)

	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())

		switch strings.ToLower(line) {
		case "":
			continue
		case "quit", "exit":
			return nil
		case "help":
			printHelp()
		case "status":
			printStatus(sys)
		case "reset":
			sys, err = buildSystem(cfg)
			if err != nil {
				return err
			}
			fmt.Println("System reset: projects, messages, and memory cleared.")
		default:
			result := sys.loop.Submit(ctx, line)
			fmt.Println()
			fmt.Println(result)
			fmt.Println()
		}

		if ctx.Err() != nil {
			return nil
		}
	}
	return scanner.Err()
}

func printHelp() {
	fmt.Println(`Commands:
  status  show projects, memory, and message traffic
  reset   discard all in-memory state and start fresh
  help    show this help
  quit    exit the session

Anything else is submitted to the agent team as a request.`)
}

func printStatus(sys *system) {
	st := sys.loop.Status()

	fmt.Printf("Active projects: %d\n", st.ActiveProjects)
	for _, p := range st.Projects {
		fmt.Printf("  %s %q (%s): %s, %s done", p.ProjectID, p.Name, p.Type, p.Status, p.TasksCompleted)
		if len(p.NextTasks) > 0 {
			fmt.Printf(", next: %s", strings.Join(p.NextTasks, ", "))
		}
		fmt.Println()
	}

	fmt.Printf("Memory: %d facts, %d insights, %d templates, %d practices, %d users, %d accesses\n",
		st.Memory.TotalFacts, st.Memory.TotalInsights, st.Memory.TotalTemplates,
		st.Memory.TotalBestPractices, st.Memory.TotalUsers, st.Memory.TotalAccesses)
	fmt.Printf("Bus: %d messages (%d pending), %d threads, %d agents\n",
		st.Bus.TotalMessages, st.Bus.PendingMessages, st.Bus.ActiveThreads, st.Bus.RegisteredAgents)

	if len(st.ErrorCounts) > 0 {
		fmt.Printf("Errors: %v\n", st.ErrorCounts)
	}

	input, output := sys.client.Tracker().Total()
	fmt.Printf("API: %d calls, %d in / %d out tokens\n", sys.client.Tracker().Calls(), input, output)
}
