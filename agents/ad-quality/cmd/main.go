package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	adquality "ad-analyzer/agents/ad-quality"
	"ad-analyzer/shared/config"
	"ad-analyzer/shared/scheduler"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Create context that responds to signals
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	agent := adquality.New(cfg)

	if len(os.Args) > 1 && os.Args[1] == "--once" {
		if err := agent.Initialize(); err != nil {
			log.Fatalf("Failed to initialize agent: %v", err)
		}

		urls := os.Args[2:]
		if len(urls) == 0 {
			urls = readLines(os.Stdin)
		}

		metrics, err := agent.AnalyzeBatch(ctx, urls)
		if err != nil {
			log.Fatalf("Failed to run: %v", err)
		}
		fmt.Println(metrics.GetSummary())
		return
	}

	s := scheduler.New(cfg, agent)
	fmt.Println("Starting scheduler...")
	if err := s.Start(ctx); err != nil {
		log.Fatalf("Scheduler failed: %v", err)
	}
}

// readLines collects newline-separated URLs from stdin for one-shot
// runs without arguments.
func readLines(r *os.File) []string {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	return lines
}
