// Command verify checks that the beach_status tab's header row matches
// the column layout the pipeline writes and the sync command reads.
// Exits nonzero when the headers drift.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/gulfwatch/red-tide-etl/internal/adapter/sheets"
	"github.com/gulfwatch/red-tide-etl/internal/config"
	"github.com/gulfwatch/red-tide-etl/internal/observability"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)

	ctx := context.Background()
	client, err := sheets.NewClient(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to create sheets client", "error", err)
		os.Exit(1)
	}

	headers, err := client.StatusHeaderRow(ctx)
	if err != nil {
		logger.Error("failed to read header row", "error", err)
		os.Exit(1)
	}
	if len(headers) == 0 {
		fmt.Println("beach_status tab is empty")
		os.Exit(1)
	}

	os.Exit(report(headers, sheets.StatusHeaders))
}

// report prints the comparison and returns the process exit code.
func report(got, want []string) int {
	fmt.Printf("found %d columns, expected %d\n", len(got), len(want))

	ok := true

	seen := make(map[string]bool, len(got))
	for i, h := range got {
		if seen[h] {
			fmt.Printf("duplicate header %q at column %d\n", h, i+1)
			ok = false
		}
		seen[h] = true
	}

	wantSet := make(map[string]bool, len(want))
	for _, h := range want {
		wantSet[h] = true
	}

	for _, h := range want {
		if !seen[h] {
			fmt.Printf("missing header: %s\n", h)
			ok = false
		}
	}
	for _, h := range got {
		if !wantSet[h] {
			fmt.Printf("unexpected header: %s\n", h)
			ok = false
		}
	}

	if ok {
		for i := range want {
			if got[i] != want[i] {
				fmt.Printf("column %d is %q, expected %q\n", i+1, got[i], want[i])
				ok = false
			}
		}
	}

	if !ok {
		fmt.Println("headers do not match the expected layout")
		return 1
	}
	fmt.Println("headers are correct")
	return 0
}
