// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/poiesic/banquet"
	"github.com/poiesic/banquet/ai"
	"github.com/poiesic/banquet/ai/openai"
	"github.com/poiesic/banquet/backfill"
	"github.com/poiesic/banquet/core"
	"github.com/poiesic/banquet/search"
	"github.com/poiesic/banquet/storage/badger"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "banquet",
		Usage: "Relevance engine for event-services marketplace catalogs",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:      "search",
				Usage:     "Search the package catalog",
				ArgsUsage: "<query>",
				Action:    searchCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB catalog directory",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "host",
						Usage: "AI service host URL for embeddings and completions",
						Value: "http://localhost:11434/v1",
					},
					&cli.StringFlag{
						Name:  "embedding-model",
						Usage: "Embedding model name",
					},
					&cli.StringFlag{
						Name:  "completion-model",
						Usage: "Completion model name for query interpretation",
					},
					&cli.IntFlag{
						Name:    "top-k",
						Aliases: []string{"k"},
						Usage:   "Number of results to return",
						Value:   10,
					},
					&cli.BoolFlag{
						Name:  "multi-query",
						Usage: "Retrieve over generated query variants as well",
					},
					&cli.Float64Flag{
						Name:  "budget",
						Usage: "Maximum budget hint (overrides extraction)",
					},
					&cli.IntFlag{
						Name:  "guests",
						Usage: "Guest count hint (overrides extraction)",
					},
					&cli.StringFlag{
						Name:  "food-type",
						Usage: "Cuisine hint (overrides extraction)",
					},
					&cli.StringFlag{
						Name:  "venue-type",
						Usage: "Venue style hint (overrides extraction)",
					},
				},
			},
			{
				Name:   "backfill",
				Usage:  "Regenerate package embeddings in batches",
				Action: backfillCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB catalog directory",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "embedding-host",
						Usage: "Embedding service host URL",
						Value: "http://localhost:11434/v1",
					},
					&cli.StringFlag{
						Name:     "embedding-model",
						Usage:    "Embedding model name",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Number of packages to embed in each batch",
						Value: 100,
					},
					&cli.DurationFlag{
						Name:  "batch-delay",
						Usage: "Minimum spacing between batch embedding calls",
						Value: 500 * time.Millisecond,
					},
					&cli.IntFlag{
						Name:  "report-interval",
						Usage: "Report progress every N packages",
						Value: 100,
					},
					&cli.IntFlag{
						Name:  "max-retries",
						Usage: "Maximum retry attempts for failed batches",
						Value: 3,
					},
					&cli.DurationFlag{
						Name:  "retry-delay",
						Usage: "Base delay for exponential backoff",
						Value: 1 * time.Second,
					},
					&cli.BoolFlag{
						Name:  "missing-only",
						Usage: "Only embed packages that have no vector yet",
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func searchCommand(c *cli.Context) error {
	ctx := context.Background()

	query := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if query == "" {
		return fmt.Errorf("query is required")
	}

	aiOpts := []ai.ConfigOption{ai.WithHost(c.String("host"))}
	if model := c.String("embedding-model"); model != "" {
		aiOpts = append(aiOpts, ai.WithEmbeddingModel(model))
	}
	if model := c.String("completion-model"); model != "" {
		aiOpts = append(aiOpts, ai.WithCompletionModel(model))
	}

	m, err := banquet.NewMarketplace(c.String("db"), banquet.WithAIConfig(ai.NewConfig(aiOpts...)))
	if err != nil {
		return fmt.Errorf("failed to open catalog: %w", err)
	}
	defer m.Close()

	searcher, err := m.NewSearcher(
		search.WithTopK(c.Int("top-k")),
		search.WithMultiQuery(c.Bool("multi-query")),
	)
	if err != nil {
		return err
	}

	hints := &core.ExtractedParams{}
	if c.IsSet("budget") {
		budget := c.Float64("budget")
		hints.BudgetMax = &budget
	}
	if c.IsSet("guests") {
		guests := c.Int("guests")
		hints.CapacityMin = &guests
	}
	if c.IsSet("food-type") {
		foodType := c.String("food-type")
		hints.FoodType = &foodType
	}
	if c.IsSet("venue-type") {
		venueType := c.String("venue-type")
		hints.VenueType = &venueType
	}

	results, err := searcher.Search(ctx, query, hints)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	fmt.Printf("Found %d packages\n", len(results))
	for i, hit := range results {
		pkg := hit.Package
		fmt.Printf("%d: %s (#%d) [%0.3f]\n", i+1, pkg.Name, pkg.Id, hit.FinalScore)
		if pkg.PriceMin > 0 || pkg.PriceMax > 0 {
			fmt.Printf("   $%.0f-$%.0f, up to %d guests\n", pkg.PriceMin, pkg.PriceMax, pkg.Capacity)
		}
		for _, reason := range hit.Explanations {
			fmt.Printf("   - %s\n", reason)
		}
	}

	return nil
}

func backfillCommand(c *cli.Context) error {
	ctx := context.Background()

	dbPath := c.String("db")
	if dbPath == "" {
		return fmt.Errorf("catalog path is required")
	}

	// Open catalog
	backend, err := badger.OpenBackend(dbPath, false)
	if err != nil {
		return fmt.Errorf("failed to open catalog: %w", err)
	}

	catalog, err := badger.NewCatalogRepository(backend)
	if err != nil {
		backend.Close()
		return fmt.Errorf("failed to create catalog repository: %w", err)
	}
	defer catalog.Close()

	// Create AI config
	aiConfig := ai.NewConfig(
		ai.WithEmbeddingHost(c.String("embedding-host")),
		ai.WithEmbeddingModel(c.String("embedding-model")),
	)

	if err := aiConfig.Validate(); err != nil {
		return fmt.Errorf("invalid AI configuration: %w", err)
	}

	embedder, err := openai.NewEmbedder(aiConfig)
	if err != nil {
		return fmt.Errorf("failed to create embedder: %w", err)
	}

	backfillConfig := &backfill.Config{
		BatchSize:      c.Int("batch-size"),
		BatchDelay:     c.Duration("batch-delay"),
		ReportInterval: c.Int("report-interval"),
		MaxRetries:     c.Int("max-retries"),
		RetryDelay:     c.Duration("retry-delay"),
		OnlyMissing:    c.Bool("missing-only"),
	}

	// Validate config
	if backfillConfig.BatchSize <= 0 {
		return fmt.Errorf("batch-size must be greater than 0")
	}
	if backfillConfig.ReportInterval <= 0 {
		return fmt.Errorf("report-interval must be greater than 0")
	}
	if backfillConfig.MaxRetries <= 0 {
		return fmt.Errorf("max-retries must be greater than 0")
	}

	backfiller, err := backfill.NewBackfiller(catalog, embedder, backfillConfig, os.Stderr)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "Catalog: %s\n", dbPath)
	fmt.Fprintf(os.Stderr, "Embedding host: %s\n", c.String("embedding-host"))
	fmt.Fprintf(os.Stderr, "Embedding model: %s\n", c.String("embedding-model"))
	fmt.Fprintln(os.Stderr)

	report, err := backfiller.Run(ctx)
	if err != nil {
		return fmt.Errorf("backfill failed: %w", err)
	}

	if report.Failed > 0 {
		for _, batchErr := range report.Errors {
			fmt.Fprintf(os.Stderr, "failed: %v\n", batchErr)
		}
		return fmt.Errorf("backfill finished with %d of %d packages failed", report.Failed, report.Total)
	}

	return nil
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
	levelStr := strings.ToLower(c.String("log-level"))

	// Map string to slog.Level
	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	// Configure slog with the specified level
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
