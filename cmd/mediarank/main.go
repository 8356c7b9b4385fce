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
	"encoding/json"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/poiesic/mediarank"
	"github.com/poiesic/mediarank/config"
	"github.com/poiesic/mediarank/core"
	"github.com/poiesic/mediarank/ingestion"
	"github.com/poiesic/mediarank/prune"
	"github.com/poiesic/mediarank/search"
	"github.com/urfave/cli/v2"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newApp().RunContext(ctx, os.Args); err != nil {
		log.Fatal(err)
	}
}

func dbFlag() cli.Flag {
	return &cli.StringFlag{
		Name:     "db",
		Aliases:  []string{"d"},
		Usage:    "Path to BadgerDB catalog directory",
		Required: true,
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "mediarank",
		Usage: "Relevance ranking for aggregated media catalogs",
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
				Name:   "import",
				Usage:  "Import catalog items from a JSON feed",
				Action: importCommand,
				Flags: []cli.Flag{
					dbFlag(),
					&cli.StringFlag{
						Name:     "file",
						Aliases:  []string{"f"},
						Usage:    "Feed file: JSON array, API response object or JSON Lines (- for stdin)",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Number of items stored per transaction",
						Value: ingestion.DefaultBatchSize,
					},
					&cli.IntFlag{
						Name:  "pool-size",
						Usage: "Number of concurrent store workers (0 uses half the CPUs)",
					},
				},
			},
			{
				Name:      "search",
				Usage:     "Rank the catalog against a query",
				ArgsUsage: "QUERY...",
				Action:    searchCommand,
				Flags: []cli.Flag{
					dbFlag(),
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "YAML ranking configuration file",
					},
					&cli.StringSliceFlag{
						Name:    "source",
						Aliases: []string{"s"},
						Usage:   "Only rank items from this source (repeatable)",
					},
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of results to show (0 for all)",
						Value: 20,
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Print results as JSON",
					},
				},
			},
			{
				Name:  "sources",
				Usage: "Manage the source quality snapshot",
				Subcommands: []*cli.Command{
					{
						Name:   "set",
						Usage:  "Replace the snapshot with a JSON object of source bonuses",
						Action: sourcesSetCommand,
						Flags: []cli.Flag{
							dbFlag(),
							&cli.StringFlag{
								Name:     "file",
								Aliases:  []string{"f"},
								Usage:    "JSON file mapping source identifiers to bonuses (- for stdin)",
								Required: true,
							},
						},
					},
					{
						Name:   "show",
						Usage:  "Print the stored snapshot",
						Action: sourcesShowCommand,
						Flags:  []cli.Flag{dbFlag()},
					},
				},
			},
			{
				Name:   "prune",
				Usage:  "Remove invalid items and items from unusable sources",
				Action: pruneCommand,
				Flags: []cli.Flag{
					dbFlag(),
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Number of items to judge in each batch",
						Value: prune.DefaultBatchSize,
					},
					&cli.IntFlag{
						Name:  "report-interval",
						Usage: "Report progress every N items",
						Value: 1000,
					},
					&cli.IntFlag{
						Name:  "max-retries",
						Usage: "Maximum retry attempts for failed deletes",
						Value: 3,
					},
					&cli.DurationFlag{
						Name:  "retry-delay",
						Usage: "Base delay for exponential backoff",
						Value: 500 * time.Millisecond,
					},
					&cli.BoolFlag{
						Name:  "dry-run",
						Usage: "Report prunable items without deleting them",
					},
				},
			},
		},
	}
}

func openCatalog(c *cli.Context) (*mediarank.Catalog, error) {
	catalog, err := mediarank.Open(c.String("db"), mediarank.WithLogger(slog.Default()))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return catalog, nil
}

func openInput(path string) (*os.File, func(), error) {
	if path == "-" {
		return os.Stdin, func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { f.Close() }, nil
}

func importCommand(c *cli.Context) error {
	if c.Int("batch-size") <= 0 {
		return fmt.Errorf("batch-size must be greater than 0")
	}
	if c.Int("pool-size") < 0 {
		return fmt.Errorf("pool-size must not be negative")
	}

	in, done, err := openInput(c.String("file"))
	if err != nil {
		return fmt.Errorf("failed to open feed: %w", err)
	}
	defer done()

	items, err := ingestion.DecodeFeed(in)
	if err != nil {
		return err
	}

	catalog, err := openCatalog(c)
	if err != nil {
		return err
	}
	defer catalog.Close()

	opts := []ingestion.Option{ingestion.WithBatchSize(c.Int("batch-size"))}
	if size := c.Int("pool-size"); size > 0 {
		opts = append(opts, ingestion.WithPoolSize(size))
	}
	pipeline, err := catalog.NewIngestionPipeline(opts...)
	if err != nil {
		return fmt.Errorf("failed to create ingestion pipeline: %w", err)
	}
	defer pipeline.Release()

	report, err := pipeline.Ingest(c.Context, items)
	fmt.Fprintf(c.App.ErrWriter, "Received %d items: stored %d, rejected %d\n",
		report.Received, report.Stored, report.Rejected)
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}
	return nil
}

type searchOutput struct {
	Query       string            `json:"query"`
	Candidates  int               `json:"candidates"`
	Results     []core.ScoredItem `json:"results"`
	Suggestions []string          `json:"suggestions"`
}

func searchCommand(c *cli.Context) error {
	query := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if query == "" {
		return fmt.Errorf("a search query is required")
	}
	if c.Int("limit") < 0 {
		return fmt.Errorf("limit must not be negative")
	}

	cfg, err := config.Load(c.String("config"), slog.Default())
	if err != nil {
		return err
	}

	catalog, err := openCatalog(c)
	if err != nil {
		return err
	}
	defer catalog.Close()

	engine, err := catalog.NewEngine(c.Context, cfg)
	if err != nil {
		return err
	}
	searcher, err := catalog.NewSearcher(engine)
	if err != nil {
		return fmt.Errorf("failed to create searcher: %w", err)
	}
	defer searcher.Release()

	result, err := searcher.Search(c.Context, query, &search.Options{
		Sources: c.StringSlice("source"),
		Limit:   c.Int("limit"),
	})
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if c.Bool("json") {
		enc := json.NewEncoder(c.App.Writer)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(searchOutput{
			Query:       result.Query,
			Candidates:  result.Candidates,
			Results:     result.Items,
			Suggestions: result.Suggestions,
		})
	}

	renderResults(c.App.Writer, result)
	return nil
}

func sourcesSetCommand(c *cli.Context) error {
	in, done, err := openInput(c.String("file"))
	if err != nil {
		return fmt.Errorf("failed to open snapshot file: %w", err)
	}
	defer done()

	var bonuses map[string]float64
	if err := json.NewDecoder(in).Decode(&bonuses); err != nil {
		return fmt.Errorf("%w: %w", core.ErrInvalidSnapshot, err)
	}

	catalog, err := openCatalog(c)
	if err != nil {
		return err
	}
	defer catalog.Close()

	snapshot := &core.SourceQualitySnapshot{Bonuses: bonuses}
	if err := catalog.SourceQualityRepository().SaveSnapshot(c.Context, snapshot); err != nil {
		return err
	}
	fmt.Fprintf(c.App.ErrWriter, "Stored %d usable sources\n", len(bonuses))
	return nil
}

func sourcesShowCommand(c *cli.Context) error {
	catalog, err := openCatalog(c)
	if err != nil {
		return err
	}
	defer catalog.Close()

	snapshot, err := catalog.SourceQualityRepository().LoadSnapshot(c.Context)
	if err != nil {
		return err
	}
	if snapshot == nil {
		fmt.Fprintln(c.App.Writer, "No source quality snapshot stored")
		return nil
	}
	renderSnapshot(c.App.Writer, snapshot)
	return nil
}

func pruneCommand(c *cli.Context) error {
	pruneConfig := &prune.Config{
		BatchSize:      c.Int("batch-size"),
		ReportInterval: c.Int("report-interval"),
		MaxRetries:     c.Int("max-retries"),
		RetryDelay:     c.Duration("retry-delay"),
		DryRun:         c.Bool("dry-run"),
	}

	if pruneConfig.BatchSize <= 0 {
		return fmt.Errorf("batch-size must be greater than 0")
	}
	if pruneConfig.ReportInterval <= 0 {
		return fmt.Errorf("report-interval must be greater than 0")
	}
	if pruneConfig.MaxRetries <= 0 {
		return fmt.Errorf("max-retries must be greater than 0")
	}

	catalog, err := openCatalog(c)
	if err != nil {
		return err
	}
	defer catalog.Close()

	fmt.Fprintf(c.App.ErrWriter, "Database: %s\n\n", c.String("db"))
	if _, err := catalog.NewPruner(pruneConfig, c.App.ErrWriter).Run(c.Context); err != nil {
		return fmt.Errorf("prune failed: %w", err)
	}
	return nil
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

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

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
