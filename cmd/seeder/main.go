package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"iter"
	"log/slog"
	"os"
	"strings"

	"github.com/poiesic/mediarank"
	"github.com/poiesic/mediarank/core"
	"github.com/poiesic/mediarank/ingestion"
	"github.com/poiesic/mediarank/ranking"
)

// demoItems is a small mixed-language catalog as delivered by several upstream sources.
var demoItems = []*core.MediaItem{
	{RemoteID: "1001", Title: "无间道", Year: "2002", TypeName: "剧情片", Director: "刘伟强", Actors: []string{"刘德华", "梁朝伟"}, Source: "tyyszy"},
	{RemoteID: "88", Title: "无间道", Year: "2002", TypeName: "剧情片", Director: "刘伟强", Actors: []string{"刘德华", "梁朝伟"}, Source: "ruyi"},
	{RemoteID: "1002", Title: "无间道2", Year: "2003", TypeName: "剧情片", Director: "刘伟强", Actors: []string{"陈冠希", "余文乐"}, Source: "tyyszy"},
	{RemoteID: "1003", Title: "无间道3：终极无间", Year: "2003", TypeName: "剧情片", Actors: []string{"刘德华", "梁朝伟", "黎明"}, Source: "bfzy"},
	{RemoteID: "2001", Title: "流浪地球", Year: "2019", TypeName: "科幻片", Director: "郭帆", Actors: []string{"吴京", "屈楚萧"}, Source: "tyyszy"},
	{RemoteID: "2002", Title: "流浪地球2", Year: "2023", TypeName: "科幻片", Director: "郭帆", Actors: []string{"吴京", "刘德华"}, Source: "dyttzy"},
	{RemoteID: "3001", Title: "Inception", Year: "2010", TypeName: "Sci-Fi", Director: "Christopher Nolan", Actors: []string{"Leonardo DiCaprio"}, Source: "tyyszy"},
	{RemoteID: "77", Title: "Inception", Year: "2010", TypeName: "Sci-Fi", Director: "Christopher Nolan", Actors: []string{"Leonardo DiCaprio"}, Source: "heimuer"},
	{RemoteID: "3002", Title: "Interstellar", Year: "2014", TypeName: "Sci-Fi", Director: "Christopher Nolan", Actors: []string{"Matthew McConaughey", "Anne Hathaway"}, Source: "bfzy"},
	{RemoteID: "3003", Title: "The Dark Knight", Year: "2008", TypeName: "Action", Director: "Christopher Nolan", Actors: []string{"Christian Bale", "Heath Ledger"}, Source: "wolong"},
	{RemoteID: "3004", Title: "The Matrix", Year: "1999", TypeName: "Sci-Fi", Director: "Lana Wachowski", Actors: []string{"Keanu Reeves"}, Source: "zy360"},
	{RemoteID: "3005", Title: "Heat", Year: "1995", TypeName: "Crime", Director: "Michael Mann", Actors: []string{"Al Pacino", "Robert De Niro"}, Source: "wujin"},
	{RemoteID: "4001", Title: "甄嬛传", Year: "2011", TypeName: "国产剧", Director: "郑晓龙", Actors: []string{"孙俪", "陈建斌"}, Source: "bfzy", Content: "后宫争斗的故事"},
	{RemoteID: "4002", Title: "琅琊榜", Year: "2015", TypeName: "国产剧", Director: "孔笙", Actors: []string{"胡歌", "刘涛"}, Source: "heimuer"},
}

var (
	seedFileName = flag.String("src", "", "JSON Lines file of seed items")
	dbPath       = flag.String("db", "./catalog_db", "catalog database directory")
)

func init() {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))
}

// itemsFromFile returns an iterator over the items of a JSON Lines file.
// Blank lines are skipped; a malformed line stops the iteration with its error.
func itemsFromFile(filename string) (iter.Seq2[*core.MediaItem, error], error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}

	return func(yield func(*core.MediaItem, error) bool) {
		defer f.Close()
		scanner := bufio.NewScanner(f)
		scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
		for lineNo := 1; scanner.Scan(); lineNo++ {
			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				continue
			}
			items, err := ingestion.DecodeFeed(strings.NewReader(line))
			if err != nil {
				yield(nil, fmt.Errorf("line %d: %w", lineNo, err))
				return
			}
			for _, item := range items {
				if !yield(item, nil) {
					return
				}
			}
		}
		if err := scanner.Err(); err != nil {
			yield(nil, err)
		}
	}, nil
}

// itemsFromSlice returns an iterator over a slice of items.
func itemsFromSlice(items []*core.MediaItem) iter.Seq2[*core.MediaItem, error] {
	return func(yield func(*core.MediaItem, error) bool) {
		for _, item := range items {
			if !yield(item, nil) {
				return
			}
		}
	}
}

// ingestBatched reads from a source iterator and ingests items in batches.
func ingestBatched(ctx context.Context, pipeline *ingestion.Pipeline, source iter.Seq2[*core.MediaItem, error], batchSize int) (*ingestion.Report, error) {
	total := &ingestion.Report{}
	batch := make([]*core.MediaItem, 0, batchSize)

	flush := func() error {
		report, err := pipeline.Ingest(ctx, batch)
		total.Received += report.Received
		total.Rejected += report.Rejected
		total.Stored += report.Stored
		batch = batch[:0]
		return err
	}

	for item, err := range source {
		if err != nil {
			return total, err
		}
		batch = append(batch, item)
		if len(batch) == batchSize {
			if err := flush(); err != nil {
				return total, err
			}
		}
	}

	// Process any remaining items
	if len(batch) > 0 {
		if err := flush(); err != nil {
			return total, err
		}
	}

	return total, nil
}

// seedSnapshot stores the stock source quality table unless a snapshot exists.
func seedSnapshot(ctx context.Context, catalog *mediarank.Catalog) error {
	repo := catalog.SourceQualityRepository()
	existing, err := repo.LoadSnapshot(ctx)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}
	return repo.SaveSnapshot(ctx, &core.SourceQualitySnapshot{Bonuses: ranking.DefaultSourceQuality()})
}

func main() {
	flag.Parse()

	catalog, err := mediarank.Open(*dbPath)
	if err != nil {
		panic(err)
	}
	defer catalog.Close()

	ingester, err := catalog.NewIngestionPipeline()
	if err != nil {
		panic(err)
	}
	defer ingester.Release()

	ctx := context.Background()

	// Determine source of seed data
	var source iter.Seq2[*core.MediaItem, error]
	if seedFileName != nil && *seedFileName != "" {
		source, err = itemsFromFile(*seedFileName)
		if err != nil {
			panic(err)
		}
	} else {
		source = itemsFromSlice(demoItems)
	}

	report, err := ingestBatched(ctx, ingester, source, 50)
	if err != nil {
		panic(err)
	}
	if err := seedSnapshot(ctx, catalog); err != nil {
		panic(err)
	}

	slog.Info("seeded catalog", "db", *dbPath, "received", report.Received, "stored", report.Stored, "rejected", report.Rejected)
}
