// Command seed loads the item catalog into the bookmarks database, either
// from a local JSON file (-f) or from an object in the configured S3 bucket
// (-o, bucket taken from -b / BOOKMARKS_S3_BUCKET).
package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/dmitrijs2005/bookmarks/internal/flagx"
	"github.com/dmitrijs2005/bookmarks/internal/logging"
	"github.com/dmitrijs2005/bookmarks/internal/server/config"
	"github.com/dmitrijs2005/bookmarks/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/bookmarks/internal/server/seed"
	"github.com/dmitrijs2005/bookmarks/internal/server/services"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()
	logger := logging.NewJSONLogger(os.Stderr, cfg.LogLevel).With("module", "seed")

	var file, key string
	fs := flag.NewFlagSet("seed", flag.ContinueOnError)
	fs.StringVar(&file, "f", "", "path to items JSON file")
	fs.StringVar(&key, "o", "", "object key of items JSON in the S3 bucket")
	if err := fs.Parse(flagx.FilterArgs(os.Args[1:], []string{"-f", "-o"})); err != nil {
		log.Fatal(err)
	}

	var src seed.Source
	switch {
	case file != "" && key != "":
		log.Fatal("use either -f or -o, not both")
	case file != "":
		src = seed.FileSource{Path: file}
	case key != "":
		src = seed.NewS3Source(cfg, key)
	default:
		log.Fatal("nothing to seed: pass -f <file> or -o <object key>")
	}

	db, err := repomanager.OpenPostgres(ctx, cfg.DatabaseDSN)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		logger.Error(ctx, "migrations failed", "error", err)
		return
	}

	n, err := seed.Run(ctx, src, services.NewCatalogService(db, rm, cfg.StoreTimeout))
	if err != nil {
		logger.Error(ctx, "seed failed", "source", src.String(), "error", err)
		return
	}

	logger.Info(ctx, "catalog seeded", "source", src.String(), "items", n)
}
