package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"sheetmerge/adapters/excel"
	"sheetmerge/adapters/mongodb"
	"sheetmerge/app"
	"sheetmerge/domain/sheet"
	"sheetmerge/internal/config"
)

func main() {
	filePath := flag.String("file", "", "path to the .xlsx workbook to process")
	batchType := flag.String("type", "", "batch type: bdd, stages or majeure")
	year := flag.Int("year", 0, "graduation year, required for type bdd")
	flag.Parse()

	if *filePath == "" || *batchType == "" {
		flag.Usage()
		os.Exit(2)
	}

	if err := godotenv.Load(); err != nil {
		log.Printf("[ingest] no .env file loaded: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[ingest] configuration error: %v", err)
	}

	connectCtx, cancel := context.WithTimeout(context.Background(), cfg.Mongo.ConnectTimeout)
	client, err := mongodb.Connect(connectCtx, cfg.Mongo.URI)
	cancel()
	if err != nil {
		log.Fatalf("[ingest] %v", err)
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Printf("[ingest] disconnect: %v", err)
		}
	}()

	ctx := context.Background()
	coll := client.Database(cfg.Mongo.Database).Collection(cfg.Mongo.Collection)
	if err := mongodb.EnsureIndexes(ctx, coll); err != nil {
		log.Fatalf("[ingest] %v", err)
	}
	repo := mongodb.NewStudentRepository(coll)

	bundle, err := excel.NewWorkbookReader(*filePath).ReadBundle()
	if err != nil {
		log.Fatalf("[ingest] %v", err)
	}

	var result *app.Result
	switch strings.ToLower(*batchType) {
	case "bdd":
		currentYear := time.Now().Year()
		earliest := currentYear - cfg.Ingest.GraduationYearWindow
		if *year < earliest || *year > currentYear {
			log.Fatalf("[ingest] graduation year must be between %d and %d", earliest, currentYear)
		}
		result = app.NewIngestService(repo, sheet.IngestionSchema()).Ingest(ctx, bundle, *year)
	case "stages":
		result = app.NewInternshipEnrichService(repo, sheet.InternshipEnrichmentSchema()).Enrich(ctx, bundle)
	case "majeure":
		result = app.NewMajorAssignmentService(repo).Assign(ctx, bundle)
	default:
		log.Fatalf("[ingest] unsupported type %q: supported types are bdd, stages and majeure", *batchType)
	}

	fmt.Println(result.Message)
	for _, e := range result.Errors {
		fmt.Println(" -", e)
	}
	if len(result.Errors) > 0 {
		os.Exit(1)
	}
}
