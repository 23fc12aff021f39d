package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"setlstat/adapters/memstore"
	"setlstat/adapters/postgres"
	"setlstat/adapters/rng"
	"setlstat/app"
	"setlstat/domain/plate"
	"setlstat/internal"
	"setlstat/internal/analysis"
	"setlstat/internal/config"
	"setlstat/ports"
)

func main() {
	// Load .env file if present
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	logger := internal.NewDefaultLogger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	streams := rng.NewSeededAdapter(cfg.Analysis.RandomSeed)
	records, reports, err := buildRepositories(ctx, cfg, streams, logger)
	if err != nil {
		log.Fatalf("Failed to initialize data store: %v", err)
	}

	service := app.NewAnalysisService(
		records,
		streams,
		reports,
		logger,
		cfg.Analysis,
	)

	selection := ports.Selection{LocalityIDs: []int64{1}, SpeciesIDs: []int64{101}}
	jobs := []app.Job{
		{SpotPreference: &analysis.SpotPreferenceRequest{Selection: selection}},
		{AttractionIntra: &analysis.AttractionIntraRequest{Selection: selection}},
		{AttractionInter: &analysis.AttractionInterRequest{
			LocalityIDs: []int64{1},
			SpeciesA:    []int64{101},
			SpeciesB:    []int64{102},
		}},
	}

	results, err := service.RunBatch(ctx, jobs)
	if err != nil {
		log.Fatalf("Analysis batch failed: %v", err)
	}
	for _, rep := range results {
		data, err := rep.JSON()
		if err != nil {
			log.Fatalf("Failed to encode report: %v", err)
		}
		fmt.Println(string(data))
	}
}

// buildRepositories connects to the SETL database when configured and
// otherwise falls back to an in-memory store with synthetic plates, so the
// engine can be exercised without infrastructure.
func buildRepositories(ctx context.Context, cfg *config.Config, streams ports.RNGPort, logger *internal.Logger) (ports.RecordRepository, ports.ReportRepository, error) {
	if cfg.Database.URL != "" {
		db, err := postgres.Connect(cfg.Database.URL)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("using SETL database at %s", cfg.Database.Host)
		return postgres.NewRecordRepository(db), postgres.NewReportRepository(db), nil
	}

	logger.Warn("DATABASE_URL not set, running on synthetic in-memory data")
	store := memstore.NewRecordStore()
	store.AddLocality(1, "Synthetic locality")
	store.AddSpecies(101, "Synthetic species A")
	store.AddSpecies(102, "Synthetic species B")

	source, err := streams.SeededStream(ctx, "synthetic-plates", cfg.Analysis.RandomSeed)
	if err != nil {
		return nil, nil, err
	}
	for i := 1; i <= 60; i++ {
		n := 2 + source.Intn(10)
		recA, err := plate.RandomRecord(source, int64(i), n)
		if err != nil {
			return nil, nil, err
		}
		store.AddRecord(1, 101, recA)

		recB, err := plate.RandomRecord(source, int64(i), 2+source.Intn(10))
		if err != nil {
			return nil, nil, err
		}
		store.AddRecord(1, 102, recB)
	}
	return store, nil, nil
}
