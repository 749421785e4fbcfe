package main

import (
	"context"
	"log"
	"os"

	"lotogen/adapters/excel"
	"lotogen/adapters/postgres"
	"lotogen/internal/config"
	"lotogen/internal/migration"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// Usage: migrate [draws-file]
//
// Applies the schema to DATABASE_URL. When a draws file is given (or
// DRAWS_FILE is set) its draws are imported afterwards.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if !cfg.Database.Enabled() {
		log.Fatal("DATABASE_URL is required")
	}

	drawsFile := cfg.Data.DrawsFile
	if len(os.Args) > 1 {
		drawsFile = os.Args[1]
	}

	ctx := context.Background()
	db, err := sqlx.Connect("postgres", cfg.Database.URL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	runner := migration.NewRunner()
	if err := runner.Run(ctx, db); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
	log.Printf("Schema %s applied (%d steps)", runner.Version(), len(runner.Steps()))

	if drawsFile == "" {
		return
	}

	draws, err := excel.NewDataReader(drawsFile).WithSheet(cfg.Data.DrawsSheet).ReadDraws()
	if err != nil {
		log.Fatalf("Failed to read %s: %v", drawsFile, err)
	}
	repo := postgres.NewDrawRepository(db)
	inserted, err := repo.UpsertDraws(ctx, draws)
	if err != nil {
		log.Fatalf("Failed to import draws: %v", err)
	}
	latest, err := repo.LatestContest(ctx)
	if err != nil {
		log.Fatalf("Failed to read latest contest: %v", err)
	}
	log.Printf("Imported %d of %d draws from %s; latest contest is %d", inserted, len(draws), drawsFile, latest)
}
