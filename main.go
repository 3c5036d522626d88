package main

import (
	"context"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"goassoc/adapters/heuristic"
	"goassoc/adapters/postgres"
	"goassoc/adapters/preprocess"
	"goassoc/api"
	"goassoc/domain/core"
	"goassoc/domain/dataset"
	"goassoc/internal/config"
	"goassoc/internal/ops"
	"goassoc/internal/pipeline"
	"goassoc/internal/registry"
	"goassoc/ports"
)

// taskExpiry is how long terminal task records stay pollable.
const taskExpiry = 24 * time.Hour

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load configuration: %v", err)
	}
	gin.SetMode(cfg.Server.GinMode)

	reg := registry.New()

	var archive ports.Archive
	if cfg.Database.URL != "" {
		db, err := sqlx.Connect("postgres", cfg.Database.URL)
		if err != nil {
			log.Fatalf("❌ Failed to connect to archive database: %v", err)
		}
		archive, err = postgres.NewArchiveRepository(db)
		if err != nil {
			log.Fatalf("❌ Failed to initialize results archive: %v", err)
		}
		log.Println("[Main] Results archive enabled")
	}

	pre := preprocess.NewImputer()
	pre.RareShareThreshold = cfg.Analysis.RareShareThreshold

	orch := pipeline.New(reg, pre,
		heuristic.NewMajorityClass("logistic regression"),
		heuristic.NewOneRule("decision tree"),
		heuristic.NewJointMajority("random forest"),
		pipeline.Options{
			BatchSize: cfg.Analysis.BatchSize,
			Workers:   cfg.Analysis.Workers,
			Archive:   archive,
		})

	run := func(ctx context.Context, id string, ds *dataset.Dataset, selection []string) {
		orch.Run(ctx, core.TaskID(id), ds, selection)
	}
	server := api.NewServer(reg, run)

	if cfg.Ops.Enabled {
		go ops.Serve(cfg.Ops.Port)
	}

	// Terminal records are pruned so the registry map does not grow for
	// the life of the process.
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for range ticker.C {
			if removed := reg.Prune(taskExpiry); removed > 0 {
				log.Printf("[Main] Pruned %d expired task records", removed)
			}
		}
	}()

	if err := server.Start(cfg.Server.Port); err != nil {
		log.Fatalf("❌ Server stopped: %v", err)
	}
}
