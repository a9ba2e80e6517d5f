// Command quote-recompute walks every quote and recomputes its stored totals
// from the item ledger. Run it after manual data fixes or imports to repair
// drifted aggregates; recomputation is idempotent, so rerunning is safe.
package main

import (
	"context"

	"usinagem_backend/internal/adapters"
	contractrepo "usinagem_backend/internal/contracts/repository"
	contractsvc "usinagem_backend/internal/contracts/service"
	"usinagem_backend/internal/quotes/repository"
	"usinagem_backend/internal/quotes/service"
	"usinagem_backend/platform/config"
	"usinagem_backend/platform/db"
	"usinagem_backend/platform/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting quote totals recompute")

	ctx := context.Background()
	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		panic("failed to connect to database: " + err.Error())
	}
	defer pool.Close()

	contractsService := contractsvc.New(contractrepo.New(pool), log, cfg.DefaultCurrency)
	resolver := adapters.NewContractPriceResolver(contractsService)

	repo := repository.New(pool)
	svc := service.New(repo, resolver, log, cfg.DefaultCurrency)

	ids, err := repo.ListQuoteIDs(ctx)
	if err != nil {
		log.Error("failed to list quotes", "error", err)
		panic("failed to list quotes: " + err.Error())
	}

	var failed int
	for _, id := range ids {
		if err := svc.Recompute(ctx, id); err != nil {
			failed++
			log.Error("failed to recompute quote totals", "quoteId", id.String(), "error", err)
			continue
		}
		log.Info("quote totals recomputed", "quoteId", id.String())
	}

	log.Info("quote totals recompute finished", "total", len(ids), "failed", failed)
}
