// Package main provides a CLI tool for creating the schema and loading a
// demo catalog with movement history.
package main

import (
	"context"
	_ "embed"
	"fmt"
	"math/rand/v2"
	"os"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	appctx "stockflow/internal/core/context"
	"stockflow/internal/core/id"
	"stockflow/internal/domain/catalogs/nomenclature"
	"stockflow/internal/domain/catalogs/warehouse"
	"stockflow/internal/infrastructure/storage/postgres"
	"stockflow/internal/infrastructure/storage/postgres/catalog_repo"
	"stockflow/internal/infrastructure/storage/postgres/register_repo"
	"stockflow/internal/infrastructure/storage/postgres/report_repo"
	"stockflow/pkg/config"
	"stockflow/pkg/logger"
)

//go:embed schema.sql
var schemaSQL string

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(logger.Config{
		Level:       cfg.App.LogLevel,
		Development: true,
	})
	if err != nil {
		fmt.Printf("failed to create logger: %v\n", err)
		os.Exit(1)
	}

	ctx := appctx.WithTrace(context.Background(), appctx.NewTraceContext())
	ctx = logger.WithLogger(ctx, log)

	poolCfg := postgres.DefaultPoolConfig(cfg.DB.ConnectionString())
	poolCfg.ApplicationName = cfg.App.Name + "-seed"
	pool, err := postgres.NewPool(ctx, poolCfg)
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()

	log.Info("connected to database")

	if _, err := pool.Exec(ctx, schemaSQL); err != nil {
		log.Fatalw("failed to apply schema", "error", err)
	}

	txm := postgres.NewTxManager(pool)
	s := &seeder{
		txm:         txm,
		products:    catalog_repo.NewNomenclatureRepo(txm, postgres.DefaultPageOptions()),
		warehouses:  catalog_repo.NewWarehouseRepo(txm, postgres.DefaultPageOptions()),
		movements:   register_repo.NewMovementRepo(txm),
		adjustments: report_repo.NewAdjustmentRepo(txm),
		days:        envInt("SEED_DAYS", 90),
		rng:         rand.New(rand.NewPCG(uint64(envInt("SEED_RANDOM", 42)), 7)),
		now:         time.Now().UTC().Truncate(24 * time.Hour),
	}

	if err := txm.RunInTransaction(ctx, func(ctx context.Context) error {
		if os.Getenv("SEED_RESET") == "true" {
			if err := s.reset(ctx); err != nil {
				return err
			}
		}
		return s.run(ctx)
	}); err != nil {
		log.Fatalw("failed to seed demo data", "error", err)
	}

	log.Info("seeding completed successfully")
}

type seeder struct {
	txm         *postgres.TxManager
	products    *catalog_repo.NomenclatureRepo
	warehouses  *catalog_repo.WarehouseRepo
	movements   *register_repo.MovementRepo
	adjustments *report_repo.AdjustmentRepo

	days int
	rng  *rand.Rand
	now  time.Time
}

func (s *seeder) reset(ctx context.Context) error {
	_, err := s.txm.GetTx(ctx).Exec(ctx,
		`TRUNCATE stock_adjustments, stock_movements, products, product_categories, warehouses RESTART IDENTITY`)
	if err != nil {
		return fmt.Errorf("truncate: %w", err)
	}
	logger.Info(ctx, "existing data removed")
	return nil
}

const (
	mainWH id.ID = 10
	eastWH id.ID = 20
	westWH id.ID = 30
	bakery id.ID = 1
	dairy  id.ID = 2
	drinks id.ID = 3
)

func (s *seeder) run(ctx context.Context) error {
	categories := []nomenclature.Category{
		{ID: bakery, Name: "Bakery"},
		{ID: dairy, Name: "Dairy"},
		{ID: drinks, Name: "Beverages"},
	}
	products := []nomenclature.Product{
		{ID: 1, Name: "Flour, wheat", Barcode: ptr("4000001"), CategoryID: ptr(bakery), Active: true},
		{ID: 2, Name: "Sugar", Barcode: ptr("4000002"), CategoryID: ptr(bakery), Active: true},
		{ID: 3, Name: "Milk 3.2%", Barcode: ptr("4100001"), CategoryID: ptr(dairy), Active: true},
		{ID: 4, Name: "Café crème", Barcode: ptr("4200001"), CategoryID: ptr(drinks), Active: true},
		{ID: 5, Name: "Yeast", CategoryID: ptr(bakery), Active: true},
		{ID: 6, Name: "Syrup (discontinued)", Barcode: ptr("4200099"), CategoryID: ptr(drinks), Active: false},
	}
	warehouses := []warehouse.Warehouse{
		{ID: mainWH, DisplayName: "Main warehouse", Active: true},
		{ID: eastWH, DisplayName: "Store East", Active: true},
		{ID: westWH, DisplayName: "Store West", Active: true},
	}

	if _, err := s.products.InsertCategories(ctx, categories); err != nil {
		return err
	}
	if _, err := s.products.InsertProducts(ctx, products); err != nil {
		return err
	}
	if _, err := s.warehouses.Insert(ctx, warehouses); err != nil {
		return err
	}

	var records []register_repo.MovementRecord
	var adjustments []report_repo.AdjustmentRecord
	for _, p := range products {
		records = append(records, s.history(p.ID)...)
		adjustments = append(adjustments, report_repo.AdjustmentRecord{
			ProductID:   p.ID,
			WarehouseID: mainWH,
			Quantity:    s.qty(-3, 3),
			AdjustedAt:  s.now.AddDate(0, 0, -s.days/2),
		})
	}

	n, err := s.movements.Insert(ctx, records)
	if err != nil {
		return err
	}
	m, err := s.adjustments.Insert(ctx, adjustments)
	if err != nil {
		return err
	}

	logger.Info(ctx, "demo data loaded",
		"categories", len(categories),
		"products", len(products),
		"warehouses", len(warehouses),
		"movements", n,
		"adjustments", m,
	)
	return nil
}

// history generates one product's movements: purchases into the main
// warehouse, transfers to stores, and sales and losses from the stores.
func (s *seeder) history(product id.ID) []register_repo.MovementRecord {
	var out []register_repo.MovementRecord
	add := func(day int, typ string, src, dst *id.ID, q decimal.Decimal) {
		at := s.now.AddDate(0, 0, -s.days+day).Add(time.Duration(s.rng.IntN(10*60)+8*60) * time.Minute)
		out = append(out, register_repo.MovementRecord{
			ProductID:       product,
			WarehouseID:     src,
			WarehouseDestID: dst,
			MovementType:    typ,
			Quantity:        q,
			CreatedAt:       at,
		})
	}

	stores := []id.ID{eastWH, westWH}
	for day := 0; day < s.days; day++ {
		if day%7 == 0 {
			add(day, "purchase", nil, ptr(mainWH), s.qty(40, 80))
		}
		if day%3 == 0 {
			store := stores[s.rng.IntN(len(stores))]
			add(day, "transfer", ptr(mainWH), ptr(store), s.qty(5, 15))
		}
		for _, store := range stores {
			add(day, "sales", ptr(store), nil, s.qty(0, 4))
		}
		switch s.rng.IntN(20) {
		case 0:
			// returns are recorded with either sign
			add(day, "sales_returns", ptr(stores[0]), nil, s.qty(-2, 2))
		case 1:
			add(day, "wastages", ptr(mainWH), nil, s.qty(0, 2))
		case 2:
			add(day, "consumption", ptr(mainWH), nil, s.qty(0, 1))
		case 3:
			add(day, "manufacturing", nil, ptr(mainWH), s.qty(5, 10))
		case 4:
			add(day, "purchase_return", ptr(mainWH), nil, s.qty(1, 3))
		}
	}
	return out
}

// qty returns a random quantity in [lo, hi] with three decimals.
func (s *seeder) qty(lo, hi int) decimal.Decimal {
	thousandths := lo*1000 + s.rng.IntN((hi-lo)*1000+1)
	return decimal.New(int64(thousandths), -3)
}

func ptr[T any](v T) *T { return &v }

func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
