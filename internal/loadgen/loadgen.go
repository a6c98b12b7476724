package loadgen

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"sync"

	"golang.org/x/sync/errgroup"

	"table-order-backend/internal/wire"
)

// OrderSubmitter sends one order for a table.
type OrderSubmitter interface {
	PlaceOrder(ctx context.Context, tableID int64, items []int64) (*wire.Table, error)
}

// Config describes the simulated dining room.
type Config struct {
	Tables         int
	OrdersPerTable int
	MaxItems       int
	Seed           int64
}

// Report summarizes one run.
type Report struct {
	Submitted int
	Failed    int
	Items     int
}

// Generator submits random orders for many tables at once.
type Generator struct {
	cfg       Config
	menu      []int64
	submitter OrderSubmitter
}

// New creates a generator drawing items from menu.
func New(cfg Config, menu []int64, submitter OrderSubmitter) (*Generator, error) {
	if cfg.Tables <= 0 || cfg.OrdersPerTable <= 0 || cfg.MaxItems <= 0 {
		return nil, fmt.Errorf("tables, orders per table and max items must be positive (got %d, %d, %d)",
			cfg.Tables, cfg.OrdersPerTable, cfg.MaxItems)
	}
	if len(menu) == 0 {
		return nil, errors.New("menu is empty")
	}
	return &Generator{cfg: cfg, menu: menu, submitter: submitter}, nil
}

// Run starts one goroutine per table and waits for all of them. Failed
// submissions are logged and counted; only cancellation stops a table early.
func (g *Generator) Run(ctx context.Context) (Report, error) {
	var (
		mu     sync.Mutex
		report Report
	)

	eg, ctx := errgroup.WithContext(ctx)
	for t := 1; t <= g.cfg.Tables; t++ {
		tableID := int64(t)
		eg.Go(func() error {
			rng := rand.New(rand.NewSource(g.cfg.Seed + tableID))
			for i := 0; i < g.cfg.OrdersPerTable; i++ {
				if err := ctx.Err(); err != nil {
					return err
				}

				items := g.randomOrder(rng)
				_, err := g.submitter.PlaceOrder(ctx, tableID, items)

				mu.Lock()
				if err != nil {
					report.Failed++
				} else {
					report.Submitted++
					report.Items += len(items)
				}
				mu.Unlock()

				if err != nil {
					log.Printf("Table %d: order %d failed: %v", tableID, i+1, err)
				}
			}
			return nil
		})
	}

	err := eg.Wait()
	return report, err
}

func (g *Generator) randomOrder(rng *rand.Rand) []int64 {
	n := 1 + rng.Intn(g.cfg.MaxItems)
	items := make([]int64, n)
	for i := range items {
		items[i] = g.menu[rng.Intn(len(g.menu))]
	}
	return items
}
