package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/joho/godotenv"

	"table-order-backend/internal/client"
	"table-order-backend/internal/loadgen"
	"table-order-backend/internal/parse"
	"table-order-backend/internal/wire"
)

const defaultAddr = "http://127.0.0.1:3030"

const usage = `usage: tablectl [-addr URL] <command> [flags]

commands:
  menu                                  list the menu
  order  -table N ITEMS...              place an order (ITEMS: 3, 2x3, 1,2,5)
  show   -table N [-order M]            show a table or one order
  remove -table N -order M              remove an order from a table
  loadgen -tables T -orders O -max-items K [-seed S]
                                        submit random orders for many tables
`

func main() {
	// A missing .env is fine; the environment and flags still apply.
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("Warning: could not load .env: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "tablectl:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("tablectl", flag.ContinueOnError)
	fs.Usage = func() { fmt.Fprint(fs.Output(), usage) }
	addr := fs.String("addr", envOr("ORDER_SERVICE_URL", defaultAddr), "order service base URL")
	timeout := fs.Duration("timeout", 10*time.Second, "per-request timeout")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return errors.New("missing command")
	}

	c := client.New(*addr, client.WithTimeout(*timeout))
	cmd, rest := fs.Arg(0), fs.Args()[1:]

	switch cmd {
	case "menu":
		return runMenu(ctx, c, out)
	case "order":
		return runOrder(ctx, c, rest, out)
	case "show":
		return runShow(ctx, c, rest, out)
	case "remove":
		return runRemove(ctx, c, rest, out)
	case "loadgen":
		return runLoadgen(ctx, c, rest, out)
	default:
		fs.Usage()
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func runMenu(ctx context.Context, c *client.Client, out io.Writer) error {
	menu, err := c.Menu(ctx)
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tPREP")
	for _, it := range menu.Items {
		fmt.Fprintf(w, "%d\t%s\t%s\n", it.ID, it.Name, client.PrepLabel(it))
	}
	return w.Flush()
}

func runOrder(ctx context.Context, c *client.Client, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("order", flag.ContinueOnError)
	table := fs.Int64("table", 0, "table id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *table <= 0 {
		return errors.New("order: -table must be a positive id")
	}
	items, err := parse.ParseItems(fs.Args())
	if err != nil {
		return fmt.Errorf("order: %w", err)
	}

	var pending client.PendingOrder
	pending.SetTable(*table)
	for _, id := range items {
		pending.Add(id)
	}
	t, err := pending.Submit(ctx, c)
	if err != nil {
		return err
	}
	return printTable(out, t)
}

func runShow(ctx context.Context, c *client.Client, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("show", flag.ContinueOnError)
	table := fs.Int64("table", 0, "table id")
	order := fs.Int64("order", 0, "order id (optional)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *table <= 0 {
		return errors.New("show: -table must be a positive id")
	}

	if *order != 0 {
		o, err := c.Order(ctx, *table, *order)
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ORDER\tTABLE\tITEM\tREADY AT")
		fmt.Fprintf(w, "%d\t%d\t%d\t%s\n", o.OrderID, o.TableID, o.ItemID, o.ReadyAt.Local().Format(time.Kitchen))
		return w.Flush()
	}

	t, err := c.Table(ctx, *table)
	if err != nil {
		return err
	}
	return printTable(out, t)
}

func runRemove(ctx context.Context, c *client.Client, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("remove", flag.ContinueOnError)
	table := fs.Int64("table", 0, "table id")
	order := fs.Int64("order", 0, "order id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *table <= 0 || *order <= 0 {
		return errors.New("remove: -table and -order must be positive ids")
	}

	t, err := c.RemoveOrder(ctx, *table, *order)
	if err != nil {
		return err
	}
	return printTable(out, t)
}

func runLoadgen(ctx context.Context, c *client.Client, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("loadgen", flag.ContinueOnError)
	var cfg loadgen.Config
	fs.IntVar(&cfg.Tables, "tables", 10, "number of simulated tables")
	fs.IntVar(&cfg.OrdersPerTable, "orders", 5, "orders per table")
	fs.IntVar(&cfg.MaxItems, "max-items", 3, "maximum items per order")
	fs.Int64Var(&cfg.Seed, "seed", 0, "random seed (0 uses the clock)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	menu, err := c.Menu(ctx)
	if err != nil {
		return err
	}
	ids := make([]int64, len(menu.Items))
	for i, it := range menu.Items {
		ids[i] = it.ID
	}

	g, err := loadgen.New(cfg, ids, c)
	if err != nil {
		return err
	}
	start := time.Now()
	report, err := g.Run(ctx)
	fmt.Fprintf(out, "submitted %d orders (%d items), %d failed, in %s\n",
		report.Submitted, report.Items, report.Failed, time.Since(start).Round(time.Millisecond))
	return err
}

func printTable(out io.Writer, t *wire.Table) error {
	if len(t.OrderedItems) == 0 {
		_, err := fmt.Fprintf(out, "table %d has no orders\n", t.TableID)
		return err
	}
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "TABLE %d\n", t.TableID)
	fmt.Fprintln(w, "ORDER\tITEM\tREADY AT")
	for _, o := range t.OrderedItems {
		fmt.Fprintf(w, "%d\t%d\t%s\n", o.OrderID, o.ItemID, o.ReadyAt.Local().Format(time.Kitchen))
	}
	return w.Flush()
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
