package client

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"

	"table-order-backend/internal/wire"
)

// ErrNothingToSubmit is returned by Submit when no table or no item is set.
var ErrNothingToSubmit = errors.New("pending order needs a table and at least one item")

// OrderPlacer is the part of Client used to submit a pending order.
type OrderPlacer interface {
	PlaceOrder(ctx context.Context, tableID int64, items []int64) (*wire.Table, error)
}

// PendingOrder is the staff-side order being assembled before submission.
// It is not safe for concurrent use.
type PendingOrder struct {
	table *int64
	items []int64
}

// SetTable selects the table the order is for.
func (p *PendingOrder) SetTable(tableID int64) {
	p.table = &tableID
}

// Table returns the selected table, if any.
func (p *PendingOrder) Table() (int64, bool) {
	if p.table == nil {
		return 0, false
	}
	return *p.table, true
}

// Add queues one unit of a menu item.
func (p *PendingOrder) Add(itemID int64) {
	p.items = append(p.items, itemID)
}

// Items returns a copy of the queued item ids in insertion order.
func (p *PendingOrder) Items() []int64 {
	out := make([]int64, len(p.items))
	copy(out, p.items)
	return out
}

// Clear drops the table selection and all queued items.
func (p *PendingOrder) Clear() {
	p.table = nil
	p.items = nil
}

// Submit sends the pending order. On failure the pending state is kept as it
// was; on success it is cleared.
func (p *PendingOrder) Submit(ctx context.Context, placer OrderPlacer) (*wire.Table, error) {
	tableID, ok := p.Table()
	if !ok || len(p.items) == 0 {
		return nil, ErrNothingToSubmit
	}

	table, err := placer.PlaceOrder(ctx, tableID, p.Items())
	if err != nil {
		log.Printf("Error submitting order for table %d: %v", tableID, err)
		return nil, err
	}
	p.Clear()
	return table, nil
}

// PrepLabel renders the average preparation time of an item, e.g. "~2.5mins".
func PrepLabel(item wire.MenuItem) string {
	avg := (item.PrepMinM + item.PrepMaxM) / 2
	return fmt.Sprintf("~%smins", strconv.FormatFloat(avg, 'f', -1, 64))
}
