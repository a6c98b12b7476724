package loadgen

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"table-order-backend/internal/wire"
)

// mockSubmitter records every submitted order.
type mockSubmitter struct {
	mu      sync.Mutex
	byTable map[int64][][]int64
	fail    func(tableID int64) error
}

func newMockSubmitter() *mockSubmitter {
	return &mockSubmitter{byTable: make(map[int64][][]int64)}
}

func (m *mockSubmitter) PlaceOrder(ctx context.Context, tableID int64, items []int64) (*wire.Table, error) {
	if m.fail != nil {
		if err := m.fail(tableID); err != nil {
			return nil, err
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.byTable[tableID] = append(m.byTable[tableID], items)
	return &wire.Table{TableID: tableID}, nil
}

func TestGenerator_Run(t *testing.T) {
	sub := newMockSubmitter()
	menu := []int64{1, 2, 3}
	g, err := New(Config{Tables: 6, OrdersPerTable: 4, MaxItems: 3, Seed: 11}, menu, sub)
	require.NoError(t, err)

	report, err := g.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 24, report.Submitted)
	assert.Zero(t, report.Failed)

	require.Len(t, sub.byTable, 6)
	total := 0
	for tableID := int64(1); tableID <= 6; tableID++ {
		orders := sub.byTable[tableID]
		assert.Len(t, orders, 4, "table %d", tableID)
		for _, items := range orders {
			assert.NotEmpty(t, items)
			assert.LessOrEqual(t, len(items), 3)
			for _, id := range items {
				assert.Contains(t, menu, id)
			}
			total += len(items)
		}
	}
	assert.Equal(t, total, report.Items)
}

func TestGenerator_SameSeedSameOrders(t *testing.T) {
	cfg := Config{Tables: 3, OrdersPerTable: 5, MaxItems: 4, Seed: 99}
	menu := []int64{10, 20, 30, 40}

	a, b := newMockSubmitter(), newMockSubmitter()
	ga, err := New(cfg, menu, a)
	require.NoError(t, err)
	gb, err := New(cfg, menu, b)
	require.NoError(t, err)

	_, err = ga.Run(context.Background())
	require.NoError(t, err)
	_, err = gb.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, a.byTable, b.byTable)
}

func TestGenerator_FailuresAreCounted(t *testing.T) {
	sub := newMockSubmitter()
	sub.fail = func(tableID int64) error {
		if tableID == 2 {
			return errors.New("order service returned 500")
		}
		return nil
	}
	g, err := New(Config{Tables: 3, OrdersPerTable: 2, MaxItems: 1}, []int64{1}, sub)
	require.NoError(t, err)

	report, err := g.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, report.Submitted)
	assert.Equal(t, 2, report.Failed)
	assert.Equal(t, 4, report.Items)
}

func TestGenerator_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sub := newMockSubmitter()
	g, err := New(Config{Tables: 2, OrdersPerTable: 3, MaxItems: 1}, []int64{1}, sub)
	require.NoError(t, err)

	report, err := g.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, report.Submitted)
	assert.Empty(t, sub.byTable)
}

func TestNew_Validation(t *testing.T) {
	_, err := New(Config{Tables: 0, OrdersPerTable: 1, MaxItems: 1}, []int64{1}, newMockSubmitter())
	assert.Error(t, err)

	_, err = New(Config{Tables: 1, OrdersPerTable: 1, MaxItems: 1}, nil, newMockSubmitter())
	assert.Error(t, err)
}
