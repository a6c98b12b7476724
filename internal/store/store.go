package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"table-order-backend/internal/model"
)

// Store defines the interface for all menu and order operations.
type Store interface {
	ListMenu(ctx context.Context) ([]model.MenuItem, error)
	ListOrdersForTable(ctx context.Context, tableID int64) ([]model.Order, error)
	PlaceOrder(ctx context.Context, tableID int64, itemIDs []int64) ([]model.Order, error)
	RemoveOrder(ctx context.Context, tableID, orderID int64) ([]model.Order, error)
	GetOrder(ctx context.Context, tableID, orderID int64) (model.Order, error)
	Ping(ctx context.Context) error
}

// OrderObserver is told about every successfully placed order.
type OrderObserver interface {
	OrderPlaced(offset time.Duration)
	OrderRemoved()
}

// gormStore implements the Store interface using GORM. All access goes
// through mu, so operations are serialized process-wide.
type gormStore struct {
	mu       sync.Mutex
	db       *gorm.DB
	sampler  Sampler
	now      func() time.Time
	observer OrderObserver
}

// Option configures a gormStore.
type Option func(*gormStore)

// WithSampler replaces the ready-time sampler.
func WithSampler(s Sampler) Option {
	return func(g *gormStore) { g.sampler = s }
}

// WithClock replaces the time source used for ready-time computation.
func WithClock(now func() time.Time) Option {
	return func(g *gormStore) { g.now = now }
}

// WithObserver registers a hook for placed and removed orders.
func WithObserver(o OrderObserver) Option {
	return func(g *gormStore) { g.observer = o }
}

// NewGormStore creates a new GORM-backed store.
func NewGormStore(db *gorm.DB, opts ...Option) Store {
	s := &gormStore{
		db:      db,
		sampler: NewUniformSampler(time.Now().UnixNano()),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ListMenu returns the whole catalog ordered by id.
func (s *gormStore) ListMenu(ctx context.Context) ([]model.MenuItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var items []model.MenuItem
	if err := s.db.WithContext(ctx).Order("id").Find(&items).Error; err != nil {
		return nil, unavailable("list menu", err)
	}
	return items, nil
}

// ListOrdersForTable returns every order placed for tableID.
func (s *gormStore) ListOrdersForTable(ctx context.Context, tableID int64) ([]model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.ordersForTable(ctx, s.db, tableID)
}

// PlaceOrder inserts one order per requested item id and returns the table's
// full order list. Either every row is inserted or none is.
func (s *gormStore) PlaceOrder(ctx context.Context, tableID int64, itemIDs []int64) ([]model.Order, error) {
	if len(itemIDs) == 0 {
		return nil, fmt.Errorf("place order for table %d: no items: %w", tableID, ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now().UTC()
	var placed []model.Order
	var orders []model.Order
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		menu, err := fetchMenuItems(tx, itemIDs)
		if err != nil {
			return err
		}

		placed = make([]model.Order, 0, len(itemIDs))
		for _, id := range itemIDs {
			item := menu[id]
			placed = append(placed, model.Order{
				TableID:   tableID,
				ItemID:    id,
				ReadyAt:   now.Add(s.sampler.Sample(item.PrepMin(), item.PrepMax())),
				CreatedAt: now,
			})
		}
		if err := tx.Omit(clause.Associations).Create(&placed).Error; err != nil {
			return unavailable(fmt.Sprintf("insert orders for table %d", tableID), err)
		}

		orders, err = s.ordersForTable(ctx, tx, tableID)
		return err
	})
	if err != nil {
		return nil, err
	}

	if s.observer != nil {
		for _, o := range placed {
			s.observer.OrderPlaced(o.ReadyAt.Sub(now))
		}
	}
	return orders, nil
}

// RemoveOrder deletes the order matching both ids and returns what is left
// for the table.
func (s *gormStore) RemoveOrder(ctx context.Context, tableID, orderID int64) ([]model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var orders []model.Order
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ? AND table_id = ?", orderID, tableID).Delete(&model.Order{})
		if res.Error != nil {
			return unavailable(fmt.Sprintf("delete order %d for table %d", orderID, tableID), res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("order %d for table %d: %w", orderID, tableID, ErrNotFound)
		}

		var err error
		orders, err = s.ordersForTable(ctx, tx, tableID)
		return err
	})
	if err != nil {
		return nil, err
	}

	if s.observer != nil {
		s.observer.OrderRemoved()
	}
	return orders, nil
}

// GetOrder returns a single order of tableID.
func (s *gormStore) GetOrder(ctx context.Context, tableID, orderID int64) (model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var order model.Order
	err := s.db.WithContext(ctx).
		Where("id = ? AND table_id = ?", orderID, tableID).
		First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Order{}, fmt.Errorf("order %d for table %d: %w", orderID, tableID, ErrNotFound)
	}
	if err != nil {
		return model.Order{}, unavailable(fmt.Sprintf("get order %d for table %d", orderID, tableID), err)
	}
	return order, nil
}

// Ping checks that the database connection can be acquired.
func (s *gormStore) Ping(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sqlDB, err := s.db.DB()
	if err != nil {
		return unavailable("ping", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return unavailable("ping", err)
	}
	return nil
}

func (s *gormStore) ordersForTable(ctx context.Context, db *gorm.DB, tableID int64) ([]model.Order, error) {
	orders := []model.Order{}
	if err := db.WithContext(ctx).Where("table_id = ?", tableID).Order("id").Find(&orders).Error; err != nil {
		return nil, unavailable(fmt.Sprintf("list orders for table %d", tableID), err)
	}
	return orders, nil
}

// fetchMenuItems loads the distinct items referenced by ids and fails if any
// of them is missing.
func fetchMenuItems(tx *gorm.DB, ids []int64) (map[int64]model.MenuItem, error) {
	unique := make([]int64, 0, len(ids))
	seen := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			unique = append(unique, id)
		}
	}

	var items []model.MenuItem
	if err := tx.Where("id IN ?", unique).Find(&items).Error; err != nil {
		return nil, unavailable("look up menu items", err)
	}

	menu := make(map[int64]model.MenuItem, len(items))
	for _, it := range items {
		menu[it.ID] = it
	}
	for _, id := range unique {
		if _, ok := menu[id]; !ok {
			return nil, fmt.Errorf("menu item %d: %w", id, ErrNotFound)
		}
	}
	return menu, nil
}

func unavailable(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrUnavailable, err)
}
