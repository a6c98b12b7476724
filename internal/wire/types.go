// Package wire holds the JSON shapes exchanged between the order service and
// its clients.
package wire

import "time"

// Menu is the body of GET /menu.
type Menu struct {
	Items []MenuItem `json:"items"`
}

// MenuItem is one catalog entry. Preparation bounds are in minutes.
type MenuItem struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	PrepMinM float64 `json:"prep_min_m"`
	PrepMaxM float64 `json:"prep_max_m"`
}

// Table is the body of GET, POST and DELETE on a table.
type Table struct {
	TableID      int64         `json:"table_id"`
	OrderedItems []OrderedItem `json:"ordered_items"`
}

// OrderedItem is one order as listed under its table.
type OrderedItem struct {
	OrderID int64     `json:"order_id"`
	ItemID  int64     `json:"item_id"`
	ReadyAt time.Time `json:"ready_at"`
}

// Order is the body of GET /tables/:table_id/:order_id.
type Order struct {
	OrderID int64     `json:"order_id"`
	TableID int64     `json:"table_id"`
	ItemID  int64     `json:"item_id"`
	ReadyAt time.Time `json:"ready_at"`
}

// PlaceOrderRequest is the body of POST /tables/:table_id.
type PlaceOrderRequest struct {
	Items []int64 `json:"items" binding:"required"`
}
