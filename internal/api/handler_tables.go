package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"table-order-backend/internal/model"
	"table-order-backend/internal/store"
	"table-order-backend/internal/wire"
)

// GetTable handles the GET /tables/{table_id} request.
func (h *Handler) GetTable(c *gin.Context) {
	tableID, ok := idParam(c, "table_id")
	if !ok {
		return
	}

	orders, err := h.store.ListOrdersForTable(c.Request.Context(), tableID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, tableResponse(tableID, orders))
}

// PlaceOrder handles the POST /tables/{table_id} request.
func (h *Handler) PlaceOrder(c *gin.Context) {
	tableID, ok := idParam(c, "table_id")
	if !ok {
		return
	}

	var req wire.PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, fmt.Errorf("invalid request: %v: %w", err, store.ErrInvalidInput))
		return
	}

	orders, err := h.store.PlaceOrder(c.Request.Context(), tableID, req.Items)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, tableResponse(tableID, orders))
}

// GetOrder handles the GET /tables/{table_id}/{order_id} request.
func (h *Handler) GetOrder(c *gin.Context) {
	tableID, ok := idParam(c, "table_id")
	if !ok {
		return
	}
	orderID, ok := idParam(c, "order_id")
	if !ok {
		return
	}

	order, err := h.store.GetOrder(c.Request.Context(), tableID, orderID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, wire.Order{
		OrderID: order.ID,
		TableID: order.TableID,
		ItemID:  order.ItemID,
		ReadyAt: order.ReadyAt.UTC(),
	})
}

// RemoveOrder handles the DELETE /tables/{table_id}/{order_id} request.
func (h *Handler) RemoveOrder(c *gin.Context) {
	tableID, ok := idParam(c, "table_id")
	if !ok {
		return
	}
	orderID, ok := idParam(c, "order_id")
	if !ok {
		return
	}

	orders, err := h.store.RemoveOrder(c.Request.Context(), tableID, orderID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, tableResponse(tableID, orders))
}

func tableResponse(tableID int64, orders []model.Order) wire.Table {
	resp := wire.Table{
		TableID:      tableID,
		OrderedItems: make([]wire.OrderedItem, 0, len(orders)),
	}
	for _, o := range orders {
		resp.OrderedItems = append(resp.OrderedItems, wire.OrderedItem{
			OrderID: o.ID,
			ItemID:  o.ItemID,
			ReadyAt: o.ReadyAt.UTC(),
		})
	}
	return resp
}
