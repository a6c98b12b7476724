package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"table-order-backend/internal/wire"
)

// GetMenu handles the GET /menu request.
func (h *Handler) GetMenu(c *gin.Context) {
	items, err := h.store.ListMenu(c.Request.Context())
	if err != nil {
		abortWithError(c, err)
		return
	}

	resp := wire.Menu{Items: make([]wire.MenuItem, 0, len(items))}
	for _, it := range items {
		resp.Items = append(resp.Items, wire.MenuItem{
			ID:       it.ID,
			Name:     it.Name,
			PrepMinM: it.PrepMinM,
			PrepMaxM: it.PrepMaxM,
		})
	}
	c.JSON(http.StatusOK, resp)
}
