package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetHealth reports whether the store can be reached.
func (h *Handler) GetHealth(c *gin.Context) {
	if err := h.store.Ping(c.Request.Context()); err != nil {
		c.String(http.StatusServiceUnavailable, err.Error())
		return
	}
	c.String(http.StatusOK, "ok")
}
