package api

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"table-order-backend/internal/mw"
	"table-order-backend/internal/store"
)

// Handler holds shared dependencies for API handlers.
type Handler struct {
	store store.Store
}

// NewHandler creates a new API handler.
func NewHandler(s store.Store) *Handler {
	return &Handler{store: s}
}

// abortWithError writes err as a plain-text body with a status chosen by kind.
func abortWithError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, store.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, store.ErrInvalidInput):
		status = http.StatusBadRequest
	}
	if status == http.StatusInternalServerError {
		log.Printf("request %s %s failed [%s]: %v", c.Request.Method, c.Request.URL.Path, c.GetString(mw.RequestIDKey), err)
	}
	c.Abort()
	c.String(status, err.Error())
}

// idParam parses a positive integer path parameter.
func idParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.Abort()
		c.String(http.StatusBadRequest, "invalid %s: %q", name, c.Param(name))
		return 0, false
	}
	return id, true
}
