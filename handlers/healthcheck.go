package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// CheckConnection reports that the service is up and how many products it serves
func (h *Handler) CheckConnection(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"products": h.catalog.Len(),
		"sessions": h.sessions.Len(),
	})
}
