package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tgriffin/draftedge/internal/services"
)

type HealthHandler struct {
	refresher *services.RefresherService
	hub       *services.Hub
}

func NewHealthHandler(refresher *services.RefresherService, hub *services.Hub) *HealthHandler {
	return &HealthHandler{
		refresher: refresher,
		hub:       hub,
	}
}

// GetHealth returns basic health status - always returns 200 if server is running
func (h *HealthHandler) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "draftedge",
	})
}

// GetStatus reports scheduler state and connected client counts.
func (h *HealthHandler) GetStatus(c *gin.Context) {
	status := gin.H{
		"refresher": h.refresher.Status(),
	}
	if h.hub != nil {
		status["ws_clients"] = h.hub.GetConnectionCount()
	}
	c.JSON(http.StatusOK, status)
}
