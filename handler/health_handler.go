package handler

import (
	"time"

	"main/config"

	"github.com/gin-gonic/gin"
	"github.com/shirou/gopsutil/v4/cpu"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

type HealthHandler struct {
	client *mongo.Client
}

func NewHealthHandler(client *mongo.Client) *HealthHandler {
	return &HealthHandler{client: client}
}

func (h *HealthHandler) GetHealth(c *gin.Context) {
	ctx := c.Request.Context()

	status, dbStatus := "ok", "ok"
	if err := h.client.Ping(ctx, readpref.Primary()); err != nil {
		status, dbStatus = "degraded", "unreachable"
	}

	pool := config.GetPoolStats()

	c.JSON(200, gin.H{
		"status":   status,
		"cpu":      cpuUsage(),
		"database": dbStatus,
		"pool": gin.H{
			"checkedOut": pool.CheckedOut,
			"created":    pool.Created,
			"closed":     pool.Closed,
		},
		"time": time.Now().UTC(),
	})
}

// cpuUsage returns the instantaneous CPU usage percentage, 0 when sampling fails.
func cpuUsage() float64 {
	percentage, err := cpu.Percent(0, false)
	if err != nil || len(percentage) == 0 {
		return 0
	}
	return percentage[0]
}
