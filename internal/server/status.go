package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"campus-notify/internal/connection"
	"campus-notify/internal/event"
	"campus-notify/internal/router"
)

var startTime = time.Now()

// StatusResponse is the /status payload.
type StatusResponse struct {
	Status        string           `json:"status"`
	Timestamp     time.Time        `json:"timestamp"`
	UptimeSeconds int64            `json:"uptime_seconds"`
	Connection    connection.Stats `json:"connection"`
	Badge         BadgeStatus      `json:"badge"`
	Router        router.Stats     `json:"router"`
}

// BadgeStatus is the badge portion of the status payload.
type BadgeStatus struct {
	Total   int                `json:"total"`
	Text    string             `json:"text"`
	Visible bool               `json:"visible"`
	ByType  map[event.Type]int `json:"by_type"`
}

func setupRoutes(engine *gin.Engine, cfg Config) {
	engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "campus-notify",
		})
	})

	engine.GET("/status", func(c *gin.Context) {
		statusHandler(c, cfg)
	})

	engine.POST("/wake", func(c *gin.Context) {
		cfg.Connection.Wake()
		c.JSON(http.StatusAccepted, gin.H{"status": "waking"})
	})

	engine.POST("/read-all", func(c *gin.Context) {
		if err := cfg.Reconciler.ClearAll(c.Request.Context()); err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "cleared"})
	})

	engine.GET("/notifications", func(c *gin.Context) {
		listHandler(c, cfg)
	})
}

// listHandler proxies one notification page from the portal API so local
// tooling can inspect the inbox without holding credentials itself.
func listHandler(c *gin.Context, cfg Config) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	page, err := cfg.API.Notifications(c.Request.Context(), limit, offset)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"notifications": page.Events,
		"total":         page.Total,
	})
}

// statusHandler reports the agent's view of the world. A failed connection
// degrades the reported status but the endpoint itself stays healthy.
func statusHandler(c *gin.Context, cfg Config) {
	connStats := cfg.Connection.Stats()
	snapshot := cfg.Reconciler.Snapshot()

	status := "healthy"
	if connStats.State == connection.StateFailed.String() {
		status = "degraded"
	}

	c.JSON(http.StatusOK, StatusResponse{
		Status:        status,
		Timestamp:     time.Now(),
		UptimeSeconds: int64(time.Since(startTime).Seconds()),
		Connection:    connStats,
		Badge: BadgeStatus{
			Total:   snapshot.Total,
			Text:    snapshot.Text(),
			Visible: snapshot.Visible(),
			ByType:  snapshot.ByType,
		},
		Router: cfg.Router.Stats(),
	})
}
