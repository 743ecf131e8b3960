package rest

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const healthPingTimeout = 2 * time.Second

const (
	DBConnected    = "connected"
	DBDisconnected = "disconnected"
	DBError        = "error"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthController struct {
	store  Pinger
	logger *zap.Logger
	now    func() time.Time
}

type HealthResponse struct {
	Status    string `json:"status"`
	Message   string `json:"message"`
	Database  string `json:"database"`
	Timestamp string `json:"timestamp"`
}

func NewHealthController(r *gin.Engine, store Pinger, logger *zap.Logger) *HealthController {
	hc := &HealthController{
		store:  store,
		logger: logger,
		now:    time.Now,
	}

	r.GET(RouteHealth, hc.HealthHandler)

	return hc
}

// HealthHandler always answers 200 while the process can serve; the database
// state is reported in the body.
func (hc *HealthController) HealthHandler(c *gin.Context) {
	db := DBDisconnected
	if hc.store != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), healthPingTimeout)
		defer cancel()

		if err := hc.store.Ping(ctx); err != nil {
			hc.logger.Warn("health ping failed", zap.Error(err))
			db = DBError
		} else {
			db = DBConnected
		}
	}

	c.JSON(http.StatusOK, HealthResponse{
		Status:    "OK",
		Message:   "User Management API is running",
		Database:  db,
		Timestamp: hc.now().UTC().Format(time.RFC3339Nano),
	})
}
