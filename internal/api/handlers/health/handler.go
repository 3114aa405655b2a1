package health

import (
	"context"
	"net/http"

	"github.com/wb-go/wbf/ginext"
	"github.com/wb-go/wbf/zlog"

	"github.com/aliskhannn/market-notifier/internal/api/respond"
)

//go:generate mockgen -source=handler.go -destination=../../../mocks/api/handlers/health/mock.go -package=mocks

type brokerChecker interface {
	IsConnected() bool
	TestConnection(ctx context.Context) error
}

// Status is the health check body.
type Status struct {
	Status          string `json:"status"`
	BrokerConnected bool   `json:"brokerConnected"`
	BrokerReachable bool   `json:"brokerReachable"`
}

// Handler reports service health.
type Handler struct {
	broker brokerChecker
}

// NewHandler creates a new health handler.
func NewHandler(b brokerChecker) *Handler {
	return &Handler{broker: b}
}

// Check reports the passive broker link state and the result of an active ping.
func (h *Handler) Check(c *ginext.Context) {
	st := Status{Status: "ok", BrokerConnected: h.broker.IsConnected(), BrokerReachable: true}

	if err := h.broker.TestConnection(c.Request.Context()); err != nil {
		zlog.Logger.Warn().Err(err).Msg("broker health check failed")
		st.BrokerReachable = false
	}

	if !st.BrokerConnected || !st.BrokerReachable {
		st.Status = "degraded"
		respond.JSON(c.Writer, http.StatusServiceUnavailable, st)
		return
	}

	respond.OK(c.Writer, st)
}
