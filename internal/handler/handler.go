package handler

import (
	"context"

	"the-signal/internal/service"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"
)

// Advisor answers natural-language questions against the current market data.
type Advisor interface {
	Ask(ctx context.Context, sessionID, question string) (string, error)
}

type Handler struct {
	tracer        trace.Tracer
	signalService *service.SignalService
	advisor       Advisor
}

func New(tracer trace.Tracer, signalService *service.SignalService, advisor Advisor) *Handler {
	return &Handler{
		tracer:        tracer,
		signalService: signalService,
		advisor:       advisor,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine, apiKey string) {
	r.GET("/health", h.Health)

	api := r.Group("/api", APIKeyAuth(apiKey))
	api.GET("/signal", h.GetSignal)
	api.GET("/brief", h.GetBrief)
	api.POST("/signal/refresh", h.RefreshSignal)
	api.POST("/advisor/ask", h.AskAdvisor)
}
