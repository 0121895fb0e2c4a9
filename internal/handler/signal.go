package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// GetSignal godoc
// @Summary      Current market signal
// @Description  Returns raw snapshots, per-category scores, both composite variants and the leverage report
// @Tags         signal
// @Produce      json
// @Success      200  {object}  domain.SignalResult
// @Router       /api/signal [get]
func (h *Handler) GetSignal(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.get-signal")
	defer span.End()

	c.JSON(http.StatusOK, h.signalService.GetSignal(ctx))
}

// GetBrief godoc
// @Summary      Current market brief
// @Description  Returns the synthesized natural-language market brief
// @Tags         signal
// @Produce      json
// @Success      200  {object}  domain.Brief
// @Router       /api/brief [get]
func (h *Handler) GetBrief(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.get-brief")
	defer span.End()

	c.JSON(http.StatusOK, h.signalService.GetBrief(ctx))
}

// RefreshSignal godoc
// @Summary      Force a signal refresh
// @Description  Re-fetches all upstream snapshots, rescores and rewrites the cached brief
// @Tags         signal
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/signal/refresh [post]
func (h *Handler) RefreshSignal(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.refresh-signal")
	defer span.End()

	if err := h.signalService.RefreshSignal(ctx); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type askRequest struct {
	SessionID string `json:"sessionId"`
	Question  string `json:"question" binding:"required"`
}

// AskAdvisor godoc
// @Summary      Ask the market advisor a question
// @Description  Answers a natural-language question grounded in the current signal and brief
// @Tags         advisor
// @Accept       json
// @Produce      json
// @Param        request  body      askRequest  true  "Question payload"
// @Success      200      {object}  map[string]string
// @Failure      400      {object}  map[string]string
// @Failure      502      {object}  map[string]string
// @Failure      503      {object}  map[string]string
// @Router       /api/advisor/ask [post]
func (h *Handler) AskAdvisor(c *gin.Context) {
	if h.advisor == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "advisor unavailable"})
		return
	}

	var req askRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	sessionID := strings.TrimSpace(req.SessionID)
	if sessionID == "" {
		sessionID = "default"
	}

	ctx, span := h.tracer.Start(c.Request.Context(), "handler.ask-advisor")
	defer span.End()

	reply, err := h.advisor.Ask(ctx, sessionID, req.Question)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"reply": reply})
}
