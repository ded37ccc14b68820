package chat

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/glucocare/glucocare-api/internal/middleware"
	"github.com/glucocare/glucocare-api/internal/model"
	"github.com/glucocare/glucocare-api/internal/service/chat"
	apperrors "github.com/glucocare/glucocare-api/pkg/errors"
	"github.com/glucocare/glucocare-api/pkg/httputil"
	"github.com/glucocare/glucocare-api/pkg/metrics"
)

type Handler struct {
	service *chat.Service
	metrics *metrics.Metrics
}

func NewHandler(service *chat.Service, metrics *metrics.Metrics) *Handler {
	return &Handler{service: service, metrics: metrics}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	conversations := r.Group("/chat/:userID")
	{
		conversations.POST("/messages", h.Send)
		conversations.GET("/messages", h.History)
		conversations.GET("/stream", h.Stream)
	}
}

func (h *Handler) peer(c *gin.Context) (callerID, peerID uuid.UUID, ok bool) {
	callerID, valid := middleware.UserID(c)
	if !valid {
		httputil.RespondWithError(c, apperrors.Unauthorized(nil))
		return uuid.Nil, uuid.Nil, false
	}

	peerID, err := uuid.Parse(c.Param("userID"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid user ID", err))
		return uuid.Nil, uuid.Nil, false
	}

	return callerID, peerID, true
}

func (h *Handler) Send(c *gin.Context) {
	callerID, peerID, ok := h.peer(c)
	if !ok {
		return
	}

	var req model.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest(err.Error(), err))
		return
	}

	msg, err := h.service.Send(c.Request.Context(), callerID, middleware.UserRole(c), peerID, req.Text)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithCreated(c, msg)
}

func (h *Handler) History(c *gin.Context) {
	callerID, peerID, ok := h.peer(c)
	if !ok {
		return
	}

	var w model.Window
	if err := c.ShouldBindQuery(&w); err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest(err.Error(), err))
		return
	}
	w.Clamp()

	messages, err := h.service.History(c.Request.Context(), callerID, peerID, w.Limit, w.Before)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithPagination(c, messages, w.Limit, len(messages) == w.Limit)
}

// Stream tails the conversation over server-sent events until the
// client disconnects.
func (h *Handler) Stream(c *gin.Context) {
	callerID, peerID, ok := h.peer(c)
	if !ok {
		return
	}

	msgChan, err := h.service.Stream(c.Request.Context(), callerID, peerID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")

	h.metrics.ChatStreamsActive.Inc()
	defer h.metrics.ChatStreamsActive.Dec()

	fmt.Fprintf(c.Writer, "event: connected\ndata: {}\n\n")
	c.Writer.Flush()

	heartbeat := time.NewTicker(30 * time.Second)
	defer heartbeat.Stop()

	for {
		select {
		case payload, open := <-msgChan:
			if !open {
				return
			}
			fmt.Fprintf(c.Writer, "event: message\ndata: %s\n\n", payload)
			c.Writer.Flush()
		case <-heartbeat.C:
			fmt.Fprintf(c.Writer, ": keep-alive\n\n")
			c.Writer.Flush()
		case <-c.Request.Context().Done():
			return
		}
	}
}
