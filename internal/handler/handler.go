package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Saifeldin2401/prime-hotels-intranet-sub003/internal/dto"
	"github.com/Saifeldin2401/prime-hotels-intranet-sub003/internal/repository"
	"github.com/Saifeldin2401/prime-hotels-intranet-sub003/internal/service"
)

type Handler struct {
	eventService   service.EventServicer
	sessionService service.SessionServicer
	router         *gin.Engine
	log            *zap.Logger
}

func NewHandler(eventService service.EventServicer, sessionService service.SessionServicer, log *zap.Logger) *Handler {
	h := &Handler{
		eventService:   eventService,
		sessionService: sessionService,
		router:         gin.Default(),
		log:            log,
	}

	h.registerRoutes()

	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

func (h *Handler) registerRoutes() {
	h.router.GET("/health", h.healthCheck)
	h.router.POST("/v1/sessions", h.createSession)
	h.router.GET("/v1/sessions/:id", h.getSession)
	h.router.PATCH("/v1/sessions/:id", h.updateSession)
	h.router.POST("/v1/events/bulk", h.publishEventsBulk)
}

// healthCheck handles GET /health
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

// createSession handles POST /v1/sessions
func (h *Handler) createSession(c *gin.Context) {
	var req dto.CreateSessionRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warn("Invalid session request", zap.Error(err))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
		})
		return
	}

	id, err := h.sessionService.Create(c.Request.Context(), &req)
	if err != nil {
		h.log.Error("Failed to create session",
			zap.Error(err),
			zap.String("user_id", req.UserID))
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error:   "internal_error",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, dto.CreateSessionResponse{ID: id})
}

// getSession handles GET /v1/sessions/:id
func (h *Handler) getSession(c *gin.Context) {
	id := c.Param("id")

	session, err := h.sessionService.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			c.JSON(http.StatusNotFound, dto.ErrorResponse{
				Error: "session_not_found",
			})
			return
		}
		h.log.Error("Failed to get session",
			zap.Error(err),
			zap.String("session_id", id))
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error:   "internal_error",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, dto.SessionResponse{
		ID:         session.ID,
		UserID:     session.UserID,
		UserAgent:  session.UserAgent,
		CreatedAt:  session.CreatedAt,
		LastSeenAt: session.LastSeenAt,
	})
}

// updateSession handles PATCH /v1/sessions/:id
func (h *Handler) updateSession(c *gin.Context) {
	id := c.Param("id")

	var req dto.UpdateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warn("Invalid session update request",
			zap.Error(err),
			zap.String("session_id", id))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
		})
		return
	}

	if err := h.sessionService.AttachUser(c.Request.Context(), id, req.UserID); err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			c.JSON(http.StatusNotFound, dto.ErrorResponse{
				Error: "session_not_found",
			})
			return
		}
		h.log.Error("Failed to update session",
			zap.Error(err),
			zap.String("session_id", id))
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error:   "internal_error",
			Message: err.Error(),
		})
		return
	}

	c.Status(http.StatusNoContent)
}

// publishEventsBulk handles POST /v1/events/bulk
func (h *Handler) publishEventsBulk(c *gin.Context) {
	var bulkRequest dto.PublishEventsBulkRequest

	if err := c.ShouldBindJSON(&bulkRequest); err != nil {
		h.log.Warn("Invalid bulk event request", zap.Error(err))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
		})
		return
	}

	eventIDs, errors, err := h.eventService.ProcessBulkEvents(bulkRequest.Events)
	if err != nil {
		h.log.Error("Failed to process bulk events",
			zap.Error(err),
			zap.Int("event_count", len(bulkRequest.Events)))
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error:   "internal_error",
			Message: err.Error(),
		})
		return
	}

	accepted := len(eventIDs)
	rejected := len(errors)

	h.log.Info("Bulk events processed",
		zap.Int("accepted", accepted),
		zap.Int("rejected", rejected),
		zap.Int("total", len(bulkRequest.Events)))

	c.JSON(http.StatusAccepted, dto.PublishBulkEventsResponse{
		Accepted: accepted,
		Rejected: rejected,
		EventIDs: eventIDs,
		Errors:   errors,
	})
}
