package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"autoslot/config"
	"autoslot/models"
	"autoslot/services/slots"
	"autoslot/upstream"
	"autoslot/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SlotHandler exposes the slot-editor sessions over HTTP.
type SlotHandler struct {
	Service slots.EditorService
}

// NewSlotHandler constructs a SlotHandler.
func NewSlotHandler(svc slots.EditorService) *SlotHandler {
	return &SlotHandler{Service: svc}
}

// providerID extracts the authenticated provider from the context (set by
// JWTAuthProviderMiddleware).
func providerID(c *gin.Context) (string, bool) {
	v, exists := c.Get("providerID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Provider not authenticated"})
		return "", false
	}
	id, ok := v.(string)
	if !ok || id == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Invalid provider ID in context"})
		return "", false
	}
	return id, true
}

// OpenSessionHandler starts an editing session for one week window.
func (h *SlotHandler) OpenSessionHandler(c *gin.Context) {
	logger := getLogger(c)

	pid, ok := providerID(c)
	if !ok {
		return
	}

	var req models.OpenSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}

	view, err := h.Service.OpenSession(c.Request.Context(), pid, req.WeekStart)
	if err != nil {
		if errors.Is(err, slots.ErrInvalidWeekStart) {
			utils.JSONError(c, http.StatusBadRequest, "Invalid week start date", err.Error())
			return
		}
		logger.Error("Failed to open editor session", zap.String("providerID", pid), zap.Error(err))
		utils.JSONError(c, upstreamStatus(err), "Failed to load slots from the booking platform", err.Error())
		return
	}

	c.JSON(http.StatusCreated, gin.H{"session": view})
}

// GetSessionHandler returns the current week, stats and save flags.
func (h *SlotHandler) GetSessionHandler(c *gin.Context) {
	pid, ok := providerID(c)
	if !ok {
		return
	}

	view, err := h.Service.GetSession(pid, c.Param("sessionID"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": view})
}

// ToggleHourHandler flips one (day, hour) cell of the grid.
func (h *SlotHandler) ToggleHourHandler(c *gin.Context) {
	pid, ok := providerID(c)
	if !ok {
		return
	}

	var req models.ToggleHourRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}

	view, err := h.Service.ToggleHour(pid, c.Param("sessionID"), req.DayIndex, req.Hour)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": view})
}

// SetEmployeesHandler updates a day's staffing count.
func (h *SlotHandler) SetEmployeesHandler(c *gin.Context) {
	pid, ok := providerID(c)
	if !ok {
		return
	}

	var req models.SetEmployeesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}

	view, err := h.Service.SetEmployees(pid, c.Param("sessionID"), req.DayIndex, req.Employees)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": view})
}

// CommitHandler pushes the pending change set upstream in one batch.
func (h *SlotHandler) CommitHandler(c *gin.Context) {
	logger := getLogger(c)

	pid, ok := providerID(c)
	if !ok {
		return
	}

	view, err := h.Service.Commit(c.Request.Context(), pid, c.Param("sessionID"))
	if err != nil {
		switch {
		case errors.Is(err, slots.ErrSessionNotFound):
			utils.JSONError(c, http.StatusNotFound, "Editor session not found", err.Error())
		case errors.Is(err, slots.ErrCommitInFlight):
			utils.JSONError(c, http.StatusConflict, "A save is already in progress", err.Error())
		case errors.Is(err, slots.ErrNoPendingChanges):
			utils.JSONError(c, http.StatusBadRequest, "Nothing to save", err.Error())
		default:
			logger.Error("Failed to commit slots", zap.String("providerID", pid), zap.Error(err))
			utils.JSONError(c, upstreamStatus(err), "Failed to save slots to the booking platform", err.Error())
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Slots saved", "session": view})
}

// DiscardHandler drops all pending edits and restores server truth.
func (h *SlotHandler) DiscardHandler(c *gin.Context) {
	pid, ok := providerID(c)
	if !ok {
		return
	}

	view, err := h.Service.Discard(pid, c.Param("sessionID"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Changes discarded", "session": view})
}

// CloseSessionHandler destroys the session.
func (h *SlotHandler) CloseSessionHandler(c *gin.Context) {
	pid, ok := providerID(c)
	if !ok {
		return
	}

	if err := h.Service.CloseSession(pid, c.Param("sessionID")); err != nil {
		h.writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Session closed"})
}

// HistoryHandler lists recent commit-audit entries for the provider.
func (h *SlotHandler) HistoryHandler(c *gin.Context) {
	pid, ok := providerID(c)
	if !ok {
		return
	}

	limit := config.AppConfig.AuditHistoryLimit
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	records, err := h.Service.History(c.Request.Context(), pid, limit)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to fetch commit history", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"history": records})
}

func (h *SlotHandler) writeServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, slots.ErrSessionNotFound):
		utils.JSONError(c, http.StatusNotFound, "Editor session not found", err.Error())
	case errors.Is(err, slots.ErrOutOfRange):
		utils.JSONError(c, http.StatusBadRequest, "Day or hour index out of range", err.Error())
	default:
		utils.JSONError(c, http.StatusInternalServerError, "Slot editor operation failed", err.Error())
	}
}

// upstreamStatus distinguishes platform rejections from transport failures.
func upstreamStatus(err error) int {
	var apiErr *upstream.APIError
	if errors.As(err, &apiErr) {
		return http.StatusBadGateway
	}
	return http.StatusServiceUnavailable
}
