package api

import (
	"alcyxob/swimcoach/internal/domain"
	"alcyxob/swimcoach/internal/service"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// dateLayout is the calendar-day format used in requests.
const dateLayout = "2006-01-02"

type ScheduleHandler struct {
	scheduleService service.ScheduleService
	logger          *zap.Logger
}

func NewScheduleHandler(scheduleService service.ScheduleService, logger *zap.Logger) *ScheduleHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ScheduleHandler{scheduleService: scheduleService, logger: logger.Named("api")}
}

type ScheduleRequest struct {
	Date string `json:"date" binding:"required"` // YYYY-MM-DD
}

type UpdateSessionRequest struct {
	Completed *bool `json:"completed" binding:"required"`
}

// SchedulePlan godoc
// @Summary Put a saved plan on the calendar
// @Description Creates a scheduled session for the plan on the given day. The date is a calendar day in UTC.
// @Tags Schedule
// @Accept json
// @Produce json
// @Param id path string true "Plan ID"
// @Param scheduleRequest body ScheduleRequest true "Day to train (YYYY-MM-DD)"
// @Success 201 {object} domain.ScheduledSession "Session created"
// @Failure 400 {object} gin.H "Missing or malformed date"
// @Failure 401 {object} gin.H "Unauthorized (only when auth is required)"
// @Failure 404 {object} gin.H "Training plan not found"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /trainings/{id}/schedule [post]
func (h *ScheduleHandler) SchedulePlan(c *gin.Context) {
	var req ScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	// Parse the calendar day
	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "date must be formatted as YYYY-MM-DD")
		return
	}

	session, err := h.scheduleService.Schedule(c.Request.Context(), c.Param("id"), date)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPlanNotFound):
			abortWithError(c, http.StatusNotFound, "Training plan not found")
		case errors.Is(err, service.ErrValidationFailed):
			abortWithError(c, http.StatusBadRequest, err.Error())
		default:
			h.logger.Error("failed to schedule plan", zap.Error(err))
			abortWithError(c, http.StatusInternalServerError, "Failed to schedule training plan.")
		}
		return
	}
	c.JSON(http.StatusCreated, session)
}

// ListSessions godoc
// @Summary List scheduled sessions
// @Description Returns sessions ordered by date. Both bounds are optional and inclusive.
// @Tags Schedule
// @Produce json
// @Param from query string false "First day (YYYY-MM-DD)"
// @Param to query string false "Last day (YYYY-MM-DD)"
// @Success 200 {array} domain.ScheduledSession "Sessions in range"
// @Failure 400 {object} gin.H "Malformed date, or 'to' before 'from'"
// @Failure 401 {object} gin.H "Unauthorized (only when auth is required)"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /schedule [get]
func (h *ScheduleHandler) ListSessions(c *gin.Context) {
	var from, to time.Time
	var err error
	if v := c.Query("from"); v != "" {
		if from, err = time.Parse(dateLayout, v); err != nil {
			abortWithError(c, http.StatusBadRequest, "from must be formatted as YYYY-MM-DD")
			return
		}
	}
	if v := c.Query("to"); v != "" {
		if to, err = time.Parse(dateLayout, v); err != nil {
			abortWithError(c, http.StatusBadRequest, "to must be formatted as YYYY-MM-DD")
			return
		}
	}

	sessions, err := h.scheduleService.List(c.Request.Context(), from, to)
	if err != nil {
		if errors.Is(err, service.ErrValidationFailed) {
			abortWithError(c, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error("failed to list sessions", zap.Error(err))
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve schedule.")
		return
	}
	if sessions == nil {
		sessions = []domain.ScheduledSession{}
	}
	c.JSON(http.StatusOK, sessions)
}

// UpdateSession godoc
// @Summary Mark a scheduled session completed or not
// @Description Sets the completed flag of one session.
// @Tags Schedule
// @Accept json
// @Produce json
// @Param sessionId path string true "Session ID"
// @Param updateRequest body UpdateSessionRequest true "New completed state"
// @Success 200 {object} domain.ScheduledSession "Updated session"
// @Failure 400 {object} gin.H "Missing completed flag"
// @Failure 401 {object} gin.H "Unauthorized (only when auth is required)"
// @Failure 404 {object} gin.H "Scheduled session not found"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /schedule/{sessionId} [patch]
func (h *ScheduleHandler) UpdateSession(c *gin.Context) {
	var req UpdateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	session, err := h.scheduleService.SetCompleted(c.Request.Context(), c.Param("sessionId"), *req.Completed)
	if err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			abortWithError(c, http.StatusNotFound, "Scheduled session not found")
			return
		}
		h.logger.Error("failed to update session", zap.Error(err))
		abortWithError(c, http.StatusInternalServerError, "Failed to update scheduled session.")
		return
	}
	c.JSON(http.StatusOK, session)
}

// DeleteSession godoc
// @Summary Remove a scheduled session
// @Description Deletes one session. The plan itself is untouched.
// @Tags Schedule
// @Param sessionId path string true "Session ID"
// @Success 204 "Session removed"
// @Failure 401 {object} gin.H "Unauthorized (only when auth is required)"
// @Failure 404 {object} gin.H "Scheduled session not found"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /schedule/{sessionId} [delete]
func (h *ScheduleHandler) DeleteSession(c *gin.Context) {
	if err := h.scheduleService.Unschedule(c.Request.Context(), c.Param("sessionId")); err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			abortWithError(c, http.StatusNotFound, "Scheduled session not found")
			return
		}
		h.logger.Error("failed to delete session", zap.Error(err))
		abortWithError(c, http.StatusInternalServerError, "Failed to delete scheduled session.")
		return
	}
	c.Status(http.StatusNoContent)
}
