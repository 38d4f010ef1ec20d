package api

import (
	"alcyxob/swimcoach/internal/domain"
	"alcyxob/swimcoach/internal/generation"
	"alcyxob/swimcoach/internal/planner"
	"alcyxob/swimcoach/internal/service"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// TrainingHandler holds the training service dependency.
type TrainingHandler struct {
	trainingService service.TrainingService
	exposeErrors    bool
	logger          *zap.Logger
}

// NewTrainingHandler creates a new TrainingHandler.
func NewTrainingHandler(trainingService service.TrainingService, exposeErrors bool, logger *zap.Logger) *TrainingHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TrainingHandler{
		trainingService: trainingService,
		exposeErrors:    exposeErrors,
		logger:          logger.Named("api"),
	}
}

// --- DTOs for API ---

// GeneratePlanRequest defines the expected JSON for generating a plan.
type GeneratePlanRequest struct {
	Level       string   `json:"level" binding:"required"`
	Goals       []string `json:"goals" binding:"required,min=1"`
	DaysPerWeek int      `json:"daysPerWeek" binding:"required"`
	Duration    int      `json:"duration" binding:"required"` // Minutes
}

// ExportResponse carries the presigned link to an exported plan.
type ExportResponse struct {
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// --- Handler Methods ---

// GeneratePlan godoc
// @Summary Generate a training plan
// @Description Builds a prompt from the swimmer's level, goals and schedule, asks the configured AI provider and parses the reply into exercises.
// @Description The plan is returned but not stored; use /trainings/save to keep it.
// @Tags Trainings
// @Accept json
// @Produce json
// @Param planRequest body GeneratePlanRequest true "Swimmer level, goals, days per week and session duration"
// @Success 201 {object} domain.TrainingPlan "Generated plan (never without exercises)"
// @Failure 400 {object} gin.H "Missing required fields"
// @Failure 401 {object} gin.H "Unauthorized (only when auth is required)"
// @Failure 503 {object} gin.H "AI provider timed out, was unreachable or returned an error"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /trainings [post]
func (h *TrainingHandler) GeneratePlan(c *gin.Context) {
	var req GeneratePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Missing required fields: level, goals, daysPerWeek, duration")
		return
	}

	// Call the service
	plan, err := h.trainingService.GeneratePlan(c.Request.Context(), planner.PlanParams{
		Level:       domain.Level(req.Level),
		Goals:       req.Goals,
		DaysPerWeek: req.DaysPerWeek,
		Duration:    req.Duration,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidationFailed):
			abortWithError(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrGenerationFailed):
			// 503 with a message per failure kind
			h.logger.Error("plan generation failed", zap.Error(err))
			body := gin.H{"error": generationErrorMessage(err)}
			if h.exposeErrors {
				body["message"] = err.Error()
			}
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, body)
		default:
			h.internalError(c, "Failed to generate training plan.", err)
		}
		return
	}

	c.JSON(http.StatusCreated, plan)
}

// ListPlans godoc
// @Summary List stored training plans
// @Description Returns every saved plan in the order it was first saved. An empty store gives an empty array.
// @Tags Trainings
// @Produce json
// @Success 200 {array} domain.TrainingPlan "Saved plans"
// @Failure 401 {object} gin.H "Unauthorized (only when auth is required)"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /trainings [get]
func (h *TrainingHandler) ListPlans(c *gin.Context) {
	plans, err := h.trainingService.ListPlans(c.Request.Context())
	if err != nil {
		h.internalError(c, "Failed to retrieve training plans.", err)
		return
	}
	if plans == nil {
		c.JSON(http.StatusOK, []domain.TrainingPlan{}) // Return empty array, not null
		return
	}
	c.JSON(http.StatusOK, plans)
}

// GetPlan godoc
// @Summary Get a stored training plan
// @Description Retrieves one saved plan by its ID.
// @Tags Trainings
// @Produce json
// @Param id path string true "Plan ID (plan-<timestamp>)"
// @Success 200 {object} domain.TrainingPlan "The plan"
// @Failure 401 {object} gin.H "Unauthorized (only when auth is required)"
// @Failure 404 {object} gin.H "Training plan not found"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /trainings/{id} [get]
func (h *TrainingHandler) GetPlan(c *gin.Context) {
	plan, err := h.trainingService.GetPlan(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrPlanNotFound) {
			abortWithError(c, http.StatusNotFound, "Training plan not found")
			return
		}
		h.internalError(c, "Failed to retrieve training plan.", err)
		return
	}
	c.JSON(http.StatusOK, plan)
}

// SavePlan godoc
// @Summary Create or replace a training plan
// @Description Stores the plan. A plan with the same ID is replaced in place, keeping its position in the list; otherwise it is appended.
// @Tags Trainings
// @Accept json
// @Produce json
// @Param plan body domain.TrainingPlan true "Full plan (id, name and at least one exercise are required)"
// @Success 200 {object} domain.TrainingPlan "Saved plan"
// @Failure 400 {object} gin.H "Invalid plan"
// @Failure 401 {object} gin.H "Unauthorized (only when auth is required)"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /trainings/save [post]
func (h *TrainingHandler) SavePlan(c *gin.Context) {
	var plan domain.TrainingPlan
	if err := c.ShouldBindJSON(&plan); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid training plan: "+err.Error())
		return
	}

	saved, err := h.trainingService.SavePlan(c.Request.Context(), &plan)
	if err != nil {
		if errors.Is(err, service.ErrValidationFailed) {
			abortWithError(c, http.StatusBadRequest, err.Error())
			return
		}
		h.internalError(c, "Failed to save training plan.", err)
		return
	}
	c.JSON(http.StatusOK, saved)
}

// DeletePlan godoc
// @Summary Delete a training plan
// @Description Removes the plan. Its scheduled sessions and exported archive are removed too, best effort.
// @Tags Trainings
// @Param id path string true "Plan ID"
// @Success 204 "Plan deleted"
// @Failure 401 {object} gin.H "Unauthorized (only when auth is required)"
// @Failure 404 {object} gin.H "Training plan not found"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /trainings/{id} [delete]
func (h *TrainingHandler) DeletePlan(c *gin.Context) {
	err := h.trainingService.DeletePlan(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrPlanNotFound) {
			abortWithError(c, http.StatusNotFound, "Training plan not found")
			return
		}
		h.internalError(c, "Failed to delete training plan.", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ExportPlan godoc
// @Summary Export a plan as JSON to object storage and return a download link
// @Description Writes the plan to the configured S3 bucket and returns a presigned GET URL with its expiry.
// @Tags Trainings
// @Produce json
// @Param id path string true "Plan ID"
// @Success 200 {object} ExportResponse "Presigned download URL"
// @Failure 401 {object} gin.H "Unauthorized (only when auth is required)"
// @Failure 404 {object} gin.H "Training plan not found"
// @Failure 503 {object} gin.H "Plan export is not configured"
// @Failure 500 {object} gin.H "Internal Server Error (upload or presign failed)"
// @Router /trainings/{id}/export [get]
func (h *TrainingHandler) ExportPlan(c *gin.Context) {
	export, err := h.trainingService.ExportPlan(c.Request.Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPlanNotFound):
			abortWithError(c, http.StatusNotFound, "Training plan not found")
		case errors.Is(err, service.ErrExportUnavailable):
			abortWithError(c, http.StatusServiceUnavailable, "Plan export is not configured")
		default:
			h.internalError(c, "Failed to export training plan.", err)
		}
		return
	}
	c.JSON(http.StatusOK, ExportResponse{URL: export.URL, ExpiresAt: export.ExpiresAt})
}

func (h *TrainingHandler) internalError(c *gin.Context, message string, err error) {
	h.logger.Error(message,
		zap.Error(err),
		zap.String("method", c.Request.Method),
		zap.String("path", c.Request.URL.Path),
	)
	abortWithError(c, http.StatusInternalServerError, message)
}

func generationErrorMessage(err error) string {
	switch {
	case errors.Is(err, generation.ErrTimeout):
		return "The request took too long to complete. Please try again."
	case errors.Is(err, generation.ErrProviderUnavailable):
		return "Failed to connect to the AI service. Please try again later."
	case errors.Is(err, generation.ErrEmptyResponse):
		return "The AI service returned an empty response. Please try again."
	default:
		return "Failed to generate training plan."
	}
}
