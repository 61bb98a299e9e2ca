package api

import (
	"errors"
	"fmt"
	"net/http"

	"fitrec/workout-app/internal/service"

	"github.com/gin-gonic/gin"
)

// LogHandler exposes the per-user workout log.
type LogHandler struct {
	logService service.LogService
}

// NewLogHandler creates a new LogHandler.
func NewLogHandler(logService service.LogService) *LogHandler {
	return &LogHandler{logService: logService}
}

// --- Request Structs ---

type CreateLogRequest struct {
	ExerciseName string `json:"exerciseName" binding:"required"`
	MuscleGroup  string `json:"muscleGroup" binding:"required"`
	Date         string `json:"date" binding:"required"`
}

type UpdateLogRequest struct {
	ExerciseName string `json:"exerciseName" binding:"required"`
	MuscleGroup  string `json:"muscleGroup" binding:"required"`
	Date         string `json:"date" binding:"required"`
}

type DeleteLogRequest struct {
	Date string `json:"date" binding:"required"`
}

// --- Handler Methods ---

func (h *LogHandler) mapLogError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrLogValidationFailed):
		abortWithError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrLogNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	default:
		abortWithError(c, http.StatusInternalServerError, "An unexpected error occurred")
	}
}

// CreateLog records one completed exercise for the authenticated user.
func (h *LogHandler) CreateLog(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	var req CreateLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	entry, err := h.logService.CreateLog(c.Request.Context(), userID, req.ExerciseName, req.MuscleGroup, req.Date)
	if err != nil {
		h.mapLogError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"status": "success", "log": entry})
}

// GetLogs returns the user's logs, optionally filtered by `date` or
// `muscleGroup` query parameters.
func (h *LogHandler) GetLogs(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}
	ctx := c.Request.Context()

	date := c.Query("date")
	muscleGroup := c.Query("muscleGroup")

	switch {
	case date != "":
		logs, err := h.logService.GetLogsByDate(ctx, userID, date)
		if err != nil {
			h.mapLogError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "success", "logs": logs})
	case muscleGroup != "":
		logs, err := h.logService.GetLogsByMuscleGroup(ctx, userID, muscleGroup)
		if err != nil {
			h.mapLogError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "success", "logs": logs})
	default:
		logs, err := h.logService.GetAllLogs(ctx, userID)
		if err != nil {
			h.mapLogError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "success", "logs": logs})
	}
}

// UpdateLog rewrites the exercise recorded for a date.
func (h *LogHandler) UpdateLog(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	var req UpdateLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	err = h.logService.UpdateLog(c.Request.Context(), userID, req.Date, req.ExerciseName, req.MuscleGroup)
	if err != nil {
		h.mapLogError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

// DeleteLogsByDate removes the user's logs for one date.
func (h *LogHandler) DeleteLogsByDate(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	var req DeleteLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	err = h.logService.DeleteLogsByDate(c.Request.Context(), userID, req.Date)
	if err != nil {
		h.mapLogError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

// ClearLogs removes every log for the authenticated user.
func (h *LogHandler) ClearLogs(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	if err := h.logService.ClearLogs(c.Request.Context(), userID); err != nil {
		h.mapLogError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

// ExportLogs stores a JSON export of the user's logs and returns a temporary
// download URL.
func (h *LogHandler) ExportLogs(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	url, err := h.logService.ExportLogs(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, fmt.Sprintf("Could not export logs: %v", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "downloadUrl": url})
}
