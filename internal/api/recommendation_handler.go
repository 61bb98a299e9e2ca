package api

import (
	"fmt"
	"net/http"

	"fitrec/workout-app/internal/domain"
	"fitrec/workout-app/internal/service"

	"github.com/gin-gonic/gin"
)

// RecommendationHandler exposes exercise matching against the external
// catalog.
type RecommendationHandler struct {
	recommendationService service.RecommendationService
}

// NewRecommendationHandler creates a new RecommendationHandler.
func NewRecommendationHandler(recommendationService service.RecommendationService) *RecommendationHandler {
	return &RecommendationHandler{recommendationService: recommendationService}
}

// --- Request Structs ---

type ReplaceRecommendationRequest struct {
	Recommendations []domain.Exercise `json:"recommendations" binding:"required"`
	Index           int               `json:"index"`
	Muscles         []string          `json:"muscles" binding:"required"`
}

// --- Handler Methods ---

// GetExercises matches exercises against muscle groups: the `groups` query
// parameter when given, otherwise the user's stored target groups.
func (h *RecommendationHandler) GetExercises(c *gin.Context) {
	ctx := c.Request.Context()

	var (
		exercises []domain.Exercise
		err       error
	)
	if groups, ok := c.GetQueryArray("groups"); ok && len(groups) > 0 {
		exercises, err = h.recommendationService.RecommendByMuscleGroups(ctx, groups)
	} else {
		userID, ctxErr := getUserIDFromContext(c)
		if ctxErr != nil {
			abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
			return
		}
		exercises, err = h.recommendationService.RecommendForUser(ctx, userID)
	}
	if err != nil {
		// Transport failures reaching the external catalog surface here.
		abortWithError(c, http.StatusBadGateway, fmt.Sprintf("Error fetching exercises: %v", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "exercises": exercises})
}

// GetExercisesByEquipment matches exercises against equipment labels: the
// `equipment` query parameter when given, otherwise the user's stored
// available equipment.
func (h *RecommendationHandler) GetExercisesByEquipment(c *gin.Context) {
	ctx := c.Request.Context()

	var (
		exercises []domain.Exercise
		err       error
	)
	if equipment, ok := c.GetQueryArray("equipment"); ok && len(equipment) > 0 {
		exercises, err = h.recommendationService.RecommendByEquipment(ctx, equipment)
	} else {
		userID, ctxErr := getUserIDFromContext(c)
		if ctxErr != nil {
			abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
			return
		}
		exercises, err = h.recommendationService.RecommendForUserEquipment(ctx, userID)
	}
	if err != nil {
		abortWithError(c, http.StatusBadGateway, fmt.Sprintf("Error fetching exercises: %v", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "exercises": exercises})
}

// ReplaceRecommendation swaps one entry of a recommendation list for a
// freshly matched candidate. A bad index or an empty candidate pool returns
// the list unchanged.
func (h *RecommendationHandler) ReplaceRecommendation(c *gin.Context) {
	var req ReplaceRecommendationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	exercises, err := h.recommendationService.ReplaceRecommendation(c.Request.Context(), req.Recommendations, req.Index, req.Muscles)
	if err != nil {
		abortWithError(c, http.StatusBadGateway, fmt.Sprintf("Error fetching exercises: %v", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "exercises": exercises})
}
