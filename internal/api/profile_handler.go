package api

import (
	"errors"
	"fmt"
	"net/http"

	"fitrec/workout-app/internal/domain"
	"fitrec/workout-app/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProfileHandler exposes the per-user recommendation profile: target muscle
// groups, available equipment, and target songs. The three lists share one
// set of request shapes and handler wiring.
type ProfileHandler struct {
	recommendationService service.RecommendationService
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(recommendationService service.RecommendationService) *ProfileHandler {
	return &ProfileHandler{recommendationService: recommendationService}
}

// --- Request Structs ---

type SetListRequest struct {
	Values []string `json:"values" binding:"required"`
}

type ItemRequest struct {
	Value string `json:"value" binding:"required"`
}

// --- Shared plumbing ---

type setFunc func(c *gin.Context, userID primitive.ObjectID, values []string) error
type itemFunc func(c *gin.Context, userID primitive.ObjectID, value string) (bool, error)
type getFunc func(c *gin.Context, userID primitive.ObjectID) ([]string, error)

func (h *ProfileHandler) handleSet(c *gin.Context, set setFunc) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	var req SetListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	if err := set(c, userID, req.Values); err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Could not update profile")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

func (h *ProfileHandler) handleItem(c *gin.Context, apply itemFunc, key string) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	var req ItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	changed, err := apply(c, userID, req.Value)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Could not update profile")
		}
		return
	}

	// changed == false is a no-op (duplicate add / absent remove), still a
	// successful response.
	c.JSON(http.StatusOK, gin.H{"status": "success", key: changed})
}

func (h *ProfileHandler) handleGet(c *gin.Context, get getFunc, key string) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	values, err := get(c, userID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Could not read profile")
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", key: values})
}

// --- Target muscle groups ---

func (h *ProfileHandler) SetTargetGroups(c *gin.Context) {
	h.handleSet(c, func(c *gin.Context, userID primitive.ObjectID, values []string) error {
		return h.recommendationService.SetTargetGroups(c.Request.Context(), userID, values)
	})
}

func (h *ProfileHandler) AddTargetGroup(c *gin.Context) {
	h.handleItem(c, func(c *gin.Context, userID primitive.ObjectID, value string) (bool, error) {
		return h.recommendationService.AddTargetGroup(c.Request.Context(), userID, value)
	}, "added")
}

func (h *ProfileHandler) RemoveTargetGroup(c *gin.Context) {
	h.handleItem(c, func(c *gin.Context, userID primitive.ObjectID, value string) (bool, error) {
		return h.recommendationService.RemoveTargetGroup(c.Request.Context(), userID, value)
	}, "removed")
}

func (h *ProfileHandler) GetTargetGroups(c *gin.Context) {
	h.handleGet(c, func(c *gin.Context, userID primitive.ObjectID) ([]string, error) {
		return h.recommendationService.GetTargetGroups(c.Request.Context(), userID)
	}, "groups")
}

// --- Available equipment ---

func (h *ProfileHandler) SetEquipment(c *gin.Context) {
	h.handleSet(c, func(c *gin.Context, userID primitive.ObjectID, values []string) error {
		return h.recommendationService.SetEquipment(c.Request.Context(), userID, values)
	})
}

func (h *ProfileHandler) AddEquipment(c *gin.Context) {
	h.handleItem(c, func(c *gin.Context, userID primitive.ObjectID, value string) (bool, error) {
		return h.recommendationService.AddEquipment(c.Request.Context(), userID, value)
	}, "added")
}

func (h *ProfileHandler) RemoveEquipment(c *gin.Context) {
	h.handleItem(c, func(c *gin.Context, userID primitive.ObjectID, value string) (bool, error) {
		return h.recommendationService.RemoveEquipment(c.Request.Context(), userID, value)
	}, "removed")
}

func (h *ProfileHandler) GetEquipment(c *gin.Context) {
	h.handleGet(c, func(c *gin.Context, userID primitive.ObjectID) ([]string, error) {
		return h.recommendationService.GetEquipment(c.Request.Context(), userID)
	}, "equipment")
}

// --- Target songs ---

func (h *ProfileHandler) SetTargetSongs(c *gin.Context) {
	h.handleSet(c, func(c *gin.Context, userID primitive.ObjectID, values []string) error {
		return h.recommendationService.SetTargetSongs(c.Request.Context(), userID, values)
	})
}

func (h *ProfileHandler) AddTargetSong(c *gin.Context) {
	h.handleItem(c, func(c *gin.Context, userID primitive.ObjectID, value string) (bool, error) {
		return h.recommendationService.AddTargetSong(c.Request.Context(), userID, value)
	}, "added")
}

func (h *ProfileHandler) RemoveTargetSong(c *gin.Context) {
	h.handleItem(c, func(c *gin.Context, userID primitive.ObjectID, value string) (bool, error) {
		return h.recommendationService.RemoveTargetSong(c.Request.Context(), userID, value)
	}, "removed")
}

func (h *ProfileHandler) GetTargetSongs(c *gin.Context) {
	h.handleGet(c, func(c *gin.Context, userID primitive.ObjectID) ([]string, error) {
		return h.recommendationService.GetTargetSongs(c.Request.Context(), userID)
	}, "songs")
}
