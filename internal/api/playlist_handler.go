package api

import (
	"fmt"
	"net/http"
	"strconv"

	"fitrec/workout-app/internal/service"

	"github.com/gin-gonic/gin"
)

// PlaylistHandler exposes song recommendations from the external music
// catalog.
type PlaylistHandler struct {
	playlistService service.PlaylistService
}

// NewPlaylistHandler creates a new PlaylistHandler.
func NewPlaylistHandler(playlistService service.PlaylistService) *PlaylistHandler {
	return &PlaylistHandler{playlistService: playlistService}
}

// GetSongs suggests tracks sized to the user's workout count, or to an
// explicit `workoutCount` query parameter. The "no songs" sentinel list is a
// successful response, not an error.
func (h *PlaylistHandler) GetSongs(c *gin.Context) {
	ctx := c.Request.Context()

	var (
		songs []string
		err   error
	)
	if countStr := c.Query("workoutCount"); countStr != "" {
		count, convErr := strconv.Atoi(countStr)
		if convErr != nil {
			abortWithError(c, http.StatusBadRequest, "workoutCount must be an integer")
			return
		}
		songs, err = h.playlistService.SongsForWorkoutCount(ctx, count)
	} else {
		userID, ctxErr := getUserIDFromContext(c)
		if ctxErr != nil {
			abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
			return
		}
		songs, err = h.playlistService.SongsForUser(ctx, userID)
	}
	if err != nil {
		abortWithError(c, http.StatusBadGateway, fmt.Sprintf("Error fetching songs: %v", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "songs": songs})
}

// GetRandomSong suggests one track picked at random.
func (h *PlaylistHandler) GetRandomSong(c *gin.Context) {
	song, err := h.playlistService.RandomSong(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusBadGateway, fmt.Sprintf("Error fetching songs: %v", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "song": song})
}
