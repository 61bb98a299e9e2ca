package api

import (
	"net/http"

	"fitrec/workout-app/internal/service"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	authService service.AuthService,
	recommendationService service.RecommendationService,
	logService service.LogService,
	playlistService service.PlaylistService,
) {

	authHandler := NewAuthHandler(authService)
	profileHandler := NewProfileHandler(recommendationService)
	recommendationHandler := NewRecommendationHandler(recommendationService)
	logHandler := NewLogHandler(logService)
	playlistHandler := NewPlaylistHandler(playlistService)

	authMiddleware := AuthMiddleware(jwtSecret)

	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	apiV1 := router.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
		}
	}

	protected := apiV1.Group("")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", authHandler.Me)

		protected.POST("/auth/password", authHandler.UpdatePassword)
		protected.POST("/auth/clear-users", authHandler.ClearUsers)

		// --- Recommendation profile ---
		profileGroup := protected.Group("/profile")
		{
			profileGroup.PUT("/target-groups", profileHandler.SetTargetGroups)
			profileGroup.POST("/target-groups", profileHandler.AddTargetGroup)
			profileGroup.DELETE("/target-groups", profileHandler.RemoveTargetGroup)
			profileGroup.GET("/target-groups", profileHandler.GetTargetGroups)

			profileGroup.PUT("/equipment", profileHandler.SetEquipment)
			profileGroup.POST("/equipment", profileHandler.AddEquipment)
			profileGroup.DELETE("/equipment", profileHandler.RemoveEquipment)
			profileGroup.GET("/equipment", profileHandler.GetEquipment)

			profileGroup.PUT("/target-songs", profileHandler.SetTargetSongs)
			profileGroup.POST("/target-songs", profileHandler.AddTargetSong)
			profileGroup.DELETE("/target-songs", profileHandler.RemoveTargetSong)
			profileGroup.GET("/target-songs", profileHandler.GetTargetSongs)
		}

		// --- Recommendations ---
		recommendationGroup := protected.Group("/recommendations")
		{
			recommendationGroup.GET("/exercises", recommendationHandler.GetExercises)
			recommendationGroup.GET("/exercises/by-equipment", recommendationHandler.GetExercisesByEquipment)
			recommendationGroup.POST("/exercises/replace", recommendationHandler.ReplaceRecommendation)

			recommendationGroup.GET("/songs", playlistHandler.GetSongs)
			recommendationGroup.GET("/songs/random", playlistHandler.GetRandomSong)
		}

		// --- Workout log ---
		logGroup := protected.Group("/logs")
		{
			logGroup.POST("", logHandler.CreateLog)
			logGroup.GET("", logHandler.GetLogs)
			logGroup.PUT("", logHandler.UpdateLog)
			logGroup.DELETE("", logHandler.DeleteLogsByDate)
			logGroup.DELETE("/all", logHandler.ClearLogs)
			logGroup.GET("/export", logHandler.ExportLogs)
		}
	}
}
