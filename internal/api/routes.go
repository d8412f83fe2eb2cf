package api

import (
	"net/http"

	"monggle/fitlog/internal/service"

	"github.com/gin-gonic/gin"
)

// SetupRoutes wires every handler into the gin engine. Everything except
// /ping, /api/v1/auth/* and the catalog reads sits behind the JWT middleware.
func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	authService service.AuthService,
	logService service.WorkoutLogService,
	trackerService service.TrackerService,
	profileService service.ProfileService,
	catalogService service.CatalogService,
) {
	authHandler := NewAuthHandler(authService)
	logHandler := NewWorkoutLogHandler(logService)
	trackerHandler := NewTrackerHandler(trackerService)
	profileHandler := NewProfileHandler(profileService)
	catalogHandler := NewCatalogHandler(catalogService)

	authMiddleware := AuthMiddleware(jwtSecret)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/forgot", authHandler.ForgotPassword)
			authGroup.POST("/reset", authHandler.ResetPassword)
		}

		// Catalog reads are public; the routine builder works before login.
		apiV1.GET("/workouts", catalogHandler.ListExercises)
		apiV1.GET("/workouts/:id", catalogHandler.GetExercise)
	}

	protected := apiV1.Group("")
	protected.Use(authMiddleware)
	{
		// --- Workout log (core) ---
		protected.GET("/workout-logs/calendar", logHandler.GetCalendar)
		protected.GET("/workout-logs", logHandler.GetWorkoutLog)
		protected.PUT("/workout-logs/:date", logHandler.PutWorkoutLog)

		// --- Profile ---
		protected.GET("/me", profileHandler.GetMe)
		protected.PUT("/me/goal-weight", profileHandler.PutGoalWeight)
		protected.GET("/user/favorites", profileHandler.GetFavorites)
		protected.PUT("/user/favorites", profileHandler.PutFavorites)
		protected.POST("/user/favorites/:id", profileHandler.AddFavorite)
		protected.DELETE("/user/favorites/:id", profileHandler.RemoveFavorite)
		protected.PATCH("/user/favorites/:id/toggle", profileHandler.ToggleFavorite)

		// --- Daily trackers ---
		protected.GET("/daily/:date", trackerHandler.GetDailyStatus)
		protected.PUT("/daily/:date", trackerHandler.PutDailyStatus)

		protected.GET("/weights", trackerHandler.ListWeights)
		protected.PUT("/weights/:dateKey", trackerHandler.PutWeight)

		protected.GET("/diary", trackerHandler.ListDiaries)
		protected.GET("/diary/:date", trackerHandler.GetDiary)
		protected.PUT("/diary/:date", trackerHandler.PutDiary)

		protected.GET("/diet-memo/:weekStart", trackerHandler.GetDietMemo)
		protected.PUT("/diet-memo/:weekStart", trackerHandler.PutDietMemo)
	}
}
