package api

import (
	"context"
	"errors"
	"net/http"

	"monggle/fitlog/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProfileHandler holds the profile service dependency.
type ProfileHandler struct {
	profileService service.ProfileService
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(profileService service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

type PutGoalWeightRequest struct {
	// Null clears the goal.
	GoalWeight *float64 `json:"goalWeight"`
}

type PutFavoritesRequest struct {
	IDs []string `json:"ids"`
}

// GetMe handles GET /me.
func (h *ProfileHandler) GetMe(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	user, err := h.profileService.GetMe(c.Request.Context(), userID)
	if err != nil {
		respondProfileError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapUserToResponse(user))
}

// PutGoalWeight handles PUT /me/goal-weight.
func (h *ProfileHandler) PutGoalWeight(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	var req PutGoalWeightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	user, err := h.profileService.SetGoalWeight(c.Request.Context(), userID, req.GoalWeight)
	if err != nil {
		respondProfileError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapUserToResponse(user))
}

// GetFavorites handles GET /user/favorites.
func (h *ProfileHandler) GetFavorites(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	favorites, err := h.profileService.Favorites(c.Request.Context(), userID)
	if err != nil {
		respondProfileError(c, err)
		return
	}
	c.JSON(http.StatusOK, favorites)
}

// PutFavorites handles PUT /user/favorites (whole-set replace).
func (h *ProfileHandler) PutFavorites(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	var req PutFavoritesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	favorites, err := h.profileService.ReplaceFavorites(c.Request.Context(), userID, req.IDs)
	if err != nil {
		respondProfileError(c, err)
		return
	}
	c.JSON(http.StatusOK, favorites)
}

// AddFavorite handles POST /user/favorites/:id.
func (h *ProfileHandler) AddFavorite(c *gin.Context) {
	h.favoriteOp(c, h.profileService.AddFavorite)
}

// RemoveFavorite handles DELETE /user/favorites/:id.
func (h *ProfileHandler) RemoveFavorite(c *gin.Context) {
	h.favoriteOp(c, h.profileService.RemoveFavorite)
}

// ToggleFavorite handles PATCH /user/favorites/:id/toggle.
func (h *ProfileHandler) ToggleFavorite(c *gin.Context) {
	h.favoriteOp(c, h.profileService.ToggleFavorite)
}

func (h *ProfileHandler) favoriteOp(c *gin.Context, op func(ctx context.Context, userID primitive.ObjectID, slug string) ([]string, error)) {
	userID, err := currentUserID(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}
	slug := c.Param("id")
	if slug == "" {
		abortWithError(c, http.StatusBadRequest, "Exercise id is required.")
		return
	}

	favorites, err := op(c.Request.Context(), userID, slug)
	if err != nil {
		respondProfileError(c, err)
		return
	}
	c.JSON(http.StatusOK, favorites)
}

func respondProfileError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrInvalidGoalWeight):
		abortWithError(c, http.StatusBadRequest, err.Error())
	default:
		logrus.Errorf("profile request failed: %s", err)
		abortWithError(c, http.StatusInternalServerError, "Failed to process profile request.")
	}
}
