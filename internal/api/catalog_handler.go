package api

import (
	"errors"
	"net/http"

	"monggle/fitlog/internal/domain"
	"monggle/fitlog/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// CatalogHandler serves the exercise catalog the routine builder reads.
type CatalogHandler struct {
	catalogService service.CatalogService
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(catalogService service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// ListExercises handles GET /workouts[?group=chest].
func (h *CatalogHandler) ListExercises(c *gin.Context) {
	var group *domain.Group
	if raw := c.Query("group"); raw != "" {
		g := domain.Group(raw)
		group = &g
	}

	exercises, err := h.catalogService.List(c.Request.Context(), group)
	if err != nil {
		if errors.Is(err, service.ErrUnknownGroup) {
			abortWithError(c, http.StatusBadRequest, err.Error())
			return
		}
		logrus.Errorf("catalog list failed: %s", err)
		abortWithError(c, http.StatusInternalServerError, "Failed to list exercises.")
		return
	}
	c.JSON(http.StatusOK, exercises)
}

// GetExercise handles GET /workouts/:id.
func (h *CatalogHandler) GetExercise(c *gin.Context) {
	exercise, err := h.catalogService.GetBySlug(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrExerciseNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
			return
		}
		logrus.Errorf("catalog get failed: %s", err)
		abortWithError(c, http.StatusInternalServerError, "Failed to get exercise.")
		return
	}
	c.JSON(http.StatusOK, exercise)
}
