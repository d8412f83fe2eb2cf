package api

import (
	"errors"
	"net/http"

	"monggle/fitlog/internal/domain"
	"monggle/fitlog/internal/repository"
	"monggle/fitlog/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// TrackerHandler serves the thin day/week-keyed aggregates: daily status,
// weights, diary and the weekly diet memo.
type TrackerHandler struct {
	trackerService service.TrackerService
}

// NewTrackerHandler creates a new TrackerHandler.
func NewTrackerHandler(trackerService service.TrackerService) *TrackerHandler {
	return &TrackerHandler{trackerService: trackerService}
}

// --- DTOs ---

type PutDailyStatusRequest struct {
	DidWorkout bool    `json:"didWorkout"`
	WaterMl    int     `json:"waterMl"`
	SleepHours float64 `json:"sleepHours"`
	Mood       string  `json:"mood"`
	Note       string  `json:"note"`
}

type PutWeightRequest struct {
	Weight  *float64 `json:"weight"`
	BodyFat *float64 `json:"bodyFat"`
	Muscle  *float64 `json:"muscle"`
	Memo    *string  `json:"memo"`
}

type PutDiaryRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type MealPayload struct {
	Date string `json:"date"`
	Text string `json:"text"`
}

type PutDietMemoRequest struct {
	Content string        `json:"content"`
	Meals   []MealPayload `json:"meals"`
}

// --- Daily status ---

// GetDailyStatus handles GET /daily/:date.
func (h *TrackerHandler) GetDailyStatus(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	status, err := h.trackerService.GetDailyStatus(c.Request.Context(), userID, c.Param("date"))
	if err != nil {
		respondTrackerError(c, err)
		return
	}
	c.JSON(http.StatusOK, status)
}

// PutDailyStatus handles PUT /daily/:date.
func (h *TrackerHandler) PutDailyStatus(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	var req PutDailyStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	status, err := h.trackerService.PutDailyStatus(c.Request.Context(), userID, c.Param("date"), repository.DailyStatusFields{
		DidWorkout: req.DidWorkout,
		WaterMl:    req.WaterMl,
		SleepHours: req.SleepHours,
		Mood:       domain.Mood(req.Mood),
		Note:       req.Note,
	})
	if err != nil {
		respondTrackerError(c, err)
		return
	}
	c.JSON(http.StatusOK, status)
}

// --- Weights ---

// ListWeights handles GET /weights?from=YYYY-MM-DD&to=YYYY-MM-DD.
func (h *TrackerHandler) ListWeights(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	entries, err := h.trackerService.ListWeights(c.Request.Context(), userID, c.Query("from"), c.Query("to"))
	if err != nil {
		respondTrackerError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": entries})
}

// PutWeight handles PUT /weights/:dateKey. Missing fields keep their stored
// values.
func (h *TrackerHandler) PutWeight(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	var req PutWeightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	entry, err := h.trackerService.PutWeight(c.Request.Context(), userID, c.Param("dateKey"), repository.WeightFields{
		Weight:  req.Weight,
		BodyFat: req.BodyFat,
		Muscle:  req.Muscle,
		Memo:    req.Memo,
	})
	if err != nil {
		respondTrackerError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"item": entry})
}

// --- Diary ---

// GetDiary handles GET /diary/:date.
func (h *TrackerHandler) GetDiary(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	diary, err := h.trackerService.GetDiary(c.Request.Context(), userID, c.Param("date"))
	if err != nil {
		respondTrackerError(c, err)
		return
	}
	c.JSON(http.StatusOK, diary)
}

// PutDiary handles PUT /diary/:date.
func (h *TrackerHandler) PutDiary(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	var req PutDiaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	diary, err := h.trackerService.PutDiary(c.Request.Context(), userID, c.Param("date"), req.Title, req.Content)
	if err != nil {
		respondTrackerError(c, err)
		return
	}
	c.JSON(http.StatusOK, diary)
}

// ListDiaries handles GET /diary?from=YYYY-MM-DD&to=YYYY-MM-DD.
func (h *TrackerHandler) ListDiaries(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	diaries, err := h.trackerService.ListDiaries(c.Request.Context(), userID, c.Query("from"), c.Query("to"))
	if err != nil {
		respondTrackerError(c, err)
		return
	}
	c.JSON(http.StatusOK, diaries)
}

// --- Diet memo ---

// GetDietMemo handles GET /diet-memo/:weekStart.
func (h *TrackerHandler) GetDietMemo(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	memo, err := h.trackerService.GetDietMemo(c.Request.Context(), userID, c.Param("weekStart"))
	if err != nil {
		respondTrackerError(c, err)
		return
	}
	c.JSON(http.StatusOK, memo)
}

// PutDietMemo handles PUT /diet-memo/:weekStart.
func (h *TrackerHandler) PutDietMemo(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	var req PutDietMemoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	meals := make([]domain.Meal, len(req.Meals))
	for i, m := range req.Meals {
		meals[i] = domain.Meal{Date: m.Date, Text: m.Text}
	}

	memo, err := h.trackerService.PutDietMemo(c.Request.Context(), userID, c.Param("weekStart"), req.Content, meals)
	if err != nil {
		respondTrackerError(c, err)
		return
	}
	c.JSON(http.StatusOK, memo)
}

func respondTrackerError(c *gin.Context, err error) {
	if errors.Is(err, service.ErrDateKeyRequired) {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}
	logrus.Errorf("tracker request failed: %s", err)
	abortWithError(c, http.StatusInternalServerError, "Failed to process tracker request.")
}
