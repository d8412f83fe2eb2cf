package api

import (
	"errors"
	"net/http"
	"time"

	"monggle/fitlog/internal/domain"
	"monggle/fitlog/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// WorkoutLogHandler holds the workout-log service dependency.
type WorkoutLogHandler struct {
	logService service.WorkoutLogService
}

// NewWorkoutLogHandler creates a new WorkoutLogHandler.
func NewWorkoutLogHandler(logService service.WorkoutLogService) *WorkoutLogHandler {
	return &WorkoutLogHandler{logService: logService}
}

// --- DTOs ---

type SetRowPayload struct {
	Weight float64 `json:"weight"`
	Reps   int     `json:"reps"`
	Done   bool    `json:"done"`
}

type EntryPayload struct {
	ExerciseID string          `json:"exerciseId" binding:"required"`
	Title      string          `json:"title" binding:"required"`
	Group      string          `json:"group"`
	Sets       []SetRowPayload `json:"sets"`
	Note       string          `json:"note"`
}

// PutWorkoutLogRequest is the write payload for both the whole-day and the
// group-scoped path.
type PutWorkoutLogRequest struct {
	Entries     []EntryPayload `json:"entries"`
	DurationSec int            `json:"durationSec"`
	StartedAt   *time.Time     `json:"startedAt"`
	FinishedAt  *time.Time     `json:"finishedAt"`
}

// WorkoutLogResponse renders a whole day-document. For group-scoped requests
// the same shape is reused with only the target group's entries and counter,
// and without the per-group map.
type WorkoutLogResponse struct {
	UserID          string               `json:"userId"`
	Date            string               `json:"date"`
	Entries         []domain.Entry       `json:"entries"`
	DurationSec     int                  `json:"durationSec"`
	DurationByGroup map[domain.Group]int `json:"durationByGroup,omitempty"`
	StartedAt       *time.Time           `json:"startedAt,omitempty"`
	FinishedAt      *time.Time           `json:"finishedAt,omitempty"`
	CreatedAt       *time.Time           `json:"createdAt"`
	UpdatedAt       *time.Time           `json:"updatedAt"`
}

func mapLogToResponse(l *domain.WorkoutLog) WorkoutLogResponse {
	entries := l.Entries
	if entries == nil {
		entries = []domain.Entry{}
	}
	return WorkoutLogResponse{
		UserID:          l.UserID.Hex(),
		Date:            l.Date,
		Entries:         entries,
		DurationSec:     l.DurationSec,
		DurationByGroup: l.DurationByGroup,
		StartedAt:       l.StartedAt,
		FinishedAt:      l.FinishedAt,
		CreatedAt:       timeOrNil(l.CreatedAt),
		UpdatedAt:       timeOrNil(l.UpdatedAt),
	}
}

func mapGroupViewToResponse(v *service.GroupDayView) WorkoutLogResponse {
	return WorkoutLogResponse{
		UserID:      v.UserID.Hex(),
		Date:        v.Date,
		Entries:     v.Entries,
		DurationSec: v.DurationSec,
		CreatedAt:   timeOrNil(v.CreatedAt),
		UpdatedAt:   timeOrNil(v.UpdatedAt),
	}
}

// A day never written has no lifecycle timestamps; render them as null.
func timeOrNil(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

func mapPayloadEntries(payload []EntryPayload) []domain.Entry {
	entries := make([]domain.Entry, len(payload))
	for i, p := range payload {
		sets := make([]domain.SetRow, len(p.Sets))
		for j, s := range p.Sets {
			sets[j] = domain.SetRow{Weight: s.Weight, Reps: s.Reps, Done: s.Done}
		}
		entries[i] = domain.Entry{
			ExerciseID: p.ExerciseID,
			Title:      p.Title,
			Group:      domain.Group(p.Group),
			Sets:       sets,
			Note:       p.Note,
		}
	}
	return entries
}

// --- Handler Methods ---

// GetWorkoutLog handles GET /workout-logs?date=YYYY-MM-DD[&group=shoulder].
// Without a group it returns the whole day; with one, only that group's
// entries and per-group duration. A never-written day is an empty placeholder,
// not a 404.
func (h *WorkoutLogHandler) GetWorkoutLog(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}
	date := c.Query("date")
	group := c.Query("group")

	if group == "" {
		log, err := h.logService.GetDay(c.Request.Context(), userID, date)
		if err != nil {
			respondWorkoutLogError(c, err)
			return
		}
		c.JSON(http.StatusOK, mapLogToResponse(log))
		return
	}

	view, err := h.logService.GetDayGroup(c.Request.Context(), userID, date, domain.Group(group))
	if err != nil {
		respondWorkoutLogError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapGroupViewToResponse(view))
}

// PutWorkoutLog handles PUT /workout-logs/:date[?group=shoulder].
// Without a group the day's mutable fields are replaced wholesale; with one,
// only that group's entries are swapped and every other group is preserved.
func (h *WorkoutLogHandler) PutWorkoutLog(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}
	date := c.Param("date")
	group := c.Query("group")

	var req PutWorkoutLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	input := service.DayInput{
		Entries:     mapPayloadEntries(req.Entries),
		DurationSec: req.DurationSec,
		StartedAt:   req.StartedAt,
		FinishedAt:  req.FinishedAt,
	}

	if group == "" {
		log, err := h.logService.ReplaceDay(c.Request.Context(), userID, date, input)
		if err != nil {
			respondWorkoutLogError(c, err)
			return
		}
		c.JSON(http.StatusOK, mapLogToResponse(log))
		return
	}

	view, err := h.logService.ReplaceDayGroup(c.Request.Context(), userID, date, domain.Group(group), input)
	if err != nil {
		respondWorkoutLogError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapGroupViewToResponse(view))
}

// GetCalendar handles GET /workout-logs/calendar?month=YYYY-MM and returns
// one summary row per day with any activity.
func (h *WorkoutLogHandler) GetCalendar(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	summaries, err := h.logService.MonthSummary(c.Request.Context(), userID, c.Query("month"))
	if err != nil {
		respondWorkoutLogError(c, err)
		return
	}
	c.JSON(http.StatusOK, summaries)
}

func respondWorkoutLogError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrDateKeyRequired),
		errors.Is(err, service.ErrMonthKeyRequired),
		errors.Is(err, service.ErrUnknownGroup),
		errors.Is(err, service.ErrInvalidDuration),
		errors.Is(err, service.ErrInvalidEntry):
		abortWithError(c, http.StatusBadRequest, err.Error())
	default:
		logrus.Errorf("workout-log request failed: %s", err)
		abortWithError(c, http.StatusInternalServerError, "Failed to process workout log request.")
	}
}
