package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"monggle/fitlog/internal/domain"
	"monggle/fitlog/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrDateKeyRequired  = errors.New("date key is required (YYYY-MM-DD)")
	ErrMonthKeyRequired = errors.New("month key is required (YYYY-MM)")
	ErrUnknownGroup     = errors.New("unknown muscle group")
	ErrInvalidDuration  = errors.New("duration must be non-negative")
	ErrInvalidEntry     = errors.New("entry requires exerciseId and title")
)

// DayInput is the write payload for both the whole-day and the group-scoped
// path: an entry list, a duration and the session bounds of the write.
type DayInput struct {
	Entries     []domain.Entry
	DurationSec int
	StartedAt   *time.Time
	FinishedAt  *time.Time
}

// GroupDayView is the group-scoped projection of a day-document: only the
// target group's entries and its per-group counter. The whole-day duration is
// deliberately not exposed here.
type GroupDayView struct {
	UserID      primitive.ObjectID
	Date        string
	Group       domain.Group
	Entries     []domain.Entry
	DurationSec int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// WorkoutLogService is the core of the tracker: day-document reads/writes,
// the group-scoped partial update and the month rollup.
type WorkoutLogService interface {
	GetDay(ctx context.Context, userID primitive.ObjectID, date string) (*domain.WorkoutLog, error)
	GetDayGroup(ctx context.Context, userID primitive.ObjectID, date string, group domain.Group) (*GroupDayView, error)
	ReplaceDay(ctx context.Context, userID primitive.ObjectID, date string, in DayInput) (*domain.WorkoutLog, error)
	ReplaceDayGroup(ctx context.Context, userID primitive.ObjectID, date string, group domain.Group, in DayInput) (*GroupDayView, error)
	MonthSummary(ctx context.Context, userID primitive.ObjectID, month string) ([]domain.DaySummary, error)
}

type workoutLogService struct {
	logRepo repository.WorkoutLogRepository
}

// NewWorkoutLogService creates a new instance of workoutLogService.
func NewWorkoutLogService(logRepo repository.WorkoutLogRepository) WorkoutLogService {
	return &workoutLogService{logRepo: logRepo}
}

// GetDay returns the stored day-document, or an empty placeholder when the
// user has no activity on that date. Absence is not an error.
func (s *workoutLogService) GetDay(ctx context.Context, userID primitive.ObjectID, date string) (*domain.WorkoutLog, error) {
	if !domain.IsDateKey(date) {
		return nil, ErrDateKeyRequired
	}

	log, err := s.logRepo.GetByDate(ctx, userID, date)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return emptyDay(userID, date), nil
		}
		return nil, err
	}
	if log.Entries == nil {
		log.Entries = []domain.Entry{}
	}
	return log, nil
}

// GetDayGroup returns only the target group's slice of the day: its entries
// and durationByGroup[group] (0 when the group was never timed).
func (s *workoutLogService) GetDayGroup(ctx context.Context, userID primitive.ObjectID, date string, group domain.Group) (*GroupDayView, error) {
	if !domain.IsDateKey(date) {
		return nil, ErrDateKeyRequired
	}
	if !group.Valid() {
		return nil, ErrUnknownGroup
	}

	log, err := s.logRepo.GetByDate(ctx, userID, date)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			log = emptyDay(userID, date)
		} else {
			return nil, err
		}
	}

	return &GroupDayView{
		UserID:      userID,
		Date:        date,
		Group:       group,
		Entries:     log.EntriesForGroup(group),
		DurationSec: log.GroupDurationSec(group),
		CreatedAt:   log.CreatedAt,
		UpdatedAt:   log.UpdatedAt,
	}, nil
}

// ReplaceDay overwrites the whole day's mutable fields, creating the document
// on first write. Last write wins; there is no merge with the stored state.
func (s *workoutLogService) ReplaceDay(ctx context.Context, userID primitive.ObjectID, date string, in DayInput) (*domain.WorkoutLog, error) {
	if !domain.IsDateKey(date) {
		return nil, ErrDateKeyRequired
	}
	if in.DurationSec < 0 {
		return nil, ErrInvalidDuration
	}
	if err := validateEntries(in.Entries, true); err != nil {
		return nil, err
	}

	log, err := s.logRepo.ReplaceDay(ctx, userID, date, repository.DayFields{
		Entries:     in.Entries,
		DurationSec: in.DurationSec,
		StartedAt:   in.StartedAt,
		FinishedAt:  in.FinishedAt,
	})
	if err != nil {
		return nil, err
	}
	return log, nil
}

// ReplaceDayGroup swaps out exactly one group's entries within the day.
// Entries belonging to other groups are carried over untouched, incoming
// entries are force-tagged with the target group and durationByGroup[group]
// is replaced as a scalar. The whole-day counter keeps its stored value for
// an existing document and starts at 0 for a fresh one.
func (s *workoutLogService) ReplaceDayGroup(ctx context.Context, userID primitive.ObjectID, date string, group domain.Group, in DayInput) (*GroupDayView, error) {
	if !domain.IsDateKey(date) {
		return nil, ErrDateKeyRequired
	}
	if !group.Valid() {
		return nil, ErrUnknownGroup
	}
	if in.DurationSec < 0 {
		return nil, ErrInvalidDuration
	}
	// Incoming group tags are ignored (they get overwritten below), so only
	// the identity fields are checked here.
	if err := validateEntries(in.Entries, false); err != nil {
		return nil, err
	}

	prev, err := s.logRepo.GetByDate(ctx, userID, date)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	// Partition: everything outside the target group survives as-is.
	var kept []domain.Entry
	initialDaySec := 0
	if prev != nil {
		initialDaySec = prev.DurationSec
		for _, e := range prev.Entries {
			if e.Group != group {
				kept = append(kept, e)
			}
		}
	}

	// Force-tag the incoming entries so a caller cannot smuggle a mismatched
	// group through this path.
	incoming := make([]domain.Entry, len(in.Entries))
	for i, e := range in.Entries {
		e.Group = group
		incoming[i] = e
	}

	merged := append(kept, incoming...)

	log, err := s.logRepo.ReplaceGroup(ctx, userID, date, repository.GroupFields{
		Group:              group,
		Entries:            merged,
		GroupDurationSec:   in.DurationSec,
		StartedAt:          in.StartedAt,
		FinishedAt:         in.FinishedAt,
		InitialDurationSec: initialDaySec,
	})
	if err != nil {
		return nil, err
	}

	// The caller only gets its own group back, mirroring GetDayGroup.
	return &GroupDayView{
		UserID:      userID,
		Date:        date,
		Group:       group,
		Entries:     log.EntriesForGroup(group),
		DurationSec: log.GroupDurationSec(group),
		CreatedAt:   log.CreatedAt,
		UpdatedAt:   log.UpdatedAt,
	}, nil
}

// MonthSummary rolls every day-document of the month up into per-day summary
// rows, sorted by date. Pure read path; nothing is created or mutated.
func (s *workoutLogService) MonthSummary(ctx context.Context, userID primitive.ObjectID, month string) ([]domain.DaySummary, error) {
	if !domain.IsMonthKey(month) {
		return nil, ErrMonthKeyRequired
	}

	logs, err := s.logRepo.ListMonth(ctx, userID, month)
	if err != nil {
		return nil, err
	}

	summaries := make([]domain.DaySummary, 0, len(logs))
	for i := range logs {
		summaries = append(summaries, domain.Summarize(&logs[i]))
	}
	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].Date < summaries[j].Date
	})
	return summaries, nil
}

func emptyDay(userID primitive.ObjectID, date string) *domain.WorkoutLog {
	return &domain.WorkoutLog{
		UserID:  userID,
		Date:    date,
		Entries: []domain.Entry{},
	}
}

// validateEntries checks the identity fields of every incoming entry, and,
// for the whole-day path, that each entry carries a known group tag.
func validateEntries(entries []domain.Entry, checkGroups bool) error {
	for _, e := range entries {
		if e.ExerciseID == "" || e.Title == "" {
			return ErrInvalidEntry
		}
		if checkGroups && !e.Group.Valid() {
			return ErrUnknownGroup
		}
	}
	return nil
}
