package domain

import (
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Group is the closed set of muscle-group tags an exercise entry can carry.
type Group string

const (
	GroupBack     Group = "back"
	GroupShoulder Group = "shoulder"
	GroupChest    Group = "chest"
	GroupArm      Group = "arm"
	GroupLegs     Group = "legs"
	GroupCardio   Group = "cardio"
)

// Groups lists every valid muscle-group tag, in display order.
var Groups = []Group{GroupBack, GroupShoulder, GroupChest, GroupArm, GroupLegs, GroupCardio}

// Valid reports whether g is one of the known muscle-group tags.
func (g Group) Valid() bool {
	switch g {
	case GroupBack, GroupShoulder, GroupChest, GroupArm, GroupLegs, GroupCardio:
		return true
	}
	return false
}

// SetRow is one set of an exercise entry (set 1, set 2, ...). Order within
// Entry.Sets is significant.
type SetRow struct {
	Weight float64 `bson:"weight" json:"weight"`
	Reps   int     `bson:"reps" json:"reps"`
	Done   bool    `bson:"done" json:"done"`
}

// Entry is a single exercise logged on a given day. ExerciseID, Title and
// Group are a snapshot taken from the catalog when the entry is added; later
// catalog edits do not flow back into stored entries.
type Entry struct {
	ExerciseID string   `bson:"exerciseId" json:"exerciseId"`
	Title      string   `bson:"title" json:"title"`
	Group      Group    `bson:"group" json:"group"`
	Sets       []SetRow `bson:"sets" json:"sets"`
	Note       string   `bson:"note,omitempty" json:"note,omitempty"`
}

// WorkoutLog is the single day-document for one user on one calendar date.
// (UserID, Date) is unique; the document is created lazily on first write.
type WorkoutLog struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID  primitive.ObjectID `bson:"userId" json:"userId"`
	Date    string             `bson:"date" json:"date"` // YYYY-MM-DD
	Entries []Entry            `bson:"entries" json:"entries"`

	// DurationSec is the whole-day elapsed-seconds counter.
	DurationSec int `bson:"durationSec" json:"durationSec"`

	// DurationByGroup holds elapsed seconds per muscle group. A key is present
	// only for groups that have received at least one group-scoped write; the
	// map is tracked independently of DurationSec.
	DurationByGroup map[Group]int `bson:"durationByGroup,omitempty" json:"durationByGroup,omitempty"`

	// Session bounds of the most recent write; overwritten wholesale, never
	// accumulated.
	StartedAt  *time.Time `bson:"startedAt" json:"startedAt"`
	FinishedAt *time.Time `bson:"finishedAt" json:"finishedAt"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// EntriesForGroup returns the entries tagged with g, preserving stored order.
func (l *WorkoutLog) EntriesForGroup(g Group) []Entry {
	out := make([]Entry, 0, len(l.Entries))
	for _, e := range l.Entries {
		if e.Group == g {
			out = append(out, e)
		}
	}
	return out
}

// GroupDurationSec reports the per-group counter for g, 0 when the group was
// never timed on this day.
func (l *WorkoutLog) GroupDurationSec(g Group) int {
	if l.DurationByGroup == nil {
		return 0
	}
	return l.DurationByGroup[g]
}

// EffectiveDurationSec resolves the duration used for calendar summaries: the
// whole-day counter when non-zero, otherwise the sum of the per-group map.
// Days written only through group-scoped writes keep a zero whole-day counter,
// so the fallback makes them visible without double counting the rest.
func (l *WorkoutLog) EffectiveDurationSec() int {
	if l.DurationSec != 0 {
		return l.DurationSec
	}
	sum := 0
	for _, sec := range l.DurationByGroup {
		sum += sec
	}
	return sum
}

// ActiveGroups lists the groups with at least one entry that day, in
// first-seen order. Entries stored before group tags existed fall back to
// title inference.
func (l *WorkoutLog) ActiveGroups() []Group {
	seen := make(map[Group]bool)
	var out []Group
	for _, e := range l.Entries {
		g := e.Group
		if !g.Valid() {
			guessed, ok := GuessGroupFromTitle(e.Title)
			if !ok {
				continue
			}
			g = guessed
		}
		if !seen[g] {
			seen[g] = true
			out = append(out, g)
		}
	}
	return out
}

var titleGroupPatterns = []struct {
	group Group
	re    *regexp.Regexp
}{
	{GroupChest, regexp.MustCompile(`(?i)(벤치|체스트|가슴|펙덱|푸쉬업|pushup|bench|chest|pec)`)},
	{GroupBack, regexp.MustCompile(`(?i)(랫|풀다운|로우|시티드 ?로우|풀업|턱걸이|데드리프트|등|back|row|pulldown|pullup|deadlift)`)},
	{GroupLegs, regexp.MustCompile(`(?i)(스쿼트|레그|런지|힙(쓰러스트)?|카프|하체|leg|squat|lunge|rdl|hip)`)},
}

// GuessGroupFromTitle infers a muscle group from an exercise title. Only used
// as a legacy fallback for calendar-cell decoration, never for duration math.
func GuessGroupFromTitle(title string) (Group, bool) {
	for _, p := range titleGroupPatterns {
		if p.re.MatchString(title) {
			return p.group, true
		}
	}
	return "", false
}

var (
	dateKeyRe  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	monthKeyRe = regexp.MustCompile(`^\d{4}-\d{2}$`)
)

// IsDateKey reports whether s is a YYYY-MM-DD calendar-day key.
func IsDateKey(s string) bool {
	return dateKeyRe.MatchString(s)
}

// IsMonthKey reports whether s is a YYYY-MM calendar-month key.
func IsMonthKey(s string) bool {
	return monthKeyRe.MatchString(s)
}
