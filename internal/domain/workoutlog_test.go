package domain_test

import (
	"testing"

	"monggle/fitlog/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestGroupValid(t *testing.T) {
	for _, g := range domain.Groups {
		assert.True(t, g.Valid(), "group %q", g)
	}
	assert.False(t, domain.Group("").Valid())
	assert.False(t, domain.Group("quads").Valid())
	assert.False(t, domain.Group("Chest").Valid())
}

func TestDateAndMonthKeys(t *testing.T) {
	assert.True(t, domain.IsDateKey("2025-08-20"))
	assert.False(t, domain.IsDateKey("2025-8-20"))
	assert.False(t, domain.IsDateKey("2025-08"))
	assert.False(t, domain.IsDateKey("20250820"))
	assert.False(t, domain.IsDateKey(""))

	assert.True(t, domain.IsMonthKey("2025-08"))
	assert.False(t, domain.IsMonthKey("2025-08-20"))
	assert.False(t, domain.IsMonthKey("2025-8"))
	assert.False(t, domain.IsMonthKey(""))
}

func TestEffectiveDurationSec(t *testing.T) {
	tests := []struct {
		name string
		log  domain.WorkoutLog
		want int
	}{
		{
			name: "whole-day counter wins when non-zero",
			log: domain.WorkoutLog{
				DurationSec:     900,
				DurationByGroup: map[domain.Group]int{domain.GroupChest: 300, domain.GroupBack: 200},
			},
			want: 900,
		},
		{
			name: "zero counter falls back to the group sum",
			log: domain.WorkoutLog{
				DurationByGroup: map[domain.Group]int{domain.GroupChest: 300, domain.GroupBack: 200},
			},
			want: 500,
		},
		{
			name: "nothing timed at all",
			log:  domain.WorkoutLog{},
			want: 0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.log.EffectiveDurationSec())
		})
	}
}

func TestEntriesForGroup(t *testing.T) {
	log := domain.WorkoutLog{Entries: []domain.Entry{
		{ExerciseID: "bench-press", Title: "Bench Press", Group: domain.GroupChest},
		{ExerciseID: "lat-pulldown", Title: "Lat Pulldown", Group: domain.GroupBack},
		{ExerciseID: "incline-press", Title: "Incline Press", Group: domain.GroupChest},
	}}

	chest := log.EntriesForGroup(domain.GroupChest)
	assert.Len(t, chest, 2)
	assert.Equal(t, "bench-press", chest[0].ExerciseID)
	assert.Equal(t, "incline-press", chest[1].ExerciseID)

	assert.Empty(t, log.EntriesForGroup(domain.GroupCardio))
	assert.NotNil(t, log.EntriesForGroup(domain.GroupCardio))
}

func TestActiveGroups(t *testing.T) {
	log := domain.WorkoutLog{Entries: []domain.Entry{
		{Title: "Lat Pulldown", Group: domain.GroupBack},
		{Title: "Bench Press", Group: domain.GroupChest},
		{Title: "Deadlift", Group: domain.GroupBack},
		{Title: "벤치프레스"}, // untagged legacy entry, inferred from the title
		{Title: "Mystery Machine"},
	}}

	assert.Equal(t,
		[]domain.Group{domain.GroupBack, domain.GroupChest},
		log.ActiveGroups())
}

func TestGuessGroupFromTitle(t *testing.T) {
	tests := []struct {
		title string
		group domain.Group
		ok    bool
	}{
		{"Bench Press", domain.GroupChest, true},
		{"체스트 프레스", domain.GroupChest, true},
		{"Seated Row", domain.GroupBack, true},
		{"랫풀다운", domain.GroupBack, true},
		{"Back Squat", domain.GroupBack, true}, // "back" outranks "squat"
		{"스쿼트", domain.GroupLegs, true},
		{"Walking Lunge", domain.GroupLegs, true},
		{"Mystery Machine", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		g, ok := domain.GuessGroupFromTitle(tt.title)
		assert.Equal(t, tt.ok, ok, "title %q", tt.title)
		assert.Equal(t, tt.group, g, "title %q", tt.title)
	}
}

func TestSummarize(t *testing.T) {
	log := domain.WorkoutLog{
		Date: "2025-08-20",
		Entries: []domain.Entry{
			{Title: "Overhead Press", Group: domain.GroupShoulder},
			{Title: "Lateral Raise", Group: domain.GroupShoulder},
		},
		DurationByGroup: map[domain.Group]int{domain.GroupShoulder: 420},
	}

	sum := domain.Summarize(&log)
	assert.Equal(t, "2025-08-20", sum.Date)
	assert.Equal(t, 2, sum.Count)
	assert.Equal(t, 420, sum.Sec)
	assert.Equal(t, []domain.Group{domain.GroupShoulder}, sum.Groups)
}
