package progression

import (
	"testing"
	"time"

	learningModels "gamelearn/models/learning"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func completedAt(daysAgo int) *time.Time {
	t := time.Now().AddDate(0, 0, -daysAgo)
	return &t
}

func TestDayStreak(t *testing.T) {
	ref := time.Now()

	record := func(daysAgo int) learningModels.Progress {
		return learningModels.Progress{CompletedAt: completedAt(daysAgo)}
	}

	tests := []struct {
		name    string
		records []learningModels.Progress
		want    int
	}{
		{"no completions", nil, 0},
		{"completed today only", []learningModels.Progress{record(0)}, 1},
		{"completed yesterday only", []learningModels.Progress{record(1)}, 1},
		{"three consecutive days", []learningModels.Progress{record(0), record(1), record(2)}, 3},
		{"streak ending yesterday", []learningModels.Progress{record(1), record(2), record(3)}, 3},
		{"gap breaks streak", []learningModels.Progress{record(0), record(2), record(3)}, 1},
		{"stale history", []learningModels.Progress{record(3), record(4)}, 0},
		{"multiple completions per day count once", []learningModels.Progress{record(0), record(0), record(1)}, 2},
		{"incomplete records ignored", []learningModels.Progress{{CompletedAt: nil}, record(0)}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, dayStreak(tt.records, ref))
		})
	}
}

func TestStats(t *testing.T) {
	db := setupDB(t)
	module, sections := seedModule(t, db)
	engine := New(db)

	// Second module left partially complete
	other := learningModels.Module{SubjectID: module.SubjectID, Title: "Geometry", OrderIndex: 2, IsActive: true}
	require.NoError(t, db.Create(&other).Error)
	otherSections := []learningModels.Section{
		{ModuleID: other.ID, Type: learningModels.SectionContent, OrderIndex: 1, Title: "Shapes"},
		{ModuleID: other.ID, Type: learningModels.SectionContent, OrderIndex: 2, Title: "Angles"},
	}
	for i := range otherSections {
		require.NoError(t, db.Create(&otherSections[i]).Error)
	}

	records := []learningModels.Progress{
		{UserID: 1, SubjectID: module.SubjectID, ModuleID: module.ID, SectionID: sections[0].ID,
			Status: learningModels.StatusCompleted, Score: 0, TimeSpent: 30, CompletedAt: completedAt(1)},
		{UserID: 1, SubjectID: module.SubjectID, ModuleID: module.ID, SectionID: sections[1].ID,
			Status: learningModels.StatusCompleted, Score: 100, Attempts: 2, TimeSpent: 45, CompletedAt: completedAt(0)},
		{UserID: 1, SubjectID: module.SubjectID, ModuleID: module.ID, SectionID: sections[2].ID,
			Status: learningModels.StatusCompleted, Score: 0, TimeSpent: 15, CompletedAt: completedAt(0)},
		{UserID: 1, SubjectID: other.SubjectID, ModuleID: other.ID, SectionID: otherSections[0].ID,
			Status: learningModels.StatusCompleted, Score: 50, TimeSpent: 0, CompletedAt: completedAt(0)},
		{UserID: 1, SubjectID: other.SubjectID, ModuleID: other.ID, SectionID: otherSections[1].ID,
			Status: learningModels.StatusUnlocked, Score: 0},
		// Another user's records never leak in
		{UserID: 2, SubjectID: module.SubjectID, ModuleID: module.ID, SectionID: sections[0].ID,
			Status: learningModels.StatusCompleted, Score: 77, TimeSpent: 600, CompletedAt: completedAt(0)},
	}
	for i := range records {
		require.NoError(t, db.Create(&records[i]).Error)
	}

	stats, err := engine.Stats(1)
	require.NoError(t, err)

	assert.Equal(t, 150, stats.TotalPoints)
	assert.Equal(t, 1.5, stats.HoursLearned) // 90 minutes
	assert.Equal(t, 1, stats.LevelsCompleted)
	assert.EqualValues(t, 1, stats.GamesPlayed)
	assert.Equal(t, 2, stats.DayStreak) // yesterday and today
}

func TestStatsEmpty(t *testing.T) {
	db := setupDB(t)
	seedModule(t, db)
	engine := New(db)

	stats, err := engine.Stats(42)
	require.NoError(t, err)
	assert.Zero(t, stats.TotalPoints)
	assert.Zero(t, stats.HoursLearned)
	assert.Zero(t, stats.LevelsCompleted)
	assert.Zero(t, stats.GamesPlayed)
	assert.Zero(t, stats.DayStreak)
}
