package progression

import (
	"math"
	"sort"
	"time"

	learningModels "gamelearn/models/learning"

	"github.com/jinzhu/now"
)

// Stats are the student dashboard numbers, reduced from the user's full
// progress set. Read-only; no state transitions.
type Stats struct {
	LevelsCompleted int     `json:"levelsCompleted"`
	DayStreak       int     `json:"dayStreak"`
	TotalPoints     int     `json:"totalPoints"`
	HoursLearned    float64 `json:"hoursLearned"`
	GamesPlayed     int     `json:"gamesPlayed"`
}

// Stats computes the dashboard metrics for a user.
func (e *Engine) Stats(userID uint) (Stats, error) {
	var records []learningModels.Progress
	if err := e.db.Where("user_id = ?", userID).Find(&records).Error; err != nil {
		return Stats{}, err
	}

	var stats Stats
	totalMinutes := 0
	completedByModule := make(map[uint]int64)
	var completedSectionIDs []uint

	for _, p := range records {
		stats.TotalPoints += p.Score
		totalMinutes += p.TimeSpent
		if p.Status == learningModels.StatusCompleted {
			completedByModule[p.ModuleID]++
			completedSectionIDs = append(completedSectionIDs, p.SectionID)
		}
	}

	stats.HoursLearned = math.Round(float64(totalMinutes)/60*10) / 10

	// Levels completed: modules where every section is COMPLETED
	for moduleID, completed := range completedByModule {
		var total int64
		if err := e.db.Model(&learningModels.Section{}).
			Where("module_id = ?", moduleID).Count(&total).Error; err != nil {
			return Stats{}, err
		}
		if total > 0 && completed == total {
			stats.LevelsCompleted++
		}
	}

	// Games played: completed sections of type GAME
	if len(completedSectionIDs) > 0 {
		var gamesPlayed int64
		if err := e.db.Model(&learningModels.Section{}).
			Where("id IN ? AND type = ?", completedSectionIDs, learningModels.SectionGame).
			Count(&gamesPlayed).Error; err != nil {
			return Stats{}, err
		}
		stats.GamesPlayed = int(gamesPlayed)
	}

	stats.DayStreak = dayStreak(records, time.Now())
	return stats, nil
}

// dayStreak counts consecutive calendar days with at least one
// completion, ending today or yesterday. A gap of more than one day
// before the most recent completion resets the streak to zero.
func dayStreak(records []learningModels.Progress, ref time.Time) int {
	seen := make(map[time.Time]bool)
	var days []time.Time
	for _, p := range records {
		if p.CompletedAt == nil {
			continue
		}
		day := now.New(*p.CompletedAt).BeginningOfDay()
		if !seen[day] {
			seen[day] = true
			days = append(days, day)
		}
	}
	if len(days) == 0 {
		return 0
	}

	sort.Slice(days, func(i, j int) bool { return days[i].After(days[j]) })

	today := now.New(ref).BeginningOfDay()
	if daysBetween(days[0], today) > 1 {
		return 0
	}

	streak := 1
	for i := 1; i < len(days); i++ {
		if daysBetween(days[i], days[i-1]) != 1 {
			break
		}
		streak++
	}
	return streak
}

func daysBetween(earlier, later time.Time) int {
	return int(math.Round(later.Sub(earlier).Hours() / 24))
}
