package utils

import (
	"log"
	"time"

	"gamelearn/database"
	"gamelearn/models"
	learningModels "gamelearn/models/learning"

	"github.com/jinzhu/now"
	"github.com/robfig/cron/v3"
)

// InitializeStreakScheduler sets up the daily streak reminder job
func InitializeStreakScheduler() {
	log.Println("[STREAK-SCHEDULER] Initializing streak scheduler...")

	c := cron.New()

	// Run daily at 7 AM to nudge users whose streak is at risk
	c.AddFunc("0 7 * * *", func() {
		log.Println("[STREAK-SCHEDULER] Running daily streak check...")
		ProcessStreaksAtRisk()
	})

	c.Start()
	log.Println("[STREAK-SCHEDULER] Streak scheduler started - runs daily at 7 AM")
}

// ProcessStreaksAtRisk emails users whose most recent completion was
// yesterday: one more idle day and the streak resets.
func ProcessStreaksAtRisk() {
	db := database.Database.Db
	yesterdayStart := now.New(time.Now().AddDate(0, 0, -1)).BeginningOfDay()
	todayStart := now.BeginningOfDay()

	// Users who completed something yesterday
	var userIDs []uint
	if err := db.Model(&learningModels.Progress{}).
		Where("completed_at >= ? AND completed_at < ?", yesterdayStart, todayStart).
		Distinct("user_id").Pluck("user_id", &userIDs).Error; err != nil {
		log.Printf("[STREAK-SCHEDULER] Failed to query completions: %v", err)
		return
	}

	reminded := 0
	for _, userID := range userIDs {
		// Skip anyone already active today
		var todayCount int64
		db.Model(&learningModels.Progress{}).
			Where("user_id = ? AND completed_at >= ?", userID, todayStart).
			Count(&todayCount)
		if todayCount > 0 {
			continue
		}

		var user models.User
		if err := db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
			continue
		}

		streak := currentStreakLength(userID)
		if err := SendStreakReminderEmail(user.Email, user.Name, streak); err != nil {
			log.Printf("[STREAK-SCHEDULER] Failed to email %s: %v", user.Email, err)
			continue
		}
		reminded++
	}

	log.Printf("[STREAK-SCHEDULER] Sent %d streak reminders", reminded)
}

// currentStreakLength counts consecutive days with completions ending yesterday
func currentStreakLength(userID uint) int {
	db := database.Database.Db

	var records []learningModels.Progress
	if err := db.Where("user_id = ? AND completed_at IS NOT NULL", userID).Find(&records).Error; err != nil {
		return 1
	}

	seen := make(map[time.Time]bool)
	for _, p := range records {
		seen[now.New(*p.CompletedAt).BeginningOfDay()] = true
	}

	streak := 0
	day := now.New(time.Now().AddDate(0, 0, -1)).BeginningOfDay()
	for seen[day] {
		streak++
		day = day.AddDate(0, 0, -1)
	}
	if streak == 0 {
		streak = 1
	}
	return streak
}
