package progression

import (
	"encoding/json"
	"errors"
	"log"
	"time"

	"gamelearn/engine/games"
	learningModels "gamelearn/models/learning"

	"gorm.io/gorm"
)

// Engine errors. Controllers map these to HTTP statuses.
var (
	ErrSectionNotFound    = errors.New("section not found")
	ErrModuleNotFound     = errors.New("module not found")
	ErrInvalidSectionType = errors.New("invalid section type for this operation")
	ErrSectionLocked      = errors.New("section is locked or not started")
	ErrGameConfigMissing  = errors.New("game configuration missing")
)

// Engine drives the per-user section progression state machine. Both
// entry points (content completion and game submission) converge on the
// same unlock logic: the successor section is always computed as
// (moduleID, order+1), never stored.
type Engine struct {
	db *gorm.DB

	// OnModuleCompleted is invoked after a module reward is issued.
	// Optional; wired to the certificate mailer at startup.
	OnModuleCompleted func(userID uint, module learningModels.Module, reward learningModels.Reward)
}

func New(db *gorm.DB) *Engine {
	return &Engine{db: db}
}

// CompleteContent marks a CONTENT section completed for the user and
// unlocks the successor. Re-completing an already completed section is
// an idempotent success: it returns the same next section id and
// mutates nothing. timeSpent (minutes) is added to the record on the
// first completion only.
func (e *Engine) CompleteContent(userID, sectionID uint, timeSpent int) (*uint, error) {
	var section learningModels.Section
	if err := e.db.First(&section, sectionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSectionNotFound
		}
		return nil, err
	}

	if section.Type != learningModels.SectionContent {
		return nil, ErrInvalidSectionType
	}

	var progress learningModels.Progress
	if err := e.db.Where("user_id = ? AND section_id = ?", userID, sectionID).First(&progress).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// No record means the section was never reached
			return nil, ErrSectionLocked
		}
		return nil, err
	}

	if progress.Status == learningModels.StatusLocked {
		return nil, ErrSectionLocked
	}

	nextID, err := e.NextSectionID(&section)
	if err != nil {
		return nil, err
	}

	if progress.Status == learningModels.StatusCompleted {
		return nextID, nil
	}

	completedAt := time.Now()
	progress.Status = learningModels.StatusCompleted
	progress.CompletedAt = &completedAt
	progress.TimeSpent += timeSpent
	if err := e.db.Save(&progress).Error; err != nil {
		return nil, err
	}

	if err := e.unlockNext(userID, &section); err != nil {
		return nil, err
	}
	e.maybeIssueReward(userID, section.ModuleID)

	return nextID, nil
}

// SubmitGame validates a game submission for a GAME section, applies
// best-attempt scoring and, on a first pass, completes the section and
// unlocks its successor. Replays after completion may still raise the
// score but never re-run the unlock. The next section id is computed on
// every call; callers act on it only when the result passed.
func (e *Engine) SubmitGame(userID, sectionID uint, input json.RawMessage) (games.Result, *uint, error) {
	var section learningModels.Section
	if err := e.db.Preload("Game").First(&section, sectionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return games.Result{}, nil, ErrSectionNotFound
		}
		return games.Result{}, nil, err
	}

	if section.Type != learningModels.SectionGame {
		return games.Result{}, nil, ErrInvalidSectionType
	}

	if section.Game == nil {
		return games.Result{}, nil, ErrGameConfigMissing
	}

	validate, err := games.ForType(section.Game.GameType)
	if err != nil {
		// Corrupted configuration, not user error
		log.Printf("[ENGINE] section %d: %v", section.ID, err)
		return games.Result{}, nil, err
	}

	result := validate(games.Config{
		Rules:        json.RawMessage(section.Game.Rules),
		MaxScore:     section.Game.MaxScore,
		PassingScore: section.Game.PassingScore,
	}, input)

	var progress learningModels.Progress
	if err := e.db.Where("user_id = ? AND section_id = ?", userID, sectionID).First(&progress).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return games.Result{}, nil, ErrSectionLocked
		}
		return games.Result{}, nil, err
	}

	if progress.Status == learningModels.StatusLocked {
		return games.Result{}, nil, ErrSectionLocked
	}

	now := time.Now()
	progress.Attempts++
	progress.LastAttemptAt = &now
	if result.Score > progress.Score {
		progress.Score = result.Score
	}

	firstPass := result.IsPassed && progress.Status != learningModels.StatusCompleted
	if firstPass {
		progress.Status = learningModels.StatusCompleted
		progress.CompletedAt = &now
	}

	if err := e.db.Save(&progress).Error; err != nil {
		return games.Result{}, nil, err
	}

	if firstPass {
		if err := e.unlockNext(userID, &section); err != nil {
			return games.Result{}, nil, err
		}
		e.maybeIssueReward(userID, section.ModuleID)
	}

	nextID, err := e.NextSectionID(&section)
	if err != nil {
		return games.Result{}, nil, err
	}

	return result, nextID, nil
}

// EnsureInitialized lazily creates the first UNLOCKED progress record
// of a module for users with no progress in it yet. Called alongside
// the sections listing so the transition logic stays bootstrap-free.
func (e *Engine) EnsureInitialized(userID, moduleID uint) error {
	var count int64
	if err := e.db.Model(&learningModels.Progress{}).
		Where("user_id = ? AND module_id = ?", userID, moduleID).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	var module learningModels.Module
	if err := e.db.First(&module, moduleID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrModuleNotFound
		}
		return err
	}

	var first learningModels.Section
	if err := e.db.Where("module_id = ?", moduleID).
		Order("order_index asc").First(&first).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Module has no sections yet
			return nil
		}
		return err
	}

	return e.db.Create(&learningModels.Progress{
		UserID:    userID,
		SubjectID: module.SubjectID,
		ModuleID:  moduleID,
		SectionID: first.ID,
		Status:    learningModels.StatusUnlocked,
	}).Error
}

// NextSectionID finds the successor of a section within its module, or
// nil when the section is the last one.
func (e *Engine) NextSectionID(section *learningModels.Section) (*uint, error) {
	var next learningModels.Section
	err := e.db.Where("module_id = ? AND order_index = ?", section.ModuleID, section.OrderIndex+1).
		First(&next).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &next.ID, nil
}

// unlockNext makes the successor section reachable: creates its
// progress record UNLOCKED when absent, flips LOCKED to UNLOCKED when
// present, and leaves UNLOCKED or COMPLETED untouched. Idempotent, so
// it is safe to re-run after a partial failure.
func (e *Engine) unlockNext(userID uint, section *learningModels.Section) error {
	var next learningModels.Section
	err := e.db.Where("module_id = ? AND order_index = ?", section.ModuleID, section.OrderIndex+1).
		First(&next).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Module complete
			return nil
		}
		return err
	}

	var nextProgress learningModels.Progress
	err = e.db.Where("user_id = ? AND section_id = ?", userID, next.ID).First(&nextProgress).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		var module learningModels.Module
		if err := e.db.First(&module, section.ModuleID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrModuleNotFound
			}
			return err
		}
		return e.db.Create(&learningModels.Progress{
			UserID:    userID,
			SubjectID: module.SubjectID,
			ModuleID:  section.ModuleID,
			SectionID: next.ID,
			Status:    learningModels.StatusUnlocked,
		}).Error
	}

	if nextProgress.Status == learningModels.StatusLocked {
		nextProgress.Status = learningModels.StatusUnlocked
		return e.db.Save(&nextProgress).Error
	}

	return nil
}
