package progression

import (
	"encoding/json"
	"testing"

	"gamelearn/engine/games"
	learningModels "gamelearn/models/learning"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&learningModels.Subject{},
		&learningModels.Module{},
		&learningModels.Game{},
		&learningModels.Section{},
		&learningModels.Progress{},
		&learningModels.Reward{},
	))

	return db
}

// seedModule creates a subject with one module holding a CONTENT
// section (order 1), a quiz GAME section (order 2) and a CONTENT
// section (order 3).
func seedModule(t *testing.T, db *gorm.DB) (learningModels.Module, []learningModels.Section) {
	t.Helper()

	subject := learningModels.Subject{Title: "Mathematics", Description: "Numbers and logic", IsActive: true}
	require.NoError(t, db.Create(&subject).Error)

	module := learningModels.Module{SubjectID: subject.ID, Title: "Algebra Basics", OrderIndex: 1, IsActive: true}
	require.NoError(t, db.Create(&module).Error)

	quizRules, _ := json.Marshal(map[string]interface{}{
		"questions": []map[string]interface{}{
			{"question": "2+2?", "options": []string{"3", "4"}, "correctOptionIndex": 1},
		},
	})
	game := learningModels.Game{
		GameType:     games.TypeQuiz,
		Title:        "Algebra Quiz",
		Rules:        datatypes.JSON(quizRules),
		MaxScore:     100,
		PassingScore: 70,
	}
	require.NoError(t, db.Create(&game).Error)

	contentRef := datatypes.JSON(`{"text":"Variables stand for unknown values."}`)
	sections := []learningModels.Section{
		{ModuleID: module.ID, Type: learningModels.SectionContent, OrderIndex: 1, Title: "Intro", ContentRef: contentRef},
		{ModuleID: module.ID, Type: learningModels.SectionGame, OrderIndex: 2, Title: "Checkpoint", GameID: &game.ID},
		{ModuleID: module.ID, Type: learningModels.SectionContent, OrderIndex: 3, Title: "Equations", ContentRef: contentRef},
	}
	for i := range sections {
		require.NoError(t, db.Create(&sections[i]).Error)
	}

	return module, sections
}

func unlockFirst(t *testing.T, db *gorm.DB, userID uint, module learningModels.Module, sections []learningModels.Section) {
	t.Helper()
	require.NoError(t, db.Create(&learningModels.Progress{
		UserID:    userID,
		SubjectID: module.SubjectID,
		ModuleID:  module.ID,
		SectionID: sections[0].ID,
		Status:    learningModels.StatusUnlocked,
	}).Error)
}

func progressFor(t *testing.T, db *gorm.DB, userID, sectionID uint) *learningModels.Progress {
	t.Helper()
	var p learningModels.Progress
	err := db.Where("user_id = ? AND section_id = ?", userID, sectionID).First(&p).Error
	if err != nil {
		return nil
	}
	return &p
}

const passingQuizInput = `{"answers":[{"questionIndex":0,"selectedOptionIndex":1}]}`
const failingQuizInput = `{"answers":[{"questionIndex":0,"selectedOptionIndex":0}]}`

func TestEnsureInitialized(t *testing.T) {
	db := setupDB(t)
	module, sections := seedModule(t, db)
	engine := New(db)

	require.NoError(t, engine.EnsureInitialized(1, module.ID))

	var count int64
	db.Model(&learningModels.Progress{}).Where("user_id = ?", 1).Count(&count)
	assert.EqualValues(t, 1, count)

	first := progressFor(t, db, 1, sections[0].ID)
	require.NotNil(t, first)
	assert.Equal(t, learningModels.StatusUnlocked, first.Status)
	assert.Equal(t, module.SubjectID, first.SubjectID)

	// Second call is a no-op
	require.NoError(t, engine.EnsureInitialized(1, module.ID))
	db.Model(&learningModels.Progress{}).Where("user_id = ?", 1).Count(&count)
	assert.EqualValues(t, 1, count)

	assert.ErrorIs(t, engine.EnsureInitialized(1, 999), ErrModuleNotFound)
}

func TestCompleteContentUnlocksNext(t *testing.T) {
	db := setupDB(t)
	module, sections := seedModule(t, db)
	engine := New(db)
	unlockFirst(t, db, 1, module, sections)

	nextID, err := engine.CompleteContent(1, sections[0].ID, 15)
	require.NoError(t, err)
	require.NotNil(t, nextID)
	assert.Equal(t, sections[1].ID, *nextID)

	first := progressFor(t, db, 1, sections[0].ID)
	require.NotNil(t, first)
	assert.Equal(t, learningModels.StatusCompleted, first.Status)
	assert.NotNil(t, first.CompletedAt)
	assert.Equal(t, 15, first.TimeSpent)

	second := progressFor(t, db, 1, sections[1].ID)
	require.NotNil(t, second)
	assert.Equal(t, learningModels.StatusUnlocked, second.Status)

	// Only the direct successor is touched
	assert.Nil(t, progressFor(t, db, 1, sections[2].ID))

	var count int64
	db.Model(&learningModels.Progress{}).Where("user_id = ?", 1).Count(&count)
	assert.EqualValues(t, 2, count)
}

func TestCompleteContentIdempotent(t *testing.T) {
	db := setupDB(t)
	module, sections := seedModule(t, db)
	engine := New(db)
	unlockFirst(t, db, 1, module, sections)

	firstNext, err := engine.CompleteContent(1, sections[0].ID, 10)
	require.NoError(t, err)

	// Pretend the user re-submits; nothing may change
	secondNext, err := engine.CompleteContent(1, sections[0].ID, 99)
	require.NoError(t, err)
	require.NotNil(t, secondNext)
	assert.Equal(t, *firstNext, *secondNext)

	first := progressFor(t, db, 1, sections[0].ID)
	assert.Equal(t, 10, first.TimeSpent)

	second := progressFor(t, db, 1, sections[1].ID)
	assert.Equal(t, learningModels.StatusUnlocked, second.Status)

	var count int64
	db.Model(&learningModels.Progress{}).Where("user_id = ?", 1).Count(&count)
	assert.EqualValues(t, 2, count)
}

func TestCompleteContentGuards(t *testing.T) {
	db := setupDB(t)
	module, sections := seedModule(t, db)
	engine := New(db)

	t.Run("unknown section", func(t *testing.T) {
		_, err := engine.CompleteContent(1, 999, 0)
		assert.ErrorIs(t, err, ErrSectionNotFound)
	})

	t.Run("no progress record means locked", func(t *testing.T) {
		_, err := engine.CompleteContent(1, sections[0].ID, 0)
		assert.ErrorIs(t, err, ErrSectionLocked)
		assert.Nil(t, progressFor(t, db, 1, sections[0].ID))
	})

	t.Run("explicitly locked", func(t *testing.T) {
		require.NoError(t, db.Create(&learningModels.Progress{
			UserID: 2, SubjectID: module.SubjectID, ModuleID: module.ID,
			SectionID: sections[0].ID, Status: learningModels.StatusLocked,
		}).Error)
		_, err := engine.CompleteContent(2, sections[0].ID, 0)
		assert.ErrorIs(t, err, ErrSectionLocked)
	})

	t.Run("game section rejected", func(t *testing.T) {
		require.NoError(t, db.Create(&learningModels.Progress{
			UserID: 3, SubjectID: module.SubjectID, ModuleID: module.ID,
			SectionID: sections[1].ID, Status: learningModels.StatusUnlocked,
		}).Error)
		_, err := engine.CompleteContent(3, sections[1].ID, 0)
		assert.ErrorIs(t, err, ErrInvalidSectionType)
	})
}

func TestSubmitGameLockedNoSideEffect(t *testing.T) {
	db := setupDB(t)
	_, sections := seedModule(t, db)
	engine := New(db)

	_, _, err := engine.SubmitGame(1, sections[1].ID, json.RawMessage(passingQuizInput))
	assert.ErrorIs(t, err, ErrSectionLocked)

	// The failed submission must not create a progress record
	assert.Nil(t, progressFor(t, db, 1, sections[1].ID))
}

func TestSubmitGameFailedAttempt(t *testing.T) {
	db := setupDB(t)
	module, sections := seedModule(t, db)
	engine := New(db)

	require.NoError(t, db.Create(&learningModels.Progress{
		UserID: 1, SubjectID: module.SubjectID, ModuleID: module.ID,
		SectionID: sections[1].ID, Status: learningModels.StatusUnlocked,
	}).Error)

	result, nextID, err := engine.SubmitGame(1, sections[1].ID, json.RawMessage(failingQuizInput))
	require.NoError(t, err)
	assert.False(t, result.IsPassed)
	assert.Zero(t, result.Score)

	// Next id is computed regardless of pass
	require.NotNil(t, nextID)
	assert.Equal(t, sections[2].ID, *nextID)

	p := progressFor(t, db, 1, sections[1].ID)
	assert.Equal(t, learningModels.StatusUnlocked, p.Status)
	assert.Equal(t, 1, p.Attempts)
	assert.NotNil(t, p.LastAttemptAt)
	assert.Nil(t, p.CompletedAt)

	// No unlock on failure
	assert.Nil(t, progressFor(t, db, 1, sections[2].ID))
}

func TestSubmitGamePassCompletesAndUnlocks(t *testing.T) {
	db := setupDB(t)
	module, sections := seedModule(t, db)
	engine := New(db)

	require.NoError(t, db.Create(&learningModels.Progress{
		UserID: 1, SubjectID: module.SubjectID, ModuleID: module.ID,
		SectionID: sections[1].ID, Status: learningModels.StatusUnlocked,
	}).Error)

	result, nextID, err := engine.SubmitGame(1, sections[1].ID, json.RawMessage(passingQuizInput))
	require.NoError(t, err)
	assert.True(t, result.IsPassed)
	assert.Equal(t, 100, result.Score)
	require.NotNil(t, nextID)
	assert.Equal(t, sections[2].ID, *nextID)

	p := progressFor(t, db, 1, sections[1].ID)
	assert.Equal(t, learningModels.StatusCompleted, p.Status)
	assert.Equal(t, 100, p.Score)
	assert.NotNil(t, p.CompletedAt)

	next := progressFor(t, db, 1, sections[2].ID)
	require.NotNil(t, next)
	assert.Equal(t, learningModels.StatusUnlocked, next.Status)
}

func TestSubmitGameReplayAfterCompletion(t *testing.T) {
	db := setupDB(t)
	module, sections := seedModule(t, db)
	engine := New(db)

	require.NoError(t, db.Create(&learningModels.Progress{
		UserID: 1, SubjectID: module.SubjectID, ModuleID: module.ID,
		SectionID: sections[1].ID, Status: learningModels.StatusUnlocked,
	}).Error)

	_, _, err := engine.SubmitGame(1, sections[1].ID, json.RawMessage(passingQuizInput))
	require.NoError(t, err)

	completedAt := progressFor(t, db, 1, sections[1].ID).CompletedAt

	// Replaying a pass updates attempts but not completion or unlock state
	result, nextID, err := engine.SubmitGame(1, sections[1].ID, json.RawMessage(passingQuizInput))
	require.NoError(t, err)
	assert.True(t, result.IsPassed)
	require.NotNil(t, nextID)
	assert.Equal(t, sections[2].ID, *nextID)

	p := progressFor(t, db, 1, sections[1].ID)
	assert.Equal(t, learningModels.StatusCompleted, p.Status)
	assert.Equal(t, 2, p.Attempts)
	assert.Equal(t, completedAt.Unix(), p.CompletedAt.Unix())

	next := progressFor(t, db, 1, sections[2].ID)
	assert.Equal(t, learningModels.StatusUnlocked, next.Status)

	var count int64
	db.Model(&learningModels.Progress{}).Where("user_id = ? AND section_id = ?", 1, sections[2].ID).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestSubmitGameScoreMonotonic(t *testing.T) {
	db := setupDB(t)
	module, sections := seedModule(t, db)
	engine := New(db)

	require.NoError(t, db.Create(&learningModels.Progress{
		UserID: 1, SubjectID: module.SubjectID, ModuleID: module.ID,
		SectionID: sections[1].ID, Status: learningModels.StatusUnlocked,
	}).Error)

	_, _, err := engine.SubmitGame(1, sections[1].ID, json.RawMessage(passingQuizInput))
	require.NoError(t, err)
	assert.Equal(t, 100, progressFor(t, db, 1, sections[1].ID).Score)

	// A worse replay never regresses the stored score
	_, _, err = engine.SubmitGame(1, sections[1].ID, json.RawMessage(failingQuizInput))
	require.NoError(t, err)

	p := progressFor(t, db, 1, sections[1].ID)
	assert.Equal(t, 100, p.Score)
	assert.Equal(t, 2, p.Attempts)
}

func TestSubmitGameConfigErrors(t *testing.T) {
	db := setupDB(t)
	module, sections := seedModule(t, db)
	engine := New(db)

	t.Run("content section rejected", func(t *testing.T) {
		_, _, err := engine.SubmitGame(1, sections[0].ID, json.RawMessage(passingQuizInput))
		assert.ErrorIs(t, err, ErrInvalidSectionType)
	})

	t.Run("missing game config", func(t *testing.T) {
		orphan := learningModels.Section{ModuleID: module.ID, Type: learningModels.SectionGame, OrderIndex: 4, Title: "Broken"}
		require.NoError(t, db.Create(&orphan).Error)

		_, _, err := engine.SubmitGame(1, orphan.ID, json.RawMessage(passingQuizInput))
		assert.ErrorIs(t, err, ErrGameConfigMissing)
	})

	t.Run("unsupported game type", func(t *testing.T) {
		badGame := learningModels.Game{GameType: "sudoku", Title: "Sudoku", MaxScore: 100, PassingScore: 70}
		require.NoError(t, db.Create(&badGame).Error)
		bad := learningModels.Section{ModuleID: module.ID, Type: learningModels.SectionGame, OrderIndex: 5, Title: "Unknown", GameID: &badGame.ID}
		require.NoError(t, db.Create(&bad).Error)

		_, _, err := engine.SubmitGame(1, bad.ID, json.RawMessage(`{}`))
		assert.ErrorIs(t, err, games.ErrUnsupportedGameType)
	})
}

func TestModuleCompletionIssuesReward(t *testing.T) {
	db := setupDB(t)
	module, sections := seedModule(t, db)
	engine := New(db)

	var hookCalls int
	engine.OnModuleCompleted = func(userID uint, m learningModels.Module, reward learningModels.Reward) {
		hookCalls++
		assert.EqualValues(t, 1, userID)
		assert.Equal(t, module.ID, m.ID)
		assert.NotEmpty(t, reward.CertificateID)
	}

	unlockFirst(t, db, 1, module, sections)

	_, err := engine.CompleteContent(1, sections[0].ID, 5)
	require.NoError(t, err)
	_, _, err = engine.SubmitGame(1, sections[1].ID, json.RawMessage(passingQuizInput))
	require.NoError(t, err)

	// Module not yet complete, no reward
	var count int64
	db.Model(&learningModels.Reward{}).Count(&count)
	assert.Zero(t, count)

	nextID, err := engine.CompleteContent(1, sections[2].ID, 5)
	require.NoError(t, err)
	assert.Nil(t, nextID) // last section of the module

	db.Model(&learningModels.Reward{}).Count(&count)
	assert.EqualValues(t, 1, count)
	assert.Equal(t, 1, hookCalls)

	var reward learningModels.Reward
	require.NoError(t, db.Where("user_id = ? AND module_id = ?", 1, module.ID).First(&reward).Error)
	assert.True(t, reward.BadgeAwarded)

	// Re-completing the last section must not issue a second reward
	_, err = engine.CompleteContent(1, sections[2].ID, 5)
	require.NoError(t, err)
	db.Model(&learningModels.Reward{}).Count(&count)
	assert.EqualValues(t, 1, count)
	assert.Equal(t, 1, hookCalls)
}

func TestCrossUserIsolation(t *testing.T) {
	db := setupDB(t)
	module, sections := seedModule(t, db)
	engine := New(db)

	unlockFirst(t, db, 1, module, sections)
	unlockFirst(t, db, 2, module, sections)

	_, err := engine.CompleteContent(1, sections[0].ID, 0)
	require.NoError(t, err)

	// User 2 is untouched by user 1's completion
	p := progressFor(t, db, 2, sections[0].ID)
	assert.Equal(t, learningModels.StatusUnlocked, p.Status)
	assert.Nil(t, progressFor(t, db, 2, sections[1].ID))
}

func TestDatabaseFailureNotReportedAsDomainError(t *testing.T) {
	db := setupDB(t)
	module, sections := seedModule(t, db)
	engine := New(db)
	unlockFirst(t, db, 1, module, sections)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	_, err = engine.CompleteContent(1, sections[0].ID, 0)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrSectionNotFound)
	assert.NotErrorIs(t, err, ErrSectionLocked)

	_, _, err = engine.SubmitGame(1, sections[1].ID, json.RawMessage(passingQuizInput))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrSectionNotFound)
	assert.NotErrorIs(t, err, ErrSectionLocked)

	err = engine.EnsureInitialized(1, module.ID)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrModuleNotFound)
}
