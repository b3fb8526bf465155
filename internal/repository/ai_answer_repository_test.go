package repository

import (
	"testing"
	"time"

	"github.com/Kawaii2025/interview-qa-app/internal/model"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.Question{}, &model.AIAnswer{}, &model.UserAnswer{}))
	return db
}

func TestAIAnswerRepository_CreateAndFind(t *testing.T) {
	repo := NewAIAnswerRepository(newTestDB(t))

	require.NoError(t, repo.Create(&model.AIAnswer{QuestionID: 42, Content: "stored answer"}))

	answer, err := repo.FindByQuestionID(42)
	require.NoError(t, err)
	assert.Equal(t, uint(42), answer.QuestionID)
	assert.Equal(t, "stored answer", answer.Content)
}

func TestAIAnswerRepository_FindMissing(t *testing.T) {
	repo := NewAIAnswerRepository(newTestDB(t))

	_, err := repo.FindByQuestionID(404)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestAIAnswerRepository_SecondInsertConflicts(t *testing.T) {
	repo := NewAIAnswerRepository(newTestDB(t))

	require.NoError(t, repo.Create(&model.AIAnswer{QuestionID: 3, Content: "winner"}))

	err := repo.Create(&model.AIAnswer{QuestionID: 3, Content: "loser"})
	require.ErrorIs(t, err, gorm.ErrDuplicatedKey,
		"the unique index on question_id must reject a second row")

	answer, err := repo.FindByQuestionID(3)
	require.NoError(t, err)
	assert.Equal(t, "winner", answer.Content)
}

func TestAIAnswerRepository_UpsertInsertsWhenAbsent(t *testing.T) {
	repo := NewAIAnswerRepository(newTestDB(t))

	require.NoError(t, repo.Upsert(&model.AIAnswer{QuestionID: 9, Content: "first"}))

	answer, err := repo.FindByQuestionID(9)
	require.NoError(t, err)
	assert.Equal(t, "first", answer.Content)
}

func TestAIAnswerRepository_UpsertReplacesSingleRow(t *testing.T) {
	db := newTestDB(t)
	repo := NewAIAnswerRepository(db)

	require.NoError(t, repo.Create(&model.AIAnswer{QuestionID: 99, Content: "A"}))
	require.NoError(t, repo.Upsert(&model.AIAnswer{QuestionID: 99, Content: "B"}))

	answer, err := repo.FindByQuestionID(99)
	require.NoError(t, err)
	assert.Equal(t, "B", answer.Content, "regeneration replaces, never appends")

	var count int64
	require.NoError(t, db.Model(&model.AIAnswer{}).Where("question_id = ?", 99).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestQuestionRepository_FindAllNewestFirst(t *testing.T) {
	db := newTestDB(t)
	repo := NewQuestionRepository(db)

	older := model.Question{Content: "older", Type: model.QuestionTypeFrontend, Difficulty: 1}
	require.NoError(t, repo.Create(&older))
	newer := model.Question{Content: "newer", Type: model.QuestionTypeBackend, Difficulty: 2}
	require.NoError(t, repo.Create(&newer))
	// Force distinct timestamps; sqlite's clock resolution can collapse them.
	require.NoError(t, db.Model(&older).Update("created_at", older.CreatedAt.Add(-time.Second)).Error)

	questions, err := repo.FindAll()
	require.NoError(t, err)
	require.Len(t, questions, 2)
	assert.Equal(t, "newer", questions[0].Content)
	assert.Equal(t, "older", questions[1].Content)
}

func TestUserAnswerRepository_CreateThenUpdate(t *testing.T) {
	repo := NewUserAnswerRepository(newTestDB(t))

	answer := model.UserAnswer{QuestionID: 5, Content: "draft"}
	require.NoError(t, repo.Create(&answer))

	answer.Content = "final"
	require.NoError(t, repo.Update(&answer))

	saved, err := repo.FindByQuestionID(5)
	require.NoError(t, err)
	assert.Equal(t, "final", saved.Content)
}
