package service

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/Kawaii2025/interview-qa-app/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// fakeQuestionRepo serves questions from a map.
type fakeQuestionRepo struct {
	questions map[uint]*model.Question
	err       error
}

func (f *fakeQuestionRepo) Create(q *model.Question) error { return nil }

func (f *fakeQuestionRepo) FindByID(id uint) (*model.Question, error) {
	if f.err != nil {
		return nil, f.err
	}
	q, ok := f.questions[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return q, nil
}

func (f *fakeQuestionRepo) FindAll() ([]model.Question, error) { return nil, nil }

// fakeAnswerStore enforces the one-answer-per-question unique constraint the
// way the real store does: a second insert fails with gorm.ErrDuplicatedKey.
type fakeAnswerStore struct {
	mu      sync.Mutex
	answers map[uint]*model.AIAnswer
	findErr error
}

func newFakeAnswerStore() *fakeAnswerStore {
	return &fakeAnswerStore{answers: make(map[uint]*model.AIAnswer)}
}

func (f *fakeAnswerStore) FindByQuestionID(questionID uint) (*model.AIAnswer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.findErr != nil {
		return nil, f.findErr
	}
	a, ok := f.answers[questionID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *a
	return &copied, nil
}

func (f *fakeAnswerStore) Create(answer *model.AIAnswer) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, exists := f.answers[answer.QuestionID]; exists {
		return gorm.ErrDuplicatedKey
	}
	copied := *answer
	f.answers[answer.QuestionID] = &copied
	return nil
}

func (f *fakeAnswerStore) Upsert(answer *model.AIAnswer) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := *answer
	f.answers[answer.QuestionID] = &copied
	return nil
}

func (f *fakeAnswerStore) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.answers)
}

// fakeLLM counts calls so tests can assert the cache-hit invariant.
type fakeLLM struct {
	mu      sync.Mutex
	calls   int
	prompts []string
	content string
	// contentFn, when set, produces per-call content.
	contentFn func(call int) string
	err       error
}

func (f *fakeLLM) Generate(ctx context.Context, prompt string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return "", f.err
	}
	if f.contentFn != nil {
		return f.contentFn(f.calls), nil
	}
	return f.content, nil
}

func (f *fakeLLM) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func newTestResolver(questions map[uint]*model.Question, store *fakeAnswerStore, llm *fakeLLM) AnswerResolver {
	return NewAnswerResolver(&fakeQuestionRepo{questions: questions}, store, llm)
}

func question(id uint, content string) map[uint]*model.Question {
	return map[uint]*model.Question{id: {ID: id, Content: content, Type: model.QuestionTypeBackend, Difficulty: 2}}
}

func TestResolve_NoStoredAnswer(t *testing.T) {
	store := newFakeAnswerStore()
	llm := &fakeLLM{content: "unused"}
	resolver := newTestResolver(question(42, "什么是闭包？"), store, llm)

	res, err := resolver.Resolve(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, ResolutionNotYetGenerated, res.Status)
	assert.Empty(t, res.Content)
	assert.Zero(t, llm.callCount(), "resolve must never reach the generation gateway")
}

func TestResolve_StoredAnswer(t *testing.T) {
	store := newFakeAnswerStore()
	store.answers[42] = &model.AIAnswer{QuestionID: 42, Content: "闭包是函数与其词法环境的组合。"}
	llm := &fakeLLM{content: "unused"}
	resolver := newTestResolver(question(42, "什么是闭包？"), store, llm)

	res, err := resolver.Resolve(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, ResolutionFound, res.Status)
	assert.Equal(t, "闭包是函数与其词法环境的组合。", res.Content)
	assert.Zero(t, llm.callCount(), "cache hit must never reach the generation gateway")
}

func TestResolve_Idempotent(t *testing.T) {
	store := newFakeAnswerStore()
	store.answers[7] = &model.AIAnswer{QuestionID: 7, Content: "stored"}
	resolver := newTestResolver(question(7, "q"), store, &fakeLLM{})

	first, err := resolver.Resolve(context.Background(), 7)
	require.NoError(t, err)
	second, err := resolver.Resolve(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestResolve_StoreError(t *testing.T) {
	store := newFakeAnswerStore()
	store.findErr = fmt.Errorf("connection refused")
	resolver := newTestResolver(question(1, "q"), store, &fakeLLM{})

	_, err := resolver.Resolve(context.Background(), 1)
	require.ErrorIs(t, err, ErrStoreUnavailable)
}

func TestGenerateAndStore_HappyPath(t *testing.T) {
	store := newFakeAnswerStore()
	llm := &fakeLLM{content: "生成的参考答案"}
	resolver := newTestResolver(question(42, "什么是闭包？"), store, llm)

	res, err := resolver.GenerateAndStore(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, ResolutionFound, res.Status)
	assert.Equal(t, "生成的参考答案", res.Content)
	assert.Equal(t, 1, store.count())

	require.Len(t, llm.prompts, 1)
	assert.Contains(t, llm.prompts[0], "什么是闭包？")
	assert.Contains(t, llm.prompts[0], "面试回答", "prompt must carry the fixed instructional prefix")
}

func TestGenerateAndStore_QuestionMissing(t *testing.T) {
	store := newFakeAnswerStore()
	llm := &fakeLLM{content: "unused"}
	resolver := newTestResolver(map[uint]*model.Question{}, store, llm)

	_, err := resolver.GenerateAndStore(context.Background(), 99)
	require.ErrorIs(t, err, ErrQuestionMissing)
	assert.Zero(t, llm.callCount(), "no generation after a failed question lookup")
	assert.Zero(t, store.count())
}

func TestGenerateAndStore_ProviderError(t *testing.T) {
	store := newFakeAnswerStore()
	llm := &fakeLLM{err: fmt.Errorf("upstream timeout")}
	resolver := newTestResolver(question(7, "q"), store, llm)

	_, err := resolver.GenerateAndStore(context.Background(), 7)
	require.ErrorIs(t, err, ErrGenerationFailed)
	assert.Zero(t, store.count(), "no write after a generation failure")
}

func TestGenerateAndStore_EmptyContent(t *testing.T) {
	store := newFakeAnswerStore()
	llm := &fakeLLM{content: ""}
	resolver := newTestResolver(question(7, "q"), store, llm)

	_, err := resolver.GenerateAndStore(context.Background(), 7)
	require.ErrorIs(t, err, ErrGenerationFailed)
	assert.Zero(t, store.count(), "empty output is not success-with-content")
}

func TestGenerateAndStore_ConflictResolvesToExistingAnswer(t *testing.T) {
	store := newFakeAnswerStore()
	llm := &fakeLLM{contentFn: func(call int) string {
		// While this caller was generating, a concurrent one inserted first.
		store.answers[5] = &model.AIAnswer{QuestionID: 5, Content: "winner"}
		return "loser"
	}}
	resolver := newTestResolver(question(5, "q"), store, llm)

	res, err := resolver.GenerateAndStore(context.Background(), 5)
	require.NoError(t, err, "losing the insert race is not an error")
	assert.Equal(t, ResolutionFound, res.Status)
	assert.Equal(t, "winner", res.Content, "the loser observes the winner's answer")
	assert.Equal(t, 1, store.count())
}

func TestGenerateAndStore_ConcurrentRace(t *testing.T) {
	store := newFakeAnswerStore()
	llm := &fakeLLM{contentFn: func(call int) string {
		return fmt.Sprintf("answer-%d", call)
	}}
	resolver := newTestResolver(question(3, "q"), store, llm)

	var wg sync.WaitGroup
	results := make([]*Resolution, 2)
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = resolver.GenerateAndStore(context.Background(), 3)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, store.count(), "exactly one persisted answer after the race")
	for i := 0; i < 2; i++ {
		require.NoError(t, errs[i], "both racing callers get a non-error outcome")
		assert.Equal(t, ResolutionFound, results[i].Status)
		assert.NotEmpty(t, results[i].Content)
	}
}

func TestRegenerate_ReplacesExistingAnswer(t *testing.T) {
	store := newFakeAnswerStore()
	store.answers[99] = &model.AIAnswer{QuestionID: 99, Content: "A"}
	llm := &fakeLLM{content: "B"}
	resolver := newTestResolver(question(99, "q"), store, llm)

	res, err := resolver.Regenerate(context.Background(), 99)
	require.NoError(t, err)
	assert.Equal(t, "B", res.Content)
	assert.Equal(t, 1, store.count())

	after, err := resolver.Resolve(context.Background(), 99)
	require.NoError(t, err)
	assert.Equal(t, "B", after.Content, "resolve after regenerate must return the replacement, never the old answer")
}

func TestRegenerate_QuestionMissing(t *testing.T) {
	resolver := newTestResolver(map[uint]*model.Question{}, newFakeAnswerStore(), &fakeLLM{content: "x"})

	_, err := resolver.Regenerate(context.Background(), 404)
	require.ErrorIs(t, err, ErrQuestionMissing)
}

func TestEndToEnd_ResolveGenerateResolve(t *testing.T) {
	store := newFakeAnswerStore()
	llm := &fakeLLM{content: "generated once"}
	resolver := newTestResolver(question(42, "什么是原型链？"), store, llm)
	ctx := context.Background()

	first, err := resolver.Resolve(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, ResolutionNotYetGenerated, first.Status)

	generated, err := resolver.GenerateAndStore(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, "generated once", generated.Content)

	second, err := resolver.Resolve(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, ResolutionFound, second.Status)
	assert.Equal(t, generated.Content, second.Content)
	assert.Equal(t, 1, llm.callCount(), "the follow-up resolve must not generate again")
}

func TestEndToEnd_GenerationFailureLeavesNoRecord(t *testing.T) {
	store := newFakeAnswerStore()
	llm := &fakeLLM{err: fmt.Errorf("provider down")}
	resolver := newTestResolver(question(7, "q"), store, llm)
	ctx := context.Background()

	_, err := resolver.GenerateAndStore(ctx, 7)
	require.ErrorIs(t, err, ErrGenerationFailed)

	res, err := resolver.Resolve(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, ResolutionNotYetGenerated, res.Status)
}
