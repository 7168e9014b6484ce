package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/Harshitk-cp/introspect/internal/annotate"
	"github.com/Harshitk-cp/introspect/internal/domain"
	"github.com/Harshitk-cp/introspect/internal/llm"
	"github.com/Harshitk-cp/introspect/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type reflectionFixture struct {
	dir        string
	journal    *JournalService
	beliefs    *store.BeliefStore
	client     *llm.MockClient
	reflection *ReflectionService
}

func newReflectionFixture(t *testing.T) *reflectionFixture {
	t.Helper()
	dir := t.TempDir()
	logStore := store.NewLogStore(dir)
	beliefStore := store.NewBeliefStore(dir)
	client := llm.NewMockClient()
	return &reflectionFixture{
		dir:     dir,
		journal: NewJournalService(logStore, annotate.NewRegexTagger(), annotate.NewHedgeScorer(), zap.NewNop()),
		beliefs: beliefStore,
		client:  client,
		reflection: NewReflectionService(logStore, beliefStore, client, zap.NewNop()),
	}
}

func TestReflectionEmptyLogAborts(t *testing.T) {
	f := newReflectionFixture(t)
	ctx := context.Background()

	beliefs, err := f.reflection.Run(ctx)
	require.NoError(t, err)
	assert.Empty(t, beliefs)

	// No model call, no write.
	assert.Empty(t, f.client.GenerateCalls)
	_, statErr := os.Stat(filepath.Join(f.dir, "beliefs.json"))
	assert.True(t, errors.Is(statErr, os.ErrNotExist))
}

func TestReflectionExtractsBeliefs(t *testing.T) {
	f := newReflectionFixture(t)
	ctx := context.Background()

	_, err := f.journal.Append(ctx, "What is karma marga?", "Karma marga is the path of action.", nil)
	require.NoError(t, err)
	_, err = f.journal.Append(ctx, "What is jnana marga?", "Jnana marga is the path of knowledge.", nil)
	require.NoError(t, err)

	f.client.GenerateResponse = `[{"belief":"User is exploring Vedic philosophy systematically","confidence":0.8,"evidence":"Asked about multiple margas","category":"domain_knowledge"}]`

	beliefs, err := f.reflection.Run(ctx)
	require.NoError(t, err)
	require.Len(t, beliefs, 1)
	assert.Equal(t, "User is exploring Vedic philosophy systematically", beliefs[0].Belief)

	doc, err := f.beliefs.LoadDocument(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, doc.ReflectionCount)
	require.Len(t, doc.Beliefs, 1)
	assert.Equal(t, domain.CategoryDomainKnowledge, doc.Beliefs[0].Category)

	// Prompt carried the interactions and the contract.
	require.Len(t, f.client.GenerateCalls, 1)
	call := f.client.GenerateCalls[0]
	assert.Contains(t, call.Prompt, "karma marga")
	assert.Contains(t, call.Prompt, "Return a JSON array")
	assert.Equal(t, DefaultReflectTemperature, call.Temperature)
}

func TestReflectionFiltersBelowThreshold(t *testing.T) {
	f := newReflectionFixture(t)
	ctx := context.Background()

	_, err := f.journal.Append(ctx, "q", "a", nil)
	require.NoError(t, err)

	f.client.GenerateResponse = `[
		{"belief":"confident one","confidence":0.9,"evidence":"e","category":"goal"},
		{"belief":"shaky one","confidence":0.4,"evidence":"e","category":"goal"}
	]`

	beliefs, err := f.reflection.Run(ctx)
	require.NoError(t, err)
	require.Len(t, beliefs, 1)
	assert.Equal(t, "confident one", beliefs[0].Belief)

	doc, err := f.beliefs.LoadDocument(ctx)
	require.NoError(t, err)
	for _, b := range doc.Beliefs {
		assert.GreaterOrEqual(t, b.Confidence, DefaultMinBeliefConfidence)
	}
}

func TestReflectionCounterIncrements(t *testing.T) {
	f := newReflectionFixture(t)
	ctx := context.Background()

	_, err := f.journal.Append(ctx, "q", "a", nil)
	require.NoError(t, err)
	f.client.GenerateResponse = `[{"belief":"b","confidence":0.8,"evidence":"e","category":"goal"}]`

	for want := 1; want <= 3; want++ {
		_, err := f.reflection.Run(ctx)
		require.NoError(t, err)

		doc, err := f.beliefs.LoadDocument(ctx)
		require.NoError(t, err)
		assert.Equal(t, want, doc.ReflectionCount)
	}
}

func TestReflectionMalformedOutputLeavesStateUntouched(t *testing.T) {
	f := newReflectionFixture(t)
	ctx := context.Background()

	_, err := f.journal.Append(ctx, "q", "a", nil)
	require.NoError(t, err)

	// Seed a prior belief set.
	f.client.GenerateResponse = `[{"belief":"prior","confidence":0.8,"evidence":"e","category":"goal"}]`
	_, err = f.reflection.Run(ctx)
	require.NoError(t, err)

	f.client.GenerateResponse = "I am sorry, I cannot produce JSON today."
	beliefs, err := f.reflection.Run(ctx)
	require.NoError(t, err)
	assert.Empty(t, beliefs)

	doc, err := f.beliefs.LoadDocument(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, doc.ReflectionCount)
	require.Len(t, doc.Beliefs, 1)
	assert.Equal(t, "prior", doc.Beliefs[0].Belief)
}

func TestReflectionModelFailureAbortsWithoutWrite(t *testing.T) {
	f := newReflectionFixture(t)
	ctx := context.Background()

	_, err := f.journal.Append(ctx, "q", "a", nil)
	require.NoError(t, err)

	f.client.GenerateError = llm.ErrModelUnavailable
	_, err = f.reflection.Run(ctx)
	require.ErrorIs(t, err, llm.ErrModelUnavailable)

	_, statErr := os.Stat(filepath.Join(f.dir, "beliefs.json"))
	assert.True(t, errors.Is(statErr, os.ErrNotExist))
}

func TestReflectionShowsExistingBeliefsToModel(t *testing.T) {
	f := newReflectionFixture(t)
	ctx := context.Background()

	_, err := f.journal.Append(ctx, "q", "a", nil)
	require.NoError(t, err)

	require.NoError(t, f.beliefs.Save(ctx, []domain.Belief{
		{Belief: "already known", Confidence: 0.7, Category: domain.CategoryGoal},
	}, 4))

	f.client.GenerateResponse = `[]`
	_, err = f.reflection.Run(ctx)
	require.NoError(t, err)

	require.Len(t, f.client.GenerateCalls, 1)
	assert.Contains(t, f.client.GenerateCalls[0].Prompt, "already known")

	// A legitimate empty array still persists and bumps the counter.
	doc, err := f.beliefs.LoadDocument(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, doc.ReflectionCount)
	assert.Empty(t, doc.Beliefs)
}
