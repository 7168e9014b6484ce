package annotate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTagsMatchesTopics(t *testing.T) {
	tagger := NewRegexTagger()

	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "infrastructure and debugging",
			text: "The docker deploy failed with an error",
			want: []string{"infrastructure", "debugging"},
		},
		{
			name: "spirituality",
			text: "What is karma yoga in the Gita?",
			want: []string{"spirituality"},
		},
		{
			name: "ai_ml and python",
			text: "Fine-tuning an LLM with a python script",
			want: []string{"ai_ml", "python"},
		},
		{
			name: "no matches",
			text: "hello there",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tagger.Tags(tt.text))
		})
	}
}

func TestTagsDeterministic(t *testing.T) {
	tagger := NewRegexTagger()
	text := "I prefer python for my investing tools but the server keeps crashing"

	first := tagger.Tags(text)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, tagger.Tags(text))
	}
}

func TestTagsCaseFolded(t *testing.T) {
	tagger := NewRegexTagger()
	assert.Equal(t, tagger.Tags("DOCKER deploy"), tagger.Tags("docker deploy"))
}

func TestScoreWithinBounds(t *testing.T) {
	scorer := NewHedgeScorer()

	inputs := []string{
		"",
		"yes",
		strings.Repeat("maybe perhaps might could ", 20),
		strings.Repeat("word ", 100),
		strings.Repeat("word ", 1000),
	}
	for _, answer := range inputs {
		score := scorer.Score("q", answer)
		assert.GreaterOrEqual(t, score, 0.30)
		assert.LessOrEqual(t, score, 0.95)
	}
}

func TestScoreNonIncreasingInHedges(t *testing.T) {
	scorer := NewHedgeScorer()

	prev := scorer.Score("q", "a definite answer")
	answer := "a definite answer"
	for i := 0; i < 10; i++ {
		answer += " maybe"
		score := scorer.Score("q", answer)
		assert.LessOrEqual(t, score, prev)
		prev = score
	}
}

func TestScoreLengthBonus(t *testing.T) {
	scorer := NewHedgeScorer()

	short := scorer.Score("q", "short answer")
	wellFormed := scorer.Score("q", strings.Repeat("word ", 100))
	assert.Equal(t, 0.85, short)
	assert.Equal(t, 0.90, wellFormed)
}

func TestScoreHedgesCountedInAnswerOnly(t *testing.T) {
	scorer := NewHedgeScorer()

	// Hedges in the question must not affect the score.
	assert.Equal(t,
		scorer.Score("maybe perhaps not sure?", "a definite answer"),
		scorer.Score("plain question", "a definite answer"),
	)
}

func TestScoreFloor(t *testing.T) {
	scorer := NewHedgeScorer()
	assert.Equal(t, 0.30, scorer.Score("q", strings.Repeat("maybe ", 40)))
}
