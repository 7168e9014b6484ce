package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBeliefsDirect(t *testing.T) {
	raw := `[{"belief":"prefers python","confidence":0.8,"evidence":"said so twice","category":"technical_preference"}]`

	beliefs, ok := ParseBeliefs(raw)
	require.True(t, ok)
	require.Len(t, beliefs, 1)
	assert.Equal(t, "prefers python", beliefs[0].Belief)
	assert.Equal(t, 0.8, beliefs[0].Confidence)
}

func TestParseBeliefsStripsFences(t *testing.T) {
	raw := "```json\n[{\"belief\":\"b\",\"confidence\":0.7}]\n```"

	beliefs, ok := ParseBeliefs(raw)
	require.True(t, ok)
	require.Len(t, beliefs, 1)
}

func TestParseBeliefsExtractsArrayFromProse(t *testing.T) {
	raw := `Here is what I found:
[{"belief":"b","confidence":0.9,"evidence":"e","category":"goal"}]
Hope this helps!`

	beliefs, ok := ParseBeliefs(raw)
	require.True(t, ok)
	require.Len(t, beliefs, 1)
	assert.Equal(t, "b", beliefs[0].Belief)
}

func TestParseBeliefsEmptyArray(t *testing.T) {
	beliefs, ok := ParseBeliefs("[]")
	require.True(t, ok)
	assert.Empty(t, beliefs)
}

func TestParseBeliefsGarbage(t *testing.T) {
	for _, raw := range []string{"", "I could not find any beliefs.", "{not json at all"} {
		_, ok := ParseBeliefs(raw)
		assert.False(t, ok, "input %q should not parse", raw)
	}
}

func TestParseSynthesisDirect(t *testing.T) {
	raw := `{
		"abstraction_ladder": {"observations":["o1"],"themes":["t1"],"patterns":["p1"],"biases":["b1"]},
		"cognitive_patterns": [{"pattern":"applies first-principles reasoning","confidence":0.85,"cross_domain_evidence":["infra","investing"],"transfer_hypothesis":"will do X"}],
		"decision_archetype": {"dominant":"control-first","distribution":{"control-first":0.6,"depth-first":0.4}},
		"tensions": [{"belief_a":"a","belief_b":"b","tension":"t","strategic_question":"q","severity":0.6}]
	}`

	result, ok := ParseSynthesis(raw)
	require.True(t, ok)
	require.Len(t, result.CognitivePatterns, 1)
	assert.Equal(t, "control-first", result.DecisionArchetype.Dominant)
	assert.Len(t, result.Tensions, 1)
	assert.Equal(t, []string{"o1"}, result.AbstractionLadder.Observations)
}

func TestParseSynthesisExtractsObjectFromProse(t *testing.T) {
	raw := "Sure! Here's the analysis:\n```\n{\"cognitive_patterns\":[],\"decision_archetype\":{\"dominant\":\"depth-first\"}}\n```"

	result, ok := ParseSynthesis(raw)
	require.True(t, ok)
	assert.Equal(t, "depth-first", result.DecisionArchetype.Dominant)
}

func TestParseSynthesisGarbage(t *testing.T) {
	_, ok := ParseSynthesis("the model had a bad day")
	assert.False(t, ok)
}
