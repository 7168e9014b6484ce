package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/Harshitk-cp/introspect/internal/domain"
)

// Severity above which a tension surfaces in the cognitive block as an open
// strategic question.
const activeTensionSeverity = 0.5

// ContextService renders persisted beliefs and patterns into prompt-ready
// text blocks. Both renderers are pure functions of store contents: same
// state, byte-identical output.
type ContextService struct {
	beliefs  domain.BeliefStore
	patterns domain.PatternStore
	tensions domain.TensionStore
}

func NewContextService(beliefs domain.BeliefStore, patterns domain.PatternStore, tensions domain.TensionStore) *ContextService {
	return &ContextService{
		beliefs:  beliefs,
		patterns: patterns,
		tensions: tensions,
	}
}

// BeliefBlock loads the current belief set and formats it for prompt
// injection. Empty set renders as the empty string.
func (s *ContextService) BeliefBlock(ctx context.Context) (string, error) {
	beliefs, err := s.beliefs.Load(ctx)
	if err != nil {
		return "", err
	}
	return FormatBeliefBlock(beliefs), nil
}

// CognitiveBlock loads the pattern and tension documents and formats them for
// prompt injection. No patterns (synthesis never run, or last run parsed
// empty) renders as the empty string.
func (s *ContextService) CognitiveBlock(ctx context.Context) (string, error) {
	doc, err := s.patterns.Load(ctx)
	if err != nil {
		return "", err
	}
	tensions, err := s.tensions.Load(ctx)
	if err != nil {
		return "", err
	}
	return FormatCognitiveBlock(doc, tensions), nil
}

// FormatBeliefBlock renders beliefs sorted by descending confidence.
func FormatBeliefBlock(beliefs []domain.Belief) string {
	if len(beliefs) == 0 {
		return ""
	}

	sorted := make([]domain.Belief, len(beliefs))
	copy(sorted, beliefs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Confidence > sorted[j].Confidence
	})

	lines := []string{"## What I know about you (domain beliefs)\n"}
	for _, b := range sorted {
		lines = append(lines, fmt.Sprintf("- %s (%.0f%%)", b.Belief, b.Confidence*100))
	}
	return strings.Join(lines, "\n") + "\n\n"
}

// FormatCognitiveBlock renders patterns sorted by descending confidence, the
// dominant archetype if present, tensions above the severity threshold as
// open strategic questions, and a fixed behavioral instruction suffix.
func FormatCognitiveBlock(doc *domain.PatternDocument, tensions []domain.Tension) string {
	if doc == nil || len(doc.CognitivePatterns) == 0 {
		return ""
	}

	sorted := make([]domain.CognitivePattern, len(doc.CognitivePatterns))
	copy(sorted, doc.CognitivePatterns)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Confidence > sorted[j].Confidence
	})

	lines := []string{"## Cognitive Signature (how this user thinks)\n"}
	for _, p := range sorted {
		lines = append(lines, fmt.Sprintf("- %s (%.0f%%)", p.Pattern, p.Confidence*100))
	}

	if doc.DecisionArchetype.Dominant != "" {
		lines = append(lines, fmt.Sprintf("\nDominant decision archetype: %s", doc.DecisionArchetype.Dominant))
	}

	var active []domain.Tension
	for _, t := range tensions {
		if t.Severity > activeTensionSeverity {
			active = append(active, t)
		}
	}
	if len(active) > 0 {
		lines = append(lines, "\nActive cognitive tensions:")
		for _, t := range active {
			lines = append(lines, fmt.Sprintf("- %s", t.StrategicQuestion))
		}
	}

	lines = append(lines,
		"\nWhen responding: align with cognitive style. "+
			"Flag contradictions to archetype. "+
			"Apply cross-domain transfer when relevant. "+
			"No lists. Direct prose only. Name patterns by label.\n")
	return strings.Join(lines, "\n")
}
