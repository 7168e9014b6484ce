package service

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Harshitk-cp/introspect/internal/domain"
)

const reflectionPromptTemplate = `You are a reflection engine. Analyze AI-user interactions and extract durable beliefs
about the user: their goals, preferences, working style, and recurring frustrations.

## Interactions (most recent %d sessions)
%s

## Existing Beliefs
%s

## Task
Return a JSON array of belief objects. Each must have:
  - "belief":      a clear, specific statement about the user (string)
  - "confidence":  float 0.0-1.0
  - "evidence":    1-2 sentence summary of supporting evidence (string)
  - "category":    one of: goal | technical_preference | working_style |
                   frustration | domain_knowledge | value

Rules:
1. Update confidence on existing beliefs if new evidence supports or contradicts.
2. Add new beliefs only if supported by at least 2 interactions.
3. Exclude beliefs with confidence < %.2f.
4. Be specific: "prefers Python" > "likes coding".
5. Return ONLY the JSON array. No explanation. No markdown fences.`

const synthesisPromptTemplate = `You are a cognitive pattern analyst. You do not analyze WHAT someone thinks.
You analyze HOW they think: their cognitive signature across all domains.

## Domain Beliefs
%s

## Interaction Count
%d total interactions logged.

## Task
Return a single JSON object with these exact keys:

"abstraction_ladder": {
  "observations": [3-6 specific behavioral observations],
  "themes":       [2-4 recurring cross-domain themes],
  "patterns":     [2-3 domain-agnostic cognitive patterns],
  "biases":       [1-2 potential blind spots]
}

"cognitive_patterns": [
  {
    "pattern":               "precise, domain-agnostic behavioral statement",
    "confidence":            float 0.0-1.0,
    "cross_domain_evidence": ["example from domain A", "example from domain B"],
    "transfer_hypothesis":   "one sentence predicting behavior in a new unseen domain"
  }
]

"decision_archetype": {
  "dominant":     "one of: %s",
  "distribution": {"archetype_name": weight_float, ...}  // must sum to 1.0
}

"tensions": [
  {
    "belief_a":         "first conflicting belief",
    "belief_b":         "second conflicting belief",
    "tension":          "why they conflict (1-2 sentences)",
    "strategic_question": "the exact question to resolve the tension",
    "severity":         float 0.0-1.0
  }
]

Hard rules:
- Patterns MUST be cross-domain. Single-domain = belief, not pattern.
- "User prefers X" is NOT a pattern. "User applies X-reasoning across Y and Z" IS.
- Return ONLY the JSON object. No markdown. No explanation.`

const transferPromptTemplate = `You are an AI advisor with deep knowledge of this user's cognitive patterns.

## Cognitive Patterns
%s

## Dominant Archetype: %s

## New Situation
%s

Apply the user's cognitive patterns to this situation.
Name which patterns are relevant. Predict their instinct.
Flag if their instinct contradicts their archetype.
Give a direct recommendation in their cognitive style.
Write in prose. No lists. Be specific. Four to eight sentences.`

const answerPreviewRunes = 300

func buildReflectionPrompt(entries []domain.Interaction, existing []domain.Belief, minConfidence float64) string {
	existingBlock := "None yet."
	if len(existing) > 0 {
		if data, err := json.MarshalIndent(existing, "", "  "); err == nil {
			existingBlock = string(data)
		}
	}
	return fmt.Sprintf(reflectionPromptTemplate,
		len(entries), formatInteractions(entries), existingBlock, minConfidence)
}

func formatInteractions(entries []domain.Interaction) string {
	parts := make([]string, 0, len(entries))
	for i, e := range entries {
		preview := e.Answer
		if runes := []rune(preview); len(runes) > answerPreviewRunes {
			preview = string(runes[:answerPreviewRunes]) + "…"
		}
		parts = append(parts, fmt.Sprintf("[%d] Q: %s\n     A: %s\n     Tags: %s | Confidence: %.2f",
			i+1, e.Question, preview, strings.Join(e.Tags, ", "), e.Confidence))
	}
	return strings.Join(parts, "\n\n")
}

func buildSynthesisPrompt(beliefs []domain.Belief, totalEvents int) string {
	beliefBlock := "[]"
	if data, err := json.MarshalIndent(beliefs, "", "  "); err == nil {
		beliefBlock = string(data)
	}

	names := make([]string, len(domain.Archetypes))
	for i, a := range domain.Archetypes {
		names[i] = string(a)
	}
	return fmt.Sprintf(synthesisPromptTemplate, beliefBlock, totalEvents, strings.Join(names, ", "))
}

func buildTransferPrompt(patterns []domain.CognitivePattern, dominant, situation string) string {
	patternBlock := "[]"
	if data, err := json.MarshalIndent(patterns, "", "  "); err == nil {
		patternBlock = string(data)
	}
	return fmt.Sprintf(transferPromptTemplate, patternBlock, dominant, situation)
}
