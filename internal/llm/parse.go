package llm

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/Harshitk-cp/introspect/internal/domain"
)

// The model is an untrusted, best-effort structured-output source: it wraps
// JSON in code fences, prepends prose, or returns garbage. Recovery is a
// three-tier chain — strip fences, direct parse, then extract the first
// balanced-looking span and retry. Total failure reports ok=false; it never
// panics or errors.

var (
	fenceRe      = regexp.MustCompile("```(?:json)?")
	arraySpanRe  = regexp.MustCompile(`(?s)\[.*\]`)
	objectSpanRe = regexp.MustCompile(`(?s)\{.*\}`)
)

func stripFences(raw string) string {
	s := fenceRe.ReplaceAllString(raw, "")
	s = strings.TrimSpace(s)
	s = strings.TrimRight(s, "`")
	return strings.TrimSpace(s)
}

// ParseBeliefs interprets raw model output as a JSON array of beliefs.
// ok is false only when no array could be recovered at all; a well-formed
// empty array parses as an empty slice with ok=true.
func ParseBeliefs(raw string) (beliefs []domain.Belief, ok bool) {
	s := stripFences(raw)

	var direct []domain.Belief
	if err := json.Unmarshal([]byte(s), &direct); err == nil {
		return direct, true
	}

	if span := arraySpanRe.FindString(s); span != "" {
		var extracted []domain.Belief
		if err := json.Unmarshal([]byte(span), &extracted); err == nil {
			return extracted, true
		}
	}

	return nil, false
}

// ParseSynthesis interprets raw model output as the synthesis result object.
// ok is false when no object could be recovered.
func ParseSynthesis(raw string) (result *domain.SynthesisResult, ok bool) {
	s := stripFences(raw)

	var direct domain.SynthesisResult
	if err := json.Unmarshal([]byte(s), &direct); err == nil {
		return &direct, true
	}

	if span := objectSpanRe.FindString(s); span != "" {
		var extracted domain.SynthesisResult
		if err := json.Unmarshal([]byte(span), &extracted); err == nil {
			return &extracted, true
		}
	}

	return nil, false
}
