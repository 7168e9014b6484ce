// Package annotate derives tags and a confidence score for logged
// interactions. Both classifiers are cheap text heuristics, deliberately
// replaceable: anything satisfying Tagger/Scorer can be swapped in (a
// model-based scorer, for example) without touching the log's contract.
package annotate

import (
	"math"
	"regexp"
	"strings"
)

// Tagger derives topic labels from interaction text.
type Tagger interface {
	Tags(text string) []string
}

// Scorer derives a confidence score in [0,1] from a question/answer pair.
type Scorer interface {
	Score(question, answer string) float64
}

// Scoring constants for the hedge heuristic.
const (
	baseScore       = 0.85
	hedgePenalty    = 0.08
	lengthBonus     = 0.05
	minScore        = 0.30
	maxScore        = 0.95
	minWellFormed   = 50  // exclusive lower word bound for the length bonus
	maxWellFormed   = 600 // exclusive upper word bound
)

type tagPattern struct {
	label string
	re    *regexp.Regexp
}

// Fixed classifier table. Order determines tag order in the output, so the
// same text always yields the same tag slice.
var tagPatterns = []tagPattern{
	{"infrastructure", regexp.MustCompile(`\b(docker|k8s|kubernetes|nginx|server|deploy|cloud|aws|gcp|azure|local)\b`)},
	{"ai_ml", regexp.MustCompile(`\b(llm|model|embedding|rag|vector|fine.?tun|inference|ollama|mistral|gpt)\b`)},
	{"python", regexp.MustCompile(`\b(python|pip|venv|fastapi|flask|django|pydantic)\b`)},
	{"architecture", regexp.MustCompile(`\b(architecture|design|pattern|scalab|microservice|monolith|system)\b`)},
	{"debugging", regexp.MustCompile(`\b(error|bug|fix|broken|fail|crash|exception|traceback)\b`)},
	{"preference", regexp.MustCompile(`\b(prefer|rather|instead|avoid|hate|love|like|dislike|want)\b`)},
	{"goal", regexp.MustCompile(`\b(goal|want to|trying to|building|create|launch|ship)\b`)},
	{"frustration", regexp.MustCompile(`\b(frustrat|annoy|slow|complic|overengineer|too much|wrong)\b`)},
	{"spirituality", regexp.MustCompile(`\b(gita|krishna|karma|jnana|bhakti|dharma|marga|yoga|vedic|spiritual)\b`)},
	{"correction", regexp.MustCompile(`\b(no,|wrong|incorrect|not right|that's not|actually,)\b`)},
	{"investing", regexp.MustCompile(`\b(invest|stock|market|portfolio|value|p/e|dividend|equity|asset)\b`)},
	{"learning", regexp.MustCompile(`\b(learn|study|understand|teach|master|curriculum|course|practice)\b`)},
}

var hedgeRe = regexp.MustCompile(`\b(maybe|perhaps|might|could|not sure|unclear|depends|uncertain|possibly)\b`)

// RegexTagger classifies text against the fixed pattern table. A label is
// included iff its pattern matches anywhere in the case-folded text; labels
// are not mutually exclusive.
type RegexTagger struct{}

func NewRegexTagger() *RegexTagger {
	return &RegexTagger{}
}

func (t *RegexTagger) Tags(text string) []string {
	lower := strings.ToLower(text)
	var tags []string
	for _, p := range tagPatterns {
		if p.re.MatchString(lower) {
			tags = append(tags, p.label)
		}
	}
	return tags
}

// HedgeScorer scores answers by hedging-language density: base 0.85, minus
// 0.08 per hedge occurrence in the answer, plus 0.05 when the answer's word
// count sits strictly between 50 and 600, clamped to [0.30, 0.95] and rounded
// to two decimals. A proxy for answer certainty, not a semantic judgment.
type HedgeScorer struct{}

func NewHedgeScorer() *HedgeScorer {
	return &HedgeScorer{}
}

func (s *HedgeScorer) Score(question, answer string) float64 {
	hedges := len(hedgeRe.FindAllString(strings.ToLower(answer), -1))
	score := baseScore - float64(hedges)*hedgePenalty

	words := len(strings.Fields(answer))
	if words > minWellFormed && words < maxWellFormed {
		score += lengthBonus
	}

	score = math.Max(minScore, math.Min(maxScore, score))
	return math.Round(score*100) / 100
}
