package domain

import "time"

// CognitivePattern is a domain-agnostic behavioral regularity inferred from
// beliefs spanning at least two domains. A statement that only describes one
// domain is a belief, not a pattern; that distinction is carried by the
// synthesis prompt contract rather than validated structurally.
type CognitivePattern struct {
	Pattern             string   `json:"pattern"`
	Confidence          float64  `json:"confidence"`
	CrossDomainEvidence []string `json:"cross_domain_evidence"`
	TransferHypothesis  string   `json:"transfer_hypothesis"`
}

// AbstractionLadder holds four ordered lists at increasing levels of
// generalization over the same evidence base.
type AbstractionLadder struct {
	Observations []string `json:"observations"`
	Themes       []string `json:"themes"`
	Patterns     []string `json:"patterns"`
	Biases       []string `json:"biases"`
}

type Archetype string

const (
	ArchetypeControlFirst    Archetype = "control-first"
	ArchetypeScaleFirst      Archetype = "scale-first"
	ArchetypeResearchFirst   Archetype = "research-first"
	ArchetypeExecutionFirst  Archetype = "execution-first"
	ArchetypeSafetyFirst     Archetype = "safety-first"
	ArchetypeDepthFirst      Archetype = "depth-first"
	ArchetypeSimplicityFirst Archetype = "simplicity-first"
)

// Archetypes lists every recognized decision archetype, in the order they are
// presented to the model.
var Archetypes = []Archetype{
	ArchetypeControlFirst,
	ArchetypeScaleFirst,
	ArchetypeResearchFirst,
	ArchetypeExecutionFirst,
	ArchetypeSafetyFirst,
	ArchetypeDepthFirst,
	ArchetypeSimplicityFirst,
}

func ValidArchetype(a string) bool {
	for _, arch := range Archetypes {
		if Archetype(a) == arch {
			return true
		}
	}
	return false
}

// DecisionArchetype is the dominant decision-making style plus a weight
// distribution over all archetypes. The distribution is expected to sum to
// 1.0 by prompt contract; it is not mechanically enforced.
type DecisionArchetype struct {
	Dominant     string             `json:"dominant"`
	Distribution map[string]float64 `json:"distribution"`
}

// ExperienceCompression records how many logged events were distilled into
// how many patterns by the last synthesis run.
type ExperienceCompression struct {
	TotalEvents      int    `json:"total_events"`
	TotalPatterns    int    `json:"total_patterns"`
	CompressionRatio string `json:"compression_ratio"`
}

// PatternDocument is the on-disk shape of cognitive_patterns.json, replaced
// wholesale on every synthesis run.
type PatternDocument struct {
	LastUpdated           *time.Time            `json:"last_updated"`
	SynthesisCount        int                   `json:"synthesis_count"`
	AbstractionLadder     AbstractionLadder     `json:"abstraction_ladder"`
	CognitivePatterns     []CognitivePattern    `json:"cognitive_patterns"`
	DecisionArchetype     DecisionArchetype     `json:"decision_archetype"`
	ExperienceCompression ExperienceCompression `json:"experience_compression"`
}

// SynthesisResult is the parsed output of one synthesis model call, before
// versioning and compression stats are attached.
type SynthesisResult struct {
	AbstractionLadder AbstractionLadder  `json:"abstraction_ladder"`
	CognitivePatterns []CognitivePattern `json:"cognitive_patterns"`
	DecisionArchetype DecisionArchetype  `json:"decision_archetype"`
	Tensions          []Tension          `json:"tensions"`
}
