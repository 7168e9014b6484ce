package domain

import "time"

type BeliefCategory string

const (
	CategoryGoal                BeliefCategory = "goal"
	CategoryTechnicalPreference BeliefCategory = "technical_preference"
	CategoryWorkingStyle        BeliefCategory = "working_style"
	CategoryFrustration         BeliefCategory = "frustration"
	CategoryDomainKnowledge     BeliefCategory = "domain_knowledge"
	CategoryValue               BeliefCategory = "value"
)

func ValidBeliefCategory(c string) bool {
	switch BeliefCategory(c) {
	case CategoryGoal, CategoryTechnicalPreference, CategoryWorkingStyle,
		CategoryFrustration, CategoryDomainKnowledge, CategoryValue:
		return true
	}
	return false
}

// Belief is a durable, evidence-backed statement about the user within a
// single domain, extracted by the reflection stage.
type Belief struct {
	Belief     string         `json:"belief"`
	Confidence float64        `json:"confidence"`
	Evidence   string         `json:"evidence"`
	Category   BeliefCategory `json:"category"`
}

// BeliefDocument is the on-disk shape of beliefs.json. The belief set is
// replaced wholesale on every reflection run; ReflectionCount increases
// monotonically across runs.
type BeliefDocument struct {
	LastUpdated     *time.Time `json:"last_updated"`
	ReflectionCount int        `json:"reflection_count"`
	Beliefs         []Belief   `json:"beliefs"`
}
