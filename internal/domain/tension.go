package domain

import "time"

// Tension is a detected conflict between two beliefs, with a question whose
// answer would resolve it.
type Tension struct {
	BeliefA           string  `json:"belief_a"`
	BeliefB           string  `json:"belief_b"`
	Tension           string  `json:"tension"`
	StrategicQuestion string  `json:"strategic_question"`
	Severity          float64 `json:"severity"`
}

// TensionDocument is the on-disk shape of tensions.json. Resolved is reserved
// and always empty in this design.
type TensionDocument struct {
	LastUpdated *time.Time `json:"last_updated"`
	Tensions    []Tension  `json:"tensions"`
	Resolved    []Tension  `json:"resolved"`
}
