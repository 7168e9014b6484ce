package domain

import "time"

// Interaction is one logged question/answer exchange with derived tags and a
// confidence score. Records are immutable once written; the episodic log they
// live in is append-only.
type Interaction struct {
	ID         string    `json:"id"`
	Timestamp  time.Time `json:"timestamp"`
	Question   string    `json:"question"`
	Answer     string    `json:"answer"`
	Tags       []string  `json:"tags"`
	Confidence float64   `json:"confidence"`
}
