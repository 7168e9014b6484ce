package domain

import "context"

type InteractionStore interface {
	Append(ctx context.Context, in *Interaction) error
	// Load returns interactions oldest-first. A limit > 0 returns only the
	// most recent limit records, still oldest-first. A log that has never
	// been created loads as empty, not as an error.
	Load(ctx context.Context, limit int) ([]Interaction, error)
	Count(ctx context.Context) (int, error)
}

type BeliefStore interface {
	Load(ctx context.Context) ([]Belief, error)
	LoadDocument(ctx context.Context) (*BeliefDocument, error)
	Save(ctx context.Context, beliefs []Belief, reflectionCount int) error
}

type PatternStore interface {
	Load(ctx context.Context) (*PatternDocument, error)
	Save(ctx context.Context, doc *PatternDocument) error
}

type TensionStore interface {
	Load(ctx context.Context) ([]Tension, error)
	Save(ctx context.Context, tensions []Tension) error
}

// LLMClient is the single seam through which every stage talks to the model.
// Implementations must be substitutable for testing.
type LLMClient interface {
	Generate(ctx context.Context, prompt string, temperature float64) (string, error)
}
