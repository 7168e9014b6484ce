package service

import (
	"context"

	"github.com/Harshitk-cp/introspect/internal/domain"
	"github.com/Harshitk-cp/introspect/internal/llm"
	"go.uber.org/zap"
)

// Reflection defaults
const (
	DefaultReflectionWindow    = 50
	DefaultMinBeliefConfidence = 0.6
	DefaultReflectTemperature  = 0.3
)

// ReflectionService extracts durable beliefs about the user from the recent
// interaction window. Each run replaces the stored belief set wholesale and
// bumps the reflection counter; reruns never corrupt state, they overwrite it.
type ReflectionService struct {
	log     domain.InteractionStore
	beliefs domain.BeliefStore
	llm     domain.LLMClient
	logger  *zap.Logger

	window        int
	minConfidence float64
	temperature   float64
}

func NewReflectionService(log domain.InteractionStore, beliefs domain.BeliefStore, client domain.LLMClient, logger *zap.Logger) *ReflectionService {
	return &ReflectionService{
		log:           log,
		beliefs:       beliefs,
		llm:           client,
		logger:        logger,
		window:        DefaultReflectionWindow,
		minConfidence: DefaultMinBeliefConfidence,
		temperature:   DefaultReflectTemperature,
	}
}

// SetWindow sets how many recent interactions a run analyzes.
func (s *ReflectionService) SetWindow(n int) {
	if n > 0 {
		s.window = n
	}
}

// SetMinConfidence sets the filter floor for extracted beliefs.
func (s *ReflectionService) SetMinConfidence(c float64) {
	s.minConfidence = c
}

// SetTemperature sets the sampling temperature for the extraction call.
func (s *ReflectionService) SetTemperature(t float64) {
	s.temperature = t
}

// Run executes one reflection pass: load window, load existing beliefs, call
// the model, parse leniently, filter by confidence, persist with the counter
// incremented. An empty log aborts before the model call with no write. A
// model failure aborts with no write. Unparseable model output degrades to
// zero beliefs and leaves the stored set untouched.
func (s *ReflectionService) Run(ctx context.Context) ([]domain.Belief, error) {
	entries, err := s.log.Load(ctx, s.window)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		s.logger.Info("reflection skipped: no interactions logged yet")
		return nil, nil
	}

	doc, err := s.beliefs.LoadDocument(ctx)
	if err != nil {
		return nil, err
	}

	s.logger.Info("reflection started",
		zap.Int("interactions", len(entries)),
		zap.Int("existing_beliefs", len(doc.Beliefs)),
	)

	prompt := buildReflectionPrompt(entries, doc.Beliefs, s.minConfidence)
	raw, err := s.llm.Generate(ctx, prompt, s.temperature)
	if err != nil {
		return nil, err
	}

	parsed, ok := llm.ParseBeliefs(raw)
	if !ok {
		s.logger.Warn("reflection output unparseable, keeping previous beliefs",
			zap.Int("raw_len", len(raw)))
		return nil, nil
	}

	filtered := make([]domain.Belief, 0, len(parsed))
	for _, b := range parsed {
		if b.Confidence >= s.minConfidence {
			filtered = append(filtered, b)
		}
	}

	if err := s.beliefs.Save(ctx, filtered, doc.ReflectionCount+1); err != nil {
		return nil, err
	}

	s.logger.Info("reflection complete",
		zap.Int("beliefs", len(filtered)),
		zap.Int("dropped", len(parsed)-len(filtered)),
		zap.Int("reflection_count", doc.ReflectionCount+1),
	)
	return filtered, nil
}
