package service

import (
	"context"
	"fmt"

	"github.com/Harshitk-cp/introspect/internal/domain"
	"github.com/Harshitk-cp/introspect/internal/llm"
	"go.uber.org/zap"
)

// DefaultSynthesizeTemperature is the sampling temperature for synthesis calls.
const DefaultSynthesizeTemperature = 0.25

// Sentinel ratio when a run produced no patterns.
const noCompressionRatio = "N/A"

// SynthesisService distills cross-domain cognitive patterns, a decision
// archetype distribution, and belief tensions from the full belief set.
// Strictly downstream of reflection: no beliefs, no synthesis.
type SynthesisService struct {
	log      domain.InteractionStore
	beliefs  domain.BeliefStore
	patterns domain.PatternStore
	tensions domain.TensionStore
	llm      domain.LLMClient
	logger   *zap.Logger

	temperature float64
}

func NewSynthesisService(
	log domain.InteractionStore,
	beliefs domain.BeliefStore,
	patterns domain.PatternStore,
	tensions domain.TensionStore,
	client domain.LLMClient,
	logger *zap.Logger,
) *SynthesisService {
	return &SynthesisService{
		log:         log,
		beliefs:     beliefs,
		patterns:    patterns,
		tensions:    tensions,
		llm:         client,
		logger:      logger,
		temperature: DefaultSynthesizeTemperature,
	}
}

// SetTemperature sets the sampling temperature for the synthesis call.
func (s *SynthesisService) SetTemperature(t float64) {
	s.temperature = t
}

// Run executes one synthesis pass. An empty belief set aborts before the
// model call with no write. A parse failure collapses the whole result to
// empty and persists nothing; there is no partial-field persistence. On
// success the pattern and tension documents are replaced together under an
// incremented synthesis counter. The two files are written as two separate
// operations; a crash between them can leave one stale.
func (s *SynthesisService) Run(ctx context.Context) (*domain.SynthesisResult, error) {
	beliefs, err := s.beliefs.Load(ctx)
	if err != nil {
		return nil, err
	}
	if len(beliefs) == 0 {
		s.logger.Info("synthesis skipped: no beliefs yet, run reflection first")
		return nil, nil
	}

	totalEvents, err := s.log.Count(ctx)
	if err != nil {
		return nil, err
	}

	prior, err := s.patterns.Load(ctx)
	if err != nil {
		return nil, err
	}

	s.logger.Info("synthesis started",
		zap.Int("beliefs", len(beliefs)),
		zap.Int("interactions", totalEvents),
	)

	prompt := buildSynthesisPrompt(beliefs, totalEvents)
	raw, err := s.llm.Generate(ctx, prompt, s.temperature)
	if err != nil {
		return nil, err
	}

	result, ok := llm.ParseSynthesis(raw)
	if !ok {
		s.logger.Warn("synthesis output unparseable, keeping previous patterns",
			zap.Int("raw_len", len(raw)))
		return nil, nil
	}

	ratio := noCompressionRatio
	if len(result.CognitivePatterns) > 0 {
		ratio = fmt.Sprintf("%d:%d", totalEvents, len(result.CognitivePatterns))
	}

	doc := &domain.PatternDocument{
		SynthesisCount:    prior.SynthesisCount + 1,
		AbstractionLadder: result.AbstractionLadder,
		CognitivePatterns: result.CognitivePatterns,
		DecisionArchetype: result.DecisionArchetype,
		ExperienceCompression: domain.ExperienceCompression{
			TotalEvents:      totalEvents,
			TotalPatterns:    len(result.CognitivePatterns),
			CompressionRatio: ratio,
		},
	}
	if err := s.patterns.Save(ctx, doc); err != nil {
		return nil, err
	}
	if err := s.tensions.Save(ctx, result.Tensions); err != nil {
		return nil, err
	}

	s.logger.Info("synthesis complete",
		zap.Int("patterns", len(result.CognitivePatterns)),
		zap.Int("tensions", len(result.Tensions)),
		zap.String("compression", ratio),
		zap.Int("synthesis_count", doc.SynthesisCount),
	)
	return result, nil
}
