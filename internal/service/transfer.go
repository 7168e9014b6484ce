package service

import (
	"context"

	"github.com/Harshitk-cp/introspect/internal/domain"
	"go.uber.org/zap"
)

// DefaultTransferTemperature is the sampling temperature for transfer calls.
const DefaultTransferTemperature = 0.5

// NoPatternsMessage is returned when transfer is requested before any
// synthesis run has produced patterns.
const NoPatternsMessage = "No cognitive patterns available. Run synthesis first."

// TransferService applies persisted cognitive patterns to a novel situation:
// a read plus one model call, no persistence.
type TransferService struct {
	patterns domain.PatternStore
	llm      domain.LLMClient
	logger   *zap.Logger

	temperature float64
}

func NewTransferService(patterns domain.PatternStore, client domain.LLMClient, logger *zap.Logger) *TransferService {
	return &TransferService{
		patterns:    patterns,
		llm:         client,
		logger:      logger,
		temperature: DefaultTransferTemperature,
	}
}

// SetTemperature sets the sampling temperature for the transfer call.
func (s *TransferService) SetTemperature(t float64) {
	s.temperature = t
}

// Apply returns a pattern-grounded analysis of the situation, or a fixed
// pointer to run synthesis first when no patterns exist.
func (s *TransferService) Apply(ctx context.Context, situation string) (string, error) {
	doc, err := s.patterns.Load(ctx)
	if err != nil {
		return "", err
	}
	if len(doc.CognitivePatterns) == 0 {
		return NoPatternsMessage, nil
	}

	dominant := doc.DecisionArchetype.Dominant
	if dominant == "" {
		dominant = "unknown"
	}

	s.logger.Info("transfer requested",
		zap.Int("patterns", len(doc.CognitivePatterns)),
		zap.String("archetype", dominant),
	)

	prompt := buildTransferPrompt(doc.CognitivePatterns, dominant, situation)
	return s.llm.Generate(ctx, prompt, s.temperature)
}
