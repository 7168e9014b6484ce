package service

import (
	"context"
	"time"

	"github.com/Harshitk-cp/introspect/internal/annotate"
	"github.com/Harshitk-cp/introspect/internal/domain"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// JournalService owns the episodic log: every question/answer exchange passes
// through Append, which annotates the pair and writes it as one immutable
// record. Everything downstream (reflection, synthesis) only reads.
type JournalService struct {
	log    domain.InteractionStore
	tagger annotate.Tagger
	scorer annotate.Scorer
	logger *zap.Logger
}

func NewJournalService(log domain.InteractionStore, tagger annotate.Tagger, scorer annotate.Scorer, logger *zap.Logger) *JournalService {
	return &JournalService{
		log:    log,
		tagger: tagger,
		scorer: scorer,
		logger: logger,
	}
}

// Append annotates and logs one exchange. Caller-supplied extra tags are
// unioned with auto-derived ones, deduplicated.
func (s *JournalService) Append(ctx context.Context, question, answer string, extraTags []string) (*domain.Interaction, error) {
	tags := s.tagger.Tags(question + " " + answer)
	tags = unionTags(tags, extraTags)

	in := &domain.Interaction{
		ID:         uuid.NewString()[:8],
		Timestamp:  time.Now().UTC(),
		Question:   question,
		Answer:     answer,
		Tags:       tags,
		Confidence: s.scorer.Score(question, answer),
	}

	if err := s.log.Append(ctx, in); err != nil {
		return nil, err
	}

	s.logger.Debug("interaction logged",
		zap.String("id", in.ID),
		zap.Strings("tags", in.Tags),
		zap.Float64("confidence", in.Confidence),
	)
	return in, nil
}

// Recent returns the most recent limit interactions, oldest first.
// limit <= 0 returns the full log.
func (s *JournalService) Recent(ctx context.Context, limit int) ([]domain.Interaction, error) {
	return s.log.Load(ctx, limit)
}

func (s *JournalService) Count(ctx context.Context) (int, error) {
	return s.log.Count(ctx)
}

func unionTags(auto, extra []string) []string {
	seen := make(map[string]bool, len(auto)+len(extra))
	var out []string
	for _, t := range auto {
		if t != "" && !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
	}
	for _, t := range extra {
		if t != "" && !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
	}
	return out
}
