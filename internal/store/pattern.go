package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/Harshitk-cp/introspect/internal/domain"
)

const patternFileName = "cognitive_patterns.json"

// PatternStore persists the synthesis output (abstraction ladder, cognitive
// patterns, decision archetype, compression stats) as one JSON document,
// replaced wholesale on each synthesis run.
type PatternStore struct {
	dir  string
	path string
}

func NewPatternStore(dataDir string) *PatternStore {
	return &PatternStore{
		dir:  dataDir,
		path: filepath.Join(dataDir, patternFileName),
	}
}

// Load returns the stored pattern document, or a zero-valued document if
// synthesis has never run.
func (s *PatternStore) Load(ctx context.Context) (*domain.PatternDocument, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return emptyPatternDocument(), nil
		}
		return nil, fmt.Errorf("%w: read patterns: %v", ErrStorage, err)
	}

	var doc domain.PatternDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: decode patterns: %v", ErrStorage, err)
	}
	return &doc, nil
}

func (s *PatternStore) Save(ctx context.Context, doc *domain.PatternDocument) error {
	now := time.Now().UTC()
	doc.LastUpdated = &now
	if doc.CognitivePatterns == nil {
		doc.CognitivePatterns = []domain.CognitivePattern{}
	}
	return writeDocument(s.dir, s.path, doc)
}

func emptyPatternDocument() *domain.PatternDocument {
	return &domain.PatternDocument{
		AbstractionLadder: domain.AbstractionLadder{
			Observations: []string{},
			Themes:       []string{},
			Patterns:     []string{},
			Biases:       []string{},
		},
		CognitivePatterns: []domain.CognitivePattern{},
		DecisionArchetype: domain.DecisionArchetype{Distribution: map[string]float64{}},
		ExperienceCompression: domain.ExperienceCompression{
			CompressionRatio: "",
		},
	}
}
