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

const beliefFileName = "beliefs.json"

// BeliefStore persists the current belief set as a single JSON document.
// Each save replaces the whole document: last writer wins, versioned by the
// reflection counter.
type BeliefStore struct {
	dir  string
	path string
}

func NewBeliefStore(dataDir string) *BeliefStore {
	return &BeliefStore{
		dir:  dataDir,
		path: filepath.Join(dataDir, beliefFileName),
	}
}

func (s *BeliefStore) Load(ctx context.Context) ([]domain.Belief, error) {
	doc, err := s.LoadDocument(ctx)
	if err != nil {
		return nil, err
	}
	return doc.Beliefs, nil
}

// LoadDocument returns the stored belief document, or a zero-valued document
// if none has been written yet.
func (s *BeliefStore) LoadDocument(ctx context.Context) (*domain.BeliefDocument, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &domain.BeliefDocument{}, nil
		}
		return nil, fmt.Errorf("%w: read beliefs: %v", ErrStorage, err)
	}

	var doc domain.BeliefDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: decode beliefs: %v", ErrStorage, err)
	}
	return &doc, nil
}

func (s *BeliefStore) Save(ctx context.Context, beliefs []domain.Belief, reflectionCount int) error {
	if beliefs == nil {
		beliefs = []domain.Belief{}
	}
	now := time.Now().UTC()
	doc := domain.BeliefDocument{
		LastUpdated:     &now,
		ReflectionCount: reflectionCount,
		Beliefs:         beliefs,
	}
	return writeDocument(s.dir, s.path, &doc)
}

// writeDocument marshals doc with indentation and replaces the file at path.
func writeDocument(dir, path string, doc any) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: create data dir: %v", ErrStorage, err)
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: encode %s: %v", ErrStorage, filepath.Base(path), err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("%w: write %s: %v", ErrStorage, filepath.Base(path), err)
	}
	return nil
}
