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

const tensionFileName = "tensions.json"

// TensionStore persists detected belief tensions, replaced wholesale on each
// synthesis run alongside the pattern document.
type TensionStore struct {
	dir  string
	path string
}

func NewTensionStore(dataDir string) *TensionStore {
	return &TensionStore{
		dir:  dataDir,
		path: filepath.Join(dataDir, tensionFileName),
	}
}

func (s *TensionStore) Load(ctx context.Context) ([]domain.Tension, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: read tensions: %v", ErrStorage, err)
	}

	var doc domain.TensionDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: decode tensions: %v", ErrStorage, err)
	}
	return doc.Tensions, nil
}

func (s *TensionStore) Save(ctx context.Context, tensions []domain.Tension) error {
	if tensions == nil {
		tensions = []domain.Tension{}
	}
	now := time.Now().UTC()
	doc := domain.TensionDocument{
		LastUpdated: &now,
		Tensions:    tensions,
		Resolved:    []domain.Tension{},
	}
	return writeDocument(s.dir, s.path, &doc)
}
