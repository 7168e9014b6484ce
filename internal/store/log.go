package store

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/Harshitk-cp/introspect/internal/domain"
)

const logFileName = "episodic_log.jsonl"

// LogStore is the append-only episodic log: one JSON record per line.
// Existing lines are never rewritten. Concurrent readers are safe alongside
// the single writer; concurrent writers are unsupported.
type LogStore struct {
	dir  string
	path string
}

func NewLogStore(dataDir string) *LogStore {
	return &LogStore{
		dir:  dataDir,
		path: filepath.Join(dataDir, logFileName),
	}
}

func (s *LogStore) Append(ctx context.Context, in *domain.Interaction) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("%w: create data dir: %v", ErrStorage, err)
	}

	line, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("%w: encode interaction: %v", ErrStorage, err)
	}

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("%w: open log: %v", ErrStorage, err)
	}
	defer func() { _ = f.Close() }()

	if _, err := f.Write(append(line, '\n')); err != nil {
		return fmt.Errorf("%w: append to log: %v", ErrStorage, err)
	}
	return nil
}

func (s *LogStore) Load(ctx context.Context, limit int) ([]domain.Interaction, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: open log: %v", ErrStorage, err)
	}
	defer func() { _ = f.Close() }()

	var entries []domain.Interaction
	scanner := newLineScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var in domain.Interaction
		if err := json.Unmarshal([]byte(line), &in); err != nil {
			return nil, fmt.Errorf("%w: decode log line %d: %v", ErrStorage, lineNo, err)
		}
		entries = append(entries, in)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: read log: %v", ErrStorage, err)
	}

	if limit > 0 && len(entries) > limit {
		entries = entries[len(entries)-limit:]
	}
	return entries, nil
}

func (s *LogStore) Count(ctx context.Context) (int, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return 0, nil
		}
		return 0, fmt.Errorf("%w: open log: %v", ErrStorage, err)
	}
	defer func() { _ = f.Close() }()

	count := 0
	scanner := newLineScanner(f)
	for scanner.Scan() {
		if strings.TrimSpace(scanner.Text()) != "" {
			count++
		}
	}
	if err := scanner.Err(); err != nil {
		return 0, fmt.Errorf("%w: read log: %v", ErrStorage, err)
	}
	return count, nil
}

// newLineScanner returns a scanner sized for log lines; long answers can
// exceed bufio's default 64KB token limit.
func newLineScanner(f *os.File) *bufio.Scanner {
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	return scanner
}
