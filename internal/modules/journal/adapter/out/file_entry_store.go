package out

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"selfforge/internal/modules/journal/domain"
	journalout "selfforge/internal/modules/journal/port/out"
)

// FileEntryStore holds the full ordered history as one JSON document,
// rewritten whole on every append via temp-file rename.
type FileEntryStore struct {
	path string
}

func NewFileEntryStore(path string) journalout.EntryStore {
	return &FileEntryStore{path: path}
}

func (s *FileEntryStore) Load(_ context.Context) ([]domain.Entry, error) {
	payload, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []domain.Entry{}, nil
		}
		return nil, fmt.Errorf("read journal: %w", err)
	}
	entries := []domain.Entry{}
	if err := json.Unmarshal(payload, &entries); err != nil {
		return nil, fmt.Errorf("decode journal: %w", err)
	}
	return entries, nil
}

func (s *FileEntryStore) Append(ctx context.Context, entry domain.Entry) error {
	entries, err := s.Load(ctx)
	if err != nil {
		return err
	}
	entries = append(entries, entry)

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create journal dir: %w", err)
	}
	payload, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal journal: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, payload, 0o644); err != nil {
		return fmt.Errorf("write journal: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace journal: %w", err)
	}
	return nil
}
