package out

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"selfforge/internal/modules/ledger/domain"
	ledgerout "selfforge/internal/modules/ledger/port/out"
	apperrors "selfforge/internal/platform/errors"
)

// FileStateStore keeps the user state as one JSON document. Writes go through
// a temp file and rename so a crash mid-save never leaves a torn document.
type FileStateStore struct {
	path string
}

func NewFileStateStore(path string) ledgerout.StateStore {
	return &FileStateStore{path: path}
}

func (s *FileStateStore) Load(_ context.Context) (domain.UserState, error) {
	payload, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return domain.UserState{}, apperrors.ErrNotInitialized
		}
		return domain.UserState{}, fmt.Errorf("read user state: %w", err)
	}
	state := domain.UserState{}
	if err := json.Unmarshal(payload, &state); err != nil {
		return domain.UserState{}, fmt.Errorf("decode user state: %w", err)
	}
	return state, nil
}

func (s *FileStateStore) Save(_ context.Context, state domain.UserState) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}
	payload, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal user state: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, payload, 0o644); err != nil {
		return fmt.Errorf("write user state: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace user state: %w", err)
	}
	return nil
}
