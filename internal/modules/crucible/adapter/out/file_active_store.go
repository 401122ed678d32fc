package out

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"selfforge/internal/modules/crucible/domain"
	crucibleout "selfforge/internal/modules/crucible/port/out"
	apperrors "selfforge/internal/platform/errors"
)

// FileActiveCrucibleStore keeps the in-flight session under the forge home so
// pause, resume and finalize work across CLI invocations.
type FileActiveCrucibleStore struct {
	path string
}

func NewFileActiveCrucibleStore(homePath string) crucibleout.ActiveCrucibleStore {
	return &FileActiveCrucibleStore{path: filepath.Join(homePath, "active-crucible.json")}
}

func (s *FileActiveCrucibleStore) Save(_ context.Context, active domain.ActiveCrucible) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create crucible dir: %w", err)
	}
	payload, err := json.MarshalIndent(active, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal active crucible: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, payload, 0o644); err != nil {
		return fmt.Errorf("write active crucible: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace active crucible: %w", err)
	}
	return nil
}

func (s *FileActiveCrucibleStore) Load(_ context.Context) (domain.ActiveCrucible, error) {
	payload, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return domain.ActiveCrucible{}, apperrors.ErrNoActiveCrucible
		}
		return domain.ActiveCrucible{}, fmt.Errorf("read active crucible: %w", err)
	}
	active := domain.ActiveCrucible{}
	if err := json.Unmarshal(payload, &active); err != nil {
		return domain.ActiveCrucible{}, fmt.Errorf("decode active crucible: %w", err)
	}
	if active.ID == "" {
		return domain.ActiveCrucible{}, apperrors.ErrNoActiveCrucible
	}
	return active, nil
}

func (s *FileActiveCrucibleStore) Clear(_ context.Context) error {
	if err := os.Remove(s.path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("clear active crucible: %w", err)
	}
	return nil
}
