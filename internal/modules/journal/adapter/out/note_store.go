package out

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"selfforge/internal/modules/journal/domain"
	journalout "selfforge/internal/modules/journal/port/out"
	"selfforge/internal/platform/markdown"
	"selfforge/internal/platform/slug"
)

// ForgeNoteWriter exports one markdown note per completed session under
// <home>/journal/YYYY/MM/DD/.
type ForgeNoteWriter struct {
	homePath string
}

func NewForgeNoteWriter(homePath string) journalout.NoteWriter {
	return &ForgeNoteWriter{homePath: homePath}
}

func (w *ForgeNoteWriter) Write(_ context.Context, entry domain.Entry) (string, error) {
	date := entry.CompletedAt
	dir := filepath.Join(w.homePath, "journal", date.Format("2006"), date.Format("01"), date.Format("02"))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create journal note dir: %w", err)
	}
	name := fmt.Sprintf("%s-%s.md", date.Format("150405"), slug.Make(entry.TaskName))
	path := filepath.Join(dir, name)

	meta := map[string]any{
		"id":               entry.ID,
		"completed_at":     entry.CompletedAt.Format("2006-01-02T15:04:05Z07:00"),
		"task_name":        entry.TaskName,
		"duration_seconds": entry.DurationSeconds,
		"coins_earned":     entry.CoinsEarned,
	}
	body := fmt.Sprintf("# Forged: %s\n\n- Duration: %d seconds\n- Coins earned: %d\n", entry.TaskName, entry.DurationSeconds, entry.CoinsEarned)
	if entry.Advisory != "" {
		body += fmt.Sprintf("\n## Oracle\n\n> %s\n", entry.Advisory)
	}
	if entry.Feeling != "" {
		body += fmt.Sprintf("\n## Feeling\n\n%s\n", entry.Feeling)
	}
	rendered, err := markdown.RenderFrontmatter(meta, body)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, []byte(rendered), 0o644); err != nil {
		return "", fmt.Errorf("write journal note: %w", err)
	}
	return path, nil
}
