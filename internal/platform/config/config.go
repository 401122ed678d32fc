package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	geminiKeyEnv = "GEMINI_API_KEY"
	homeDirName  = ".selfforge"
)

type Config struct {
	HomePath     string
	DBPath       string
	StatePath    string
	JournalPath  string
	GeminiAPIKey string
}

// New resolves the forge home directory; empty homePath falls back to
// ~/.selfforge.
func New(homePath string) (Config, error) {
	if homePath == "" {
		userHome, err := os.UserHomeDir()
		if err != nil {
			return Config{}, fmt.Errorf("resolve user home: %w", err)
		}
		homePath = filepath.Join(userHome, homeDirName)
	}
	return Config{
		HomePath:     homePath,
		DBPath:       filepath.Join(homePath, "selfforge.db"),
		StatePath:    filepath.Join(homePath, "state.json"),
		JournalPath:  filepath.Join(homePath, "journal.json"),
		GeminiAPIKey: os.Getenv(geminiKeyEnv),
	}, nil
}
