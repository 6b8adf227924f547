package config

import (
	"fmt"
	"path/filepath"
)

type Config struct {
	JournalPath string
	DBPath      string
	GrinderPath string
}

func New(journalPath string) (Config, error) {
	if journalPath == "" {
		return Config{}, fmt.Errorf("journal path is required")
	}
	return Config{
		JournalPath: journalPath,
		DBPath:      filepath.Join(journalPath, ".brewlog", "brewlog.db"),
		GrinderPath: filepath.Join(journalPath, ".brewlog", "grinder.json"),
	}, nil
}
