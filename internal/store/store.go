// Package store keeps the best score in a small JSON file next to the game.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

const DefaultFile = "nexus_strike.json"

type record struct {
	HighScore int `json:"high_score"`
}

// File is a HighScoreStore backed by one JSON file.
type File struct {
	path string
}

func NewFile(path string) *File {
	if path == "" {
		path = DefaultFile
	}
	return &File{path: path}
}

func (f *File) Path() string { return f.path }

// Load returns 0 when nothing has been saved yet.
func (f *File) Load() (int, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read high score: %w", err)
	}

	var r record
	if err := json.Unmarshal(data, &r); err != nil {
		return 0, fmt.Errorf("decode high score %s: %w", f.path, err)
	}
	return r.HighScore, nil
}

func (f *File) Save(score int) error {
	data, err := json.MarshalIndent(record{HighScore: score}, "", "  ")
	if err != nil {
		return fmt.Errorf("encode high score: %w", err)
	}
	if dir := filepath.Dir(f.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}

	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write high score: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("replace high score: %w", err)
	}
	return nil
}
