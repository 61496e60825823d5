// Package settings persists the published-spreadsheet links used by the
// legacy ingestion path. The store is a small JSON file injected where it is
// needed; nothing reads it through a global.
package settings

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

// Settings holds the configured spreadsheet links.
type Settings struct {
	MainURL      string `json:"main_url"`
	SummarySheet string `json:"summary_sheet"`
	IPDSheet     string `json:"ipd_sheet"`
	OPDSheet     string `json:"opd_sheet"`
}

// Store reads and writes Settings to a JSON file. Reads of a missing file
// return defaults instead of an error so a fresh deployment works without
// any setup step.
type Store struct {
	mu   sync.Mutex
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

func (s *Store) Load() (*Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return &Settings{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read settings file: %w", err)
	}

	var cfg Settings
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse settings file: %w", err)
	}
	return &cfg, nil
}

func (s *Store) Save(cfg *Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}
	return nil
}
