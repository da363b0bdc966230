// Package save persists player progress between sessions.
package save

import (
	"encoding/json"
	"fmt"

	"github.com/quasilyte/gdata"

	"github.com/younwookim/squish/internal/domain/entity"
)

const progressKey = "progress"

// Progress is the saved state of a playthrough
type Progress struct {
	Level      string           `json:"level"`
	Abilities  entity.Abilities `json:"abilities"`
	BestDeaths map[string]int   `json:"bestDeaths,omitempty"`
}

// Complete records a finished level. The best (lowest) death count is kept
// and next becomes the level to resume from.
func (p *Progress) Complete(level string, deaths int, next string) {
	if p.BestDeaths == nil {
		p.BestDeaths = make(map[string]int)
	}
	if best, ok := p.BestDeaths[level]; !ok || deaths < best {
		p.BestDeaths[level] = deaths
	}
	if next != "" {
		p.Level = next
	}
}

// items is the subset of gdata.Manager the store uses
type items interface {
	LoadItem(key string) ([]byte, error)
	SaveItem(key string, data []byte) error
}

// Store reads and writes progress
type Store struct {
	items items
}

// Open opens the per-user data directory for appName
func Open(appName string) (*Store, error) {
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return nil, fmt.Errorf("failed to open save data: %w", err)
	}
	return &Store{items: m}, nil
}

// LoadProgress returns the saved progress, or nil if nothing is saved yet
func (s *Store) LoadProgress() (*Progress, error) {
	data, err := s.items.LoadItem(progressKey)
	if err != nil {
		return nil, fmt.Errorf("failed to load progress: %w", err)
	}
	if len(data) == 0 {
		return nil, nil
	}
	return Decode(data)
}

// SaveProgress writes progress
func (s *Store) SaveProgress(p *Progress) error {
	data, err := Encode(p)
	if err != nil {
		return err
	}
	if err := s.items.SaveItem(progressKey, data); err != nil {
		return fmt.Errorf("failed to save progress: %w", err)
	}
	return nil
}

// Encode serializes progress
func Encode(p *Progress) ([]byte, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("failed to encode progress: %w", err)
	}
	return data, nil
}

// Decode parses serialized progress
func Decode(data []byte) (*Progress, error) {
	var p Progress
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to decode progress: %w", err)
	}
	return &p, nil
}
