package catalog

import (
	"context"
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed seed.yaml
var defaultSeed []byte

// SeedEntry is one dish in a seed file.
type SeedEntry struct {
	Name      string `yaml:"name"`
	Price     int64  `yaml:"price"`
	Category  string `yaml:"category"`
	Available *bool  `yaml:"available"`
}

// Seed is the on-disk format of an initial menu.
type Seed struct {
	Entries []SeedEntry `yaml:"entries"`
}

// DefaultSeed returns the built-in demo menu.
func DefaultSeed() (*Seed, error) {
	return ParseSeed(defaultSeed)
}

// LoadSeed reads a seed file. An empty path returns the built-in menu.
func LoadSeed(path string) (*Seed, error) {
	if path == "" {
		return DefaultSeed()
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed: %w", err)
	}
	return ParseSeed(b)
}

// ParseSeed decodes a YAML seed document.
func ParseSeed(b []byte) (*Seed, error) {
	var sd Seed
	if err := yaml.Unmarshal(b, &sd); err != nil {
		return nil, fmt.Errorf("parse seed: %w", err)
	}
	return &sd, nil
}

// Apply adds every seed entry to the store in file order.
// Returns the number of entries added.
func (sd *Seed) Apply(ctx context.Context, s Store) (int, error) {
	added := 0
	for _, e := range sd.Entries {
		_, err := s.Add(ctx, AddParams{
			Name:      e.Name,
			Price:     e.Price,
			Category:  e.Category,
			Available: e.Available,
		})
		if err != nil {
			return added, fmt.Errorf("seed entry %q: %w", e.Name, err)
		}
		added++
	}
	return added, nil
}
