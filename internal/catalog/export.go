package catalog

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Export returns the store contents as a seed, in menu order. Loading the
// result with Apply recreates the same menu under new ids.
func Export(ctx context.Context, s Store) (*Seed, error) {
	entries, err := s.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}
	sd := &Seed{Entries: make([]SeedEntry, 0, len(entries))}
	for _, e := range entries {
		available := e.Available
		sd.Entries = append(sd.Entries, SeedEntry{
			Name:      e.Name,
			Price:     e.Price,
			Category:  e.Category,
			Available: &available,
		})
	}
	return sd, nil
}

// Marshal encodes the seed as YAML.
func (sd *Seed) Marshal() ([]byte, error) {
	return yaml.Marshal(sd)
}

// WriteFile writes the seed to path as YAML.
func (sd *Seed) WriteFile(path string) error {
	b, err := sd.Marshal()
	if err != nil {
		return fmt.Errorf("encode seed: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write seed: %w", err)
	}
	return nil
}
