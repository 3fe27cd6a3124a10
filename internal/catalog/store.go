// Package catalog provides the menu catalog storage interface and its
// in-memory and SQLite implementations.
package catalog

import (
	"context"
	"errors"
	"strings"

	"github.com/chepilot/menubot/internal/model"
)

var (
	// ErrNotFound is returned when no entry has the requested id or name.
	ErrNotFound = errors.New("menu entry not found")
	// ErrDuplicateName is returned by Add when the name is already taken.
	ErrDuplicateName = errors.New("menu entry already exists")
)

// AddParams holds parameters for creating a menu entry.
type AddParams struct {
	Name     string
	Price    int64
	Category string
	// Available defaults to true when nil.
	Available *bool
}

// UpdateParams holds the fields to change on an existing entry.
// Nil fields are left untouched.
type UpdateParams struct {
	Price     *int64
	Available *bool
}

// Store defines the catalog storage interface.
type Store interface {
	// Add creates an entry. Returns ErrDuplicateName if an entry with a
	// case-insensitively equal name exists.
	Add(ctx context.Context, p AddParams) (*model.MenuEntry, error)

	// Get retrieves an entry by id.
	Get(ctx context.Context, id string) (*model.MenuEntry, error)

	// FindByName retrieves an entry by case-insensitive exact name.
	FindByName(ctx context.Context, name string) (*model.MenuEntry, error)

	// List returns all entries in insertion order.
	List(ctx context.Context) ([]model.MenuEntry, error)

	// Update changes fields of an entry in place.
	Update(ctx context.Context, id string, p UpdateParams) (*model.MenuEntry, error)

	// Remove deletes an entry by id.
	Remove(ctx context.Context, id string) error

	// Close releases the store.
	Close() error
}

// NameKey is the comparison key for entry names.
func NameKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func validate(p AddParams) error {
	if strings.TrimSpace(p.Name) == "" {
		return errors.New("name is required")
	}
	if p.Price < 0 {
		return errors.New("price must be >= 0")
	}
	return nil
}

func categoryOrDefault(c string) string {
	if c = strings.TrimSpace(c); c == "" {
		return model.DefaultCategory
	}
	return c
}
