// Package resolve maps a free-text dish reference to a catalog entry.
package resolve

import (
	"strings"

	"github.com/chepilot/menubot/internal/model"
)

// Find returns the first entry, in the given order, whose lower-cased name
// contains ref or is contained in ref. The match is deliberately loose:
// "Empanadas" finds "Empanadas (docena)" and overlapping names resolve to
// whichever comes first. A blank ref matches nothing.
func Find(entries []model.MenuEntry, ref string) (model.MenuEntry, bool) {
	r := strings.ToLower(strings.TrimSpace(ref))
	if r == "" {
		return model.MenuEntry{}, false
	}
	for _, e := range entries {
		name := strings.ToLower(e.Name)
		if name == "" {
			continue
		}
		if strings.Contains(name, r) || strings.Contains(r, name) {
			return e, true
		}
	}
	return model.MenuEntry{}, false
}
