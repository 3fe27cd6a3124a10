package catalog

import "github.com/chepilot/menubot/internal/model"

// Stats holds catalog statistics.
type Stats struct {
	Backend    string          `json:"backend"`
	Total      int             `json:"total"`
	Available  int             `json:"available"`
	Categories []CategoryStats `json:"categories"`
}

// CategoryStats holds per-category counts.
type CategoryStats struct {
	Category  string `json:"category"`
	Count     int    `json:"count"`
	Available int    `json:"available"`
}

// ComputeStats summarizes entries.
func ComputeStats(backend string, entries []model.MenuEntry) *Stats {
	st := &Stats{Backend: backend, Total: len(entries)}
	for _, g := range GroupByCategory(entries) {
		cs := CategoryStats{Category: g.Category, Count: len(g.Entries)}
		for _, e := range g.Entries {
			if e.Available {
				cs.Available++
			}
		}
		st.Available += cs.Available
		st.Categories = append(st.Categories, cs)
	}
	return st
}
