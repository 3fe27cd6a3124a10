package catalog

import "github.com/chepilot/menubot/internal/model"

// CategoryGroup is a read-only view of the entries sharing a category.
type CategoryGroup struct {
	Category string            `json:"category"`
	Entries  []model.MenuEntry `json:"entries"`
}

// GroupByCategory groups entries by category. Groups appear in order of
// their first entry; entries keep their relative order.
func GroupByCategory(entries []model.MenuEntry) []CategoryGroup {
	var groups []CategoryGroup
	index := make(map[string]int)
	for _, e := range entries {
		i, ok := index[e.Category]
		if !ok {
			i = len(groups)
			index[e.Category] = i
			groups = append(groups, CategoryGroup{Category: e.Category})
		}
		groups[i].Entries = append(groups[i].Entries, e)
	}
	return groups
}
