package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/chepilot/menubot/internal/catalog"
	"github.com/chepilot/menubot/internal/engine"
	"github.com/chepilot/menubot/internal/model"
)

const (
	formatText = "text"
	formatJSON = "json"
)

func writeJSON(w io.Writer, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}

// renderMenu writes the menu grouped by category, one dish per line.
func renderMenu(w io.Writer, groups []catalog.CategoryGroup) {
	if len(groups) == 0 {
		fmt.Fprintln(w, "(menú vacío)")
		return
	}
	for i, g := range groups {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "%s\n", g.Category)
		for _, e := range g.Entries {
			line := fmt.Sprintf("  %-28s $%s", e.Name, engine.FormatPrice(e.Price))
			if !e.Available {
				line += "  (no disponible)"
			}
			fmt.Fprintln(w, line)
		}
	}
}

func senderLabel(m model.Message) string {
	if m.IsUser() {
		return "vos"
	}
	return "asistente"
}

func renderMessage(w io.Writer, m model.Message) {
	line := fmt.Sprintf("[%s] %s: %s", m.Timestamp.Format("15:04:05.000"), senderLabel(m), m.Text)
	if m.IsUser() {
		line += fmt.Sprintf(" (%s)", m.Status)
	}
	fmt.Fprintln(w, line)
}

func renderTranscript(w io.Writer, msgs []model.Message) {
	for _, m := range msgs {
		renderMessage(w, m)
	}
}

func renderStats(w io.Writer, st *catalog.Stats) {
	fmt.Fprintf(w, "backend:    %s\n", st.Backend)
	fmt.Fprintf(w, "platos:     %d\n", st.Total)
	fmt.Fprintf(w, "disponibles: %d\n", st.Available)
	if len(st.Categories) == 0 {
		return
	}
	fmt.Fprintln(w, strings.Repeat("-", 32))
	for _, c := range st.Categories {
		fmt.Fprintf(w, "%-16s %3d  (%d disponibles)\n", c.Category, c.Count, c.Available)
	}
}
