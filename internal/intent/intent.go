// Package intent classifies menu commands written by a restaurant owner.
//
// Classification is a fixed, ordered list of rules. Each rule pairs one
// pattern with one Kind and the first rule that matches decides the result.
// The order matters: "no disponible" must be tried before "disponible".
package intent

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/chepilot/menubot/internal/model"
)

// Kind identifies the action a command asks for.
type Kind string

const (
	KindAdd            Kind = "add"
	KindSetPrice       Kind = "set_price"
	KindRemove         Kind = "remove"
	KindSetAvailable   Kind = "set_available"
	KindSetUnavailable Kind = "set_unavailable"
	KindUnrecognized   Kind = "unrecognized"
)

// Command is the typed result of classifying one line of text.
type Command struct {
	Kind Kind `json:"kind"`
	// Name is the display name for Add and the free-text reference for
	// every other kind.
	Name     string `json:"name,omitempty"`
	Category string `json:"category,omitempty"`
	// Price is nil when the command carries no amount.
	Price *int64 `json:"price,omitempty"`
	Raw   string `json:"raw"`
}

// References reports whether the command targets an existing entry.
func (c Command) References() bool {
	switch c.Kind {
	case KindSetPrice, KindRemove, KindSetAvailable, KindSetUnavailable:
		return true
	}
	return false
}

type rule struct {
	kind    Kind
	re      *regexp.Regexp
	extract func(m []string) (Command, bool)
}

// Order matters: set_unavailable precedes set_available so a negated phrase
// never reaches the plain "disponible" rule. Names may not contain '$' where
// an amount follows, so "$12.50" can never be split into a name and an
// integer amount.
var rules = []rule{
	{
		kind:    KindAdd,
		re:      regexp.MustCompile(`(?i)\bagregar\s+([^$]+?)\s+\$(\d+)$`),
		extract: extractAdd,
	},
	{
		kind: KindSetPrice,
		re:   regexp.MustCompile(`(?i)\bcambiar\s+precio\s+([^$]+?)\s+\$(\d+)$`),
		extract: func(m []string) (Command, bool) {
			price, ok := parseAmount(m[2])
			return Command{Name: normalizeName(m[1]), Price: price}, ok
		},
	},
	{
		kind: KindRemove,
		re:   regexp.MustCompile(`(?i)\beliminar\s+(.+)$`),
		extract: func(m []string) (Command, bool) {
			return Command{Name: normalizeName(m[1])}, true
		},
	},
	{
		kind: KindSetUnavailable,
		re:   regexp.MustCompile(`(?i)\bno[\s-]+disponible\s+(.+)$`),
		extract: func(m []string) (Command, bool) {
			return Command{Name: normalizeName(m[1])}, true
		},
	},
	{
		kind: KindSetAvailable,
		re:   regexp.MustCompile(`(?i)\bdisponible\s+([^$]+?)(?:\s+\$(\d+))?$`),
		extract: func(m []string) (Command, bool) {
			cmd := Command{Name: normalizeName(m[1])}
			if m[2] == "" {
				return cmd, true
			}
			price, ok := parseAmount(m[2])
			cmd.Price = price
			return cmd, ok
		},
	},
}

// Classify maps a line of text to exactly one Command.
func Classify(text string) Command {
	raw := strings.TrimSpace(text)
	for _, r := range rules {
		m := r.re.FindStringSubmatch(raw)
		if m == nil {
			continue
		}
		cmd, ok := r.extract(m)
		if !ok || cmd.Name == "" {
			break
		}
		cmd.Kind = r.kind
		cmd.Raw = raw
		return cmd
	}
	return Command{Kind: KindUnrecognized, Raw: raw}
}

// categoryKeywords is checked in order against the first word of an Add.
var categoryKeywords = []struct {
	prefix   string
	category string
}{
	{"entrada", "Entradas"},
	{"principal", "Principales"},
	{"postre", "Postres"},
	{"bebida", "Bebidas"},
	{"pizza", "Pizzas"},
}

// CategoryFor returns the category a leading word names, if any.
func CategoryFor(word string) (string, bool) {
	w := strings.ToLower(word)
	for _, k := range categoryKeywords {
		if strings.HasPrefix(w, k.prefix) {
			return k.category, true
		}
	}
	return "", false
}

func extractAdd(m []string) (Command, bool) {
	price, ok := parseAmount(m[2])
	words := strings.Fields(m[1])
	if !ok || len(words) == 0 {
		return Command{}, false
	}

	category := model.DefaultCategory
	if c, ok := CategoryFor(words[0]); ok {
		category = c
		// a lone category word is also the dish name
		if len(words) > 1 {
			words = words[1:]
		}
	}

	return Command{
		Name:     capitalize(strings.Join(words, " ")),
		Category: category,
		Price:    price,
	}, true
}

func parseAmount(s string) (*int64, bool) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return nil, false
	}
	return &n, true
}

func normalizeName(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
