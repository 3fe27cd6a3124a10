// Package engine applies classified menu commands to a catalog store and
// produces the reply shown to the restaurant owner.
package engine

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/chepilot/menubot/internal/catalog"
	"github.com/chepilot/menubot/internal/intent"
	"github.com/chepilot/menubot/internal/model"
	"github.com/chepilot/menubot/internal/resolve"
)

// Outcome classifies the result of applying a command.
type Outcome string

const (
	OutcomeApplied      Outcome = "applied"
	OutcomeNotFound     Outcome = "not_found"
	OutcomeDuplicate    Outcome = "duplicate"
	OutcomeUnrecognized Outcome = "unrecognized"
)

// HelpText is the reply to input that matches no command.
const HelpText = `No entendí el comando. Probá con: "Agregar Pasta Casera $8000", ` +
	`"Cambiar precio Empanadas $1200", "Eliminar Asado de Tira", ` +
	`"Disponible Pizza Margherita $7000" o "No disponible Pizza Margherita"`

// Reply is the conversational result of one command.
type Reply struct {
	Outcome Outcome `json:"outcome"`
	Text    string  `json:"text"`
	// Entry is the entry as it stands after the command; for removals it
	// is the deleted entry. Nil unless Outcome is OutcomeApplied.
	Entry *model.MenuEntry `json:"entry,omitempty"`
}

// Engine mutates a catalog in response to commands. Only the store is
// touched; the conversation log belongs to the caller.
type Engine struct {
	store  catalog.Store
	logger *zap.Logger
}

// New returns an engine over store. A nil logger discards output.
func New(store catalog.Store, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{store: store, logger: logger.Named("engine")}
}

// Process classifies text and applies the resulting command.
func (e *Engine) Process(ctx context.Context, text string) (Reply, error) {
	return e.Apply(ctx, intent.Classify(text))
}

// Apply executes cmd. Domain failures (unknown dish, duplicate name,
// unrecognized text) are reported in the Reply and leave the store
// unchanged; a non-nil error means the store itself failed.
func (e *Engine) Apply(ctx context.Context, cmd intent.Command) (Reply, error) {
	var (
		r   Reply
		err error
	)
	switch cmd.Kind {
	case intent.KindAdd:
		r, err = e.add(ctx, cmd)
	case intent.KindSetPrice, intent.KindRemove, intent.KindSetAvailable, intent.KindSetUnavailable:
		r, err = e.modify(ctx, cmd)
	default:
		r = Reply{Outcome: OutcomeUnrecognized, Text: HelpText}
	}
	if err != nil {
		return Reply{}, fmt.Errorf("apply %s: %w", cmd.Kind, err)
	}

	e.logger.Debug("command applied",
		zap.String("kind", string(cmd.Kind)),
		zap.String("ref", cmd.Name),
		zap.String("outcome", string(r.Outcome)))
	return r, nil
}

func (e *Engine) add(ctx context.Context, cmd intent.Command) (Reply, error) {
	var price int64
	if cmd.Price != nil {
		price = *cmd.Price
	}

	_, err := e.store.FindByName(ctx, cmd.Name)
	switch {
	case err == nil:
		return duplicate(cmd.Name), nil
	case !errors.Is(err, catalog.ErrNotFound):
		return Reply{}, err
	}

	entry, err := e.store.Add(ctx, catalog.AddParams{
		Name:     cmd.Name,
		Price:    price,
		Category: cmd.Category,
	})
	if errors.Is(err, catalog.ErrDuplicateName) {
		return duplicate(cmd.Name), nil
	}
	if err != nil {
		return Reply{}, err
	}

	return Reply{
		Outcome: OutcomeApplied,
		Text:    fmt.Sprintf("✅ Agregado: %s - $%s", entry.Name, FormatPrice(entry.Price)),
		Entry:   entry,
	}, nil
}

func (e *Engine) modify(ctx context.Context, cmd intent.Command) (Reply, error) {
	entries, err := e.store.List(ctx)
	if err != nil {
		return Reply{}, err
	}
	target, ok := resolve.Find(entries, cmd.Name)
	if !ok {
		return Reply{
			Outcome: OutcomeNotFound,
			Text:    fmt.Sprintf("No encontré \"%s\" en el menú.", cmd.Name),
		}, nil
	}

	var (
		text    string
		updated *model.MenuEntry
	)
	switch cmd.Kind {
	case intent.KindSetPrice:
		updated, err = e.store.Update(ctx, target.ID, catalog.UpdateParams{Price: cmd.Price})
		if err == nil {
			text = fmt.Sprintf("✅ Precio actualizado: %s - $%s", updated.Name, FormatPrice(updated.Price))
		}
	case intent.KindRemove:
		err = e.store.Remove(ctx, target.ID)
		updated = &target
		text = "✅ Eliminado: " + target.Name
	case intent.KindSetAvailable:
		available := true
		updated, err = e.store.Update(ctx, target.ID, catalog.UpdateParams{Price: cmd.Price, Available: &available})
		if err == nil {
			text = "✅ Disponible: " + updated.Name
			if cmd.Price != nil {
				text += " - $" + FormatPrice(updated.Price)
			}
		}
	case intent.KindSetUnavailable:
		available := false
		updated, err = e.store.Update(ctx, target.ID, catalog.UpdateParams{Available: &available})
		if err == nil {
			text = "✅ No disponible: " + updated.Name
		}
	}
	if err != nil {
		return Reply{}, err
	}

	return Reply{Outcome: OutcomeApplied, Text: text, Entry: updated}, nil
}

func duplicate(name string) Reply {
	return Reply{
		Outcome: OutcomeDuplicate,
		Text:    fmt.Sprintf("El plato \"%s\" ya existe en el menú.", name),
	}
}
