// Package chat simulates the messaging conversation between a restaurant
// owner and the menu assistant.
//
// Each user message moves through sending, sent and processed after fixed
// delays. Only once it is processed is the command applied, and the reply
// is appended after one more delay. All of this runs as scheduler tasks, so
// catalog mutations never overlap.
package chat

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/chepilot/menubot/internal/engine"
	"github.com/chepilot/menubot/internal/ids"
	"github.com/chepilot/menubot/internal/model"
	"github.com/chepilot/menubot/internal/scheduler"
)

// Delays between the stages of a user message.
const (
	SentDelay    = 500 * time.Millisecond
	ProcessDelay = 1000 * time.Millisecond
	ReplyDelay   = 500 * time.Millisecond
)

// Greeting opens every conversation.
const Greeting = `¡Hola! Este es tu asistente de menú. Escribí comandos como ` +
	`"Agregar Pasta Casera $8000" para actualizar tu menú automáticamente.`

// ErrorReply is sent when the catalog fails while applying a command.
const ErrorReply = "Hubo un error procesando el comando."

// ExampleCommands are the quick commands offered to first-time users.
var ExampleCommands = []string{
	"Agregar Pasta Casera $8000",
	"Cambiar precio Empanadas $35000",
	"No disponible Pizza Margherita",
	"Disponible Pescado del día $15000",
}

// ErrEmptyMessage is returned by Submit for blank text.
var ErrEmptyMessage = errors.New("empty message")

// Processor turns a user message into a reply.
type Processor interface {
	Process(ctx context.Context, text string) (engine.Reply, error)
}

// EventKind identifies a change to the conversation.
type EventKind string

const (
	EventAppended EventKind = "appended"
	EventStatus   EventKind = "status"
)

// Event describes one change to the log. Message is a copy taken at the
// time of the change.
type Event struct {
	Kind    EventKind
	Message model.Message
}

// Simulator owns one conversation log.
type Simulator struct {
	mu      sync.RWMutex
	log     []model.Message
	pending int
	subs    []func(Event)

	sched  *scheduler.Scheduler
	proc   Processor
	ids    *ids.Generator
	logger *zap.Logger
}

// New returns a simulator that schedules on sched and applies commands
// with proc. A nil logger discards output.
func New(sched *scheduler.Scheduler, proc Processor, logger *zap.Logger) *Simulator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Simulator{
		sched:  sched,
		proc:   proc,
		ids:    ids.New(sched.Now),
		logger: logger.Named("chat"),
	}
}

// Subscribe registers fn to receive every future event. Events are
// delivered on the goroutine that caused them, usually the scheduler's.
func (s *Simulator) Subscribe(fn func(Event)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
}

// Greet appends the greeting as a system message.
func (s *Simulator) Greet() model.Message {
	return s.appendSystem(Greeting, s.sched.Now())
}

// Submit appends a user message and schedules its lifecycle.
func (s *Simulator) Submit(text string) (model.Message, error) {
	if strings.TrimSpace(text) == "" {
		return model.Message{}, ErrEmptyMessage
	}

	msg := model.Message{
		ID:        s.ids.Next(),
		Text:      text,
		Sender:    model.SenderUser,
		Timestamp: s.sched.Now(),
		Status:    model.StatusSending,
	}
	s.mu.Lock()
	s.log = append(s.log, msg)
	s.pending++
	s.mu.Unlock()
	s.emit(Event{Kind: EventAppended, Message: msg})

	s.logger.Debug("message submitted", zap.String("id", msg.ID), zap.String("text", text))

	s.sched.After(SentDelay, "sent:"+msg.ID, func(time.Time) {
		s.advance(msg.ID, model.StatusSent)
		s.sched.After(ProcessDelay, "processed:"+msg.ID, func(time.Time) {
			s.advance(msg.ID, model.StatusProcessed)
			reply := s.process(text)
			s.sched.After(ReplyDelay, "reply:"+msg.ID, func(now time.Time) {
				s.mu.Lock()
				s.pending--
				s.mu.Unlock()
				s.appendSystem(reply, now)
			})
		})
	})
	return msg, nil
}

// Messages returns a copy of the log in append order.
func (s *Simulator) Messages() []model.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Message, len(s.log))
	copy(out, s.log)
	return out
}

// Typing reports whether any submitted message still awaits its reply.
func (s *Simulator) Typing() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pending > 0
}

func (s *Simulator) process(text string) string {
	// a started message always runs to completion
	r, err := s.proc.Process(context.Background(), text)
	if err != nil {
		s.logger.Error("process command", zap.String("text", text), zap.Error(err))
		return ErrorReply
	}
	return r.Text
}

func (s *Simulator) advance(id string, to model.Status) {
	s.mu.Lock()
	var (
		msg   model.Message
		found bool
	)
	for i := range s.log {
		if s.log[i].ID != id {
			continue
		}
		found = true
		if !model.ValidStatusTransition(s.log[i].Status, to) {
			s.mu.Unlock()
			s.logger.Error("invalid status transition",
				zap.String("id", id),
				zap.String("from", string(s.log[i].Status)),
				zap.String("to", string(to)))
			return
		}
		s.log[i].Status = to
		msg = s.log[i]
		break
	}
	s.mu.Unlock()

	if !found {
		s.logger.Error("status change for unknown message", zap.String("id", id))
		return
	}
	s.emit(Event{Kind: EventStatus, Message: msg})
}

func (s *Simulator) appendSystem(text string, now time.Time) model.Message {
	msg := model.Message{
		ID:        s.ids.Next(),
		Text:      text,
		Sender:    model.SenderSystem,
		Timestamp: now,
		Status:    model.StatusDelivered,
	}
	s.mu.Lock()
	s.log = append(s.log, msg)
	s.mu.Unlock()
	s.emit(Event{Kind: EventAppended, Message: msg})
	return msg
}

func (s *Simulator) emit(ev Event) {
	s.mu.RLock()
	subs := make([]func(Event), len(s.subs))
	copy(subs, s.subs)
	s.mu.RUnlock()
	for _, fn := range subs {
		fn(ev)
	}
}
