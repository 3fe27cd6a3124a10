package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/chepilot/menubot/internal/catalog"
	"github.com/chepilot/menubot/internal/chat"
	"github.com/chepilot/menubot/internal/engine"
	"github.com/chepilot/menubot/internal/model"
	"github.com/chepilot/menubot/internal/scheduler"
)

func newChatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Chat with the assistant interactively",
		Long: "Start an interactive conversation. Each line is one message. " +
			"Type /menu to see the current menu and /quit to leave.",
		Args: cobra.NoArgs,
		RunE: runChat,
	}
}

// syncWriter serializes writes from the scheduler and the input reader.
type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (w *syncWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.w.Write(p)
}

func runChat(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd.Context(), cmd)
	if err != nil {
		return err
	}
	defer closeSession(cmd.ErrOrStderr(), s)

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	out := &syncWriter{w: cmd.OutOrStdout()}
	sched := scheduler.New(scheduler.WithLogger(s.logger))
	sim := chat.New(sched, engine.New(s.store, s.logger), s.logger)

	// closing is set once input ends; the loop stops when the last reply
	// has been shown.
	var closing atomic.Bool
	sim.Subscribe(func(ev chat.Event) {
		switch {
		case ev.Kind == chat.EventAppended && !ev.Message.IsUser():
			renderMessage(out, ev.Message)
			if closing.Load() && !sim.Typing() {
				cancel()
			}
		case ev.Kind == chat.EventStatus && ev.Message.Status == model.StatusProcessed:
			fmt.Fprintln(out, "  asistente está escribiendo...")
		}
	})

	sim.Greet()
	fmt.Fprintln(out, "Probá con:")
	for _, c := range chat.ExampleCommands {
		fmt.Fprintf(out, "  %s\n", c)
	}

	go func() {
		readChat(ctx, cmd.InOrStdin(), out, s, sim)
		closing.Store(true)
		if !sim.Typing() {
			cancel()
		}
	}()

	if err := sched.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("chat: %w", err)
	}
	return nil
}

func readChat(ctx context.Context, in io.Reader, out io.Writer, s *session, sim *chat.Simulator) {
	sc := bufio.NewScanner(in)
	for sc.Scan() {
		if ctx.Err() != nil {
			return
		}
		line := strings.TrimSpace(sc.Text())
		switch line {
		case "":
			continue
		case "/quit":
			return
		case "/menu":
			entries, err := s.store.List(ctx)
			if err != nil {
				s.logger.Error("list menu", zap.Error(err))
				fmt.Fprintf(out, "error: list: %v\n", err)
				continue
			}
			renderMenu(out, catalog.GroupByCategory(entries))
			continue
		}
		if _, err := sim.Submit(line); err != nil {
			s.logger.Warn("message rejected", zap.Error(err))
		}
	}
	if err := sc.Err(); err != nil {
		s.logger.Error("read input", zap.Error(err))
	}
}
