package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/chepilot/menubot/internal/catalog"
	"github.com/chepilot/menubot/internal/chat"
	"github.com/chepilot/menubot/internal/engine"
	"github.com/chepilot/menubot/internal/model"
	"github.com/chepilot/menubot/internal/scheduler"
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [message...]",
		Short: "Send messages to the assistant and print the result",
		Long: "Send each argument as one message, or each stdin line when no " +
			"arguments are given. Messages are sent one after another, each " +
			"waiting for its reply. Delays are simulated unless --realtime is set.",
		RunE: runRun,
	}
	cmd.Flags().Bool("realtime", false, "Wait for the real message delays")
	cmd.Flags().Bool("greet", false, "Start the transcript with the greeting")
	cmd.Flags().String("export", "", "Write the final menu to this file as a YAML seed")
	return cmd
}

type runResult struct {
	Messages []model.Message        `json:"messages"`
	Menu     []catalog.CategoryGroup `json:"menu"`
}

func runRun(cmd *cobra.Command, args []string) error {
	format, err := outputFormat(cmd)
	if err != nil {
		return err
	}
	realtime, _ := cmd.Flags().GetBool("realtime")
	greet, _ := cmd.Flags().GetBool("greet")
	exportPath, _ := cmd.Flags().GetString("export")

	messages := args
	if len(messages) == 0 {
		messages, err = readMessages(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
	}
	if len(messages) == 0 {
		return fmt.Errorf("run: at least one message is required (args or stdin)")
	}

	s, err := openSession(cmd.Context(), cmd)
	if err != nil {
		return err
	}
	defer closeSession(cmd.ErrOrStderr(), s)

	var sched *scheduler.Scheduler
	if realtime {
		sched = scheduler.New(scheduler.WithLogger(s.logger))
	} else {
		sched = scheduler.NewVirtual(time.Now(), scheduler.WithLogger(s.logger))
	}
	sim := chat.New(sched, engine.New(s.store, s.logger), s.logger)
	if greet {
		sim.Greet()
	}

	for _, m := range messages {
		if _, err := sim.Submit(m); err != nil {
			s.logger.Warn("message skipped", zap.String("text", m), zap.Error(err))
			continue
		}
		if err := sched.Drain(cmd.Context()); err != nil {
			return fmt.Errorf("run: %w", err)
		}
	}

	entries, err := s.store.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("list: %w", err)
	}
	res := runResult{Messages: sim.Messages(), Menu: catalog.GroupByCategory(entries)}

	if exportPath != "" {
		sd, err := catalog.Export(cmd.Context(), s.store)
		if err != nil {
			return err
		}
		if err := sd.WriteFile(exportPath); err != nil {
			return err
		}
		s.logger.Info("menu exported", zap.String("path", exportPath), zap.Int("entries", len(sd.Entries)))
	}

	out := cmd.OutOrStdout()
	if format == formatJSON {
		return writeJSON(out, res)
	}
	renderTranscript(out, res.Messages)
	fmt.Fprintln(out)
	renderMenu(out, res.Menu)
	return nil
}

// readMessages returns the non-blank lines of r. A terminal on stdin is
// treated as empty input.
func readMessages(r io.Reader) ([]string, error) {
	if f, ok := r.(*os.File); ok {
		stat, err := f.Stat()
		if err != nil {
			return nil, err
		}
		if stat.Mode()&os.ModeCharDevice != 0 {
			return nil, nil
		}
	}
	var lines []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	return lines, sc.Err()
}
