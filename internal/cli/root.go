// Package cli implements the chepilot CLI commands.
//
// The command tree is built by NewRootCmd rather than registered from init,
// so each test executes against fresh flag state. Commands return errors
// through RunE; Execute prints them as "error: ..." and sets the exit code.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/chepilot/menubot/internal/catalog"
	"github.com/chepilot/menubot/internal/config"
	"github.com/chepilot/menubot/internal/logging"
)

// RootCmd is the top-level command.
var RootCmd = NewRootCmd()

// NewRootCmd builds a fresh command tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "chepilot",
		Short: "Menu assistant driven by chat commands",
		Long: "Update a restaurant menu by writing short commands in Spanish, " +
			"as you would in a chat with the restaurant's assistant.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.String("store", "", "Catalog backend: memory or sqlite (default: $CHEPILOT_STORE or memory)")
	pf.String("seed", "", "YAML seed menu (default: $CHEPILOT_SEED_FILE or the built-in menu)")
	pf.String("log-level", "", "Log level (default: $CHEPILOT_LOG_LEVEL or warn)")
	pf.String("log-format", "", "Log format: console or json (default: $CHEPILOT_LOG_FORMAT or console)")
	pf.StringP("format", "f", formatText, "Output format: text or json")

	root.AddCommand(
		newChatCmd(),
		newRunCmd(),
		newClassifyCmd(),
		newMenuCmd(),
		newStatsCmd(),
	)
	return root
}

// Execute runs RootCmd and reports any error on stderr.
func Execute() int {
	if err := RootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	return 0
}

// session bundles what a command needs to drive the menu.
type session struct {
	backend string
	store   catalog.Store
	logger  *zap.Logger
}

func (s *session) Close() error {
	_ = s.logger.Sync()
	return s.store.Close()
}

// flagOrEnv returns the flag when set on the command line, otherwise the
// environment value.
func flagOrEnv(cmd *cobra.Command, name, env string) string {
	if f := cmd.Flags().Lookup(name); f != nil && f.Changed {
		return f.Value.String()
	}
	return env
}

func newLogger(cmd *cobra.Command, cfg *config.Config) (*zap.Logger, error) {
	return logging.New(
		flagOrEnv(cmd, "log-level", cfg.LogLevel),
		flagOrEnv(cmd, "log-format", cfg.LogFormat),
	)
}

// openSession opens the configured store and loads the seed menu into it.
func openSession(ctx context.Context, cmd *cobra.Command) (*session, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logger, err := newLogger(cmd, cfg)
	if err != nil {
		return nil, err
	}

	backend := flagOrEnv(cmd, "store", cfg.Store)
	if backend == "" {
		backend = catalog.BackendMemory
	}
	store, err := catalog.Open(backend)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	seedPath := flagOrEnv(cmd, "seed", cfg.SeedFile)
	sd, err := catalog.LoadSeed(seedPath)
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("load seed: %w", err)
	}
	n, err := sd.Apply(ctx, store)
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("apply seed: %w", err)
	}
	logger.Debug("session opened",
		zap.String("backend", backend),
		zap.String("seed", seedPath),
		zap.Int("entries", n))

	return &session{backend: backend, store: store, logger: logger}, nil
}

func outputFormat(cmd *cobra.Command) (string, error) {
	f, _ := cmd.Flags().GetString("format")
	switch f {
	case formatText, formatJSON:
		return f, nil
	}
	return "", fmt.Errorf("unknown output format %q (use text or json)", f)
}

func closeSession(w io.Writer, s *session) {
	if err := s.Close(); err != nil {
		fmt.Fprintf(w, "error: close store: %v\n", err)
	}
}
