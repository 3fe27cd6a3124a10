package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chepilot/menubot/internal/catalog"
)

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show menu statistics",
		Args:  cobra.NoArgs,
		RunE:  runStats,
	}
}

func runStats(cmd *cobra.Command, args []string) error {
	format, err := outputFormat(cmd)
	if err != nil {
		return err
	}
	s, err := openSession(cmd.Context(), cmd)
	if err != nil {
		return err
	}
	defer closeSession(cmd.ErrOrStderr(), s)

	entries, err := s.store.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("stats: %w", err)
	}
	st := catalog.ComputeStats(s.backend, entries)
	if format == formatJSON {
		return writeJSON(cmd.OutOrStdout(), st)
	}
	renderStats(cmd.OutOrStdout(), st)
	return nil
}
