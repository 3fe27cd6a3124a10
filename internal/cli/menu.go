package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chepilot/menubot/internal/catalog"
)

func newMenuCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "menu",
		Short: "Show the seed menu grouped by category",
		Args:  cobra.NoArgs,
		RunE:  runMenu,
	}
}

func runMenu(cmd *cobra.Command, args []string) error {
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
		return fmt.Errorf("list: %w", err)
	}
	groups := catalog.GroupByCategory(entries)
	if format == formatJSON {
		return writeJSON(cmd.OutOrStdout(), groups)
	}
	renderMenu(cmd.OutOrStdout(), groups)
	return nil
}
