package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/chepilot/menubot/internal/intent"
)

func newClassifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "classify [text]",
		Short: "Print the command a message would be classified as",
		Long:  "Classify a message without applying it. Output is always JSON.",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runClassify,
	}
}

func runClassify(cmd *cobra.Command, args []string) error {
	text := strings.Join(args, " ")
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("classify: text is required")
	}
	return writeJSON(cmd.OutOrStdout(), intent.Classify(text))
}
