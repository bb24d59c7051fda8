package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// inspectCommand creates the inspect command, an interactive layout browser.
func (c *CLI) inspectCommand() *cobra.Command {
	var flags viewFlags

	cmd := &cobra.Command{
		Use:   "inspect [map]",
		Short: "Browse the layout of a mind map interactively",
		Long: `Browse the layout of a mind map interactively.

Move through the visible nodes with the arrow keys and see each node's box,
content box and overlaps. Space folds and unfolds the selected node, o toggles
the outline mode and +/- change the zoom. Only the nodes affected by a change
are laid out again; the footer shows how many.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if err := flags.apply(cmd, &cfg); err != nil {
				return err
			}
			m, err := c.readMap(args[0], flags.inputFormat)
			if err != nil {
				return fmt.Errorf("load map %s: %w", args[0], err)
			}

			e := c.newEngine(m, cfg)
			defer e.Close()

			p := tea.NewProgram(NewInspectModel(e), tea.WithContext(cmd.Context()), tea.WithAltScreen())
			_, err = p.Run()
			return err
		},
	}
	flags.register(cmd)

	return cmd
}
