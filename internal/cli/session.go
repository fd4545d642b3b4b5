package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/bloom/pkg/session"
)

// sessionCommand manages the local editing session.
func (c *CLI) sessionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Manage the local editing session",
	}

	cmd.AddCommand(c.sessionShowCommand())
	cmd.AddCommand(c.sessionClearCommand())
	cmd.AddCommand(c.sessionPathCommand())

	return cmd
}

func (c *CLI) sessionShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Summarize the document in the local session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ed, closeAll, err := c.newEditor(ctx)
			if err != nil {
				return err
			}
			defer closeAll()

			sum, err := ed.Summary(ctx, scope)
			if err != nil {
				return err
			}
			if !sum.HasDocument {
				printInfo("%s", sum.Status())
				return nil
			}

			printKeyValue("Screen", sum.Name+" ("+sum.ScreenID+")")
			printKeyValue("Components", fmt.Sprintf("%d top-level, %d total", sum.Components, sum.Nodes))
			printKeyValue("Depth", fmt.Sprint(sum.Depth))

			types := make([]string, 0, len(sum.ByType))
			for t, n := range sum.ByType {
				types = append(types, fmt.Sprintf("%s=%d", t, n))
			}
			printKeyValue("Types", strings.Join(sortedStrings(types), " "))

			selected := "none"
			if sum.SelectedID != "" {
				selected = sum.SelectedLabel + " (" + sum.SelectedID + ")"
			}
			printKeyValue("Selected", selected)
			return nil
		},
	}
}

func (c *CLI) sessionClearCommand() *cobra.Command {
	var clearCache bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Discard the document in the local session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ed, closeAll, err := c.newEditor(ctx)
			if err != nil {
				return err
			}
			defer closeAll()

			if err := ed.Clear(ctx, scope); err != nil {
				return err
			}
			printSuccess("Session cleared")

			if clearCache {
				if cl, ok := ed.Cache.(interface{ Clear() error }); ok {
					if err := cl.Clear(); err != nil {
						return err
					}
					printSuccess("Cache cleared")
				} else {
					printWarning("The configured cache cannot be cleared from here")
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&clearCache, "cache", false, "also clear cached previews and outlines")
	return cmd
}

func (c *CLI) sessionPathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the file the local session is stored in",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ed, closeAll, err := c.newEditor(ctx)
			if err != nil {
				return err
			}
			defer closeAll()

			fs, ok := ed.Store.(*session.FileStore)
			if !ok {
				printInfo("The configured store keeps sessions outside the filesystem")
				return nil
			}
			fmt.Fprintln(stdout, fs.SessionPath(scope))
			return nil
		},
	}
}
