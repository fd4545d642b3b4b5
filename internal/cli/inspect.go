package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/charmbracelet/lipgloss/tree"
	"github.com/spf13/cobra"

	"github.com/matzehuels/bloom/pkg/editor"
	"github.com/matzehuels/bloom/pkg/errors"
	"github.com/matzehuels/bloom/pkg/screen"
	"github.com/matzehuels/bloom/pkg/style"
)

// =============================================================================
// resolve
// =============================================================================

func (c *CLI) resolveCommand() *cobra.Command {
	var (
		asJSON bool
		asCSS  bool
		hints  bool
	)

	cmd := &cobra.Command{
		Use:   "resolve [id]",
		Short: "Show the resolved presentation of a component",
		Long: `Show the presentation a component's style attributes resolve to: padding and
margin shorthands, the composed border and the numeric opacity. Without an id
the selected component is shown.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ed, closeAll, err := c.newEditor(ctx)
			if err != nil {
				return err
			}
			defer closeAll()

			st, err := ed.Load(ctx, scope)
			if err != nil {
				return err
			}
			if !st.HasDocument() {
				return errors.New(errors.ErrCodeNoDocument, "no document loaded")
			}
			id := st.SelectedID
			if len(args) == 1 {
				id = args[0]
			}
			if id == "" {
				return errors.New(errors.ErrCodeInvalidInput, "no component selected; pass an id")
			}
			comp, ok := st.Screen.Find(id)
			if !ok {
				return errors.New(errors.ErrCodeComponentNotFound, "component %q not found", id)
			}

			var h style.Hints
			if hints {
				h = ed.Hints
			}
			p := style.ResolveWith(comp.Styles, h)

			switch {
			case asJSON:
				data, err := json.MarshalIndent(p, "", "  ")
				if err != nil {
					return err
				}
				fmt.Fprintln(stdout, string(data))
			case asCSS:
				fmt.Fprintln(stdout, p.CSS())
			default:
				fmt.Fprintln(stdout, StyleTitle.Render(comp.DisplayLabel())+" "+StyleDim.Render("#"+comp.ID+" · "+string(comp.Type)))
				fmt.Fprintln(stdout, styleTable(p.Map()))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the presentation as JSON")
	cmd.Flags().BoolVar(&asCSS, "css", false, "print the presentation as inline CSS")
	cmd.Flags().BoolVar(&hints, "hints", false, "include editor hints (cursor, transition)")
	cmd.MarkFlagsMutuallyExclusive("json", "css")
	return cmd
}

// styleTable renders property/value pairs sorted by property.
func styleTable(m map[string]string) string {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	rows := make([][]string, 0, len(m))
	for _, k := range screen.SortedKeys(m) {
		rows = append(rows, []string{k, m[k]})
	}
	if len(rows) == 0 {
		return StyleDim.Render("  (no style)")
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Property", "Value").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return headerStyle
			case col == 0:
				return lipgloss.NewStyle().Foreground(colorGray)
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		}).
		Render()
}

// =============================================================================
// inspect
// =============================================================================

func (c *CLI) inspectCommand() *cobra.Command {
	var ids bool

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Print the component tree of the current document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ed, closeAll, err := c.newEditor(ctx)
			if err != nil {
				return err
			}
			defer closeAll()

			st, err := ed.Load(ctx, scope)
			if err != nil {
				return err
			}
			if !st.HasDocument() {
				printInfo("No document loaded")
				printNextStep("Load one with", "bloom import --sample mobile-shop")
				return nil
			}

			fmt.Fprintln(stdout, componentTree(st.Screen, st.SelectedID, ids))
			printNewline()
			printStatus(st)
			return nil
		},
	}

	cmd.Flags().BoolVar(&ids, "ids", true, "show component ids")
	return cmd
}

// componentTree renders the screen as a lipgloss tree with the selected
// component highlighted.
func componentTree(s *screen.Screen, selectedID string, ids bool) string {
	t := tree.Root(StyleTitle.Render(s.Name) + " " + StyleDim.Render(s.ID)).
		Enumerator(tree.RoundedEnumerator).
		EnumeratorStyle(lipgloss.NewStyle().Foreground(colorDim))
	addChildren(t, s.Components, selectedID, ids)
	return t.String()
}

func addChildren(t *tree.Tree, forest []screen.Component, selectedID string, ids bool) {
	for i := range forest {
		c := &forest[i]
		label := treeLabel(c, c.ID == selectedID, ids)
		if c.IsLeaf() {
			t.Child(label)
			continue
		}
		sub := tree.Root(label)
		addChildren(sub, c.Children, selectedID, ids)
		t.Child(sub)
	}
}

func treeLabel(c *screen.Component, selected, ids bool) string {
	var b strings.Builder
	b.WriteString(StyleDim.Render(string(c.Type) + " "))
	if selected {
		b.WriteString(StyleSelected.Render(iconSelected + " " + c.DisplayLabel()))
	} else {
		b.WriteString(StyleValue.Render(c.DisplayLabel()))
	}
	if ids {
		b.WriteString(StyleDim.Render(" #" + c.ID))
	}
	return b.String()
}

// =============================================================================
// outline
// =============================================================================

func (c *CLI) outlineCommand() *cobra.Command {
	var (
		output string
		opts   editor.OutlineOptions
	)

	cmd := &cobra.Command{
		Use:   "outline",
		Short: "Render the component tree as a Graphviz diagram",
		Long: `Render the component tree as an SVG diagram (or DOT source with
--format dot). Nodes are filled with their background color and the
selected component is outlined.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ed, closeAll, err := c.newEditor(ctx)
			if err != nil {
				return err
			}
			defer closeAll()

			data, err := ed.Outline(ctx, scope, opts)
			if err != nil {
				return err
			}
			if output == "" {
				output = "outline." + opts.Format
			}
			if err := writeOutput(output, data); err != nil {
				return err
			}
			if output != "-" {
				printSuccess("Rendered outline")
				printFile(output)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (\"-\" for stdout, default outline.<format>)")
	cmd.Flags().StringVarP(&opts.Format, "format", "f", editor.FormatSVG, "output format: svg or dot")
	cmd.Flags().BoolVar(&opts.Detailed, "detailed", false, "add resolved styles to node labels")
	cmd.Flags().StringVar(&opts.Direction, "direction", "TB", "layout direction: TB or LR")
	return cmd
}
