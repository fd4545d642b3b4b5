package cli

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/bloom/pkg/samples"
	"github.com/matzehuels/bloom/pkg/screen"
	"github.com/matzehuels/bloom/pkg/style"
)

func (c *CLI) presetsCommand() *cobra.Command {
	var (
		asJSON bool
		keys   bool
	)

	cmd := &cobra.Command{
		Use:   "presets",
		Short: "List the values offered by the style panel",
		Long: `List the values offered by the style panel. Presets only drive pickers;
any value is accepted by 'bloom style'. With --keys the editable style keys
are listed instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if keys {
				for _, k := range screen.StyleKeys() {
					fmt.Fprintln(stdout, k)
				}
				return nil
			}

			p := style.DefaultPresets()
			if asJSON {
				data, err := json.MarshalIndent(p, "", "  ")
				if err != nil {
					return err
				}
				fmt.Fprintln(stdout, string(data))
				return nil
			}

			rows := [][]string{
				{"colors", strings.Join(p.Colors, " ")},
				{"fontFamilies", strings.Join(p.FontFamilies, ", ")},
				{"fontSizes", strings.Join(p.FontSizes, " ")},
				{"fontWeights", strings.Join(p.FontWeights, " ")},
				{"fontStyles", strings.Join(p.FontStyles, " ")},
				{"textAligns", strings.Join(p.TextAligns, " ")},
				{"borderRadii", strings.Join(p.BorderRadii, " ")},
				{"borderStyles", strings.Join(p.BorderStyles, " ")},
				{"displays", strings.Join(p.Displays, " ")},
				{"flexDirections", strings.Join(p.FlexDirections, " ")},
				{"justifyContents", strings.Join(p.JustifyContents, " ")},
				{"alignItems", strings.Join(p.AlignItems, " ")},
				{"spacing", fmtRange(p.Spacing)},
				{"opacity", fmtRange(p.Opacity)},
			}
			fmt.Fprintln(stdout, listTable([]string{"Preset", "Values"}, rows))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print presets as JSON")
	cmd.Flags().BoolVar(&keys, "keys", false, "list editable style keys")
	cmd.MarkFlagsMutuallyExclusive("json", "keys")
	return cmd
}

func fmtRange(r style.Range) string {
	return fmt.Sprintf("%d-%d%s step %d", r.Min, r.Max, r.Unit, r.Step)
}

func (c *CLI) samplesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "samples",
		Short: "List the embedded sample documents",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			list := samples.List()
			rows := make([][]string, len(list))
			for i, s := range list {
				rows[i] = []string{s.Name, s.Title, fmt.Sprint(s.Components), s.Description}
			}
			fmt.Fprintln(stdout, listTable([]string{"Name", "Title", "Components", "Description"}, rows))
			printNextStep("Load one with", "bloom import --sample <name>")
			return nil
		},
	}
}

func listTable(headers []string, rows [][]string) string {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return headerStyle
			case col == 0:
				return lipgloss.NewStyle().Foreground(colorCyan)
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		}).
		Render()
}

func sortedStrings(s []string) []string {
	sort.Strings(s)
	return s
}
