package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/bloom/pkg/errors"
	"github.com/matzehuels/bloom/pkg/screen"
	"github.com/matzehuels/bloom/pkg/style"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

func (c *CLI) browseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Browse the component tree interactively",
		Long: `Browse the component tree interactively. The resolved style of the component
under the cursor is shown next to the tree; enter selects it in the session.`,
		Args: cobra.NoArgs,
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

			m := NewBrowseModel(st.Screen, st.SelectedID, func(id string) error {
				_, err := ed.Select(ctx, scope, id)
				return err
			})
			final, err := tea.NewProgram(m, tea.WithContext(ctx)).Run()
			if err != nil {
				return err
			}
			if bm, ok := final.(BrowseModel); ok && bm.SelectedID != "" {
				printSuccess("Selected %s", StyleHighlight.Render(bm.SelectedID))
			}
			return nil
		},
	}
}

// =============================================================================
// BrowseModel - Interactive component tree
// =============================================================================

// browseRow is one line of the flattened tree.
type browseRow struct {
	comp  screen.Component
	depth int
}

// selectedMsg reports the outcome of persisting a selection.
type selectedMsg struct {
	id  string
	err error
}

// BrowseModel is the bubbletea model for the component browser.
type BrowseModel struct {
	Title      string
	Rows       []browseRow
	Cursor     int
	Offset     int
	Height     int
	SelectedID string
	Err        error

	onSelect func(id string) error
}

// NewBrowseModel flattens s in pre-order. onSelect persists a selection;
// the empty id clears it.
func NewBrowseModel(s *screen.Screen, selectedID string, onSelect func(id string) error) BrowseModel {
	m := BrowseModel{
		Title:      s.Name,
		Height:     15,
		SelectedID: selectedID,
		onSelect:   onSelect,
	}
	screen.Walk(s.Components, func(c *screen.Component, depth int) bool {
		m.Rows = append(m.Rows, browseRow{comp: *c, depth: depth})
		if c.ID == selectedID {
			m.Cursor = len(m.Rows) - 1
		}
		return true
	})
	if m.Cursor >= m.Height {
		m.Offset = m.Cursor - m.Height + 1
	}
	return m
}

func (m BrowseModel) Init() tea.Cmd {
	return nil
}

func (m BrowseModel) selectCmd(id string) tea.Cmd {
	return func() tea.Msg {
		return selectedMsg{id: id, err: m.onSelect(id)}
	}
}

func (m BrowseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Rows)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter", " ":
			if len(m.Rows) == 0 {
				return m, nil
			}
			return m, m.selectCmd(m.Rows[m.Cursor].comp.ID)
		case "x":
			return m, m.selectCmd("")
		}
	case selectedMsg:
		m.Err = msg.err
		if msg.err == nil {
			m.SelectedID = msg.id
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m BrowseModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.Title))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  x clear  q quit"))
	b.WriteString("\n\n")

	if len(m.Rows) == 0 {
		b.WriteString(listDimStyle.Render("  (empty screen)"))
		return b.String()
	}

	end := m.Offset + m.Height
	if end > len(m.Rows) {
		end = len(m.Rows)
	}

	var list strings.Builder
	for i := m.Offset; i < end; i++ {
		r := m.Rows[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		marker := "  "
		if r.comp.ID == m.SelectedID {
			marker = StyleSelected.Render(iconSelected) + " "
		}
		line := strings.Repeat("  ", r.depth) + string(r.comp.Type) + " " + r.comp.DisplayLabel()
		switch {
		case i == m.Cursor:
			line = listSelectedStyle.Render(line)
		case r.comp.ID == m.SelectedID:
			line = StyleSelected.Render(line)
		default:
			line = listNormalStyle.Render(line)
		}
		list.WriteString(cursor + marker + line + "\n")
	}
	list.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Rows))))

	current := m.Rows[m.Cursor].comp
	detail := StyleHighlight.Render("#"+current.ID) + "\n" + styleTable(style.ResolveWith(current.Styles, style.Hints{}).Map())

	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().PaddingRight(4).Render(list.String()),
		detail,
	))

	if m.Err != nil {
		b.WriteString("\n\n")
		b.WriteString(styleIconError.Render(iconError) + " " + m.Err.Error())
	}
	return b.String()
}
