package editor

import (
	"context"
	"fmt"

	"github.com/matzehuels/bloom/pkg/screen"
)

// Summary is the status-bar view of a scope.
type Summary struct {
	HasDocument bool                         `json:"hasDocument"`
	ScreenID    string                       `json:"screenId,omitempty"`
	Name        string                       `json:"name,omitempty"`
	Components  int                          `json:"components"` // top-level only
	Nodes       int                          `json:"nodes"`
	Depth       int                          `json:"depth"`
	ByType      map[screen.ComponentType]int `json:"byType,omitempty"`

	SelectedID    string               `json:"selectedId,omitempty"`
	SelectedLabel string               `json:"selectedLabel,omitempty"`
	SelectedType  screen.ComponentType `json:"selectedType,omitempty"`
}

// Summarize computes the summary of a state.
func Summarize(st *State) Summary {
	if !st.HasDocument() {
		return Summary{}
	}
	s := st.Screen
	sum := Summary{
		HasDocument: true,
		ScreenID:    s.ID,
		Name:        s.Name,
		Components:  len(s.Components),
		Nodes:       s.Count(),
		Depth:       screen.Depth(s.Components),
		ByType:      screen.CountByType(s.Components),
	}
	if c, ok := st.Selected(); ok {
		sum.SelectedID = c.ID
		sum.SelectedType = c.Type
		sum.SelectedLabel = c.Label
		if sum.SelectedLabel == "" {
			sum.SelectedLabel = string(c.Type)
		}
	}
	return sum
}

// Summary loads scope and summarizes it. A scope without a document is not
// an error.
func (e *Editor) Summary(ctx context.Context, scope string) (Summary, error) {
	st, err := e.Load(ctx, scope)
	if err != nil {
		return Summary{}, err
	}
	return Summarize(st), nil
}

// Status renders the summary as a one-line status bar.
func (s Summary) Status() string {
	if !s.HasDocument {
		return "No document loaded"
	}
	count := fmt.Sprintf("%d component", s.Components)
	if s.Components != 1 {
		count += "s"
	}
	if s.SelectedID == "" {
		return "Click on a component to edit styles • " + count
	}
	return fmt.Sprintf("Selected: %s (%s) • %s", s.SelectedLabel, s.SelectedID, count)
}
