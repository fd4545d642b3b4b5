package preview

import (
	"github.com/matzehuels/bloom/pkg/screen"
	"github.com/matzehuels/bloom/pkg/style"
)

// Selection outline drawn around the selected node.
const (
	SelectionOutline       = "2px dashed #4f46e5"
	SelectionOutlineOffset = "4px"
)

// Placeholders painted when a component has nothing to show.
const (
	EmptyContainer   = "Empty Container"
	EmptyCard        = "Card Content"
	EmptyHeading     = "Heading"
	EmptyText        = "Text content"
	EmptyButton      = "Button"
	EmptyInput       = "Input field"
	PlaceholderImage = "https://via.placeholder.com/400x300"
	UnknownComponent = "Unknown component"
)

// Tree is the resolved view of a whole screen.
type Tree struct {
	ScreenID   string `json:"screenId"`
	Name       string `json:"name"`
	SelectedID string `json:"selectedId,omitempty"`
	Nodes      []Node `json:"nodes"`
}

// Node is one resolved component.
type Node struct {
	ID      string               `json:"id"`
	Type    screen.ComponentType `json:"type"`
	Label   string               `json:"label,omitempty"`
	Content string               `json:"content,omitempty"`

	// DisplayContent is what the renderer paints inside the component:
	// the content, or a placeholder when the content is empty. Containers
	// and cards with children display nothing themselves.
	DisplayContent string `json:"displayContent,omitempty"`

	Selected bool               `json:"selected,omitempty"`
	Style    style.Presentation `json:"style"`
	Children []Node             `json:"children,omitempty"`
}

// Build resolves every component of s. selectedID may be empty or name a
// component that does not exist; in both cases no node is selected.
func Build(s *screen.Screen, selectedID string, hints style.Hints) Tree {
	t := Tree{
		ScreenID: s.ID,
		Name:     s.Name,
		Nodes:    buildNodes(s.Components, selectedID, hints),
	}
	if _, ok := s.Find(selectedID); ok && selectedID != "" {
		t.SelectedID = selectedID
	}
	return t
}

func buildNodes(forest []screen.Component, selectedID string, hints style.Hints) []Node {
	if len(forest) == 0 {
		return []Node{}
	}
	nodes := make([]Node, len(forest))
	for i := range forest {
		nodes[i] = buildNode(&forest[i], selectedID, hints)
	}
	return nodes
}

func buildNode(c *screen.Component, selectedID string, hints style.Hints) Node {
	n := Node{
		ID:             c.ID,
		Type:           c.Type,
		Label:          c.Label,
		Content:        c.Content,
		DisplayContent: DisplayContent(c),
		Selected:       selectedID != "" && c.ID == selectedID,
		Style:          style.ResolveWith(c.Styles, hints),
	}
	if n.Selected {
		n.Style.Outline = SelectionOutline
		n.Style.OutlineOffset = SelectionOutlineOffset
	}
	if c.Type == screen.TypeImage {
		n.Style.Display = "block"
	}
	if len(c.Children) > 0 {
		n.Children = buildNodes(c.Children, selectedID, hints)
	}
	return n
}

// DisplayContent returns the text painted inside c. For images it is the
// image URL.
func DisplayContent(c *screen.Component) string {
	switch c.Type {
	case screen.TypeContainer:
		if len(c.Children) > 0 {
			return ""
		}
		return EmptyContainer
	case screen.TypeCard:
		if len(c.Children) > 0 {
			return ""
		}
		return EmptyCard
	}

	if c.Content != "" {
		return c.Content
	}
	switch c.Type {
	case screen.TypeHeading:
		return EmptyHeading
	case screen.TypeText:
		return EmptyText
	case screen.TypeButton:
		return EmptyButton
	case screen.TypeInput:
		return EmptyInput
	case screen.TypeImage:
		return PlaceholderImage
	default:
		return UnknownComponent
	}
}

// Find returns the node with the given id, searching in pre-order.
func (t *Tree) Find(id string) (*Node, bool) {
	return find(t.Nodes, id)
}

func find(nodes []Node, id string) (*Node, bool) {
	for i := range nodes {
		if nodes[i].ID == id {
			return &nodes[i], true
		}
		if n, ok := find(nodes[i].Children, id); ok {
			return n, true
		}
	}
	return nil, false
}
