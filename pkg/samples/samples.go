// Package samples embeds example screen documents.
//
// The samples are ordinary documents: they import, edit and export like any
// other file and are useful as a starting point or for trying the editor.
//
//	data, err := samples.Get("mobile-shop")
//	st, err := ed.Import(ctx, scope, data)
package samples

import (
	"embed"
	"path"
	"sort"
	"strings"
	"sync"

	"github.com/matzehuels/bloom/pkg/errors"
	"github.com/matzehuels/bloom/pkg/io"
	"github.com/matzehuels/bloom/pkg/screen"
)

//go:embed screens/*.json
var screensFS embed.FS

// Sample describes one embedded document.
type Sample struct {
	Name        string `json:"name"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Components  int    `json:"components"`
}

var (
	index     []Sample
	indexOnce sync.Once
)

// List returns the embedded samples sorted by name.
func List() []Sample {
	indexOnce.Do(func() {
		entries, _ := screensFS.ReadDir("screens")
		for _, e := range entries {
			name := strings.TrimSuffix(e.Name(), ".json")
			s, err := Screen(name)
			if err != nil {
				continue
			}
			sample := Sample{Name: name, Title: s.Name, Components: s.Count()}
			if s.Metadata != nil {
				sample.Description = s.Metadata.Description
			}
			index = append(index, sample)
		}
		sort.Slice(index, func(i, j int) bool { return index[i].Name < index[j].Name })
	})
	return append([]Sample(nil), index...)
}

// Names returns the sample names, sorted.
func Names() []string {
	list := List()
	names := make([]string, len(list))
	for i, s := range list {
		names[i] = s.Name
	}
	return names
}

// Get returns the raw JSON of the named sample.
func Get(name string) ([]byte, error) {
	if name == "" || strings.ContainsAny(name, `/\`) {
		return nil, errors.New(errors.ErrCodeNotFound, "no sample %q", name)
	}
	data, err := screensFS.ReadFile(path.Join("screens", name+".json"))
	if err != nil {
		return nil, errors.New(errors.ErrCodeNotFound, "no sample %q", name)
	}
	return data, nil
}

// Screen returns the named sample decoded.
func Screen(name string) (*screen.Screen, error) {
	data, err := Get(name)
	if err != nil {
		return nil, err
	}
	return io.Unmarshal(data)
}
