package io

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/matzehuels/bloom/pkg/errors"
	"github.com/matzehuels/bloom/pkg/screen"
)

// ExportPrefix is the file name prefix used for downloaded documents.
const ExportPrefix = "bloom-screen"

// WriteJSON encodes s as two-space indented JSON followed by a newline.
// The output can be re-read with [ReadJSON] without loss.
func WriteJSON(s *screen.Screen, w io.Writer) error {
	if s == nil {
		return errors.New(errors.ErrCodeNoDocument, "no document to export")
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// Marshal returns the indented encoding of s, exactly as [WriteJSON] writes it.
func Marshal(s *screen.Screen) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteJSON(s, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ExportJSON writes s to a file at path, replacing any existing file.
func ExportJSON(s *screen.Screen, path string) error {
	if err := errors.ValidatePath(path); err != nil {
		return err
	}
	data, err := Marshal(s)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// ExportFilename returns the download name for a document exported at t,
// e.g. "bloom-screen-1718000000000.json".
func ExportFilename(t time.Time) string {
	return fmt.Sprintf("%s-%d.json", ExportPrefix, t.UnixMilli())
}
