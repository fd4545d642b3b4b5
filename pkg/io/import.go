package io

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/bloom/pkg/errors"
	"github.com/matzehuels/bloom/pkg/screen"
)

// ReadJSON decodes a screen document from r.
//
// The whole input must be a single JSON object; trailing data is rejected.
// Malformed input returns an [errors.ErrCodeInvalidJSON] error wrapping the
// parser error, so the position and reason reach the caller. Well-formed JSON
// that cannot be read as a screen (components given as a string, a style
// value given as an object) returns [errors.ErrCodeInvalidDocument] instead.
// Numbers and booleans in style and metadata values are kept as their
// literal text.
//
// No structural checks are made beyond that: missing ids, unknown component
// types and duplicate ids are all accepted. Use [screen.Validate] for strict
// checking.
//
// ReadJSON does not close r.
func ReadJSON(r io.Reader) (*screen.Screen, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	return Unmarshal(data)
}

// Unmarshal decodes a screen document from data. See [ReadJSON].
func Unmarshal(data []byte) (*screen.Screen, error) {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil, errors.New(errors.ErrCodeInvalidJSON, "not valid JSON: document is null")
	}
	var s screen.Screen
	if err := json.Unmarshal(data, &s); err != nil {
		if json.Valid(data) {
			return nil, errors.Wrap(errors.ErrCodeInvalidDocument, err, "not a screen document")
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidJSON, err, "not valid JSON")
	}
	return &s, nil
}

// ImportJSON reads the document at path.
//
// A missing or unreadable file is reported with the path for context;
// decoding errors are the same as [ReadJSON].
func ImportJSON(path string) (*screen.Screen, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeNotFound, err, "open %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}
