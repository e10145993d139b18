// Package serializer reads and writes whole in-memory structures as
// pretty-printed JSON files.
package serializer

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
)

// Error categories reported by the serializer.
var (
	ErrIO     = errors.New("io error")
	ErrDecode = errors.New("decode error")
)

// WriteJSON overwrites path with the pretty-printed JSON encoding of v.
// Non-ASCII characters and URL metacharacters are written literally.
func WriteJSON(v any, path string) error {
	f, err := os.Create(path)
	if err != nil {
		log.Printf("Error saving data to %s: %v", path, err)
		return fmt.Errorf("%w: failed to create %s: %v", ErrIO, path, err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "    ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		log.Printf("Error saving data to %s: %v", path, err)
		return fmt.Errorf("%w: failed to encode %s: %v", ErrIO, path, err)
	}
	return nil
}

// ReadJSON parses path as JSON and returns the decoded value. Unreadable
// or malformed files are logged and yield a nil value.
func ReadJSON(path string) (any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		log.Printf("Error reading from %s: %v", path, err)
		return nil, fmt.Errorf("%w: failed to read %s: %v", ErrIO, path, err)
	}

	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		log.Printf("Error decoding JSON from %s: %v", path, err)
		return nil, fmt.Errorf("%w: malformed JSON in %s: %v", ErrDecode, path, err)
	}
	return v, nil
}
