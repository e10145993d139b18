package serializer

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

// TestWriteReadRoundTrip verifies that any value written with WriteJSON is
// read back deep-equal by ReadJSON.
func TestWriteReadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roundtrip.json")

	payload := map[string]any{
		"location":    "Ваљево",
		"temperature": 25.3,
		"humidity":    60.0,
		"tags":        []any{"climate", "news"},
		"nested": map[string]any{
			"ok":   true,
			"note": nil,
		},
	}

	if err := WriteJSON(payload, path); err != nil {
		t.Fatalf("WriteJSON failed: %v", err)
	}

	got, err := ReadJSON(path)
	if err != nil {
		t.Fatalf("ReadJSON failed: %v", err)
	}

	if !reflect.DeepEqual(got, payload) {
		t.Errorf("round trip mismatch:\ngot  %#v\nwant %#v", got, payload)
	}
}

// TestWriteJSONKeepsLiterals checks that non-ASCII text and URL
// metacharacters are written literally, not escaped.
func TestWriteJSONKeepsLiterals(t *testing.T) {
	path := filepath.Join(t.TempDir(), "literal.json")

	payload := map[string]any{
		"city": "Ваљево",
		"link": "https://example.com/news?page=1&lang=sr",
	}

	if err := WriteJSON(payload, path); err != nil {
		t.Fatalf("WriteJSON failed: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read written file: %v", err)
	}

	content := string(raw)
	if !strings.Contains(content, "Ваљево") {
		t.Errorf("non-ASCII text was escaped: %s", content)
	}
	if !strings.Contains(content, "page=1&lang=sr") {
		t.Errorf("URL metacharacters were escaped: %s", content)
	}
	if !strings.Contains(content, "    \"city\"") {
		t.Errorf("expected 4-space indentation, got: %s", content)
	}
}

// TestReadJSONMissingFile verifies the IO error category for unreadable files
func TestReadJSONMissingFile(t *testing.T) {
	got, err := ReadJSON(filepath.Join(t.TempDir(), "does-not-exist.json"))
	if got != nil {
		t.Errorf("expected nil value, got %#v", got)
	}
	if !errors.Is(err, ErrIO) {
		t.Errorf("expected ErrIO, got %v", err)
	}
}

// TestReadJSONMalformed verifies the decode error category for broken JSON
func TestReadJSONMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	got, err := ReadJSON(path)
	if got != nil {
		t.Errorf("expected nil value, got %#v", got)
	}
	if !errors.Is(err, ErrDecode) {
		t.Errorf("expected ErrDecode, got %v", err)
	}
}
