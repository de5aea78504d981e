package storage

import (
	"encoding/json"
	"fmt"
)

// encodeJSON marshals a value for storage in a TEXT column. Nil maps and
// slices are stored as empty strings so reads round-trip to nil.
func encodeJSON(v any, column string) (string, error) {
	if v == nil {
		return "", nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("failed to encode %s: %w", column, err)
	}
	text := string(data)
	if text == "null" || text == "{}" || text == "[]" {
		return "", nil
	}
	return text, nil
}

// decodeJSON unmarshals a TEXT column into out. Empty text leaves out
// untouched.
func decodeJSON(text string, out any, column string) error {
	if text == "" {
		return nil
	}
	if err := json.Unmarshal([]byte(text), out); err != nil {
		return fmt.Errorf("failed to decode %s: %w", column, err)
	}
	return nil
}
