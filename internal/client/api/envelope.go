package api

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// DecodeList normalizes the two list shapes the backend is known to emit:
// a bare JSON array, or an envelope object {"<resource>": [...]}. Any
// third shape fails loudly with ErrUnexpectedShape instead of silently
// defaulting to an empty list.
func DecodeList[T any](data []byte, resource string) ([]T, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("%w: empty %s response", ErrUnexpectedShape, resource)
	}

	switch trimmed[0] {
	case '[':
		var items []T
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, fmt.Errorf("decoding %s list: %w", resource, err)
		}
		return items, nil

	case '{':
		var envelope map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &envelope); err != nil {
			return nil, fmt.Errorf("decoding %s envelope: %w", resource, err)
		}
		raw, ok := envelope[resource]
		if !ok {
			return nil, fmt.Errorf("%w: object without %q key", ErrUnexpectedShape, resource)
		}
		var items []T
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil, fmt.Errorf("%w: %q key is not an array", ErrUnexpectedShape, resource)
		}
		return items, nil

	default:
		return nil, fmt.Errorf("%w: %s response is neither array nor object", ErrUnexpectedShape, resource)
	}
}
