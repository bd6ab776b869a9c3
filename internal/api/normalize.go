package api

import (
	"bytes"
	"encoding/json"
)

// dataEnvelope decodes {"data": ...}. Anything else, including a missing or
// null data field, is a *ShapeError.
func dataEnvelope[T any](body []byte) (T, error) {
	return field[T](body, "data")
}

func watchlistsEnvelope(body []byte) ([]Watchlist, error) {
	return field[[]Watchlist](body, "watchlists")
}

func field[T any](body []byte, name string) (T, error) {
	var zero T
	var env map[string]json.RawMessage
	if err := json.Unmarshal(body, &env); err != nil {
		return zero, shapeError("%v", err)
	}
	raw, ok := env[name]
	if !ok || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return zero, shapeError("missing %q", name)
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return zero, shapeError("%s: %v", name, err)
	}
	return v, nil
}
