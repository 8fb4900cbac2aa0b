package main

import (
	"encoding/json"
	"io"
	"log/slog"

	"github.com/aretw0/notes"
)

// outputJSON writes a value as formatted JSON.
func outputJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// closeRepository releases adapters that hold a connection (sqlite).
func closeRepository(svc *notes.Service) {
	c, ok := svc.Repository().(io.Closer)
	if !ok {
		return
	}
	if err := c.Close(); err != nil {
		slog.Warn("failed to close store", "error", err)
	}
}
