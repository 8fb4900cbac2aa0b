package fs

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/aretw0/notes/pkg/core"
)

// Codec defines how the collection is encoded on disk.
type Codec interface {
	// Name is the format name reported by introspection (e.g. "json").
	Name() string
	// Decode parses the full file contents.
	Decode(data []byte) (core.Collection, error)
	// Encode renders the full collection.
	Encode(c core.Collection) ([]byte, error)
}

// CodecFor picks the codec from the file extension.
// Anything that is not YAML is treated as JSON.
func CodecFor(path string) Codec {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAMLCodec{}
	default:
		return JSONCodec{}
	}
}

// --- JSON Codec ---

// JSONCodec reads and writes `[{"title":"...","body":"..."}, ...]`.
// Output is compact with no trailing newline and no HTML escaping.
type JSONCodec struct{}

func (JSONCodec) Name() string { return "json" }

func (JSONCodec) Decode(data []byte) (core.Collection, error) {
	var c core.Collection
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("invalid json: %w", err)
	}
	return c, nil
}

func (JSONCodec) Encode(c core.Collection) ([]byte, error) {
	if c == nil {
		c = core.Collection{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(c); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// --- YAML Codec ---

// YAMLCodec reads and writes a YAML sequence of title/body mappings.
type YAMLCodec struct{}

func (YAMLCodec) Name() string { return "yaml" }

func (YAMLCodec) Decode(data []byte) (core.Collection, error) {
	var c core.Collection
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("invalid yaml: %w", err)
	}
	return c, nil
}

func (YAMLCodec) Encode(c core.Collection) ([]byte, error) {
	if c == nil {
		c = core.Collection{}
	}
	return yaml.Marshal(c)
}
