package filestore

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/aanand-mishra/trackstudent/internal/types"
	"gopkg.in/yaml.v3"
)

// Codec converts the whole record collection to and from the bytes of the
// backing file. Implementations must preserve order and non-ASCII text.
type Codec interface {
	Name() string
	Encode(students []types.Student) ([]byte, error)
	Decode(data []byte) ([]types.Student, error)
}

// CodecFor picks a codec from the file extension: .yaml and .yml get YAML,
// everything else gets JSON.
func CodecFor(path string) Codec {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAMLCodec{}
	default:
		return JSONCodec{}
	}
}

// JSONCodec writes a two-space indented JSON array.
type JSONCodec struct{}

func (JSONCodec) Name() string { return "json" }

func (JSONCodec) Encode(students []types.Student) ([]byte, error) {
	if students == nil {
		students = []types.Student{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	// Keep "&", "<" and ">" readable in names and courses.
	enc.SetEscapeHTML(false)
	if err := enc.Encode(students); err != nil {
		return nil, fmt.Errorf("json encode: %w", err)
	}
	return buf.Bytes(), nil
}

func (JSONCodec) Decode(data []byte) ([]types.Student, error) {
	var students []types.Student
	if err := json.Unmarshal(data, &students); err != nil {
		return nil, fmt.Errorf("json decode: %w", err)
	}
	return students, nil
}

// YAMLCodec writes a YAML sequence of mappings.
type YAMLCodec struct{}

func (YAMLCodec) Name() string { return "yaml" }

func (YAMLCodec) Encode(students []types.Student) ([]byte, error) {
	if students == nil {
		students = []types.Student{}
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(students); err != nil {
		return nil, fmt.Errorf("yaml encode: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("yaml encode: %w", err)
	}
	return buf.Bytes(), nil
}

func (YAMLCodec) Decode(data []byte) ([]types.Student, error) {
	var students []types.Student
	if err := yaml.Unmarshal(data, &students); err != nil {
		return nil, fmt.Errorf("yaml decode: %w", err)
	}
	return students, nil
}
