package store

import (
	"fmt"
	"strings"

	"github.com/goccy/go-yaml"
	jsoniter "github.com/json-iterator/go"

	"github.com/agentstation/bookshelf/pkg/errors"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Format is a serialization format for persisted collections.
type Format int

// Format constants.
const (
	FormatJSON Format = iota
	FormatYAML
)

// ParseFormat parses a format name.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return FormatJSON, errors.NewConfigError("store", fmt.Sprintf("unknown format %q", name), nil)
	}
}

// IsValid checks if the format is valid.
func (f Format) IsValid() bool {
	switch f {
	case FormatJSON, FormatYAML:
		return true
	default:
		return false
	}
}

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatYAML:
		return "yaml"
	}
	return "unknown"
}

// Extension returns the file extension, including the dot.
func (f Format) Extension() string {
	if f == FormatYAML {
		return ".yaml"
	}
	return ".json"
}

// Codec returns the codec for the format.
func (f Format) Codec() Codec {
	if f == FormatYAML {
		return YAML
	}
	return JSON
}

// Codec encodes and decodes collections.
type Codec interface {
	Format() Format
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
}

// Codecs for each supported format.
var (
	JSON Codec = jsonCodec{}
	YAML Codec = yamlCodec{}
)

// jsonCodec writes two-space indented JSON.
type jsonCodec struct{}

func (jsonCodec) Format() Format { return FormatJSON }

func (jsonCodec) Marshal(v any) ([]byte, error) {
	return json.MarshalIndent(v, "", "  ")
}

func (jsonCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

type yamlCodec struct{}

func (yamlCodec) Format() Format { return FormatYAML }

func (yamlCodec) Marshal(v any) ([]byte, error) {
	return yaml.MarshalWithOptions(v, yaml.Indent(2), yaml.IndentSequence(true))
}

func (yamlCodec) Unmarshal(data []byte, v any) error {
	return yaml.Unmarshal(data, v)
}
