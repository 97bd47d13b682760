package outline

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	apperrors "github.com/matzehuels/slidegen/pkg/errors"
)

// Format identifies an outline encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks the format from a file extension.
// Unknown extensions are treated as JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// FormatFromContentType maps an HTTP Content-Type to a format.
// Unknown or missing types are treated as JSON.
func FormatFromContentType(ct string) Format {
	ct = strings.ToLower(ct)
	switch {
	case strings.Contains(ct, "toml"):
		return FormatTOML
	case strings.Contains(ct, "yaml"):
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Parse decodes an outline from data. The result is not validated.
func Parse(data []byte, f Format) (*Outline, error) {
	var (
		o   *Outline
		err error
	)
	switch f {
	case FormatTOML:
		o, err = parseTOML(data)
	case FormatYAML:
		o, err = parseYAML(data)
	case FormatJSON, "":
		o, err = parseJSON(data)
	default:
		return nil, apperrors.New(apperrors.ErrCodeInvalidFormat, "unknown outline format %q", f)
	}
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidOutline, err, "decode %s outline", formatName(f))
	}
	return o, nil
}

// Read decodes an outline from r and validates it. Read does not close r.
func Read(r io.Reader, f Format) (*Outline, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read outline: %w", err)
	}
	o, err := Parse(data, f)
	if err != nil {
		return nil, err
	}
	if err := o.Validate(); err != nil {
		return nil, err
	}
	return o, nil
}

// Load reads and validates the outline file at path.
func Load(path string) (*Outline, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.Wrap(apperrors.ErrCodeFileNotFound, err, "outline %s not found", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return Read(f, FormatFromPath(path))
}

func formatName(f Format) string {
	if f == "" {
		return string(FormatJSON)
	}
	return string(f)
}

// parseJSON accepts the bare-array form and the wrapped object form.
func parseJSON(data []byte) (*Outline, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("empty document")
	}
	if trimmed[0] == '[' {
		var slides []Slide
		if err := json.Unmarshal(trimmed, &slides); err != nil {
			return nil, err
		}
		return &Outline{Slides: slides}, nil
	}
	var o Outline
	if err := json.Unmarshal(trimmed, &o); err != nil {
		return nil, err
	}
	return &o, nil
}

func parseTOML(data []byte) (*Outline, error) {
	var o Outline
	if _, err := toml.Decode(string(data), &o); err != nil {
		return nil, err
	}
	return &o, nil
}

func parseYAML(data []byte) (*Outline, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, err
	}
	if len(node.Content) == 0 {
		return nil, fmt.Errorf("empty document")
	}
	root := node.Content[0]
	if root.Kind == yaml.SequenceNode {
		var slides []Slide
		if err := root.Decode(&slides); err != nil {
			return nil, err
		}
		return &Outline{Slides: slides}, nil
	}
	var o Outline
	if err := root.Decode(&o); err != nil {
		return nil, err
	}
	return &o, nil
}
