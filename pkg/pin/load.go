package pin

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/pingrid/pingrid/pkg/errors"
)

// Load reads and parses a definition file. The format is selected by
// file extension: .toml is parsed as TOML, everything else as JSON.
// The returned document is validated.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "read definition file %s", path)
	}
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return ParseTOML(data)
	}
	return ParseJSON(data)
}

// ParseJSON parses and validates a JSON definition document.
func ParseJSON(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPin, err, "parse definition JSON")
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// ParseTOML parses and validates a TOML definition document.
func ParseTOML(data []byte) (*Document, error) {
	var doc Document
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPin, err, "parse definition TOML")
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}
