package palette

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/pingrid/pingrid/pkg/errors"
)

// Load reads and parses a color file. The format is selected by file
// extension: .toml is parsed as TOML, everything else as JSON.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "read color file %s", path)
	}
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return ParseTOML(data)
	}
	return ParseJSON(data)
}

// ParseJSON parses a JSON color document.
func ParseJSON(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		if e := errors.GetCode(err); e != "" {
			return nil, err
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidColor, err, "parse color JSON")
	}
	return &doc, nil
}

// ParseTOML parses a TOML color document.
func ParseTOML(data []byte) (*Document, error) {
	var doc Document
	if err := toml.Unmarshal(data, &doc); err != nil {
		if e := errors.GetCode(err); e != "" {
			return nil, err
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidColor, err, "parse color TOML")
	}
	return &doc, nil
}

// decodePairJSON decodes a [fill, text] JSON array into raw members,
// preserving integers as int64 instead of float64.
func decodePairJSON(data []byte) ([]any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw []any
	if err := dec.Decode(&raw); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidColor, err, "decode color pair")
	}

	out := make([]any, len(raw))
	for i, v := range raw {
		n, ok := v.(json.Number)
		if !ok {
			out[i] = v
			continue
		}
		if iv, err := n.Int64(); err == nil {
			out[i] = iv
			continue
		}
		fv, err := n.Float64()
		if err != nil {
			return nil, errors.New(errors.ErrCodeInvalidColor, "invalid numeric color value %q", n.String())
		}
		out[i] = fv
	}
	return out, nil
}
