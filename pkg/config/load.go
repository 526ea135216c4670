package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrEmptyProblem is returned when a problem document holds no data.
var ErrEmptyProblem = errors.New("problem document is empty")

// ParseProblemData decodes a YAML (or JSON) problem document, applies
// defaults and validates it. Unknown fields are rejected.
func ParseProblemData(r io.Reader) (*ProblemData, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var data ProblemData
	if err := dec.Decode(&data); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyProblem
		}
		return nil, fmt.Errorf("failed to decode problem data: %w", err)
	}
	data.SetDefaults()
	if err := data.Validate(); err != nil {
		return nil, fmt.Errorf("invalid problem data: %w", err)
	}
	return &data, nil
}

// LoadProblemFile reads and validates the problem stored at path.
func LoadProblemFile(path string) (*ProblemData, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read problem file: %w", err)
	}
	data, err := ParseProblemData(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return data, nil
}

// EncodeProblemData writes d to w as YAML.
func EncodeProblemData(w io.Writer, d *ProblemData) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(d); err != nil {
		return fmt.Errorf("failed to encode problem data: %w", err)
	}
	return enc.Close()
}
