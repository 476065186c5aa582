package ocr

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
)

type format int

const (
	plain format = iota
	result
	detection
)

// formatOf tells which kind of file name holds. A .json file is a Result,
// or a Detection when it has regions.
func formatOf(name string, raw []byte) (format, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json":
		var shape struct {
			Regions json.RawMessage `json:"regions"`
		}
		if err := json.Unmarshal(raw, &shape); err != nil {
			return plain, fmt.Errorf("%s: %w", name, err)
		}
		if shape.Regions != nil {
			return detection, nil
		}
		return result, nil
	case ".blw":
		return detection, nil
	}
	return plain, nil
}

func decodeDetection(name string, raw []byte) (*Detection, error) {
	var d Detection
	if err := json.Unmarshal(raw, &d); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	if err := d.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return &d, nil
}

// Text extracts the recognized text from the contents of name. Anything
// other than a Result or a Detection is already plain text.
func Text(name string, raw []byte) ([]byte, error) {
	f, err := formatOf(name, raw)
	if err != nil {
		return nil, err
	}
	switch f {
	case result:
		var res Result
		if err := json.Unmarshal(raw, &res); err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		return []byte(res.FullText), nil
	case detection:
		d, err := decodeDetection(name, raw)
		if err != nil {
			return nil, err
		}
		return []byte(d.Plaintext()), nil
	}
	return raw, nil
}

// Describe summarizes the contents of name for a log line, e.g.
// "GCP: 2 regions, 3 lines, 4 words" or "AWS result".
func Describe(name string, raw []byte) (string, error) {
	f, err := formatOf(name, raw)
	if err != nil {
		return "", err
	}
	switch f {
	case result:
		var res Result
		if err := json.Unmarshal(raw, &res); err != nil {
			return "", fmt.Errorf("%s: %w", name, err)
		}
		return strings.TrimSpace(res.Service + " result"), nil
	case detection:
		d, err := decodeDetection(name, raw)
		if err != nil {
			return "", err
		}
		r, l, w := d.CountRLW()
		return fmt.Sprintf("%s: %d regions, %d lines, %d words", d.AlgoID, r, l, w), nil
	}
	return "plain text", nil
}
