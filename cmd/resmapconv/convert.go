package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/sugawarayuuta/sonnet"
	"gopkg.in/yaml.v3"
)

type format int

const (
	formatYAML format = iota
	formatJSON
)

func (f format) String() string {
	if f == formatJSON {
		return "json"
	}
	return "yaml"
}

// formatOf mirrors the loader: .json is JSON, everything else is YAML.
func formatOf(name string) format {
	if strings.EqualFold(filepath.Ext(name), ".json") {
		return formatJSON
	}
	return formatYAML
}

// convert re-encodes a resource map. Keys come out sorted in both formats.
func convert(raw []byte, from, to format) ([]byte, error) {
	var doc map[string]any
	var err error
	if from == formatJSON {
		err = sonnet.Unmarshal(raw, &doc)
	} else {
		err = yaml.Unmarshal(raw, &doc)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", from, err)
	}
	if doc == nil {
		doc = map[string]any{}
	}

	if to == formatJSON {
		flat, err := sonnet.Marshal(doc)
		if err != nil {
			return nil, fmt.Errorf("encode json: %w", err)
		}
		var buf bytes.Buffer
		if err := json.Indent(&buf, flat, "", "  "); err != nil {
			return nil, fmt.Errorf("indent json: %w", err)
		}
		buf.WriteByte('\n')
		return buf.Bytes(), nil
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("encode yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode yaml: %w", err)
	}
	return buf.Bytes(), nil
}
