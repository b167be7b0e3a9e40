package gen

import (
	"bytes"
	"fmt"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// InvocationDocument is the data rendering of an emitted command tree.
type InvocationDocument struct {
	Version     string       `json:"version" yaml:"version"`
	Root        string       `json:"root" yaml:"root"`
	Invocations []Invocation `json:"invocations" yaml:"invocations"`
}

const documentVersion = "1"

// RenderJSON renders invocations as indented JSON.
func RenderJSON(root string, invocations []Invocation) ([]byte, error) {
	doc := InvocationDocument{Version: documentVersion, Root: root, Invocations: invocations}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling invocations to JSON: %w", err)
	}

	return append(data, '\n'), nil
}

// RenderYAML renders invocations as YAML.
func RenderYAML(root string, invocations []Invocation) ([]byte, error) {
	doc := InvocationDocument{Version: documentVersion, Root: root, Invocations: invocations}

	var buf bytes.Buffer

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)

	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("marshaling invocations to YAML: %w", err)
	}

	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("marshaling invocations to YAML: %w", err)
	}

	return buf.Bytes(), nil
}

// DecodeDocument reads a JSON or YAML invocation document.
func DecodeDocument(data []byte, f Format) (*InvocationDocument, error) {
	var doc InvocationDocument

	switch f {
	case FormatJSON:
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("decoding JSON invocations: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("decoding YAML invocations: %w", err)
		}
	default:
		return nil, fmt.Errorf("format %s is not a data format", f)
	}

	return &doc, nil
}
