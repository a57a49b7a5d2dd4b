package model

import (
	"bytes"
	"encoding/json"
	"io"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// ErrUnknownFormat is returned by Parse for file names whose extension is neither JSON nor YAML.
var ErrUnknownFormat = errors.New("unknown document format")

// ErrEmptyDocument is returned when a document contains no person at all.
var ErrEmptyDocument = errors.New("document contains no person")

// Parse decodes the persons contained in data. The format is derived from the extension of name:
// ".json" for JSON, ".yaml" or ".yml" for YAML.
func Parse(name string, data []byte) ([]Person, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json":
		return ParseJSON(data)
	case ".yaml", ".yml":
		return ParseYAML(data)
	default:
		return nil, errors.Wrapf(ErrUnknownFormat, "file %q", name)
	}
}

// ParseJSON decodes either a single JSON object or a JSON array of objects.
func ParseJSON(data []byte) ([]Person, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, ErrEmptyDocument
	}
	if trimmed[0] == '[' {
		var entries []*Person
		if err := json.Unmarshal(trimmed, &entries); err != nil {
			return nil, errors.Wrap(err, "decoding JSON array")
		}
		if len(entries) == 0 {
			return nil, ErrEmptyDocument
		}
		persons := make([]Person, 0, len(entries))
		for i, p := range entries {
			if p == nil {
				return nil, errors.Errorf("entry %d: expected an object, got null", i+1)
			}
			persons = append(persons, *p)
		}
		return persons, nil
	}
	var person Person
	if err := json.Unmarshal(trimmed, &person); err != nil {
		return nil, errors.Wrap(err, "decoding JSON object")
	}
	return []Person{person}, nil
}

// ParseYAML decodes a YAML stream. Each document holds either a single mapping or a sequence of
// mappings; the persons of all documents are returned in order. Empty and null documents are
// skipped.
func ParseYAML(data []byte) ([]Person, error) {
	var persons []Person
	dec := yaml.NewDecoder(bytes.NewReader(data))
	for n := 1; ; n++ {
		var doc yaml.Node
		err := dec.Decode(&doc)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(err, "decoding YAML document %d", n)
		}
		if len(doc.Content) == 0 {
			continue
		}
		found, err := decodeYAMLRoot(doc.Content[0])
		if err != nil {
			return nil, errors.Wrapf(err, "YAML document %d", n)
		}
		persons = append(persons, found...)
	}
	if len(persons) == 0 {
		return nil, ErrEmptyDocument
	}
	return persons, nil
}

func decodeYAMLRoot(root *yaml.Node) ([]Person, error) {
	switch {
	case root.Kind == yaml.ScalarNode && root.ShortTag() == "!!null":
		return nil, nil
	case root.Kind == yaml.MappingNode:
		var person Person
		if err := root.Decode(&person); err != nil {
			return nil, errors.Wrap(err, "decoding mapping")
		}
		return []Person{person}, nil
	case root.Kind == yaml.SequenceNode:
		persons := make([]Person, 0, len(root.Content))
		for _, item := range root.Content {
			if item.Kind != yaml.MappingNode {
				return nil, errors.Errorf("line %d: expected a mapping", item.Line)
			}
			var person Person
			if err := item.Decode(&person); err != nil {
				return nil, errors.Wrap(err, "decoding sequence")
			}
			persons = append(persons, person)
		}
		return persons, nil
	default:
		return nil, errors.Errorf("line %d: expected a mapping or a sequence of mappings", root.Line)
	}
}

// JSON encodes the person. Fields that were never set are left out.
func (p *Person) JSON() ([]byte, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return nil, errors.Wrap(err, "encoding person")
	}
	return data, nil
}
