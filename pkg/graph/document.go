package graph

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/golang/snappy"
	"gopkg.in/yaml.v3"
)

var (
	ErrDuplicateNode = fmt.Errorf("duplicate node name")
	ErrUnknownName   = fmt.Errorf("unknown node name")
)

// Document is the on-disk description of a containment graph. Node names
// must be unique across the whole document, including nested children.
type Document struct {
	Nodes       []NodeSpec       `yaml:"nodes" validate:"required,min=1,dive"`
	Connections []ConnectionSpec `yaml:"connections" validate:"omitempty,dive"`
}

// NodeSpec declares one node and, recursively, its composition children.
type NodeSpec struct {
	Name     string     `yaml:"name" validate:"required,max=128"`
	Children []NodeSpec `yaml:"children,omitempty" validate:"omitempty,dive"`
}

// ConnectionSpec declares one interface-connection edge by node name.
type ConnectionSpec struct {
	From        string `yaml:"from" validate:"required"`
	To          string `yaml:"to" validate:"required"`
	Shallow     bool   `yaml:"shallow,omitempty"`
	Conditional bool   `yaml:"conditional,omitempty"`
}

// LoadDocument parses a YAML graph document from r.
func LoadDocument(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse document: %w", err)
	}
	return &doc, nil
}

// LoadFile loads a graph document from path. Files with a ".snappy"
// extension are decompressed with snappy block encoding first.
func LoadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if filepath.Ext(path) == ".snappy" {
		data, err = snappy.Decode(nil, data)
		if err != nil {
			return nil, fmt.Errorf("failed to decompress %s: %w", path, err)
		}
	}
	return LoadDocument(strings.NewReader(string(data)))
}

// WriteFile serializes the document to path as YAML, compressing with
// snappy when the path carries a ".snappy" extension.
func (d *Document) WriteFile(path string) error {
	data, err := yaml.Marshal(d)
	if err != nil {
		return fmt.Errorf("failed to marshal document: %w", err)
	}
	if filepath.Ext(path) == ".snappy" {
		data = snappy.Encode(nil, data)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// Build constructs a Graph from the document and returns it together with
// the name→id mapping. Duplicate node names and connections referencing
// undeclared names are build errors.
func (d *Document) Build() (*Graph, map[string]NodeID, error) {
	g := NewGraph()
	ids := make(map[string]NodeID)

	var insert func(spec NodeSpec, parent NodeID, hasParent bool) error
	insert = func(spec NodeSpec, parent NodeID, hasParent bool) error {
		if _, exists := ids[spec.Name]; exists {
			return fmt.Errorf("node %q: %w", spec.Name, ErrDuplicateNode)
		}
		id := g.AddNode(spec.Name)
		ids[spec.Name] = id
		if hasParent {
			if _, err := g.AddChild(parent, id); err != nil {
				return err
			}
		}
		for _, child := range spec.Children {
			if err := insert(child, id, true); err != nil {
				return err
			}
		}
		return nil
	}

	for _, spec := range d.Nodes {
		if err := insert(spec, 0, false); err != nil {
			return nil, nil, err
		}
	}

	for _, conn := range d.Connections {
		from, ok := ids[conn.From]
		if !ok {
			return nil, nil, fmt.Errorf("connection from %q: %w", conn.From, ErrUnknownName)
		}
		to, ok := ids[conn.To]
		if !ok {
			return nil, nil, fmt.Errorf("connection to %q: %w", conn.To, ErrUnknownName)
		}
		opts := ConnectOptions{Shallow: conn.Shallow, Conditional: conn.Conditional}
		if _, err := g.ConnectWithOptions(from, to, opts); err != nil {
			return nil, nil, err
		}
	}

	return g, ids, nil
}
