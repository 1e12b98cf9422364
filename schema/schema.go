/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package schema

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// File is a parsed schema document.
type File struct {
	Version string       `yaml:"version"`
	Types   []Definition `yaml:"types"`
}

// Definition lists the properties of one type.
type Definition struct {
	Type       string        `yaml:"type"`
	Bucket     string        `yaml:"bucket,omitempty"`
	Properties []PropertyDef `yaml:"properties"`
}

// PropertyDef is the YAML form of one property.
type PropertyDef struct {
	Name     string `yaml:"name"`
	Key      string `yaml:"key,omitempty"`
	Doc      string `yaml:"doc,omitempty"`
	ReadOnly bool   `yaml:"readonly,omitempty"`
	// Format is a strfmt format name such as email, uuid or date-time.
	Format  string `yaml:"format,omitempty"`
	Default any    `yaml:"default,omitempty"`
}

// LoadFile loads and parses a YAML schema file from the given path.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema file %s: %w", path, err)
	}

	return Parse(data)
}

// Parse parses YAML data into a File.
func Parse(data []byte) (*File, error) {
	var f File

	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse schema YAML: %w", err)
	}

	applyDefaults(&f)

	return &f, nil
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(f *File) {
	if f.Version == "" {
		f.Version = "1"
	}

	for i := range f.Types {
		d := &f.Types[i]
		if d.Bucket == "" {
			d.Bucket = d.Type
		}
		for j := range d.Properties {
			p := &d.Properties[j]
			if p.Key == "" {
				p.Key = p.Name
			}
		}
	}
}

// Marshal serializes a File to YAML.
func Marshal(f *File) ([]byte, error) {
	return yaml.Marshal(f)
}

// WriteFile writes a File to the given path.
func WriteFile(f *File, path string) error {
	data, err := Marshal(f)
	if err != nil {
		return fmt.Errorf("failed to marshal schema: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write schema file %s: %w", path, err)
	}

	return nil
}

// Lookup returns the definition of typeName.
func (f *File) Lookup(typeName string) (*Definition, bool) {
	for i := range f.Types {
		if f.Types[i].Type == typeName {
			return &f.Types[i], true
		}
	}
	return nil, false
}
