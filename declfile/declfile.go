package declfile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"mockgraph/internal/common"
	"mockgraph/internal/decl"
)

// CurrentVersion is written to files that do not name a version.
const CurrentVersion = "1"

// File is a parsed declaration file.
type File struct {
	Version string `yaml:"version"`
	// Root names the root type, resolved through a schema registry.
	Root     string              `yaml:"root,omitempty"`
	Defaults []string            `yaml:"defaults,omitempty"`
	Sets     map[string][]string `yaml:"sets,omitempty"`
}

// Load loads and parses a YAML declaration file from the given path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read declaration file %s: %w", path, err)
	}

	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return f, nil
}

// Parse parses YAML data into a File.
func Parse(data []byte) (*File, error) {
	var f File

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	// an empty document declares nothing
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse declaration YAML: %w", err)
	}

	if f.Version == "" {
		f.Version = CurrentVersion
	}

	if f.Version != CurrentVersion {
		return nil, fmt.Errorf("unsupported declaration file version %q", f.Version)
	}

	return &f, nil
}

// Lists returns the defaults followed by the declarations of set. An empty
// set name selects the defaults alone.
func (f *File) Lists(set string) ([][]string, error) {
	if set == "" {
		return [][]string{f.Defaults}, nil
	}

	lines, ok := f.Sets[set]
	if !ok {
		return nil, fmt.Errorf("no declaration set %q, have %s", set, strings.Join(f.SetNames(), ", "))
	}

	return [][]string{f.Defaults, lines}, nil
}

// SetNames returns the set names in sorted order.
func (f *File) SetNames() []string {
	names := make([]string, 0, len(f.Sets))
	for name := range f.Sets {
		names = append(names, name)
	}

	slices.Sort(names)

	return names
}

// Validate parses every declaration and returns the first grammar error,
// prefixed with the list it was found in.
func (f *File) Validate() error {
	for _, name := range append([]string{""}, f.SetNames()...) {
		lines := f.Defaults
		label := "defaults"
		if name != "" {
			lines = f.Sets[name]
			label = "set " + name
		}

		for i, line := range lines {
			if _, err := decl.Parse(line); err != nil {
				return fmt.Errorf("%s, line %d: %w", label, i+1, err)
			}
		}
	}

	return nil
}

// IsEmpty reports whether f declares nothing.
func (f *File) IsEmpty() bool {
	return common.IsEmpty(f.Defaults) && len(f.Sets) == 0
}

// Marshal serializes a File to YAML.
func Marshal(f *File) ([]byte, error) {
	return yaml.Marshal(f)
}

// WriteFile writes a File to the given path.
func WriteFile(f *File, path string) error {
	data, err := Marshal(f)
	if err != nil {
		return fmt.Errorf("failed to marshal declarations: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write declaration file %s: %w", path, err)
	}

	return nil
}
