package menu

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// File is the on-disk shape of a menu configuration.
//
//	groups:
//	  - key: basic-data
//	    title: 기초자료
//	    items:
//	      - text: 상품 등록
//	        icon: fas fa-box
//	        href: /stations-manage/product-registration/
//	shortcuts:
//	  - name: basic-data
//	    group: basic-data
//	    title: 기초자료
type File struct {
	Groups    []Group    `yaml:"groups"`
	Shortcuts []Shortcut `yaml:"shortcuts,omitempty"`
}

// Load builds a registry from the YAML file at path. An empty path yields the
// built-in configuration.
func Load(path string) (*Registry, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read menu file: %w", err)
	}
	r, err := Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return r, nil
}

// Decode parses a YAML menu configuration and validates it. When the document
// declares no shortcuts, one shortcut per group is derived in group order.
func Decode(r io.Reader) (*Registry, error) {
	var f File
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("%w: empty document", ErrInvalidConfig)
		}
		return nil, fmt.Errorf("decode menu: %w", err)
	}
	shortcuts := f.Shortcuts
	if len(shortcuts) == 0 {
		shortcuts = make([]Shortcut, 0, len(f.Groups))
		for _, g := range f.Groups {
			shortcuts = append(shortcuts, Shortcut{Name: g.Key, Group: g.Key, Title: g.Title})
		}
	}
	return NewRegistry(f.Groups, shortcuts)
}
