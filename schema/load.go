package schema

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// File is the layout of a YAML model file.
//
//	models:
//	  - name: Profile
//	    table: profile
//	    fields:
//	      - {name: id, type: int, generated: true}
//	      - {name: address, type: string}
//	      - {name: account_id, type: int}
//	    edges:
//	      - {name: account, type: Account, relation: belongs_to, from: profile.account_id, to: account.id}
type File struct {
	Models []*Model `yaml:"models"`
}

// Load decodes model descriptors from YAML and validates each of them.
func Load(r io.Reader) ([]*Model, error) {
	var f File
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("schema: decode models: %w", err)
	}
	for _, m := range f.Models {
		if err := m.Validate(); err != nil {
			return nil, err
		}
	}
	return f.Models, nil
}

// LoadFile reads model descriptors from a YAML file.
func LoadFile(path string) ([]*Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("schema: open models: %w", err)
	}
	defer f.Close()
	return Load(f)
}
