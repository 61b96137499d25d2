package item

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

var ErrNotFound = errors.New("item: definition not found")

var validate = validator.New()

// Asset is the on-disk shape of an item definition.
type Asset struct {
	Name string `yaml:"name" validate:"required"`
	Kind string `yaml:"kind" validate:"required,oneof=mausoleum_key box_key note"`
	Text string `yaml:"text" validate:"required_if=Kind note"`
}

// DecodeAsset parses and validates one YAML item asset.
func DecodeAsset(id string, data []byte) (*Definition, error) {
	var a Asset
	if err := yaml.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("item: unmarshal %s: %w", id, err)
	}
	if err := validate.Struct(a); err != nil {
		return nil, fmt.Errorf("item: validate %s: %s", id, describeValidation(err))
	}
	kind, err := ParseKind(a.Kind, a.Text)
	if err != nil {
		return nil, fmt.Errorf("item: %s: %w", id, err)
	}
	return &Definition{ID: id, Name: a.Name, Kind: kind}, nil
}

func describeValidation(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, e := range verrs {
		parts = append(parts, fmt.Sprintf("%s failed %q", strings.ToLower(e.Field()), e.Tag()))
	}
	return strings.Join(parts, ", ")
}

// Catalog indexes definitions by id (the asset file name without extension).
type Catalog struct {
	defs map[string]*Definition
}

func NewCatalog(defs ...*Definition) *Catalog {
	c := &Catalog{defs: make(map[string]*Definition, len(defs))}
	for _, d := range defs {
		if d != nil {
			c.defs[d.ID] = d
		}
	}
	return c
}

// LoadCatalog decodes every .yaml/.yml file in dir.
func LoadCatalog(fsys fs.FS, dir string) (*Catalog, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("item: read %s: %w", dir, err)
	}

	c := NewCatalog()
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(path.Ext(entry.Name()))
		if ext != ".yaml" && ext != ".yml" {
			continue
		}
		data, err := fs.ReadFile(fsys, path.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("item: read %s: %w", entry.Name(), err)
		}
		id := strings.TrimSuffix(entry.Name(), path.Ext(entry.Name()))
		def, err := DecodeAsset(id, data)
		if err != nil {
			return nil, err
		}
		c.defs[id] = def
	}
	return c, nil
}

// Get returns the shared definition for id.
func (c *Catalog) Get(id string) (*Definition, error) {
	if c != nil {
		if d, ok := c.defs[id]; ok {
			return d, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrNotFound, id)
}

// IDs returns the sorted definition ids.
func (c *Catalog) IDs() []string {
	if c == nil {
		return nil
	}
	ids := make([]string, 0, len(c.defs))
	for id := range c.defs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.defs)
}
