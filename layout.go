package cellgrid

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/esimov/cellgrid/utils"
	"gopkg.in/yaml.v3"
)

// Format is the serialization format of a layout document.
type Format string

// The supported layout document formats.
const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
	FormatJSON Format = "json"
)

// The supported content filters.
const (
	FilterGrayscale = "grayscale"
	FilterBlur      = "blur"
	FilterDither    = "dither"
)

var filters = []string{FilterGrayscale, FilterBlur, FilterDither}

// Layout is a layout document: the grid of cells and the contents placed in them.
type Layout struct {
	Grid     CellConfig    `yaml:"grid" json:"grid" toml:"grid"`
	Contents []ContentSpec `yaml:"contents,omitempty" json:"contents,omitempty" toml:"contents,omitempty"`
}

// ContentSpec places a single content in the cell called Cell.
type ContentSpec struct {
	Cell   string `yaml:"cell" json:"cell" toml:"cell"`
	Src    string `yaml:"src" json:"src" toml:"src"`
	Filter string `yaml:"filter,omitempty" json:"filter,omitempty" toml:"filter,omitempty"`

	ContentConfig `yaml:",inline"`
}

// FormatOf returns the layout format matching the file extension of path.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	case ".json":
		return FormatJSON, nil
	}
	return "", fmt.Errorf("unsupported layout file: %q", filepath.Base(path))
}

// LoadLayout reads and validates the layout document found at path.
func LoadLayout(path string) (*Layout, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("unable to open the layout file: %w", err)
	}
	defer f.Close()

	return DecodeLayout(f, format)
}

// DecodeLayout decodes a layout document and validates it.
// Unknown keys are rejected in every format.
func DecodeLayout(r io.Reader, format Format) (*Layout, error) {
	var l Layout

	switch format {
	case FormatYAML, "":
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(&l); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("could not decode the yaml layout: %w", err)
		}
	case FormatTOML:
		md, err := toml.NewDecoder(r).Decode(&l)
		if err != nil {
			return nil, fmt.Errorf("could not decode the toml layout: %w", err)
		}
		for _, key := range md.Undecoded() {
			// Inline padding tables are consumed by PaddingSpec.UnmarshalTOML.
			if len(key) > 1 && key[len(key)-2] == "padding" {
				continue
			}
			return nil, fmt.Errorf("could not decode the toml layout: unknown key %q", key.String())
		}
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&l); err != nil {
			return nil, fmt.Errorf("could not decode the json layout: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported layout format: %q", format)
	}

	if err := l.Validate(); err != nil {
		return nil, err
	}
	return &l, nil
}

// Validate checks the enum values of the grid and of the contents and that
// every content refers to an existing cell. The returned error wraps
// ErrInvalidConfiguration.
func (l *Layout) Validate() error {
	names := make(map[string]struct{})

	var check func(cfg *CellConfig, path string) error
	check = func(cfg *CellConfig, path string) error {
		if cfg.Name != "" {
			path = cfg.Name
		}
		names[cfg.Name] = struct{}{}
		if err := validateEnums(cfg.Scale, cfg.Align); err != nil {
			return fmt.Errorf("cell %q: %w", path, err)
		}
		for i := range cfg.Cells {
			if err := check(&cfg.Cells[i], fmt.Sprintf("%s.cells[%d]", path, i)); err != nil {
				return err
			}
		}
		return nil
	}
	if err := check(&l.Grid, "grid"); err != nil {
		return err
	}

	for i, c := range l.Contents {
		if _, ok := names[c.Cell]; !ok {
			return fmt.Errorf("%w: contents[%d]: unknown cell %q", ErrInvalidConfiguration, i, c.Cell)
		}
		if c.Src == "" {
			return fmt.Errorf("%w: contents[%d]: missing src", ErrInvalidConfiguration, i)
		}
		if c.Filter != "" && !utils.Contains(filters, c.Filter) {
			return fmt.Errorf("%w: contents[%d]: unknown filter %q", ErrInvalidConfiguration, i, c.Filter)
		}
		if err := validateEnums(c.Scale, c.Align); err != nil {
			return fmt.Errorf("contents[%d]: %w", i, err)
		}
	}
	return nil
}

func validateEnums(scale CellScale, align CellAlign) error {
	if scale != 0 && !scale.Valid() {
		return fmt.Errorf("%w: unknown scale type: %v", ErrInvalidConfiguration, scale)
	}
	if align != 0 && !align.Valid() {
		return fmt.Errorf("%w: unknown align type: %v", ErrInvalidConfiguration, align)
	}
	return nil
}
