package cellgrid

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Float returns a pointer to v. It is a helper for filling the optional
// fields of the specs from Go code.
func Float(v float64) *float64 {
	return &v
}

// RectSpec is a rectangle where every field is optional.
// A nil field means the value was omitted by the author.
type RectSpec struct {
	X      *float64 `yaml:"x,omitempty" json:"x,omitempty" toml:"x,omitempty"`
	Y      *float64 `yaml:"y,omitempty" json:"y,omitempty" toml:"y,omitempty"`
	Width  *float64 `yaml:"width,omitempty" json:"width,omitempty" toml:"width,omitempty"`
	Height *float64 `yaml:"height,omitempty" json:"height,omitempty" toml:"height,omitempty"`
}

// Clone returns a deep copy of the spec.
func (r *RectSpec) Clone() *RectSpec {
	if r == nil {
		return nil
	}
	return &RectSpec{
		X:      cloneFloat(r.X),
		Y:      cloneFloat(r.Y),
		Width:  cloneFloat(r.Width),
		Height: cloneFloat(r.Height),
	}
}

// PaddingSpec is either a scalar inset applied on every side or a
// fractional rectangle. When Rect is nil the scalar Value is used.
type PaddingSpec struct {
	Value float64
	Rect  *RectSpec
}

// Inset returns a scalar padding spec.
func Inset(v float64) *PaddingSpec {
	return &PaddingSpec{Value: v}
}

// InsetRect returns a rectangular padding spec.
func InsetRect(r RectSpec) *PaddingSpec {
	return &PaddingSpec{Rect: &r}
}

// Clone returns a deep copy of the spec.
func (p *PaddingSpec) Clone() *PaddingSpec {
	if p == nil {
		return nil
	}
	return &PaddingSpec{Value: p.Value, Rect: p.Rect.Clone()}
}

// UnmarshalYAML decodes a padding given as a number or a mapping.
func (p *PaddingSpec) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		p.Rect = nil
		return node.Decode(&p.Value)
	}
	var r RectSpec
	if err := node.Decode(&r); err != nil {
		return err
	}
	p.Value, p.Rect = 0, &r
	return nil
}

// MarshalYAML encodes the padding back to its authored form.
func (p PaddingSpec) MarshalYAML() (any, error) {
	if p.Rect != nil {
		return p.Rect, nil
	}
	return p.Value, nil
}

// UnmarshalJSON decodes a padding given as a number or an object.
func (p *PaddingSpec) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '{' {
		var r RectSpec
		if err := json.Unmarshal(data, &r); err != nil {
			return err
		}
		p.Value, p.Rect = 0, &r
		return nil
	}
	p.Rect = nil
	return json.Unmarshal(data, &p.Value)
}

// MarshalJSON encodes the padding back to its authored form.
func (p PaddingSpec) MarshalJSON() ([]byte, error) {
	if p.Rect != nil {
		return json.Marshal(p.Rect)
	}
	return json.Marshal(p.Value)
}

// UnmarshalTOML decodes a padding given as a number or an inline table.
func (p *PaddingSpec) UnmarshalTOML(data any) error {
	switch v := data.(type) {
	case int64:
		p.Value, p.Rect = float64(v), nil
	case float64:
		p.Value, p.Rect = v, nil
	case map[string]any:
		r := RectSpec{}
		for key, val := range v {
			f, err := tomlFloat(val)
			if err != nil {
				return fmt.Errorf("padding.%s: %w", key, err)
			}
			switch key {
			case "x":
				r.X = f
			case "y":
				r.Y = f
			case "width":
				r.Width = f
			case "height":
				r.Height = f
			default:
				return fmt.Errorf("padding: unknown key %q", key)
			}
		}
		p.Value, p.Rect = 0, &r
	default:
		return fmt.Errorf("padding: unsupported value %v", data)
	}
	return nil
}

// OffsetSpec is a translation where each axis is optional.
type OffsetSpec struct {
	X *float64 `yaml:"x,omitempty" json:"x,omitempty" toml:"x,omitempty"`
	Y *float64 `yaml:"y,omitempty" json:"y,omitempty" toml:"y,omitempty"`
}

// Clone returns a deep copy of the spec.
func (o *OffsetSpec) Clone() *OffsetSpec {
	if o == nil {
		return nil
	}
	return &OffsetSpec{X: cloneFloat(o.X), Y: cloneFloat(o.Y)}
}

// DebugConfig is a cosmetic passthrough used by renderers to outline cells.
// It has no effect on the layout.
type DebugConfig struct {
	Color uint32 `yaml:"color,omitempty" json:"color,omitempty" toml:"color,omitempty"`
	Fill  bool   `yaml:"fill,omitempty" json:"fill,omitempty" toml:"fill,omitempty"`
}

func cloneFloat(f *float64) *float64 {
	if f == nil {
		return nil
	}
	v := *f
	return &v
}

func tomlFloat(v any) (*float64, error) {
	switch n := v.(type) {
	case int64:
		return Float(float64(n)), nil
	case float64:
		return Float(n), nil
	}
	return nil, fmt.Errorf("expected a number, got %T", v)
}
