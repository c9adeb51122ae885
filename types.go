package cellgrid

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// CellScale defines how a content is resized to fit a target area.
// The integer values are part of the config format and must not change.
type CellScale int

// The supported scale types. The zero value means unset.
const (
	ScaleNone CellScale = iota + 1
	ScaleFit
	ScaleFill
	ScaleShowAll
	ScaleEnvelop
)

// CellAlign defines where a content is positioned inside a target area.
// The integer values are part of the config format and must not change.
type CellAlign int

// The supported align types. The zero value means unset.
const (
	AlignNone CellAlign = iota + 1
	AlignCenter
	AlignCenterTop
	AlignCenterBottom
	AlignLeftCenter
	AlignLeftTop
	AlignLeftBottom
	AlignRightCenter
	AlignRightTop
	AlignRightBottom
)

var scaleNames = map[CellScale]string{
	ScaleNone:    "none",
	ScaleFit:     "fit",
	ScaleFill:    "fill",
	ScaleShowAll: "show-all",
	ScaleEnvelop: "envelop",
}

var alignNames = map[CellAlign]string{
	AlignNone:         "none",
	AlignCenter:       "center",
	AlignCenterTop:    "center-top",
	AlignCenterBottom: "center-bottom",
	AlignLeftCenter:   "left-center",
	AlignLeftTop:      "left-top",
	AlignLeftBottom:   "left-bottom",
	AlignRightCenter:  "right-center",
	AlignRightTop:     "right-top",
	AlignRightBottom:  "right-bottom",
}

// Valid reports whether s is one of the supported scale types.
func (s CellScale) Valid() bool {
	_, ok := scaleNames[s]
	return ok
}

func (s CellScale) String() string {
	if name, ok := scaleNames[s]; ok {
		return name
	}
	return fmt.Sprintf("CellScale(%d)", int(s))
}

// MarshalText implements encoding.TextMarshaler.
func (s CellScale) MarshalText() ([]byte, error) {
	if s == 0 {
		return []byte{}, nil
	}
	if !s.Valid() {
		return nil, fmt.Errorf("%w: unknown scale type %d", ErrInvalidConfiguration, int(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
// Both the name and the integer form are accepted.
func (s *CellScale) UnmarshalText(text []byte) error {
	v, err := parseEnum(string(text), scaleNames)
	if err != nil {
		return fmt.Errorf("%w: unknown scale type %q", ErrInvalidConfiguration, text)
	}
	*s = v
	return nil
}

// UnmarshalJSON accepts a JSON string or number.
func (s *CellScale) UnmarshalJSON(data []byte) error {
	return unmarshalJSONEnum(data, s)
}

// Valid reports whether a is one of the supported align types.
func (a CellAlign) Valid() bool {
	_, ok := alignNames[a]
	return ok
}

func (a CellAlign) String() string {
	if name, ok := alignNames[a]; ok {
		return name
	}
	return fmt.Sprintf("CellAlign(%d)", int(a))
}

// MarshalText implements encoding.TextMarshaler.
func (a CellAlign) MarshalText() ([]byte, error) {
	if a == 0 {
		return []byte{}, nil
	}
	if !a.Valid() {
		return nil, fmt.Errorf("%w: unknown align type %d", ErrInvalidConfiguration, int(a))
	}
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
// Both the name and the integer form are accepted.
func (a *CellAlign) UnmarshalText(text []byte) error {
	v, err := parseEnum(string(text), alignNames)
	if err != nil {
		return fmt.Errorf("%w: unknown align type %q", ErrInvalidConfiguration, text)
	}
	*a = v
	return nil
}

// UnmarshalJSON accepts a JSON string or number.
func (a *CellAlign) UnmarshalJSON(data []byte) error {
	return unmarshalJSONEnum(data, a)
}

// parseEnum resolves an enum value from its name or its integer form.
// An empty string resolves to the zero (unset) value.
func parseEnum[E ~int](text string, names map[E]string) (E, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, nil
	}
	if n, err := strconv.Atoi(text); err == nil {
		if _, ok := names[E(n)]; ok {
			return E(n), nil
		}
		return 0, fmt.Errorf("unknown value %d", n)
	}
	key := strings.ToLower(strings.ReplaceAll(text, "_", "-"))
	for v, name := range names {
		if name == key || strings.ReplaceAll(name, "-", "") == key {
			return v, nil
		}
	}
	return 0, fmt.Errorf("unknown value %q", text)
}

// unmarshalJSONEnum routes JSON numbers and strings to UnmarshalText.
func unmarshalJSONEnum(data []byte, u interface{ UnmarshalText([]byte) error }) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		return u.UnmarshalText([]byte(s))
	}
	return u.UnmarshalText(data)
}
