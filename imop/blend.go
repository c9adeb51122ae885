// Package imop implements the Porter-Duff composition operations
// used for mixing a graphic element with its backdrop.
// Porter and Duff presented in their paper 12 different composition operation,
// but the image/draw core package implements only the source-over-destination and source.
// This package is aimed to overcome the missing composite operations.
//
// The renderer uses it to paint the contents of a cell onto the canvas,
// clipped to the cell area.
package imop

import (
	"github.com/esimov/cellgrid/utils"
)

// The supported blend modes.
const (
	Darken   = "darken"
	Lighten  = "lighten"
	Multiply = "multiply"
	Screen   = "screen"
	Overlay  = "overlay"
)

var blendModes = []string{Darken, Lighten, Multiply, Screen, Overlay}

// IsValidBlend reports whether mode is one of the supported blend modes.
func IsValidBlend(mode string) bool {
	return utils.Contains(blendModes, mode)
}

// Blend holds the currently active blend mode.
type Blend struct {
	OpType string
}

// NewBlend initializes a new Blend.
func NewBlend() *Blend {
	return &Blend{}
}

// Set activates one of the supported blend modes.
// Unsupported modes are ignored.
func (o *Blend) Set(opType string) {
	if IsValidBlend(opType) {
		o.OpType = opType
	}
}

// Get returns the currently active blend mode.
func (o *Blend) Get() string {
	return o.OpType
}

// apply mixes a backdrop channel cb with a source channel cs. Both are in [0, 1].
func (o *Blend) apply(cb, cs float64) float64 {
	switch o.OpType {
	case Darken:
		return utils.Min(cb, cs)
	case Lighten:
		return utils.Max(cb, cs)
	case Multiply:
		return cb * cs
	case Screen:
		return 1 - (1-cb)*(1-cs)
	case Overlay:
		if cb <= 0.5 {
			return 2 * cb * cs
		}
		return 1 - 2*(1-cb)*(1-cs)
	}
	return cs
}
