package cellgrid

import "errors"

// ErrInvalidConfiguration is returned when a scale or align type is outside
// of the supported set. Tree construction never returns it; it surfaces only
// when the value is actually used or decoded.
var ErrInvalidConfiguration = errors.New("invalid configuration")
