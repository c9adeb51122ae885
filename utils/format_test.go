package utils

import (
	"image/color"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormat_DecorateText(t *testing.T) {
	assert.Equal(t, ErrorColor+"failed"+DefaultColor, DecorateText("failed", ErrorMessage))
	assert.Equal(t, SuccessColor+"done"+DefaultColor, DecorateText("done", SuccessMessage))
	assert.Equal(t, "raw", DecorateText("raw", MessageType(42)))
}

func TestFormat_FormatTime(t *testing.T) {
	tests := map[string]struct {
		d    time.Duration
		want string
	}{
		"seconds": {d: 1500 * time.Millisecond, want: "1.50s"},
		"minutes": {d: 2*time.Minute + 3*time.Second, want: "2m 3.00s"},
		"hours":   {d: 3*time.Hour + 4*time.Minute + 5*time.Second, want: "3h 4m 5.00s"},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatTime(tt.d))
		})
	}
}

func TestFormat_HexToRGBA(t *testing.T) {
	assert.Equal(t, color.NRGBA{R: 0xff, G: 0x00, B: 0x00, A: 0xff}, HexToRGBA("#ff0000"))
	assert.Equal(t, color.NRGBA{R: 0x11, G: 0x22, B: 0x33, A: 0xff}, HexToRGBA("#123"))
	assert.Equal(t, color.NRGBA{R: 0x0f, G: 0x8b, B: 0x8d, A: 0x80}, HexToRGBA("0f8b8d80"))
	assert.Equal(t, color.NRGBA{A: 0xff}, HexToRGBA("not a color"))

	_, err := ParseHexColor("#12345")
	assert.Error(t, err)
	_, err = ParseHexColor("#ggg")
	assert.Error(t, err)
	c, err := ParseHexColor(" #FFF ")
	assert.NoError(t, err)
	assert.Equal(t, color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}, c)
}

func TestFormat_Uint32ToRGBA(t *testing.T) {
	assert.Equal(t, color.NRGBA{R: 0x21, G: 0x96, B: 0xf3, A: 0xff}, Uint32ToRGBA(0x2196f3))
}
