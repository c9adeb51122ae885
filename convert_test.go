package cellgrid

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNumberToRect(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(NewRect(0, 0, 1, 1), NumberToRect(0))
	assert.Equal(NewRect(0.25, 0.25, 0.5, 0.5), NumberToRect(0.25))
	assert.Equal(NewRect(0.5, 0.5, 0, 0), NumberToRect(0.5))
}

func TestFillRect(t *testing.T) {
	tests := map[string]struct {
		spec RectSpec
		want Rect
	}{
		"empty": {
			spec: RectSpec{},
			want: NewRect(0, 0, 1, 1),
		},
		"origin only": {
			spec: RectSpec{X: Float(0.25), Y: Float(0.5)},
			want: NewRect(0.25, 0.5, 0.75, 0.5),
		},
		"size only": {
			spec: RectSpec{Width: Float(0.5), Height: Float(0.25)},
			want: NewRect(0, 0, 0.5, 0.25),
		},
		"explicit zero is not omitted": {
			spec: RectSpec{X: Float(0), Width: Float(0)},
			want: NewRect(0, 0, 0, 1),
		},
		"absolute pixels": {
			spec: RectSpec{X: Float(10), Y: Float(20), Width: Float(640), Height: Float(480)},
			want: NewRect(10, 20, 640, 480),
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.want, FillRect(tt.spec))
		})
	}
}

func TestConvertToRect(t *testing.T) {
	bounds := NewRect(10, 20, 200, 100)

	tests := map[string]struct {
		spec *PaddingSpec
		want Rect
	}{
		"nil spec keeps bounds": {
			spec: nil,
			want: bounds,
		},
		"quarter inset halves the size": {
			spec: Inset(0.25),
			want: NewRect(60, 45, 100, 50),
		},
		"half inset collapses to the center": {
			spec: Inset(0.5),
			want: NewRect(110, 70, 0, 0),
		},
		"identity rect": {
			spec: InsetRect(RectSpec{X: Float(0), Y: Float(0), Width: Float(1), Height: Float(1)}),
			want: bounds,
		},
		"partial rect": {
			spec: InsetRect(RectSpec{X: Float(0.5)}),
			want: NewRect(110, 20, 100, 100),
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.want, ConvertToRect(tt.spec, bounds))
		})
	}
}

func TestConvertToRect_Centered(t *testing.T) {
	assert := assert.New(t)

	bounds := NewRect(0, 0, 64, 32)
	r := ConvertToRect(Inset(0.25), bounds)

	assert.Equal(bounds.Width/2, r.Width)
	assert.Equal(bounds.Height/2, r.Height)
	assert.Equal(bounds.X+bounds.Width/2, r.X+r.Width/2)
	assert.Equal(bounds.Y+bounds.Height/2, r.Y+r.Height/2)
}
