package cellgrid

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	// Register the decoders of the formats accepted as content sources.
	_ "image/gif"

	"github.com/disintegration/imaging"
	"github.com/esimov/cellgrid/utils"
	"golang.org/x/image/bmp"
)

// decodeImg decodes the image file found at src.
func decodeImg(src string) (*image.NRGBA, error) {
	ctype, err := utils.DetectContentType(src)
	if err != nil {
		return nil, fmt.Errorf("could not open the content file: %w", err)
	}
	if !strings.Contains(ctype, "image") {
		return nil, fmt.Errorf("the content %q should be an image file", filepath.Base(src))
	}

	file, err := os.Open(src)
	if err != nil {
		return nil, fmt.Errorf("could not open the content file: %w", err)
	}
	defer file.Close()

	return decodeReader(file)
}

// decodeBytes decodes an image held in memory, e.g. a downloaded one.
func decodeBytes(data []byte) (*image.NRGBA, error) {
	return decodeReader(bytes.NewReader(data))
}

func decodeReader(r io.Reader) (*image.NRGBA, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("could not decode the content image: %w", err)
	}
	return imgToNRGBA(img), nil
}

// encodeImg encodes an image to a destination of type io.Writer.
// The format is chosen by the file extension when w is a file, PNG otherwise.
func encodeImg(w io.Writer, img *image.NRGBA) error {
	ext := ".png"
	if f, ok := w.(*os.File); ok && f != os.Stdout {
		ext = strings.ToLower(filepath.Ext(f.Name()))
	}
	return encodeImgAs(w, img, ext)
}

func encodeImgAs(w io.Writer, img *image.NRGBA, ext string) error {
	switch ext {
	case "", ".png":
		return png.Encode(w, img)
	case ".jpg", ".jpeg":
		return jpeg.Encode(w, img, &jpeg.Options{Quality: 100})
	case ".bmp":
		return bmp.Encode(w, img)
	default:
		return fmt.Errorf("unsupported image format: %q", ext)
	}
}

// imgToNRGBA converts any image type to *image.NRGBA with min-point at (0, 0).
func imgToNRGBA(img image.Image) *image.NRGBA {
	if src, ok := img.(*image.NRGBA); ok && src.Rect.Min == (image.Point{}) {
		return src
	}
	return imaging.Clone(img)
}
