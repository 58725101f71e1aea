package processing

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"math"
	"os"

	"github.com/disintegration/imaging"
	"github.com/nfnt/resize"
	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ImageLoadError is returned when an image file cannot be opened or decoded
type ImageLoadError struct {
	Path string
	Err  error
}

func (e *ImageLoadError) Error() string {
	return fmt.Sprintf("cannot load image %s: %v", e.Path, e.Err)
}

func (e *ImageLoadError) Unwrap() error {
	return e.Err
}

// LoadImage decodes the image at path and rotates/flips it upright according
// to its EXIF orientation tag
func LoadImage(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, &ImageLoadError{Path: path, Err: err}
	}
	defer file.Close()

	img, err := imaging.Decode(file, imaging.AutoOrientation(true))
	if err != nil {
		return nil, &ImageLoadError{Path: path, Err: err}
	}
	return img, nil
}

// ScaledHeight keeps the aspect ratio of a width x height image resized to newWidth
func ScaledHeight(width, height, newWidth int) int {
	if width <= 0 {
		return 0
	}
	h := int(math.Round(float64(height) * float64(newWidth) / float64(width)))
	if h < 1 {
		h = 1
	}
	return h
}

// ResizeToWidth always resizes (up or down) so the result is exactly width pixels wide
func ResizeToWidth(img image.Image, width int) image.Image {
	size := img.Bounds().Size()
	height := ScaledHeight(size.X, size.Y, width)
	return resize.Resize(uint(width), uint(height), img, resize.Bilinear)
}

// ReadImage loads the image at path and resizes it to width
func ReadImage(path string, width int) (image.Image, error) {
	img, err := LoadImage(path)
	if err != nil {
		return nil, err
	}
	if img.Bounds().Dx() == 0 || img.Bounds().Dy() == 0 {
		return nil, &ImageLoadError{Path: path, Err: fmt.Errorf("empty image")}
	}
	return ResizeToWidth(img, width), nil
}

// ToRGB copies img into an RGBA buffer with its origin at (0,0)
func ToRGB(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Rect.Min == (image.Point{}) {
		return rgba
	}
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	return rgba
}

// EncodeJPEG produces the bytes go-face expects as input
func EncodeJPEG(img image.Image, quality int) ([]byte, error) {
	buf := bytes.Buffer{}
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
