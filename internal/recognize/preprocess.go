package recognize

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"stockscan/pkg/geometry"
)

// contrastFactor is the linear stretch applied around the midpoint. Label
// print is low-contrast under warehouse lighting; 1.5 was tuned on the
// original capture set.
const contrastFactor = 1.5

// Crop copies the region into a new buffer of exactly region.Width ×
// region.Height pixels. The source image is never modified.
func Crop(img image.Image, region geometry.RectInt) (*image.RGBA, error) {
	region = region.Clamp(img.Bounds())
	if region.Empty() {
		return nil, fmt.Errorf("crop region %+v is outside the image", region)
	}

	src := region.ToImageRect()
	out := image.NewRGBA(image.Rect(0, 0, region.Width, region.Height))
	for y := src.Min.Y; y < src.Max.Y; y++ {
		for x := src.Min.X; x < src.Max.X; x++ {
			out.Set(x-src.Min.X, y-src.Min.Y, img.At(x, y))
		}
	}
	return out, nil
}

// Preprocess converts a cropped label region to grayscale by luminance
// weighting (0.299R + 0.587G + 0.114B) and stretches contrast linearly
// around the 128 midpoint, clamped to [0, 255].
func Preprocess(img image.Image) *image.Gray {
	bounds := img.Bounds()
	out := image.NewGray(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			gray := math.Round(0.299*float64(r>>8) + 0.587*float64(g>>8) + 0.114*float64(b>>8))
			enhanced := (gray-128)*contrastFactor + 128
			if enhanced < 0 {
				enhanced = 0
			} else if enhanced > 255 {
				enhanced = 255
			}
			out.SetGray(x-bounds.Min.X, y-bounds.Min.Y, color.Gray{Y: uint8(enhanced + 0.5)})
		}
	}
	return out
}
