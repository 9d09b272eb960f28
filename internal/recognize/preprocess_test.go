package recognize

import (
	"image"
	"image/color"
	"testing"

	"stockscan/pkg/geometry"
)

func solidImage(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func TestCropExactSize(t *testing.T) {
	img := solidImage(200, 100, color.RGBA{10, 20, 30, 255})

	out, err := Crop(img, geometry.NewRectInt(50, 50, 100, 40))
	if err != nil {
		t.Fatal(err)
	}
	if got := out.Bounds(); got.Dx() != 100 || got.Dy() != 40 {
		t.Errorf("cropped size: got %dx%d, want 100x40", got.Dx(), got.Dy())
	}
}

func TestCropCopiesPixels(t *testing.T) {
	img := solidImage(50, 50, color.RGBA{0, 0, 0, 255})
	img.SetRGBA(12, 14, color.RGBA{200, 100, 50, 255})

	out, err := Crop(img, geometry.NewRectInt(10, 10, 20, 20))
	if err != nil {
		t.Fatal(err)
	}
	r, g, b, _ := out.At(2, 4).RGBA()
	if r>>8 != 200 || g>>8 != 100 || b>>8 != 50 {
		t.Errorf("pixel not copied: got (%d,%d,%d)", r>>8, g>>8, b>>8)
	}
}

func TestCropDoesNotMutateSource(t *testing.T) {
	img := solidImage(50, 50, color.RGBA{77, 77, 77, 255})
	out, err := Crop(img, geometry.NewRectInt(0, 0, 20, 20))
	if err != nil {
		t.Fatal(err)
	}
	out.SetRGBA(0, 0, color.RGBA{1, 2, 3, 255})

	r, _, _, _ := img.At(0, 0).RGBA()
	if r>>8 != 77 {
		t.Error("crop mutated the source image")
	}
}

func TestCropOutsideImage(t *testing.T) {
	img := solidImage(50, 50, color.RGBA{})
	if _, err := Crop(img, geometry.NewRectInt(100, 100, 20, 20)); err == nil {
		t.Error("expected error for region outside the image")
	}
}

func TestPreprocessGrayscaleWeights(t *testing.T) {
	// Pure red: gray = round(0.299*200) = 60, stretched = (60-128)*1.5+128 = 26.
	img := solidImage(4, 4, color.RGBA{200, 0, 0, 255})
	out := Preprocess(img)
	if got := out.GrayAt(0, 0).Y; got != 26 {
		t.Errorf("red preprocessing: got %d, want 26", got)
	}
}

func TestPreprocessContrastClamps(t *testing.T) {
	tests := []struct {
		name string
		in   color.RGBA
		want uint8
	}{
		{"white stays white", color.RGBA{255, 255, 255, 255}, 255},
		{"black stays black", color.RGBA{0, 0, 0, 255}, 0},
		{"midpoint unchanged", color.RGBA{128, 128, 128, 255}, 128},
		// gray 200 -> (200-128)*1.5+128 = 236
		{"bright stretched up", color.RGBA{200, 200, 200, 255}, 236},
		// gray 60 -> (60-128)*1.5+128 = 26
		{"dark stretched down", color.RGBA{60, 60, 60, 255}, 26},
		// gray 240 -> 296, clamped
		{"clamp high", color.RGBA{240, 240, 240, 255}, 255},
		// gray 20 -> -34, clamped
		{"clamp low", color.RGBA{20, 20, 20, 255}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Preprocess(solidImage(2, 2, tt.in))
			if got := out.GrayAt(1, 1).Y; got != tt.want {
				t.Errorf("got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestPreprocessOutputSizeMatchesInput(t *testing.T) {
	img := solidImage(37, 13, color.RGBA{90, 90, 90, 255})
	out := Preprocess(img)
	if b := out.Bounds(); b.Dx() != 37 || b.Dy() != 13 {
		t.Errorf("output size: got %dx%d, want 37x13", b.Dx(), b.Dy())
	}
}
