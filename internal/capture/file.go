package capture

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"

	// Labels are occasionally scanned to TIFF; register the decoder.
	_ "golang.org/x/image/tiff"
)

// LoadFile decodes a user-picked image file into the same representation a
// device capture produces. EXIF orientation is honored so phone photos come
// in upright.
func LoadFile(path string) (image.Image, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("load image %s: %w", path, err)
	}
	return img, nil
}
