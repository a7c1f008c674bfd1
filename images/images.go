// Package images applies EXIF orientation transforms and produces the
// thumbnails embedded into KMZ and Excel outputs.
package images

import (
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"

	"github.com/R3natoky/photoutm/option"
)

// ApplyOrientation reorients an image according to its EXIF orientation
// code (2-8). Code 1, unknown codes and absent orientation return the
// image unchanged.
func ApplyOrientation(img image.Image, orientation option.Option[int]) image.Image {
	if orientation.IsNone() {
		return img
	}

	switch orientation.Get() {
	case 2:
		return imaging.FlipH(img)
	case 3:
		return imaging.Rotate180(img)
	case 4:
		return imaging.FlipV(img)
	case 5:
		return imaging.Transpose(img)
	case 6:
		return imaging.Rotate270(img)
	case 7:
		return imaging.Transverse(img)
	case 8:
		return imaging.Rotate90(img)
	default:
		return img
	}
}

// LoadOriented opens an image file and applies its orientation.
func LoadOriented(path string, orientation option.Option[int]) (image.Image, error) {
	img, err := imaging.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open image %s: %w", path, err)
	}
	return ApplyOrientation(img, orientation), nil
}

// Thumbnail scales an image down to the given width, keeping the aspect
// ratio. Images already narrower are returned as-is.
func Thumbnail(img image.Image, width int) image.Image {
	if img.Bounds().Dx() <= width {
		return img
	}
	return imaging.Resize(img, width, 0, imaging.Lanczos)
}

// SaveJPEGTemp writes an image to a uniquely named JPEG in the system
// temp directory and returns its path. The caller owns the file.
func SaveJPEGTemp(img image.Image, prefix string, quality int) (string, error) {
	path := filepath.Join(os.TempDir(), fmt.Sprintf("%s_%s.jpg", prefix, uuid.NewString()))
	if err := imaging.Save(img, path, imaging.JPEGQuality(quality)); err != nil {
		return "", fmt.Errorf("save temp image: %w", err)
	}
	return path, nil
}
