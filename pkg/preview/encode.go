package preview

import (
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/HugoSmits86/nativewebp"
	"github.com/ftrvxmtrx/tga"
	"github.com/pkg/errors"
)

// ErrUnknownFormat is returned for an output extension with no encoder.
var ErrUnknownFormat = errors.New("preview: unknown image format")

// Encode writes img in the format named by ext (".webp", ".tga" or ".png").
func Encode(w io.Writer, ext string, img image.Image) error {
	var err error
	switch strings.ToLower(ext) {
	case ".webp":
		err = nativewebp.Encode(w, img, nil)
	case ".tga":
		err = tga.Encode(w, img)
	case ".png":
		err = png.Encode(w, img)
	default:
		return errors.Wrapf(ErrUnknownFormat, "%q", ext)
	}
	return errors.Wrapf(err, "preview: encode %s", ext)
}

// Save encodes img to path, picking the format from its extension.
func Save(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "preview: create")
	}
	if err := Encode(f, filepath.Ext(path), img); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	return errors.Wrap(f.Close(), "preview: close")
}
