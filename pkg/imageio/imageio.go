// Package imageio loads and saves sprite pixel buffers.
//
// Loading normalizes any registered image format to 8-bit non-premultiplied
// RGBA, synthesizing a fully opaque alpha channel for formats without one.
// Saving always writes lossless PNG so exact per-pixel values survive a
// round trip, and writes atomically: the file appears fully written or not
// at all.
package imageio

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	_ "image/gif"  // registered for decoding
	_ "image/jpeg" // registered for decoding
	"image/png"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/matzehuels/spriteforge/pkg/errors"
)

// Decode parses encoded image bytes and normalizes them to *image.NRGBA.
func Decode(data []byte) (*image.NRGBA, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeDecode, err, "decode image")
	}

	if nrgba, ok := img.(*image.NRGBA); ok && nrgba.Bounds().Min == (image.Point{}) {
		return nrgba, nil
	}

	b := img.Bounds()
	out := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), img, b.Min, draw.Src)
	return out, nil
}

// Encode serializes img to lossless PNG bytes.
func Encode(img *image.NRGBA) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, errors.Wrap(errors.ErrCodeIOWrite, err, "encode png")
	}
	return buf.Bytes(), nil
}

// Load reads the image at path and normalizes it to *image.NRGBA.
func Load(path string) (*image.NRGBA, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeIORead, err, "read %s", path)
	}

	img, err := Decode(data)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeDecode, err, "decode %s", path)
	}
	return img, nil
}

// Save writes img as PNG to path, creating intermediate directories as
// needed. The data is written to a uniquely named temp file in the target
// directory and renamed into place so readers never observe a partial
// file.
func Save(img *image.NRGBA, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrap(errors.ErrCodeIOWrite, err, "create directory %s", dir)
	}

	tmp := filepath.Join(dir, fmt.Sprintf(".%s.%s.tmp", filepath.Base(path), uuid.NewString()))
	f, err := os.Create(tmp)
	if err != nil {
		return errors.Wrap(errors.ErrCodeIOWrite, err, "create %s", tmp)
	}

	if err := png.Encode(f, img); err != nil {
		f.Close()
		_ = os.Remove(tmp)
		return errors.Wrap(errors.ErrCodeIOWrite, err, "encode %s", path)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return errors.Wrap(errors.ErrCodeIOWrite, err, "close %s", tmp)
	}

	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return errors.Wrap(errors.ErrCodeIOWrite, err, "rename to %s", path)
	}
	return nil
}
