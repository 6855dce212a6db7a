// Package compose flattens the chosen variants of a combination into one
// image and writes it to disk.
package compose

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	"github.com/cenkalti/dominantcolor"
	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/draw"
)

var ErrNoLayers = errors.New("nothing to composite")

// Composite copies the bottom layer onto a canvas of its size and pastes each
// following layer at the origin with alpha-aware Over blending. Pixels of
// upper layers outside the canvas are clipped.
func Composite(layers []image.Image) (*image.NRGBA, error) {
	if len(layers) == 0 || layers[0] == nil {
		return nil, ErrNoLayers
	}
	base := layers[0]
	canvas := image.NewNRGBA(image.Rect(0, 0, base.Bounds().Dx(), base.Bounds().Dy()))
	draw.Draw(canvas, canvas.Bounds(), base, base.Bounds().Min, draw.Src)

	for i, img := range layers[1:] {
		if img == nil {
			return nil, fmt.Errorf("layer %d has no image", i+1)
		}
		draw.Draw(canvas, canvas.Bounds(), img, img.Bounds().Min, draw.Over)
	}
	return canvas, nil
}

// DominantHex returns the most prominent colour of img as #rrggbb.
func DominantHex(img image.Image) string {
	c, _ := colorful.MakeColor(dominantcolor.Find(img))
	return c.Hex()
}

// FileName is the output name of the n-th NFT, n starting at 1.
func FileName(n int) string {
	return fmt.Sprintf("nft_%d.png", n)
}

// Writer stores flattened NFTs as PNG files in one directory.
type Writer struct {
	Dir string
}

// NewWriter creates dir if needed.
func NewWriter(dir string) (*Writer, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	return &Writer{Dir: dir}, nil
}

// Save writes img as the n-th NFT and returns its path.
func (w *Writer) Save(n int, img image.Image) (string, error) {
	path := filepath.Join(w.Dir, FileName(n))
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return "", fmt.Errorf("encode %s: %w", path, err)
	}
	return path, f.Close()
}
