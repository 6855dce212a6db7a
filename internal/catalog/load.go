package catalog

import (
	"fmt"
	"image"
	"os"
	"path/filepath"

	// decoders for layer assets
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Load lists each layer directory and decodes every regular file in it.
// Entries are visited in filename order, so the catalog order is stable.
// Symlinks are followed. Subdirectories are ignored; any other file that fails to decode aborts the
// load.
func Load(layers []Layer) (*Catalog, error) {
	return build(layers, true)
}

// Index lists the variants of every layer like Load but skips decoding, so
// Image returns nil pixels. Enough for counting and sampling.
func Index(layers []Layer) (*Catalog, error) {
	return build(layers, false)
}

func build(layers []Layer, decode bool) (*Catalog, error) {
	variants := make(map[string][]Variant, len(layers))
	for _, l := range layers {
		vs, err := loadLayer(l, decode)
		if err != nil {
			return nil, err
		}
		variants[l.Name] = vs
	}
	return New(layers, variants)
}

func loadLayer(l Layer, decode bool) ([]Variant, error) {
	fi, err := os.Stat(l.Dir)
	if err != nil {
		return nil, fmt.Errorf("%w: layer %s: %v", ErrMissingLayerSource, l.Name, err)
	}
	if !fi.IsDir() {
		return nil, fmt.Errorf("%w: layer %s: %s is not a directory", ErrMissingLayerSource, l.Name, l.Dir)
	}
	entries, err := os.ReadDir(l.Dir)
	if err != nil {
		return nil, fmt.Errorf("%w: layer %s: %v", ErrMissingLayerSource, l.Name, err)
	}

	var out []Variant
	for _, e := range entries {
		path := filepath.Join(l.Dir, e.Name())
		// Stat follows symlinks; DirEntry.Type does not.
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("%w: %s/%s: %v", ErrDecodeVariant, l.Name, e.Name(), err)
		}
		if !info.Mode().IsRegular() {
			continue
		}
		if !decode {
			out = append(out, Variant{ID: e.Name()})
			continue
		}
		img, err := readImage(path)
		if err != nil {
			return nil, fmt.Errorf("%w: %s/%s: %v", ErrDecodeVariant, l.Name, e.Name(), err)
		}
		out = append(out, Variant{ID: e.Name(), Image: img})
	}
	return out, nil
}

func readImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	return img, err
}
