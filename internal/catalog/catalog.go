// Package catalog loads every layer's asset variants into memory once and
// serves them read-only afterwards.
package catalog

import (
	"errors"
	"fmt"
	"image"
	"math"
)

var (
	ErrMissingLayerSource = errors.New("layer source missing or unreadable")
	ErrEmptyLayer         = errors.New("layer has no variants")
	ErrDecodeVariant      = errors.New("cannot decode variant")
	ErrDuplicateLayer     = errors.New("duplicate layer name")
	ErrDuplicateVariant   = errors.New("duplicate variant id")
)

// Layer is one named stage of the composite. Slice order is paint order,
// bottom first.
type Layer struct {
	Name string
	Dir  string
}

// Variant is one selectable asset of a layer, keyed by its filename.
type Variant struct {
	ID    string
	Image image.Image
}

// Catalog indexes variants per layer. It is immutable after construction and
// safe to share between goroutines.
type Catalog struct {
	layers   []Layer
	variants map[string][]Variant
	byID     map[string]map[string]image.Image
}

// New builds a catalog from already decoded variants. Every layer needs at
// least one variant and variant ids must be unique within their layer.
func New(layers []Layer, variants map[string][]Variant) (*Catalog, error) {
	c := &Catalog{
		layers:   append([]Layer(nil), layers...),
		variants: make(map[string][]Variant, len(layers)),
		byID:     make(map[string]map[string]image.Image, len(layers)),
	}
	for _, l := range layers {
		if _, dup := c.variants[l.Name]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateLayer, l.Name)
		}
		vs := variants[l.Name]
		if len(vs) == 0 {
			return nil, fmt.Errorf("%w: %s (%s)", ErrEmptyLayer, l.Name, l.Dir)
		}
		ids := make(map[string]image.Image, len(vs))
		for _, v := range vs {
			if _, dup := ids[v.ID]; dup {
				return nil, fmt.Errorf("%w: %s/%s", ErrDuplicateVariant, l.Name, v.ID)
			}
			ids[v.ID] = v.Image
		}
		c.variants[l.Name] = append([]Variant(nil), vs...)
		c.byID[l.Name] = ids
	}
	return c, nil
}

// Layers returns the configured layers in paint order.
func (c *Catalog) Layers() []Layer {
	return append([]Layer(nil), c.layers...)
}

func (c *Catalog) LayerNames() []string {
	out := make([]string, len(c.layers))
	for i, l := range c.layers {
		out[i] = l.Name
	}
	return out
}

// VariantIDs lists the variant ids of layer in catalog order.
func (c *Catalog) VariantIDs(layer string) []string {
	vs := c.variants[layer]
	out := make([]string, len(vs))
	for i, v := range vs {
		out[i] = v.ID
	}
	return out
}

// Image returns the decoded pixels of one variant.
func (c *Catalog) Image(layer, id string) (image.Image, bool) {
	img, ok := c.byID[layer][id]
	return img, ok
}

// MaxCombinations is the product of every layer's variant count, saturating
// at math.MaxInt. Requesting more unique NFTs than this can never succeed.
func (c *Catalog) MaxCombinations() int {
	if len(c.layers) == 0 {
		return 0
	}
	total := 1
	for _, l := range c.layers {
		n := len(c.variants[l.Name])
		if total > math.MaxInt/n {
			return math.MaxInt
		}
		total *= n
	}
	return total
}
