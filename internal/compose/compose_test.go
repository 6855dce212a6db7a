package compose

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func solid(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func TestCompositeOverlaysBottomToTop(t *testing.T) {
	red := color.NRGBA{R: 255, A: 255}
	blue := color.NRGBA{B: 255, A: 255}
	base := solid(3, 3, red)

	top := image.NewNRGBA(image.Rect(0, 0, 3, 3))
	top.SetNRGBA(0, 0, blue)
	top.SetNRGBA(0, 1, color.NRGBA{G: 255, A: 128})
	// (1,0) stays fully transparent

	got, err := Composite([]image.Image{base, top})
	if err != nil {
		t.Fatal(err)
	}
	if got.Bounds() != base.Bounds() {
		t.Fatalf("bounds = %v, want %v", got.Bounds(), base.Bounds())
	}
	if c := got.NRGBAAt(0, 0); c != blue {
		t.Errorf("opaque top pixel = %v, want %v", c, blue)
	}
	if c := got.NRGBAAt(1, 0); c != red {
		t.Errorf("transparent top pixel = %v, want %v", c, red)
	}
	if c := got.NRGBAAt(0, 1); c.R == 255 || c.G == 0 || c.A != 255 {
		t.Errorf("half transparent top pixel not blended: %v", c)
	}
}

func TestCompositeClipsLargerLayers(t *testing.T) {
	base := solid(2, 2, color.NRGBA{R: 255, A: 255})
	big := solid(5, 5, color.NRGBA{B: 255, A: 255})
	got, err := Composite([]image.Image{base, big})
	if err != nil {
		t.Fatal(err)
	}
	if got.Bounds().Dx() != 2 || got.NRGBAAt(1, 1).B != 255 {
		t.Fatalf("unexpected clip result %v", got.Bounds())
	}
}

func TestCompositeNoLayers(t *testing.T) {
	if _, err := Composite(nil); !errors.Is(err, ErrNoLayers) {
		t.Fatalf("want ErrNoLayers, got %v", err)
	}
}

func TestWriterSave(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out", "nested")
	w, err := NewWriter(dir)
	if err != nil {
		t.Fatal(err)
	}
	path, err := w.Save(7, solid(2, 2, color.NRGBA{G: 255, A: 255}))
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Base(path) != "nft_7.png" {
		t.Fatalf("path = %s", path)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds().Dx() != 2 {
		t.Fatalf("decoded bounds %v", img.Bounds())
	}
}

func TestDominantHex(t *testing.T) {
	got := DominantHex(solid(16, 16, color.NRGBA{R: 255, A: 255}))
	if len(got) != 7 || got[0] != '#' {
		t.Fatalf("DominantHex() = %q", got)
	}
}
