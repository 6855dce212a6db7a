package cli

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writePNG(t *testing.T, path string, c color.NRGBA) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
}

// newProject lays out a config dir with 2 backgrounds and 3 bodies.
func newProject(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	layers := map[string]int{"backgrounds": 2, "bodies": 3}
	for name, n := range layers {
		if err := os.MkdirAll(filepath.Join(dir, "assets", name), 0o755); err != nil {
			t.Fatal(err)
		}
		for i := 1; i <= n; i++ {
			writePNG(t, filepath.Join(dir, "assets", name, fmt.Sprintf("%d.png", i)),
				color.NRGBA{R: uint8(40 * i), A: 255})
		}
	}
	cfg := `version: "1"
output_dir: out
layers:
  - name: background
    path: assets/backgrounds
  - name: body
    path: assets/bodies
weights:
  background:
    1.png: 10
`
	if err := os.WriteFile(filepath.Join(dir, "nftgen.yaml"), []byte(cfg), 0o644); err != nil {
		t.Fatal(err)
	}
	return dir
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestMaxCommand(t *testing.T) {
	dir := newProject(t)
	out, err := execute(t, "max", "--config-dir", dir)
	if err != nil {
		t.Fatalf("max: %v", err)
	}
	if !strings.Contains(out, "Maximum number of unique NFTs that can be generated: 6") {
		t.Fatalf("unexpected output:\n%s", out)
	}
}

func TestGenerateCommand(t *testing.T) {
	dir := newProject(t)
	out, err := execute(t, "generate", "--config-dir", dir, "--count", "50", "--seed", "3")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !strings.Contains(out, "6 NFTs have been generated") {
		t.Fatalf("count not clamped to 6:\n%s", out)
	}
	for i := 1; i <= 6; i++ {
		if _, err := os.Stat(filepath.Join(dir, "out", fmt.Sprintf("nft_%d.png", i))); err != nil {
			t.Errorf("nft_%d.png: %v", i, err)
		}
	}
	if _, err := os.Stat(filepath.Join(dir, "out", "nft_7.png")); !os.IsNotExist(err) {
		t.Errorf("nft_7.png should not exist")
	}
}

func TestSimulateCommand(t *testing.T) {
	dir := newProject(t)
	out, err := execute(t, "simulate", "--config-dir", dir, "--trials", "10", "--seed", "1")
	if err != nil {
		t.Fatalf("simulate: %v", err)
	}
	if !strings.Contains(out, "Simulated 10 runs of 6 NFTs (max 6)") {
		t.Fatalf("unexpected output:\n%s", out)
	}
}

func TestMissingConfig(t *testing.T) {
	_, err := execute(t, "max", "--config-dir", t.TempDir())
	if err == nil || !strings.Contains(err.Error(), "config file not found") {
		t.Fatalf("want not found error, got %v", err)
	}
}
