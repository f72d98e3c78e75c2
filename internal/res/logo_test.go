package res

import (
	"bytes"
	"image"
	"os"
	"path/filepath"
	"testing"

	_ "image/png"
)

const sampleSVG = `<svg xmlns="http://www.w3.org/2000/svg" width="64" height="64" viewBox="0 0 64 64">
	<rect x="8" y="8" width="48" height="48" fill="#2f5496"/>
</svg>`

func TestLoadLogoRasterPassthrough(t *testing.T) {
	dir := t.TempDir()
	data := testPNG(t, 32, 32)
	path := filepath.Join(dir, "logo.png")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	l := NewLoader("")
	got := l.LoadLogo(path)
	if !bytes.Equal(got, data) {
		t.Error("expected raster logo bytes unchanged")
	}
}

func TestLoadLogoRasterizesSVG(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "logo.svg")
	if err := os.WriteFile(path, []byte(sampleSVG), 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	l := NewLoader("")
	got := l.LoadLogo(path)
	if got == nil {
		t.Fatal("expected rasterized logo bytes, got nil")
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(got))
	if err != nil {
		t.Fatalf("rasterized logo does not decode: %v", err)
	}
	if format != "png" {
		t.Errorf("expected png output, got %q", format)
	}
	if cfg.Width != logoRasterSize || cfg.Height != logoRasterSize {
		t.Errorf("expected %dx%d raster, got %dx%d", logoRasterSize, logoRasterSize, cfg.Width, cfg.Height)
	}
}

func TestLoadLogoProbesAlternateFormat(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "logo.svg"), []byte(sampleSVG), 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	l := NewLoader("")
	// Ask for the missing .png; the .svg sibling must be picked up.
	got := l.LoadLogo(filepath.Join(dir, "logo.png"))
	if got == nil {
		t.Fatal("expected alternate-format probe to find logo.svg")
	}
	if _, _, err := image.DecodeConfig(bytes.NewReader(got)); err != nil {
		t.Errorf("probed logo does not decode: %v", err)
	}
}

func TestLoadLogoMissing(t *testing.T) {
	l := NewLoader("")
	if got := l.LoadLogo(filepath.Join(t.TempDir(), "absent.png")); got != nil {
		t.Error("expected nil for a missing logo")
	}
}

func TestLoadLogoCorrupt(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "logo.png"), []byte("not an image"), 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	l := NewLoader("")
	if got := l.LoadLogo(filepath.Join(dir, "logo.png")); got != nil {
		t.Error("expected nil for an undecodable logo with no alternate")
	}
}

func TestLogoCandidates(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{in: "assets/logo.png", want: []string{"assets/logo.png", "assets/logo.svg"}},
		{in: "assets/logo.svg", want: []string{"assets/logo.svg", "assets/logo.png"}},
		{in: "assets/logo.jpg", want: []string{"assets/logo.jpg", "assets/logo.svg"}},
	}
	for _, tt := range tests {
		got := logoCandidates(tt.in)
		if len(got) != len(tt.want) {
			t.Fatalf("logoCandidates(%q): expected %v, got %v", tt.in, tt.want, got)
		}
		for i := range tt.want {
			if got[i] != tt.want[i] {
				t.Errorf("logoCandidates(%q)[%d]: expected %q, got %q", tt.in, i, tt.want[i], got[i])
			}
		}
	}
}
