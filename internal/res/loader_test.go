package res

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
)

func testPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 40, G: 90, B: 160, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode test png: %v", err)
	}
	return buf.Bytes()
}

func testJPEGBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, nil); err != nil {
		t.Fatalf("failed to encode test jpeg: %v", err)
	}
	return buf.Bytes()
}

func TestLoadLocalFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "photo.png")
	data := testPNG(t, 10, 10)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	l := NewLoader("")
	res, err := l.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if res.Type != ResourceTypeImage {
		t.Errorf("expected image type, got %v", res.Type)
	}
	if res.MimeType != "image/png" {
		t.Errorf("expected image/png, got %q", res.MimeType)
	}
	if !bytes.Equal(res.Data, data) {
		t.Error("loaded bytes differ from the file contents")
	}
}

func TestLoadMissingFile(t *testing.T) {
	l := NewLoader("")
	if _, err := l.Load(filepath.Join(t.TempDir(), "absent.png")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadFromSearchPath(t *testing.T) {
	dir := t.TempDir()
	data := testPNG(t, 8, 8)
	if err := os.WriteFile(filepath.Join(dir, "logo.png"), data, 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	l := NewLoader("")
	l.AddSearchPath(dir)

	res, err := l.Load("logo.png")
	if err != nil {
		t.Fatalf("Load via search path failed: %v", err)
	}
	if !bytes.Equal(res.Data, data) {
		t.Error("search path load returned wrong bytes")
	}
}

func TestLoadDataURL(t *testing.T) {
	l := NewLoader("")

	res, err := l.Load("data:text/plain,Hello%20World")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if res.GetString() != "Hello World" {
		t.Errorf("expected Hello World, got %q", res.GetString())
	}
	if res.MimeType != "text/plain" {
		t.Errorf("expected text/plain, got %q", res.MimeType)
	}
}

func TestLoadDataURLBase64(t *testing.T) {
	l := NewLoader("")

	// "abc" in base64
	res, err := l.Load("data:image/png;base64,YWJj")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if res.GetString() != "abc" {
		t.Errorf("expected abc, got %q", res.GetString())
	}
	if res.Type != ResourceTypeImage {
		t.Errorf("expected image type from mime, got %v", res.Type)
	}
}

func TestLoadRemoteCaches(t *testing.T) {
	var hits int32
	data := testJPEGBytes(t, 12, 12)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.Header().Set("Content-Type", "image/jpeg")
		w.Write(data)
	}))
	defer srv.Close()

	l := NewLoader("")
	for i := 0; i < 3; i++ {
		res, err := l.Load(srv.URL + "/photo.jpg")
		if err != nil {
			t.Fatalf("Load %d failed: %v", i, err)
		}
		if !bytes.Equal(res.Data, data) {
			t.Fatalf("Load %d returned wrong bytes", i)
		}
	}
	if got := atomic.LoadInt32(&hits); got != 1 {
		t.Errorf("expected 1 upstream request, got %d", got)
	}
}

func TestLoadRemoteErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	l := NewLoader("")
	if _, err := l.Load(srv.URL + "/gone.jpg"); err == nil {
		t.Error("expected error for 404 response")
	}
}

func TestResolveRelativeAgainstHTTPBase(t *testing.T) {
	l := NewLoader("https://example.org/reports/index.html")
	got, err := l.resolveURL("images/banner.jpg")
	if err != nil {
		t.Fatalf("resolveURL failed: %v", err)
	}
	want := "https://example.org/reports/images/banner.jpg"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestLoadImageRejectsNonImage(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.html")
	if err := os.WriteFile(path, []byte("<html></html>"), 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	l := NewLoader("")
	if _, err := l.LoadImage(path); err == nil {
		t.Error("expected LoadImage to reject an HTML file")
	}
}
