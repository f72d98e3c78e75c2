// Package imaging decodes and preprocesses report images: dimension
// probing, header normalization, and the sequential photo pipeline.
package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"

	"golang.org/x/image/draw"
)

// Header images are normalized to this fixed size before embedding.
const (
	HeaderWidth  = 1600
	HeaderHeight = 900
)

// jpegQuality is used for every re-encode in the pipeline.
const jpegQuality = 85

// Dimensions returns the pixel size of an encoded image without decoding
// the full pixel data.
func Dimensions(data []byte) (width, height int, err error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return 0, 0, fmt.Errorf("decode image dimensions: %w", err)
	}
	return cfg.Width, cfg.Height, nil
}

// Embeddable returns bytes ready for direct embedding by the document
// writer, the writer's type tag ("JPEG", "PNG", "GIF"), and the pixel
// dimensions. Formats the writer does not read natively (webp, bmp, tiff)
// are re-encoded to PNG first.
func Embeddable(data []byte) ([]byte, string, int, int, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, "", 0, 0, fmt.Errorf("decode image: %w", err)
	}
	switch format {
	case "jpeg":
		return data, "JPEG", cfg.Width, cfg.Height, nil
	case "png":
		return data, "PNG", cfg.Width, cfg.Height, nil
	case "gif":
		return data, "GIF", cfg.Width, cfg.Height, nil
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", 0, 0, fmt.Errorf("decode %s image: %w", format, err)
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, "", 0, 0, fmt.Errorf("re-encode %s image: %w", format, err)
	}
	return buf.Bytes(), "PNG", cfg.Width, cfg.Height, nil
}

// NormalizeHeader cover-scales and center-crops arbitrary image bytes to
// exactly HeaderWidth x HeaderHeight and re-encodes them as JPEG.
func NormalizeHeader(data []byte) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode header image: %w", err)
	}

	dst := image.NewRGBA(image.Rect(0, 0, HeaderWidth, HeaderHeight))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, coverRect(img.Bounds(), HeaderWidth, HeaderHeight), draw.Over, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("encode header image: %w", err)
	}
	return buf.Bytes(), nil
}

// coverRect selects the centered source rectangle whose aspect ratio matches
// dstW:dstH, so scaling fills the target without distortion.
func coverRect(src image.Rectangle, dstW, dstH int) image.Rectangle {
	srcW := src.Dx()
	srcH := src.Dy()
	if srcW == 0 || srcH == 0 {
		return src
	}

	targetRatio := float64(dstW) / float64(dstH)
	srcRatio := float64(srcW) / float64(srcH)
	switch {
	case srcRatio > targetRatio:
		// Source is wider: crop left and right.
		w := int(float64(srcH) * targetRatio)
		x0 := src.Min.X + (srcW-w)/2
		return image.Rect(x0, src.Min.Y, x0+w, src.Max.Y)
	case srcRatio < targetRatio:
		// Source is taller: crop top and bottom.
		h := int(float64(srcW) / targetRatio)
		y0 := src.Min.Y + (srcH-h)/2
		return image.Rect(src.Min.X, y0, src.Max.X, y0+h)
	}
	return src
}

// ProcessPhotos downscales and re-encodes photos so no edge exceeds maxEdge
// pixels, one photo at a time, invoking progress after each unit. A nil
// progress callback is allowed. Any decode failure aborts the whole batch.
func ProcessPhotos(photos [][]byte, maxEdge int, progress func(done, total int)) ([][]byte, error) {
	out := make([][]byte, 0, len(photos))
	for i, p := range photos {
		scaled, err := scalePhoto(p, maxEdge)
		if err != nil {
			return nil, fmt.Errorf("photo %d: %w", i+1, err)
		}
		out = append(out, scaled)
		if progress != nil {
			progress(i+1, len(photos))
		}
	}
	return out, nil
}

func scalePhoto(data []byte, maxEdge int) ([]byte, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode photo: %w", err)
	}

	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	native := format == "jpeg" || format == "png" || format == "gif"
	if native && (maxEdge <= 0 || (w <= maxEdge && h <= maxEdge)) {
		return data, nil
	}

	dw, dh := w, h
	if maxEdge > 0 && (w > maxEdge || h > maxEdge) {
		if w >= h {
			dw = maxEdge
			dh = h * maxEdge / w
		} else {
			dh = maxEdge
			dw = w * maxEdge / h
		}
		if dw < 1 {
			dw = 1
		}
		if dh < 1 {
			dh = 1
		}
	}

	dst := image.NewRGBA(image.Rect(0, 0, dw, dh))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("encode photo: %w", err)
	}
	return buf.Bytes(), nil
}
