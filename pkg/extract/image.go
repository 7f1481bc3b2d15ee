package extract

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/jpeg"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/jdeng/goheif"
	"golang.org/x/image/draw"

	// Raster decoders for the downscaling path.
	_ "image/gif"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"clinical-notes-be/pkg/marker"
	"clinical-notes-be/pkg/vision"
)

// ImageExtractor normalizes the image locally (HEIC re-encode, bounded
// downscale) and asks the remote vision capability for a description. The
// paid call sits behind the result cache.
type ImageExtractor struct {
	describer   vision.Describer
	cache       *ResultCache
	maxEdge     int
	jpegQuality int
	logger      Logger
}

func NewImageExtractor(describer vision.Describer, cache *ResultCache, maxEdge, jpegQuality int, log Logger) *ImageExtractor {
	return &ImageExtractor{
		describer:   describer,
		cache:       cache,
		maxEdge:     maxEdge,
		jpegQuality: jpegQuality,
		logger:      log,
	}
}

// Extract returns the description, or an in-band marker on failure. The input
// bytes are never mutated; preprocessing works on re-encoded copies.
func (e *ImageExtractor) Extract(ctx context.Context, name string, data []byte) string {
	if len(data) == 0 {
		return marker.FileEmpty
	}

	key := CacheKey("image", data)
	if cached, found := e.cache.Get(key); found {
		e.logger.Debug("extract", "image description served from cache", map[string]interface{}{"file": name})
		return cached
	}

	prepared, mimeType := e.Prepare(name, data)

	text, err := e.describer.Describe(ctx, prepared, mimeType)
	if err != nil {
		e.logger.Warn("extract", "image description failed", map[string]interface{}{
			"file":  name,
			"error": err.Error(),
		})
		if errors.Is(err, vision.ErrWithheld) {
			return marker.GenerationBlocked
		}
		return marker.ImageDescriptionFailed
	}

	text = strings.TrimSpace(text)
	e.cache.Put(key, text)
	return text
}

// Prepare converts HEIC/HEIF to JPEG and downscales oversized raster images,
// adopting the re-encoded bytes only when they are actually smaller. On any
// preprocessing failure the original bytes go out untouched.
func (e *ImageExtractor) Prepare(name string, data []byte) ([]byte, string) {
	detected := mimetype.Detect(data).String()
	ext := strings.ToLower(filepath.Ext(name))

	if detected == "image/heic" || detected == "image/heif" || ext == ".heic" || ext == ".heif" {
		if converted, ok := e.convertHeic(data); ok {
			return converted, "image/jpeg"
		}
		return data, detected
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return data, detected
	}

	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width <= e.maxEdge && height <= e.maxEdge {
		return data, detected
	}

	scaled := downscale(img, e.maxEdge)
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, scaled, &jpeg.Options{Quality: e.jpegQuality}); err != nil {
		return data, detected
	}
	if buf.Len() >= len(data) {
		return data, detected
	}

	e.logger.Debug("extract", "image downscaled", map[string]interface{}{
		"file": name,
		"from": len(data),
		"to":   buf.Len(),
	})
	return buf.Bytes(), "image/jpeg"
}

func (e *ImageExtractor) convertHeic(data []byte) ([]byte, bool) {
	img, err := goheif.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, false
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: e.jpegQuality}); err != nil {
		return nil, false
	}
	return buf.Bytes(), true
}

// downscale fits the image inside maxEdge x maxEdge preserving aspect ratio.
func downscale(img image.Image, maxEdge int) image.Image {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	var newWidth, newHeight int
	if width >= height {
		newWidth = maxEdge
		newHeight = height * maxEdge / width
	} else {
		newHeight = maxEdge
		newWidth = width * maxEdge / height
	}
	if newWidth < 1 {
		newWidth = 1
	}
	if newHeight < 1 {
		newHeight = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, newWidth, newHeight))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
	return dst
}
