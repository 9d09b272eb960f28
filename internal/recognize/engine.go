// Package recognize turns a selected label region into a product number.
// The pipeline is crop, grayscale + contrast stretch, Tesseract configured
// for digit-only single-word recognition, then cleanup of the raw text.
package recognize

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"sync"

	"github.com/otiai10/gosseract/v2"
	"gonum.org/v1/gonum/stat"

	"stockscan/pkg/geometry"
)

// ProductDigits is the character whitelist for product number OCR.
const ProductDigits = "0123456789"

// Recognizer extracts a product number from a region of an image. An empty
// result with a nil error means the region produced no usable digits.
type Recognizer interface {
	Recognize(img image.Image, region geometry.RectInt) (string, error)
	Close() error
}

// Engine is a Recognizer backed by a Tesseract client. The client is
// expensive to initialize and is reused for the whole session; Close must be
// called when the session ends. A mutex keeps one recognition in flight at a
// time.
type Engine struct {
	mu            sync.Mutex
	client        *gosseract.Client
	minConfidence float64
}

var _ Recognizer = (*Engine)(nil)

// NewEngine creates a Tesseract engine configured for digit-only single-word
// recognition. minConfidence (0..100) rejects results whose mean word
// confidence is below the threshold; 0 disables the gate.
func NewEngine(minConfidence float64) (*Engine, error) {
	client := gosseract.NewClient()

	if err := client.SetLanguage("eng"); err != nil {
		client.Close()
		return nil, fmt.Errorf("set OCR language: %w", err)
	}
	if err := client.SetWhitelist(ProductDigits); err != nil {
		client.Close()
		return nil, fmt.Errorf("set OCR whitelist: %w", err)
	}
	if err := client.SetPageSegMode(gosseract.PSM_SINGLE_WORD); err != nil {
		client.Close()
		return nil, fmt.Errorf("set OCR page mode: %w", err)
	}

	// Product numbers aren't dictionary words; stop Tesseract from
	// "correcting" them.
	_ = client.SetVariable("load_system_dawg", "false")
	_ = client.SetVariable("load_freq_dawg", "false")

	return &Engine{client: client, minConfidence: minConfidence}, nil
}

// Close releases the Tesseract client. The engine is unusable afterwards.
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.client != nil {
		err := e.client.Close()
		e.client = nil
		return err
	}
	return nil
}

// Recognize crops the region, preprocesses it, and runs OCR. The returned
// string is already cleaned: digits only, empty when the read is outside the
// 4..20 digit range or below the confidence threshold.
func (e *Engine) Recognize(img image.Image, region geometry.RectInt) (string, error) {
	cropped, err := Crop(img, region)
	if err != nil {
		return "", err
	}
	processed := Preprocess(cropped)

	var buf bytes.Buffer
	if err := png.Encode(&buf, processed); err != nil {
		return "", fmt.Errorf("encode region: %w", err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.client == nil {
		return "", fmt.Errorf("recognition engine is closed")
	}

	if err := e.client.SetImageFromBytes(buf.Bytes()); err != nil {
		return "", fmt.Errorf("set OCR image: %w", err)
	}
	text, err := e.client.Text()
	if err != nil {
		return "", fmt.Errorf("OCR failed: %w", err)
	}

	if e.minConfidence > 0 && e.meanConfidence() < e.minConfidence {
		return "", nil
	}
	return Clean(text), nil
}

// meanConfidence averages Tesseract's per-word confidence for the current
// image. Returns 100 when no word boxes are reported, so the gate only
// fires on genuinely doubtful reads.
func (e *Engine) meanConfidence() float64 {
	boxes, err := e.client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil || len(boxes) == 0 {
		return 100
	}
	confidences := make([]float64, len(boxes))
	for i, box := range boxes {
		confidences[i] = box.Confidence
	}
	return stat.Mean(confidences, nil)
}
