package fonts

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/goregular"
)

// The server has no browser fonts, so every family is rasterized with one of
// the bundled Go fonts: monospace families map to Go Mono, everything else to
// Go Regular, each with a bold cut for weights of 600 and above.
var monospaceFamilies = map[string]bool{
	"courier":     true,
	"courier new": true,
	"monospace":   true,
	"consolas":    true,
	"menlo":       true,
}

// FaceCache parses the bundled fonts once. Faces keep per-instance glyph
// buffers, so each Face call returns a fresh one owned by the caller.
type FaceCache struct {
	mu     sync.Mutex
	parsed map[string]*truetype.Font
}

func NewFaceCache() *FaceCache {
	return &FaceCache{
		parsed: make(map[string]*truetype.Font),
	}
}

// Face must not be shared between goroutines.
func (c *FaceCache) Face(family, weight string, size float64) (font.Face, error) {
	if size <= 0 {
		return nil, fmt.Errorf("invalid font size %v", size)
	}

	mono := monospaceFamilies[strings.ToLower(strings.TrimSpace(family))]

	c.mu.Lock()
	ttf, err := c.font(mono, IsBold(weight))
	c.mu.Unlock()
	if err != nil {
		return nil, err
	}

	return truetype.NewFace(ttf, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	}), nil
}

func (c *FaceCache) font(mono, bold bool) (*truetype.Font, error) {
	name, data := "goregular", goregular.TTF
	switch {
	case mono && bold:
		name, data = "gomonobold", gomonobold.TTF
	case mono:
		name, data = "gomono", gomono.TTF
	case bold:
		name, data = "gobold", gobold.TTF
	}

	if f, ok := c.parsed[name]; ok {
		return f, nil
	}
	f, err := truetype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font %s: %w", name, err)
	}
	c.parsed[name] = f
	return f, nil
}

// IsBold reports whether a CSS font weight renders with a bold cut.
func IsBold(weight string) bool {
	w := strings.ToLower(strings.TrimSpace(weight))
	switch w {
	case "bold", "bolder":
		return true
	case "", "normal", "lighter":
		return false
	}
	n, err := strconv.Atoi(w)
	return err == nil && n >= 600
}
