package processor

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"math"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/ds124wfegd/image-text-composer/internal/entity"
	"github.com/ds124wfegd/image-text-composer/internal/pkg/fonts"
	"github.com/fogleman/gg"
	"github.com/jung-kurt/gofpdf"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/sirupsen/logrus"
)

const (
	ExportBaseName = "image-text-composer-export"

	exportLineHeight = 1.2
)

// Compositor flattens an editor state into a single raster image. It is safe
// for concurrent use; font faces are created per layer draw.
type Compositor interface {
	Compose(state entity.EditorState) (image.Image, error)
	Render(state entity.EditorState, format string) ([]byte, error)
}

type compositor struct {
	faces *fonts.FaceCache
}

func NewCompositor(faces *fonts.FaceCache) Compositor {
	if faces == nil {
		faces = fonts.NewFaceCache()
	}
	return &compositor{faces: faces}
}

// FileName returns the download name of an export in the given format.
func FileName(format string) string {
	return ExportBaseName + "." + format
}

func (c *compositor) Compose(state entity.EditorState) (image.Image, error) {
	if state.BackgroundImage == nil {
		return nil, entity.ErrNoBackground
	}

	bg, err := DecodeDataURL(*state.BackgroundImage)
	if err != nil {
		return nil, err
	}

	width, height := state.CanvasSize.Width, state.CanvasSize.Height
	if width <= 0 || height <= 0 {
		width, height = bg.Bounds().Dx(), bg.Bounds().Dy()
	}

	dc := gg.NewContext(width, height)
	dc.DrawImage(imaging.Resize(bg, width, height, imaging.Lanczos), 0, 0)

	// Layers are painted in array order, so the last one ends up on top.
	for _, layer := range state.TextLayers {
		if err := c.drawLayer(dc, layer); err != nil {
			return nil, fmt.Errorf("failed to draw layer %s: %w", layer.ID, err)
		}
	}

	return dc.Image(), nil
}

func (c *compositor) Render(state entity.EditorState, format string) ([]byte, error) {
	switch format {
	case "", entity.FormatPNG, entity.FormatPDF:
	default:
		return nil, fmt.Errorf("%w: %s", entity.ErrUnsupportedFormat, format)
	}

	img, err := c.Compose(state)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode png: %w", err)
	}

	if format == entity.FormatPDF {
		return wrapPDF(buf.Bytes(), img.Bounds().Dx(), img.Bounds().Dy())
	}
	return buf.Bytes(), nil
}

func (c *compositor) drawLayer(dc *gg.Context, layer entity.TextLayer) error {
	if layer.Text == "" || layer.FontSize <= 0 {
		return nil
	}

	face, err := c.faces.Face(layer.FontFamily, layer.FontWeight, layer.FontSize)
	if err != nil {
		return err
	}

	if shadow := layer.TextShadow; shadow != nil && hasShadow(*shadow) {
		sc := gg.NewContext(dc.Width(), dc.Height())
		sc.SetFontFace(face)
		sc.SetColor(parseColor(shadow.Color, layer.Opacity))
		sc.Translate(shadow.OffsetX, shadow.OffsetY)
		drawText(sc, layer)

		var shadowImg image.Image = sc.Image()
		if shadow.Blur > 0 {
			shadowImg = imaging.Blur(shadowImg, shadow.Blur/2)
		}
		dc.DrawImage(shadowImg, 0, 0)
	}

	dc.SetFontFace(face)
	dc.SetColor(parseColor(layer.Color, layer.Opacity))
	drawText(dc, layer)
	return nil
}

// drawText paints the layer's lines inside its box, rotated about the box center.
func drawText(dc *gg.Context, layer entity.TextLayer) {
	dc.Push()
	defer dc.Pop()

	if layer.Rotation != 0 {
		dc.RotateAbout(gg.Radians(layer.Rotation), layer.X+layer.Width/2, layer.Y+layer.Height/2)
	}

	// Exports always use a 1.2 line advance, whatever the layer's lineHeight.
	advance := layer.FontSize * exportLineHeight

	for i, line := range strings.Split(layer.Text, "\n") {
		drawLine(dc, line, layer, layer.Y+float64(i+1)*advance)
	}
}

func drawLine(dc *gg.Context, line string, layer entity.TextLayer, baseline float64) {
	runes := []rune(line)
	if len(runes) == 0 {
		return
	}

	width, _ := dc.MeasureString(line)
	width += layer.LetterSpacing * float64(len(runes)-1)

	x := layer.X
	switch layer.TextAlign {
	case entity.AlignCenter:
		x = layer.X + (layer.Width-width)/2
	case entity.AlignRight:
		x = layer.X + layer.Width - width
	}

	if layer.LetterSpacing == 0 {
		dc.DrawString(line, x, baseline)
		return
	}

	for _, r := range runes {
		s := string(r)
		dc.DrawString(s, x, baseline)
		w, _ := dc.MeasureString(s)
		x += w + layer.LetterSpacing
	}
}

func hasShadow(s entity.Shadow) bool {
	return s.Blur > 0 || s.OffsetX != 0 || s.OffsetY != 0
}

// parseColor falls back to black for anything that is not a hex color.
func parseColor(hex string, opacity float64) color.Color {
	alpha := math.Max(0, math.Min(1, opacity))

	col, err := colorful.Hex(hex)
	if err != nil {
		logrus.WithField("color", hex).Warn("Invalid layer color, using black")
		col = colorful.Color{}
	}

	r, g, b := col.Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: uint8(math.Round(alpha * 255))}
}

// wrapPDF places the rendered PNG on a single page sized to the canvas in points.
func wrapPDF(png []byte, width, height int) ([]byte, error) {
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: float64(width), Ht: float64(height)},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("export", opts, bytes.NewReader(png))
	pdf.ImageOptions("export", 0, 0, float64(width), float64(height), false, opts, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to write pdf: %w", err)
	}
	return buf.Bytes(), nil
}
