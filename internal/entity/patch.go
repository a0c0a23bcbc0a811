package entity

// LayerPatch is a partial TextLayer. Nil fields are left untouched.
// The binding tags are checked by gin when a patch arrives over HTTP.
type LayerPatch struct {
	Text          *string    `json:"text,omitempty"`
	X             *float64   `json:"x,omitempty"`
	Y             *float64   `json:"y,omitempty"`
	Width         *float64   `json:"width,omitempty" binding:"omitempty,gte=5"`
	Height        *float64   `json:"height,omitempty" binding:"omitempty,gte=5"`
	FontSize      *float64   `json:"fontSize,omitempty" binding:"omitempty,gte=8,lte=200"`
	FontFamily    *string    `json:"fontFamily,omitempty" binding:"omitempty,min=1"`
	FontWeight    *string    `json:"fontWeight,omitempty" binding:"omitempty,min=1"`
	Color         *string    `json:"color,omitempty" binding:"omitempty,hexcolor"`
	Opacity       *float64   `json:"opacity,omitempty" binding:"omitempty,gte=0,lte=1"`
	TextAlign     *TextAlign `json:"textAlign,omitempty" binding:"omitempty,oneof=left center right"`
	Rotation      *float64   `json:"rotation,omitempty"`
	LineHeight    *float64   `json:"lineHeight,omitempty" binding:"omitempty,gte=0"`
	LetterSpacing *float64   `json:"letterSpacing,omitempty"`
	TextShadow    *Shadow    `json:"textShadow,omitempty"`
	IsLocked      *bool      `json:"isLocked,omitempty"`
}

// Apply merges the patch into the layer. The id is never changed.
func (p LayerPatch) Apply(layer TextLayer) TextLayer {
	if p.Text != nil {
		layer.Text = *p.Text
	}
	if p.X != nil {
		layer.X = *p.X
	}
	if p.Y != nil {
		layer.Y = *p.Y
	}
	if p.Width != nil {
		layer.Width = *p.Width
	}
	if p.Height != nil {
		layer.Height = *p.Height
	}
	if p.FontSize != nil {
		layer.FontSize = *p.FontSize
	}
	if p.FontFamily != nil {
		layer.FontFamily = *p.FontFamily
	}
	if p.FontWeight != nil {
		layer.FontWeight = *p.FontWeight
	}
	if p.Color != nil {
		layer.Color = *p.Color
	}
	if p.Opacity != nil {
		layer.Opacity = *p.Opacity
	}
	if p.TextAlign != nil {
		layer.TextAlign = *p.TextAlign
	}
	if p.Rotation != nil {
		layer.Rotation = *p.Rotation
	}
	if p.LineHeight != nil {
		layer.LineHeight = *p.LineHeight
	}
	if p.LetterSpacing != nil {
		layer.LetterSpacing = *p.LetterSpacing
	}
	if p.TextShadow != nil {
		shadow := *p.TextShadow
		layer.TextShadow = &shadow
	}
	if p.IsLocked != nil {
		layer.IsLocked = *p.IsLocked
	}
	return layer
}
