package entity

import "encoding/json"

type TextAlign string

const (
	AlignLeft   TextAlign = "left"
	AlignCenter TextAlign = "center"
	AlignRight  TextAlign = "right"
)

type Shadow struct {
	Color   string  `json:"color"`
	Blur    float64 `json:"blur" binding:"gte=0"`
	OffsetX float64 `json:"offsetX"`
	OffsetY float64 `json:"offsetY"`
}

type TextLayer struct {
	ID            string    `json:"id"`
	Text          string    `json:"text"`
	X             float64   `json:"x"`
	Y             float64   `json:"y"`
	Width         float64   `json:"width"`
	Height        float64   `json:"height"`
	FontSize      float64   `json:"fontSize"`
	FontFamily    string    `json:"fontFamily"`
	FontWeight    string    `json:"fontWeight"`
	Color         string    `json:"color"`
	Opacity       float64   `json:"opacity"`
	TextAlign     TextAlign `json:"textAlign"`
	Rotation      float64   `json:"rotation"`
	LineHeight    float64   `json:"lineHeight"`
	LetterSpacing float64   `json:"letterSpacing"`
	TextShadow    *Shadow   `json:"textShadow,omitempty"`
	IsLocked      bool      `json:"isLocked"`
	IsSelected    bool      `json:"isSelected"`
}

// NewTextLayer returns the layer created by the "add text" action.
func NewTextLayer(id string) TextLayer {
	return TextLayer{
		ID:            id,
		Text:          "Double click to edit",
		X:             100,
		Y:             100,
		Width:         200,
		Height:        50,
		FontSize:      24,
		FontFamily:    "Arial",
		FontWeight:    "normal",
		Color:         "#000000",
		Opacity:       1,
		TextAlign:     AlignLeft,
		LineHeight:    1.2,
		LetterSpacing: 0,
		TextShadow: &Shadow{
			Color: "#000000",
		},
	}
}

// Clone returns a deep copy of the layer.
func (l TextLayer) Clone() TextLayer {
	if l.TextShadow != nil {
		shadow := *l.TextShadow
		l.TextShadow = &shadow
	}
	return l
}

// UnmarshalJSON fills fields missing from older saved documents with their defaults.
func (l *TextLayer) UnmarshalJSON(data []byte) error {
	type plain TextLayer
	decoded := plain{
		Opacity:    1,
		TextAlign:  AlignLeft,
		LineHeight: 1.2,
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	*l = TextLayer(decoded)
	return nil
}

func CloneLayers(layers []TextLayer) []TextLayer {
	out := make([]TextLayer, len(layers))
	for i, layer := range layers {
		out[i] = layer.Clone()
	}
	return out
}
