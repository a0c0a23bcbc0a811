package entity

const (
	DefaultCanvasWidth  = 800
	DefaultCanvasHeight = 600
)

type CanvasSize struct {
	Width  int `json:"width" binding:"required,gte=1"`
	Height int `json:"height" binding:"required,gte=1"`
}

func DefaultCanvasSize() CanvasSize {
	return CanvasSize{Width: DefaultCanvasWidth, Height: DefaultCanvasHeight}
}

// EditorState is the unit of persistence.
type EditorState struct {
	BackgroundImage *string     `json:"backgroundImage"`
	TextLayers      []TextLayer `json:"textLayers"`
	CanvasSize      CanvasSize  `json:"canvasSize"`
}

func DefaultEditorState() EditorState {
	return EditorState{
		TextLayers: []TextLayer{},
		CanvasSize: DefaultCanvasSize(),
	}
}

// Clone returns a copy that shares nothing mutable with s.
func (s EditorState) Clone() EditorState {
	out := EditorState{
		TextLayers: CloneLayers(s.TextLayers),
		CanvasSize: s.CanvasSize,
	}
	if s.BackgroundImage != nil {
		bg := *s.BackgroundImage
		out.BackgroundImage = &bg
	}
	return out
}

// HistorySnapshot is one entry of the undo log. An empty SelectedLayerID means no selection.
type HistorySnapshot struct {
	Layers          []TextLayer `json:"textLayers"`
	SelectedLayerID string      `json:"selectedLayerId"`
}

func (s HistorySnapshot) Clone() HistorySnapshot {
	return HistorySnapshot{
		Layers:          CloneLayers(s.Layers),
		SelectedLayerID: s.SelectedLayerID,
	}
}

// EditorView is everything a renderer needs to redraw the editor.
type EditorView struct {
	BackgroundImage  *string     `json:"backgroundImage"`
	TextLayers       []TextLayer `json:"textLayers"`
	SelectedLayerID  *string     `json:"selectedLayerId"`
	SelectedLayerIDs []string    `json:"selectedLayerIds"`
	CanvasSize       CanvasSize  `json:"canvasSize"`
	CanUndo          bool        `json:"canUndo"`
	CanRedo          bool        `json:"canRedo"`
	HistoryIndex     int         `json:"historyIndex"`
	HistoryLength    int         `json:"historyLength"`
}
