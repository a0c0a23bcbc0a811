package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"
	"time"

	"github.com/ds124wfegd/image-text-composer/internal/database"
	"github.com/ds124wfegd/image-text-composer/internal/entity"
	"github.com/ds124wfegd/image-text-composer/internal/pkg/kafka"
	"github.com/ds124wfegd/image-text-composer/internal/pkg/processor"
	"github.com/ds124wfegd/image-text-composer/internal/pkg/storage"
	"github.com/ds124wfegd/image-text-composer/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	ctx := context.Background()
	fs := storage.NewFileStorage(t.TempDir())

	editorRepo, err := database.NewEditorRepository(database.NewFileSlot(fs), "", entity.CanvasSize{})
	require.NoError(t, err)
	exportRepo := database.NewExportRepository(fs)

	compositor := processor.NewCompositor(nil)
	producer := kafka.NewLocalProducer(processor.NewExportProcessor(exportRepo, compositor))

	editor := service.NewEditorService(ctx, editorRepo, 20)
	handler := NewHandler(
		editor,
		service.NewUploadService(editor),
		service.NewExportService(editor, compositor, exportRepo, producer),
	)
	return InitRoutes(handler, 5*time.Second)
}

func doJSON(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body == nil {
		reader = bytes.NewReader(nil)
	} else {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeView(t *testing.T, w *httptest.ResponseRecorder) entity.EditorView {
	t.Helper()
	var view entity.EditorView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
	return view
}

func pngFile(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		img.Set(x, 0, color.White)
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func upload(t *testing.T, router http.Handler, contentType string, data []byte) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="image"; filename="bg.png"`)
	header.Set("Content-Type", contentType)
	part, err := mw.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/background", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func addLayer(t *testing.T, router http.Handler) string {
	t.Helper()
	w := doJSON(t, router, http.MethodPost, "/api/v1/layers", nil)
	require.Equal(t, http.StatusCreated, w.Code)
	view := decodeView(t, w)
	require.NotNil(t, view.SelectedLayerID)
	return *view.SelectedLayerID
}

func TestHealth(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "image-text-composer")
}

func TestGetEditor(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/api/v1/editor", nil)
	require.Equal(t, http.StatusOK, w.Code)

	view := decodeView(t, w)
	assert.Empty(t, view.TextLayers)
	assert.Nil(t, view.BackgroundImage)
	assert.Equal(t, entity.DefaultCanvasSize(), view.CanvasSize)
	assert.JSONEq(t, `null`, string(mustField(t, w, "backgroundImage")))
}

func mustField(t *testing.T, w *httptest.ResponseRecorder, name string) json.RawMessage {
	t.Helper()
	var fields map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &fields))
	raw, ok := fields[name]
	require.True(t, ok, "missing field %s", name)
	return raw
}

func TestAddLayerWithPatch(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/v1/layers", map[string]any{"text": "Hello", "fontSize": 32})
	require.Equal(t, http.StatusCreated, w.Code)

	view := decodeView(t, w)
	require.Len(t, view.TextLayers, 1)
	assert.Equal(t, "Hello", view.TextLayers[0].Text)
	assert.Equal(t, 32.0, view.TextLayers[0].FontSize)
}

func TestUpdateLayer(t *testing.T) {
	router := newTestRouter(t)
	id := addLayer(t, router)

	tests := []struct {
		name       string
		path       string
		body       any
		wantStatus int
	}{
		{name: "valid patch", path: "/api/v1/layers/" + id, body: map[string]any{"fontSize": 48, "color": "#ff0000"}, wantStatus: http.StatusOK},
		{name: "font size too large", path: "/api/v1/layers/" + id, body: map[string]any{"fontSize": 500}, wantStatus: http.StatusBadRequest},
		{name: "opacity out of range", path: "/api/v1/layers/" + id, body: map[string]any{"opacity": 1.5}, wantStatus: http.StatusBadRequest},
		{name: "bad alignment", path: "/api/v1/layers/" + id, body: map[string]any{"textAlign": "justify"}, wantStatus: http.StatusBadRequest},
		{name: "bad color", path: "/api/v1/layers/" + id, body: map[string]any{"color": "red"}, wantStatus: http.StatusBadRequest},
		{name: "negative shadow blur", path: "/api/v1/layers/" + id, body: map[string]any{"textShadow": map[string]any{"color": "#000000", "blur": -1}}, wantStatus: http.StatusBadRequest},
		{name: "unknown layer", path: "/api/v1/layers/ghost", body: map[string]any{"fontSize": 48}, wantStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, router, http.MethodPatch, tt.path, tt.body)
			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantStatus != http.StatusOK {
				assert.Contains(t, w.Body.String(), "error")
			}
		})
	}

	view := decodeView(t, doJSON(t, router, http.MethodGet, "/api/v1/editor", nil))
	assert.Equal(t, 48.0, view.TextLayers[0].FontSize)
	assert.Equal(t, "#ff0000", view.TextLayers[0].Color)
}

func TestUndoRedoEndpoints(t *testing.T) {
	router := newTestRouter(t)
	id := addLayer(t, router)

	w := doJSON(t, router, http.MethodPatch, "/api/v1/layers/"+id, map[string]any{"fontSize": 48})
	require.Equal(t, http.StatusOK, w.Code)

	view := decodeView(t, doJSON(t, router, http.MethodPost, "/api/v1/editor/undo", nil))
	assert.Equal(t, 24.0, view.TextLayers[0].FontSize)
	assert.True(t, view.CanRedo)

	view = decodeView(t, doJSON(t, router, http.MethodPost, "/api/v1/editor/undo", nil))
	assert.Empty(t, view.TextLayers)

	view = decodeView(t, doJSON(t, router, http.MethodPost, "/api/v1/editor/redo", nil))
	assert.Len(t, view.TextLayers, 1)

	view = decodeView(t, doJSON(t, router, http.MethodPost, "/api/v1/editor/reset", nil))
	assert.Empty(t, view.TextLayers)
	assert.False(t, view.CanUndo)
}

func TestLayerActions(t *testing.T) {
	router := newTestRouter(t)
	first := addLayer(t, router)
	second := addLayer(t, router)

	w := doJSON(t, router, http.MethodPost, "/api/v1/layers/reorder", map[string]any{"from": 0, "to": 1})
	require.Equal(t, http.StatusOK, w.Code)
	view := decodeView(t, w)
	assert.Equal(t, second, view.TextLayers[0].ID)
	assert.Equal(t, first, view.TextLayers[1].ID)

	w = doJSON(t, router, http.MethodPost, "/api/v1/layers/reorder", map[string]any{"from": 0, "to": 9})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, router, http.MethodPost, "/api/v1/layers/reorder", map[string]any{"from": 0})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, router, http.MethodPost, "/api/v1/layers/"+first+"/duplicate", nil)
	require.Equal(t, http.StatusCreated, w.Code)
	view = decodeView(t, w)
	require.Len(t, view.TextLayers, 3)
	assert.Equal(t, 120.0, view.TextLayers[2].X)

	w = doJSON(t, router, http.MethodPost, "/api/v1/layers/"+first+"/lock", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodPost, "/api/v1/layers/"+first+"/move", map[string]any{"x": 10, "y": 10})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = doJSON(t, router, http.MethodPost, "/api/v1/layers/"+second+"/move", map[string]any{"x": 395, "y": 10})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 400.0, decodeView(t, w).TextLayers[0].X)

	w = doJSON(t, router, http.MethodPost, "/api/v1/layers/"+second+"/transform", map[string]any{"width": 1, "height": 80, "rotation": 90})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 5.0, decodeView(t, w).TextLayers[0].Width)

	w = doJSON(t, router, http.MethodDelete, "/api/v1/layers/"+second, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeView(t, w).TextLayers, 2)

	w = doJSON(t, router, http.MethodDelete, "/api/v1/layers/"+second, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSelectionEndpoints(t *testing.T) {
	router := newTestRouter(t)
	first := addLayer(t, router)
	second := addLayer(t, router)

	w := doJSON(t, router, http.MethodPost, "/api/v1/selection/toggle", map[string]any{"id": first, "additive": true})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{second, first}, decodeView(t, w).SelectedLayerIDs)

	w = doJSON(t, router, http.MethodPatch, "/api/v1/layers", map[string]any{"fontWeight": "bold"})
	require.Equal(t, http.StatusOK, w.Code)
	for _, layer := range decodeView(t, w).TextLayers {
		assert.Equal(t, "bold", layer.FontWeight)
	}

	w = doJSON(t, router, http.MethodPost, "/api/v1/selection/nudge", map[string]any{"direction": "down", "coarse": true})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 110.0, decodeView(t, w).TextLayers[1].Y)

	w = doJSON(t, router, http.MethodPost, "/api/v1/selection/nudge", map[string]any{"direction": "diagonal"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, router, http.MethodPost, "/api/v1/selection", map[string]any{"id": ""})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, decodeView(t, w).SelectedLayerID)

	w = doJSON(t, router, http.MethodPost, "/api/v1/selection/nudge", map[string]any{"direction": "left"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, router, http.MethodPost, "/api/v1/selection", map[string]any{"id": "ghost"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUploadBackground(t *testing.T) {
	router := newTestRouter(t)

	w := upload(t, router, "image/png", pngFile(t, 120, 90))
	require.Equal(t, http.StatusOK, w.Code)
	view := decodeView(t, w)
	require.NotNil(t, view.BackgroundImage)
	assert.Equal(t, entity.CanvasSize{Width: 120, Height: 90}, view.CanvasSize)

	w = upload(t, router, "image/jpeg", []byte("not really a jpeg"))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "please upload a PNG image only")

	w = doJSON(t, router, http.MethodPost, "/api/v1/background", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	view = decodeView(t, doJSON(t, router, http.MethodGet, "/api/v1/editor", nil))
	assert.Equal(t, entity.CanvasSize{Width: 120, Height: 90}, view.CanvasSize)
}

func TestSetCanvasSize(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodPut, "/api/v1/canvas", map[string]any{"width": 1024, "height": 512})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, entity.CanvasSize{Width: 1024, Height: 512}, decodeView(t, w).CanvasSize)

	w = doJSON(t, router, http.MethodPut, "/api/v1/canvas", map[string]any{"width": 0, "height": 512})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestExport(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/api/v1/export", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	require.Equal(t, http.StatusOK, upload(t, router, "image/png", pngFile(t, 60, 40)).Code)
	addLayer(t, router)

	tests := []struct {
		query      string
		wantStatus int
		wantType   string
		wantFile   string
		wantPrefix string
	}{
		{query: "", wantStatus: http.StatusOK, wantType: "image/png", wantFile: "image-text-composer-export.png", wantPrefix: "\x89PNG"},
		{query: "?format=", wantStatus: http.StatusOK, wantType: "image/png", wantFile: `filename="image-text-composer-export.png"`, wantPrefix: "\x89PNG"},
		{query: "?format=pdf", wantStatus: http.StatusOK, wantType: "application/pdf", wantFile: "image-text-composer-export.pdf", wantPrefix: "%PDF"},
		{query: "?format=gif", wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			w := doJSON(t, router, http.MethodGet, "/api/v1/export"+tt.query, nil)
			require.Equal(t, tt.wantStatus, w.Code)
			if tt.wantStatus != http.StatusOK {
				return
			}
			assert.Equal(t, tt.wantType, w.Header().Get("Content-Type"))
			assert.Contains(t, w.Header().Get("Content-Disposition"), tt.wantFile)
			assert.True(t, strings.HasPrefix(w.Body.String(), tt.wantPrefix))
		})
	}
}

func TestAsyncExport(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/v1/exports", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	require.Equal(t, http.StatusOK, upload(t, router, "image/png", pngFile(t, 60, 40)).Code)

	w = doJSON(t, router, http.MethodPost, "/api/v1/exports?format=png", nil)
	require.Equal(t, http.StatusAccepted, w.Code)

	var resp entity.ExportResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, entity.ExportStatusProcessing, resp.Status)

	require.Eventually(t, func() bool {
		w := doJSON(t, router, http.MethodGet, "/api/v1/exports/"+resp.ID, nil)
		var job entity.ExportJob
		return w.Code == http.StatusOK &&
			json.Unmarshal(w.Body.Bytes(), &job) == nil &&
			job.Status == entity.ExportStatusCompleted
	}, 5*time.Second, 20*time.Millisecond)

	w = doJSON(t, router, http.MethodGet, "/api/v1/exports/"+resp.ID+"/file", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(w.Body.String(), "\x89PNG"))

	w = doJSON(t, router, http.MethodGet, "/api/v1/exports/missing", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListFonts(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/api/v1/fonts", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Fonts []struct {
			Family string `json:"family"`
		} `json:"fonts"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Fonts, 26)
}

func TestFeed(t *testing.T) {
	router := newTestRouter(t)
	server := httptest.NewServer(router)
	defer server.Close()

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/api/v1/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	conn.SetReadDeadline(time.Now().Add(5 * time.Second))

	var view entity.EditorView
	require.NoError(t, conn.ReadJSON(&view))
	assert.Empty(t, view.TextLayers)

	resp, err := http.Post(server.URL+"/api/v1/layers", "application/json", strings.NewReader(`{"text":"live"}`))
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	require.NoError(t, conn.ReadJSON(&view))
	require.Len(t, view.TextLayers, 1)
	assert.Equal(t, "live", view.TextLayers[0].Text)
}
