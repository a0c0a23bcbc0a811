package database

import (
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

const editorStateSchemaURL = "https://image-text-composer.local/schemas/editor-state.schema.json"

// Missing fields are allowed: the decoder fills them with defaults.
const editorStateSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "properties": {
    "backgroundImage": {"type": ["string", "null"]},
    "textLayers": {
      "type": ["array", "null"],
      "items": {
        "type": "object",
        "required": ["id"],
        "properties": {
          "id": {"type": "string", "minLength": 1},
          "text": {"type": "string"},
          "x": {"type": "number"},
          "y": {"type": "number"},
          "width": {"type": "number"},
          "height": {"type": "number"},
          "fontSize": {"type": "number"},
          "fontFamily": {"type": "string"},
          "fontWeight": {"type": "string"},
          "color": {"type": "string"},
          "opacity": {"type": "number", "minimum": 0, "maximum": 1},
          "textAlign": {"enum": ["left", "center", "right"]},
          "rotation": {"type": "number"},
          "lineHeight": {"type": "number", "minimum": 0},
          "letterSpacing": {"type": "number"},
          "textShadow": {
            "type": ["object", "null"],
            "properties": {
              "color": {"type": "string"},
              "blur": {"type": "number", "minimum": 0},
              "offsetX": {"type": "number"},
              "offsetY": {"type": "number"}
            }
          },
          "isLocked": {"type": "boolean"},
          "isSelected": {"type": "boolean"}
        }
      }
    },
    "canvasSize": {
      "type": ["object", "null"],
      "properties": {
        "width": {"type": "integer"},
        "height": {"type": "integer"}
      }
    }
  }
}`

func compileEditorStateSchema() (*jsonschema.Schema, error) {
	c := jsonschema.NewCompiler()
	c.Draft = jsonschema.Draft2020
	if err := c.AddResource(editorStateSchemaURL, strings.NewReader(editorStateSchema)); err != nil {
		return nil, err
	}
	return c.Compile(editorStateSchemaURL)
}
