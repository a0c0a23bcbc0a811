package processor

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/ds124wfegd/image-text-composer/internal/entity"
)

const pngDataURLPrefix = "data:image/png;base64,"

// EncodeDataURL wraps PNG bytes into the inline form stored as the background.
func EncodeDataURL(png []byte) string {
	return pngDataURLPrefix + base64.StdEncoding.EncodeToString(png)
}

// DecodeDataURL decodes a base64 data URL back into an image.
func DecodeDataURL(url string) (image.Image, error) {
	if !strings.HasPrefix(url, "data:") {
		return nil, fmt.Errorf("%w: not a data URL", entity.ErrImageDecode)
	}

	comma := strings.IndexByte(url, ',')
	if comma < 0 || !strings.Contains(url[:comma], ";base64") {
		return nil, fmt.Errorf("%w: data URL is not base64 encoded", entity.ErrImageDecode)
	}

	raw, err := base64.StdEncoding.DecodeString(url[comma+1:])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrImageDecode, err)
	}

	img, err := imaging.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrImageDecode, err)
	}
	return img, nil
}
