package postdoc

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidDataURL = errors.New("postdoc: invalid data url")

// DataURL embeds data as a base64 data: URL, the form pasted images are
// stored in.
func DataURL(mediaType string, data []byte) string {
	return "data:" + mediaType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

func IsDataURL(url string) bool {
	return strings.HasPrefix(url, "data:")
}

// ParseDataURL returns the media type and decoded payload of a base64 data:
// URL.
func ParseDataURL(url string) (string, []byte, error) {
	if !IsDataURL(url) {
		return "", nil, ErrInvalidDataURL
	}
	meta, payload, ok := strings.Cut(strings.TrimPrefix(url, "data:"), ",")
	if !ok {
		return "", nil, ErrInvalidDataURL
	}
	mediaType, enc, _ := strings.Cut(meta, ";")
	if enc != "base64" {
		return "", nil, fmt.Errorf("%w: unsupported encoding %q", ErrInvalidDataURL, enc)
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrInvalidDataURL, err)
	}
	if mediaType == "" {
		mediaType = "text/plain"
	}
	return mediaType, data, nil
}
