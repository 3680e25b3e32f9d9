package postdoc

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDataURLRoundTrip(t *testing.T) {
	payload := []byte{0x89, 'P', 'N', 'G', 0, 1, 2}
	url := DataURL("image/png", payload)
	require.True(t, IsDataURL(url))

	mediaType, data, err := ParseDataURL(url)
	require.NoError(t, err)
	require.Equal(t, "image/png", mediaType)
	require.Equal(t, payload, data)
}

func TestParseDataURLRejects(t *testing.T) {
	for _, url := range []string{
		"https://example.com/a.png",
		"data:image/png;base64",
		"data:text/plain,hello",
		"data:image/png;base64,***",
	} {
		_, _, err := ParseDataURL(url)
		require.ErrorIs(t, err, ErrInvalidDataURL, url)
	}
}
