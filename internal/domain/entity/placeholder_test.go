package entity

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeSVG(t *testing.T, dataURI string) string {
	t.Helper()

	const prefix = "data:image/svg+xml;base64,"
	require.True(t, strings.HasPrefix(dataURI, prefix))

	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(dataURI, prefix))
	require.NoError(t, err)

	return string(raw)
}

func TestPlaceholderThumbnail_Deterministic(t *testing.T) {
	a := PlaceholderThumbnail("Weather Radar")
	b := PlaceholderThumbnail("Weather Radar")

	assert.Equal(t, a, b, "the same title always yields the same image")
	assert.NotEqual(t, a, PlaceholderThumbnail("Chess Engine"))
}

func TestPlaceholderThumbnail_ContainsInitials(t *testing.T) {
	svg := decodeSVG(t, PlaceholderThumbnail("weather radar"))

	assert.Contains(t, svg, ">WR<")
	assert.Contains(t, svg, `<svg xmlns=`)
}

func TestPlaceholderThumbnail_EscapesMarkupInTitle(t *testing.T) {
	svg := decodeSVG(t, PlaceholderThumbnail(`<script> stuff`))

	assert.NotContains(t, svg, "<script>")
}

func TestTitleInitials(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"Weather Radar", "WR"},
		{"chess", "C"},
		{"three word title", "TW"},
		{"  spaced   out  ", "SO"},
		{"42 things", "4T"},
		{"---", "?"},
		{"", "?"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, titleInitials(tt.title), "title %q", tt.title)
	}
}
