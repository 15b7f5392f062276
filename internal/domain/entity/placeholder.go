package entity

import (
	"encoding/base64"
	"fmt"
	"hash/fnv"
	"html"
	"strings"
	"unicode"
)

// placeholderPalette backs the deterministic background pick; the same
// title always maps to the same color.
var placeholderPalette = []string{
	"#1f6feb", "#8957e5", "#d29922", "#da3633", "#2ea043", "#db61a2",
}

// PlaceholderThumbnail generates the inline placeholder image used when a
// project carries no thumbnail reference: an SVG data URI derived
// deterministically from the title (initials on a hash-picked background).
// It is embedded in the record, never uploaded.
func PlaceholderThumbnail(title string) string {
	initials := titleInitials(title)

	h := fnv.New32a()
	h.Write([]byte(title))
	color := placeholderPalette[int(h.Sum32())%len(placeholderPalette)]

	svg := fmt.Sprintf(
		`<svg xmlns="http://www.w3.org/2000/svg" width="640" height="360">`+
			`<rect width="100%%" height="100%%" fill="%s"/>`+
			`<text x="50%%" y="50%%" dy=".35em" text-anchor="middle" `+
			`font-family="sans-serif" font-size="120" fill="#ffffff">%s</text>`+
			`</svg>`,
		color, html.EscapeString(initials),
	)

	return "data:image/svg+xml;base64," + base64.StdEncoding.EncodeToString([]byte(svg))
}

func titleInitials(title string) string {
	var initials []rune
	for _, word := range strings.Fields(title) {
		for _, r := range word {
			if unicode.IsLetter(r) || unicode.IsDigit(r) {
				initials = append(initials, unicode.ToUpper(r))

				break
			}
		}
		if len(initials) == 2 {
			break
		}
	}

	if len(initials) == 0 {
		return "?"
	}

	return string(initials)
}
