// Package palette parses the colour palettes the library backend derives from
// album artwork.
package palette

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// ErrMalformed is returned when a serialized palette cannot be decoded.
var ErrMalformed = errors.New("malformed palette")

// Color is a single palette entry. Value keeps the string exactly as the
// backend serialized it. Entries that are not hex colours keep only Value.
type Color struct {
	Value string
	c     colorful.Color
	valid bool
}

// Valid reports whether Value parsed as a hex colour.
func (c Color) Valid() bool {
	return c.valid
}

// Hex returns the normalized #rrggbb form, or "" for an entry that is not a
// hex colour.
func (c Color) Hex() string {
	if !c.valid {
		return ""
	}
	return c.c.Hex()
}

// Palette is an ordered sequence of colours, most dominant first.
type Palette []Color

// Parse decodes a serialized palette: a JSON array of colour strings. Every
// string is kept in order; only the JSON shape can make it fail. An empty
// input yields an empty palette.
func Parse(raw string) (Palette, error) {
	if raw == "" {
		return Palette{}, nil
	}

	var values []string
	if err := json.Unmarshal([]byte(raw), &values); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}

	p := make(Palette, 0, len(values))
	for _, v := range values {
		c, err := colorful.Hex(v)
		p = append(p, Color{Value: v, c: c, valid: err == nil})
	}
	return p, nil
}

// ParseOrDefault is Parse with malformed input mapped to an empty palette.
func ParseOrDefault(raw string) Palette {
	p, err := Parse(raw)
	if err != nil {
		return Palette{}
	}
	return p
}

// Values returns the raw colour strings in order.
func (p Palette) Values() []string {
	out := make([]string, len(p))
	for i, c := range p {
		out[i] = c.Value
	}
	return out
}

// Accent picks the most vivid colour (highest saturation*value in HSV),
// skipping entries that are not hex colours. Returns false when none is.
func (p Palette) Accent() (Color, bool) {
	best := -1
	bestScore := -1.0
	for i, c := range p {
		if !c.valid {
			continue
		}
		_, s, v := c.c.Hsv()
		if score := s * v; score > bestScore {
			best, bestScore = i, score
		}
	}
	if best < 0 {
		return Color{}, false
	}
	return p[best], true
}
