package palette

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_PreservesOrderAndValues(t *testing.T) {
	p, err := Parse(`["#1a2b3c", "#FFF", "#ff0000"]`)
	require.NoError(t, err)

	assert.Equal(t, []string{"#1a2b3c", "#FFF", "#ff0000"}, p.Values())
	assert.Equal(t, "#ffffff", p[1].Hex())
}

func TestParse_Empty(t *testing.T) {
	p, err := Parse("")
	require.NoError(t, err)
	assert.Empty(t, p)
}

func TestParse_Malformed(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"not json", `#fff,#000`},
		{"object", `{"a": "#fff"}`},
		{"truncated", `["#fff"`},
		{"numbers", `[1, 2, 3]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.raw)
			require.ErrorIs(t, err, ErrMalformed)

			assert.NotPanics(t, func() {
				assert.Empty(t, ParseOrDefault(tt.raw))
			})
		})
	}
}

func TestParse_KeepsNonHexEntries(t *testing.T) {
	raw := `["rgb(10, 20, 30)", "#ff0000", "blue"]`

	p, err := Parse(raw)
	require.NoError(t, err)

	assert.Equal(t, []string{"rgb(10, 20, 30)", "#ff0000", "blue"}, p.Values())
	assert.False(t, p[0].Valid())
	assert.Empty(t, p[0].Hex())
	assert.True(t, p[1].Valid())
	assert.Equal(t, p, ParseOrDefault(raw))

	c, ok := p.Accent()
	require.True(t, ok)
	assert.Equal(t, "#ff0000", c.Value)
}

func TestAccent_NoHexEntries(t *testing.T) {
	p := ParseOrDefault(`["blue", "red"]`)

	require.Len(t, p, 2)
	_, ok := p.Accent()
	assert.False(t, ok)
}

func TestAccent_PicksMostVivid(t *testing.T) {
	p := ParseOrDefault(`["#808080", "#ff0000", "#202020"]`)

	c, ok := p.Accent()
	require.True(t, ok)
	assert.Equal(t, "#ff0000", c.Value)
}

func TestAccent_EmptyPalette(t *testing.T) {
	_, ok := Palette{}.Accent()
	assert.False(t, ok)
}
