package tools

import (
	"fmt"
	"math"

	"github.com/brianvoe/gofakeit/v6"
)

// PaletteSize is the number of swatches in a generated palette.
const PaletteSize = 5

// Palette is a set of harmonised colors in #rrggbb form.
type Palette struct {
	Colors []string
}

// HSLToHex converts hue (degrees), saturation and lightness (percent) to a
// #rrggbb string.
func HSLToHex(h, s, l float64) string {
	l /= 100
	a := s * math.Min(l, 1-l) / 100
	channel := func(n float64) int {
		k := math.Mod(n+h/30, 12)
		c := l - a*math.Max(math.Min(math.Min(k-3, 9-k), 1), -1)
		return int(math.Round(255 * c))
	}
	return fmt.Sprintf("#%02x%02x%02x", channel(0), channel(8), channel(4))
}

// GeneratePalette spreads PaletteSize hues evenly from a random base hue.
func GeneratePalette(faker *gofakeit.Faker) Palette {
	base := faker.Number(0, 359)
	sat := faker.Number(60, 90)
	light := faker.Number(45, 65)
	colors := make([]string, 0, PaletteSize)
	for i := 0; i < PaletteSize; i++ {
		hue := (base + i*360/PaletteSize) % 360
		colors = append(colors, HSLToHex(float64(hue), float64(sat), float64(light)))
	}
	return Palette{Colors: colors}
}
