package theme

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
)

// Theme is the visual identity derived for one account: a color
// palette, a signature shape, and a background pattern index. The same
// account always gets the same theme, with no stored state.
type Theme struct {
	Background string `json:"background"`
	Foreground string `json:"foreground"`
	Accent     string `json:"accent"`
	Shape      string `json:"shape"`
	Pattern    int    `json:"pattern"`
}

var shapes = []string{"circle", "triangle", "square", "hexagon", "diamond", "spore"}

const patternCount = 8

// Generate derives a theme from an account identifier (a DID or
// handle). The digest spreads nearby identifiers across the full hue
// wheel so similar DIDs do not look alike.
func Generate(authorID string) Theme {
	sum := sha256.Sum256([]byte(authorID))

	hue := int(binary.BigEndian.Uint16(sum[0:2])) % 360
	sat := 35 + int(sum[2])%35
	light := 82 + int(sum[3])%12

	// Accent sits at least a third of the wheel away from the
	// background so it always reads against it.
	accentHue := (hue + 120 + int(sum[4])%120) % 360

	return Theme{
		Background: hsl(hue, sat, light),
		Foreground: hsl(hue, 25, 18),
		Accent:     hsl(accentHue, 65, 45),
		Shape:      shapes[int(sum[5])%len(shapes)],
		Pattern:    int(sum[6]) % patternCount,
	}
}

func hsl(h, s, l int) string {
	return fmt.Sprintf("hsl(%d, %d%%, %d%%)", h, s, l)
}
