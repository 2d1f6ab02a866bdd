package render

import "regexp"

// RGB is an 8-bit-per-channel color.
type RGB struct {
	R, G, B int
}

// DefaultAccent is the brand color used when a profile carries none or the
// configured value does not parse.
var DefaultAccent = RGB{14, 165, 233}

// Fixed neutrals shared by every layout stage.
var (
	ColorText      = RGB{31, 41, 55}
	ColorGray      = RGB{107, 114, 128}
	ColorLightGray = RGB{229, 231, 235}
	ColorWhite     = RGB{255, 255, 255}
	ColorRowTint   = RGB{252, 252, 253}
	ColorGreen     = RGB{34, 197, 94}
)

var hexColorPattern = regexp.MustCompile(`^#?([0-9a-fA-F]{2})([0-9a-fA-F]{2})([0-9a-fA-F]{2})$`)

// ParseHex parses a 6-hex-digit RGB string, with or without a leading "#".
func ParseHex(value string) (RGB, bool) {
	m := hexColorPattern.FindStringSubmatch(value)
	if m == nil {
		return RGB{}, false
	}
	return RGB{hexByte(m[1]), hexByte(m[2]), hexByte(m[3])}, true
}

func hexByte(s string) int {
	v := 0
	for i := 0; i < len(s); i++ {
		v *= 16
		switch c := s[i]; {
		case c >= '0' && c <= '9':
			v += int(c - '0')
		case c >= 'a' && c <= 'f':
			v += int(c-'a') + 10
		case c >= 'A' && c <= 'F':
			v += int(c-'A') + 10
		}
	}
	return v
}

// Lighten blends each channel the given fraction of the way toward white.
func Lighten(c RGB, fraction float64) RGB {
	return RGB{
		R: lightenChannel(c.R, fraction),
		G: lightenChannel(c.G, fraction),
		B: lightenChannel(c.B, fraction),
	}
}

func lightenChannel(v int, fraction float64) int {
	out := int(float64(v) + float64(255-v)*fraction + 0.5)
	if out < 0 {
		return 0
	}
	if out > 255 {
		return 255
	}
	return out
}

// palette is derived exactly once per render so the header, badges and
// totals share identical colors.
type palette struct {
	primary      RGB
	lightPrimary RGB
}

// newPalette derives the working palette from a brand color string, falling
// back to DefaultAccent on parse failure.
func newPalette(brandColor string) palette {
	primary, ok := ParseHex(brandColor)
	if !ok {
		primary = DefaultAccent
	}
	return palette{
		primary:      primary,
		lightPrimary: Lighten(primary, 0.85),
	}
}

// statusColors maps an invoice status to its badge fill.
var statusColors = map[string]RGB{
	"paid":            {34, 197, 94},
	"pending":         {234, 179, 8},
	"partial-payment": {59, 130, 246},
	"overdue":         {239, 68, 68},
	"cancelled":       {156, 163, 175},
}

// StatusColor returns the badge fill for a status. Unmapped statuses fall
// back to the pending color.
func StatusColor(status string) RGB {
	if c, ok := statusColors[status]; ok {
		return c
	}
	return statusColors["pending"]
}
