package core

// Color is a foreground colour for a screen cell. The platform maps it to an
// ANSI 256-colour code; ColorDefault keeps the terminal's own foreground.
type Color uint8

const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
)

var colorInfo = [...]struct {
	name string
	code string
}{
	ColorDefault:       {"default", ""},
	ColorRed:           {"red", "1"},
	ColorGreen:         {"green", "2"},
	ColorYellow:        {"yellow", "3"},
	ColorBlue:          {"blue", "4"},
	ColorMagenta:       {"magenta", "5"},
	ColorCyan:          {"cyan", "6"},
	ColorWhite:         {"white", "7"},
	ColorBrightRed:     {"bright-red", "9"},
	ColorBrightGreen:   {"bright-green", "10"},
	ColorBrightYellow:  {"bright-yellow", "11"},
	ColorBrightBlue:    {"bright-blue", "12"},
	ColorBrightMagenta: {"bright-magenta", "13"},
	ColorBrightCyan:    {"bright-cyan", "14"},
	ColorBrightWhite:   {"bright-white", "15"},
	ColorOrange:        {"orange", "208"},
	ColorGray:          {"gray", "245"},
}

// Code returns the ANSI 256-colour code, or "" for ColorDefault and unknown
// values.
func (c Color) Code() string {
	if int(c) >= len(colorInfo) {
		return ""
	}
	return colorInfo[c].code
}

// String returns the colour name.
func (c Color) String() string {
	if int(c) >= len(colorInfo) {
		return "unknown"
	}
	return colorInfo[c].name
}

// Palette returns every colour with a non-empty code.
func Palette() []Color {
	out := make([]Color, 0, len(colorInfo)-1)
	for c := range colorInfo {
		if colorInfo[c].code != "" {
			out = append(out, Color(c))
		}
	}
	return out
}
