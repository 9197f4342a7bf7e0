package terminal

import (
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
)

// ColorMode indicates terminal color capability
type ColorMode uint8

const (
	ColorMode256       ColorMode = iota // xterm-256 palette
	ColorModeTrueColor                  // 24-bit RGB
)

// String returns the config name of the mode
func (m ColorMode) String() string {
	if m == ColorModeTrueColor {
		return "truecolor"
	}
	return "256"
}

// ParseColorMode resolves a config string; "auto" and "" detect from environment
func ParseColorMode(s string) (ColorMode, bool) {
	switch strings.ToLower(s) {
	case "", "auto":
		return DetectColorMode(), true
	case "256":
		return ColorMode256, true
	case "truecolor", "true", "24bit":
		return ColorModeTrueColor, true
	}
	return ColorMode256, false
}

// RGB represents a 24-bit color
type RGB struct {
	R, G, B uint8
}

// basicColors are the eight ECMA-48 names mapped to SGR 30-37 / 40-47
// Checked before W3C names so "red" means SGR 31, not the bright palette entry
var basicColors = map[string]int{
	"black":   0,
	"red":     1,
	"green":   2,
	"yellow":  3,
	"blue":    4,
	"magenta": 5,
	"cyan":    6,
	"white":   7,
}

// resolved is a color after name lookup: either a palette index or an RGB value
type resolved struct {
	index int // -1 when rgb is used
	rgb   RGB
}

// resolveColor maps a name to a palette index or RGB value
// Accepts basic ANSI names, palette numbers "0".."255", W3C names and "#rrggbb" via tcell
func resolveColor(name string) (resolved, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return resolved{}, false
	}
	if idx, ok := basicColors[name]; ok {
		return resolved{index: idx}, true
	}

	var c tcell.Color
	if n, err := strconv.Atoi(name); err == nil {
		if n < 0 || n > 255 {
			return resolved{}, false
		}
		c = tcell.PaletteColor(n)
	} else {
		c = tcell.GetColor(name)
	}
	if !c.Valid() {
		return resolved{}, false
	}

	if c.IsRGB() {
		r, g, b := c.RGB()
		return resolved{index: -1, rgb: RGB{uint8(r), uint8(g), uint8(b)}}, true
	}
	return resolved{index: int(c - tcell.ColorValid)}, true
}

// ValidColor reports whether name resolves to a color
func ValidColor(name string) bool {
	_, ok := resolveColor(name)
	return ok
}

// FgSGR returns the SGR sequence selecting name as foreground, empty if unresolvable
// bright selects the high-intensity variant of the eight basic colors
func FgSGR(name string, bright bool, mode ColorMode) string {
	return sgr(name, bright, mode, 30, 90, "38")
}

// BgSGR returns the SGR sequence selecting name as background, empty if unresolvable
func BgSGR(name string, bright bool, mode ColorMode) string {
	return sgr(name, bright, mode, 40, 100, "48")
}

func sgr(name string, bright bool, mode ColorMode, base, brightBase int, extended string) string {
	c, ok := resolveColor(name)
	if !ok {
		return ""
	}

	buf := make([]byte, 0, 20)
	buf = append(buf, CSI...)

	switch {
	case c.index >= 0 && c.index < 8:
		if bright {
			buf = AppendInt(buf, brightBase+c.index)
		} else {
			buf = AppendInt(buf, base+c.index)
		}
	case c.index >= 8 && c.index < 16:
		buf = AppendInt(buf, brightBase+c.index-8)
	case c.index >= 16:
		buf = append(buf, extended...)
		buf = append(buf, ";5;"...)
		buf = AppendInt(buf, c.index)
	case mode == ColorModeTrueColor:
		buf = append(buf, extended...)
		buf = append(buf, ";2;"...)
		buf = AppendInt(buf, int(c.rgb.R))
		buf = append(buf, ';')
		buf = AppendInt(buf, int(c.rgb.G))
		buf = append(buf, ';')
		buf = AppendInt(buf, int(c.rgb.B))
	default:
		buf = append(buf, extended...)
		buf = append(buf, ";5;"...)
		buf = AppendInt(buf, int(RGBTo256(c.rgb)))
	}

	buf = append(buf, 'm')
	return string(buf)
}

// Color cube values for 6x6x6 palette (indices 16-231)
// Levels: 0, 95, 135, 175, 215, 255
var cubeValues = [6]uint8{0, 95, 135, 175, 215, 255}

// cubeIndex maps 0-255 to nearest cube index 0-5
var cubeIndex [256]uint8

func init() {
	for i := 0; i < 256; i++ {
		best := 0
		bestDist := abs(i - int(cubeValues[0]))
		for j := 1; j < 6; j++ {
			d := abs(i - int(cubeValues[j]))
			if d < bestDist {
				bestDist = d
				best = j
			}
		}
		cubeIndex[i] = uint8(best)
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// RGBTo256 finds the nearest 256-color palette index for an RGB value
// Grayscale ramp 232-255 is preferred when the color is near-neutral and closer than the cube
func RGBTo256(c RGB) uint8 {
	r, g, b := int(c.R), int(c.G), int(c.B)
	gray := (r + g + b) / 3
	maxDiff := max(abs(r-gray), abs(g-gray), abs(b-gray))

	cubeR, cubeG, cubeB := cubeIndex[c.R], cubeIndex[c.G], cubeIndex[c.B]

	if maxDiff < 10 {
		if gray < 4 {
			return 16
		}
		if gray > 243 {
			return 231
		}
		grayIdx := 232 + (gray-8)/10
		if grayIdx > 255 {
			grayIdx = 255
		}
		if grayIdx < 232 {
			grayIdx = 232
		}

		grayLevel := 8 + (grayIdx-232)*10
		grayDist := abs(r-grayLevel) + abs(g-grayLevel) + abs(b-grayLevel)
		cubeDist := abs(r-int(cubeValues[cubeR])) +
			abs(g-int(cubeValues[cubeG])) +
			abs(b-int(cubeValues[cubeB]))

		if grayDist < cubeDist {
			return uint8(grayIdx)
		}
	}

	return 16 + 36*cubeR + 6*cubeG + cubeB
}
