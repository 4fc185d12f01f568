package render

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// ErrUnknownColor is returned by ParseColor for unrecognized input.
var ErrUnknownColor = errors.New("render: unknown color")

// ParseColor resolves a color name or hex string.
//
// Names follow the SVG 1.1 palette and ignore case, spaces, hyphens and
// underscores, so "light blue" and "LightBlue" both resolve. Hex strings
// start with '#' and use the RGB, RGBA, RRGGBB or RRGGBBAA forms.
func ParseColor(s string) (color.Color, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "#") {
		return parseHex(s[1:])
	}
	key := strings.NewReplacer(" ", "", "-", "", "_", "").Replace(strings.ToLower(s))
	if c, ok := colornames.Map[key]; ok {
		return c, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownColor, s)
}

func parseHex(hex string) (color.Color, error) {
	var short bool
	switch len(hex) {
	case 3, 4:
		short = true
	case 6, 8:
	default:
		return nil, fmt.Errorf("%w: #%s", ErrUnknownColor, hex)
	}

	step := 2
	if short {
		step = 1
	}
	c := color.NRGBA{A: 0xff}
	channels := []*uint8{&c.R, &c.G, &c.B, &c.A}
	for i := 0; i*step < len(hex); i++ {
		v, err := strconv.ParseUint(hex[i*step:(i+1)*step], 16, 8)
		if err != nil {
			return nil, fmt.Errorf("%w: #%s", ErrUnknownColor, hex)
		}
		if short {
			v *= 17
		}
		*channels[i] = uint8(v)
	}
	return c, nil
}

// hexString renders c as #rrggbb, dropping alpha.
func hexString(c color.Color) string {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return fmt.Sprintf("#%02x%02x%02x", n.R, n.G, n.B)
}

// opacity returns the alpha of c in [0, 1].
func opacity(c color.Color) float64 {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return float64(n.A) / 255
}
