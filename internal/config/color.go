package config

import (
	"fmt"
	"strconv"
	"strings"
)

var colorNames = map[string]uint32{
	"black":   0x000000,
	"white":   0xffffff,
	"red":     0xff0000,
	"green":   0x00ff00,
	"blue":    0x0000ff,
	"yellow":  0xffff00,
	"cyan":    0x00ffff,
	"magenta": 0xff00ff,
	"orange":  0xffa500,
	"gray":    0x808080,
	"grey":    0x808080,
}

// ParseColor accepts a color name, #rrggbb, #rgb or 0xrrggbb and returns the
// 24-bit TrueColor pixel value.
func ParseColor(s string) (uint32, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	if v == "" {
		return 0, fmt.Errorf("color is empty")
	}
	if px, ok := colorNames[v]; ok {
		return px, nil
	}

	var hex string
	switch {
	case strings.HasPrefix(v, "#"):
		hex = v[1:]
	case strings.HasPrefix(v, "0x"):
		hex = v[2:]
	default:
		return 0, fmt.Errorf("unknown color %q", s)
	}

	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return 0, fmt.Errorf("color %q must have 3 or 6 hex digits", s)
	}
	n, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("color %q is not valid hex", s)
	}
	return uint32(n), nil
}
