// Package palette turns a free-text theme into an ordered list of hex colors
// by asking a chat-completion model and scanning its reply.
package palette

import (
	"regexp"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is a "#RRGGBB" string exactly as the model returned it.
type Color string

// Palette is an ordered list of colors from one request.
type Palette []Color

// lightnessThreshold splits swatches that need dark label text from ones that
// need light label text (CIE L*, 0..1).
const lightnessThreshold = 0.6

var hexColorPattern = regexp.MustCompile(`#[A-Fa-f0-9]{6}`)

var fallbackPalette = Palette{"#D8BFD8", "#E0FFFF", "#FFE4C4"}

// Fallback returns a fresh copy of the fixed palette used when a reply holds
// no recognizable colors.
func Fallback() Palette {
	return fallbackPalette.Clone()
}

// Extract returns every non-overlapping "#RRGGBB" token in text, in order,
// without deduplication or case normalization. It returns nil when there is
// no match.
func Extract(text string) Palette {
	matches := hexColorPattern.FindAllString(text, -1)
	if len(matches) == 0 {
		return nil
	}

	out := make(Palette, 0, len(matches))
	for _, match := range matches {
		out = append(out, Color(match))
	}

	return out
}

// Parse applies the reply rule: extracted colors when any, otherwise the
// fallback palette. The second result reports whether the fallback was used.
func Parse(text string) (Palette, bool) {
	if colors := Extract(text); len(colors) > 0 {
		return colors, false
	}

	return Fallback(), true
}

func (p Palette) Clone() Palette {
	if p == nil {
		return nil
	}

	out := make(Palette, len(p))
	copy(out, p)
	return out
}

// Strings returns the colors as plain strings.
func (p Palette) Strings() []string {
	out := make([]string, len(p))
	for i, c := range p {
		out[i] = string(c)
	}

	return out
}

func (p Palette) String() string {
	return strings.Join(p.Strings(), ", ")
}

// IsLight reports whether c is light enough to need dark text on top of it.
// Unparseable values count as light.
func (c Color) IsLight() bool {
	parsed, err := colorful.Hex(string(c))
	if err != nil {
		return true
	}

	l, _, _ := parsed.Lab()
	return l >= lightnessThreshold
}
