package deck

import (
	"fmt"
	"math"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// EMU is an English Metric Unit, the length unit of Office Open XML.
type EMU int64

const (
	EMUPerInch  = 914400
	EMUPerPoint = 12700
)

// Inches converts inches to EMU.
func Inches(v float64) EMU { return EMU(math.Round(v * EMUPerInch)) }

// Points converts typographic points to EMU.
func Points(v float64) EMU { return EMU(math.Round(v * EMUPerPoint)) }

// Inches returns e in inches.
func (e EMU) Inches() float64 { return float64(e) / EMUPerInch }

// Rect is an axis-aligned frame on the slide canvas.
type Rect struct {
	X EMU `json:"x"`
	Y EMU `json:"y"`
	W EMU `json:"w"`
	H EMU `json:"h"`
}

// InchRect builds a Rect from inch values.
func InchRect(x, y, w, h float64) Rect {
	return Rect{X: Inches(x), Y: Inches(y), W: Inches(w), H: Inches(h)}
}

// Right returns the x coordinate of the right edge.
func (r Rect) Right() EMU { return r.X + r.W }

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() EMU { return r.Y + r.H }

// Union returns the smallest Rect covering r and o.
func (r Rect) Union(o Rect) Rect {
	x := min(r.X, o.X)
	y := min(r.Y, o.Y)
	return Rect{X: x, Y: y, W: max(r.Right(), o.Right()) - x, H: max(r.Bottom(), o.Bottom()) - y}
}

// Color is an sRGB color.
type Color struct {
	R, G, B uint8
}

// RGB builds a Color from components.
func RGB(r, g, b uint8) Color { return Color{R: r, G: g, B: b} }

// ParseColor parses "#rrggbb", "rrggbb", or "#rgb".
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return Color{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return Color{R: r, G: g, B: b}, nil
}

// MustColor is ParseColor for compile-time constants.
func MustColor(s string) Color {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Hex returns the color as upper-case "RRGGBB", the OOXML srgbClr form.
func (c Color) Hex() string { return fmt.Sprintf("%02X%02X%02X", c.R, c.G, c.B) }

// String returns "#rrggbb".
func (c Color) String() string { return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B) }

// MarshalText implements encoding.TextMarshaler.
func (c Color) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Color) UnmarshalText(b []byte) error {
	parsed, err := ParseColor(string(b))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

func (c Color) colorful() colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

// luminance is the WCAG relative luminance.
func (c Color) luminance() float64 {
	r, g, b := c.colorful().LinearRgb()
	return 0.2126*r + 0.7152*g + 0.0722*b
}

// ContrastRatio returns the WCAG contrast ratio between c and o (1 to 21).
func (c Color) ContrastRatio(o Color) float64 {
	l1, l2 := c.luminance(), o.luminance()
	if l1 < l2 {
		l1, l2 = l2, l1
	}
	return (l1 + 0.05) / (l2 + 0.05)
}

// MinCodeContrast is the lowest contrast a code token may have against the
// code fill before it is replaced with the fallback text color.
const MinCodeContrast = 2.0

// Readable returns fg if it contrasts enough with bg and fallback otherwise.
func Readable(fg, bg, fallback Color) Color {
	if fg.ContrastRatio(bg) < MinCodeContrast {
		return fallback
	}
	return fg
}

// Blend mixes c toward o by t (0..1) in Lab space.
func (c Color) Blend(o Color, t float64) Color {
	r, g, b := c.colorful().BlendLab(o.colorful(), t).Clamped().RGB255()
	return Color{R: r, G: g, B: b}
}
