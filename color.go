package shellvetica

import "fmt"

// Palette sets the ANSI 4-bit color codes to a colorset of RGB values.
// The ANSI standard never formalized color values and it was left to the system to determine.
// Wikipedia has a [useful table] of the common palettes.
//
// [useful table]: https://en.wikipedia.org/wiki/ANSI_escape_code#3-bit_and_4-bit
type Palette uint

const (
	CGA16   Palette = iota // Color Graphics Adapter colorset defined by IBM for the PC in 1981
	Xterm16                // Xterm terminal emulator program for the X Window System colorset from the mid-1980s
)

// Hex is a color code represented as hexadecimal numeric value.
// These are often 6 digit values RRGGBB (red, green, blue),
// however, certain values can be shortened to 3 digit values.
//
// For example, the code of CGA red "aa0000" (red: aa, green: 00, blue: 00) can shortened to "a00".
type Hex string

const (
	CBlack    Hex = "000"    // black
	CRed      Hex = "a00"    // red
	CGreen    Hex = "0a0"    // green
	CBrown    Hex = "a50"    // yellow
	CBlue     Hex = "00a"    // blue
	CMagenta  Hex = "a0a"    // magenta
	CCyan     Hex = "0aa"    // cyan
	CGray     Hex = "aaa"    // white
	CDarkGray Hex = "555"    // bright black
	CLRed     Hex = "f55"    // bright red
	CLGreen   Hex = "5f5"    // bright green
	CYellow   Hex = "ff5"    // bright yellow
	CLBlue    Hex = "55f"    // bright blue
	CLMagenta Hex = "f5f"    // bright magenta
	CLCyan    Hex = "5ff"    // bright cyan
	CWhite    Hex = "fff"    // bright white
	XBlack    Hex = "000"    // black
	XMaroon   Hex = "800000" // red
	XGreen    Hex = "008000" // green
	XOlive    Hex = "808000" // yellow
	XNavy     Hex = "000080" // blue
	XPurple   Hex = "800080" // magenta
	XTeal     Hex = "008080" // cyan
	XSilver   Hex = "c0c0c0" // white
	XGray     Hex = "808080" // bright black
	XRed      Hex = "f00"    // bright red
	XLime     Hex = "0f0"    // bright green
	XYellow   Hex = "ff0"    // bright yellow
	XBlue     Hex = "00f"    // bright blue
	XFuchsia  Hex = "f0f"    // bright magenta
	XAqua     Hex = "0ff"    // bright cyan
	XWhite    Hex = "fff"    // bright white
)

// BG returns the CSS background-color property and color value.
func (h Hex) BG() string {
	if h == "" {
		return ""
	}
	return "background-color:#" + string(h) + ";"
}

// FG returns the CSS color property and color value.
func (h Hex) FG() string {
	if h == "" {
		return ""
	}
	return "color:#" + string(h) + ";"
}

// Decoration returns the CSS text-decoration-color property and color value.
func (h Hex) Decoration() string {
	if h == "" {
		return ""
	}
	return "text-decoration-color:#" + string(h) + ";"
}

func CGA() [16]Hex {
	return [16]Hex{
		CBlack, CRed, CGreen, CBrown, CBlue, CMagenta, CCyan, CGray,
		CDarkGray, CLRed, CLGreen, CYellow, CLBlue, CLMagenta, CLCyan, CWhite,
	}
}

func Xterm() [16]Hex {
	return [16]Hex{
		XBlack, XMaroon, XGreen, XOlive, XNavy, XPurple, XTeal, XSilver,
		XGray, XRed, XLime, XYellow, XBlue, XFuchsia, XAqua, XWhite,
	}
}

// Colors returns the 16 colors of the palette, the 8 standard colors followed by their bright variants.
// Unknown palettes use Xterm16.
func (p Palette) Colors() [16]Hex {
	if p == CGA16 {
		return CGA()
	}
	return Xterm()
}

func (p Palette) String() string {
	switch p {
	case CGA16:
		return "cga"
	case Xterm16:
		return "xterm"
	}
	return fmt.Sprintf("Palette(%d)", uint(p))
}

// ColorKind is the color model of a Color.
type ColorKind uint8

const (
	ColorNone     ColorKind = iota // ColorNone is the terminal default color
	ColorStandard                  // ColorStandard is one of the 8 standard colors, codes 30-37 and 40-47
	ColorBright                    // ColorBright is one of the 8 bright colors, codes 90-97 and 100-107
	ColorPalette                   // ColorPalette is one of the 256 indexed colors, ESC[38;5;n
	ColorRGB                       // ColorRGB is a 24-bit true color, ESC[38;2;r;g;b
)

// Color is a foreground, background or underline color selection.
// The zero value is the terminal default color.
type Color struct {
	Kind    ColorKind
	Index   uint8 // Index is used by the standard, bright and palette kinds
	R, G, B uint8 // R, G and B are used by the RGB kind
}

// Standard returns the standard color with the index 0-7.
func Standard(index uint8) Color {
	return Color{Kind: ColorStandard, Index: index & 7} //nolint:mnd
}

// Bright returns the bright color with the index 0-7.
func Bright(index uint8) Color {
	return Color{Kind: ColorBright, Index: index & 7} //nolint:mnd
}

// Indexed returns the 256 color palette color with the index.
func Indexed(index uint8) Color {
	return Color{Kind: ColorPalette, Index: index}
}

// RGB returns a true color.
func RGB(r, g, b uint8) Color {
	return Color{Kind: ColorRGB, R: r, G: g, B: b}
}

// IsNone reports whether the color is the terminal default.
func (c Color) IsNone() bool {
	return c.Kind == ColorNone
}

func (c Color) String() string {
	switch c.Kind {
	case ColorNone:
		return "default"
	case ColorStandard:
		return fmt.Sprintf("std:%d", c.Index)
	case ColorBright:
		return fmt.Sprintf("bright:%d", c.Index)
	case ColorPalette:
		return fmt.Sprintf("idx:%d", c.Index)
	case ColorRGB:
		return fmt.Sprintf("rgb(%d,%d,%d)", c.R, c.G, c.B)
	}
	return "unknown"
}

// Hex returns the hexadecimal value of the color using the palette for the
// standard and bright colors. The default color returns a blank string.
func (c Color) Hex(p Palette) Hex {
	switch c.Kind {
	case ColorStandard:
		return BasicHex(int(c.Index), false, p)
	case ColorBright:
		return BasicHex(int(c.Index), true, p)
	case ColorPalette:
		return XtermHex(int(c.Index), p)
	case ColorRGB:
		return RGBHex(int(c.R), int(c.G), int(c.B))
	}
	return ""
}

// BasicHex takes a standard color code and returns a corresponding hexadecimal string.
// When bright is toggled, a lighter color variant is used.
// Codes are values between 0 and 7, and any invalid codes returns a blank string.
//
//nolint:mnd
func BasicHex(code int, bright bool, p Palette) Hex {
	const first, last = 0, 7
	if code < first || code > last {
		return ""
	}
	index := code
	if bright {
		index = code + 8
	}
	return p.Colors()[index]
}

// XtermHex takes a Xterm color code and returns the corresponding RBG values
// as a hexadecimal string.
// Codes are values between 0 and 255, and any invalid codes return a blank string.
// The Palette is only used for basic colors codes between 0 and 15.
//
//nolint:mnd
func XtermHex(code int, p Palette) Hex {
	if code < 0 || code > 255 {
		return ""
	}
	if code <= 7 {
		return BasicHex(code, false, p)
	}
	if code <= 15 {
		return BasicHex(code-8, true, p)
	}
	r, g, b := XtermColors(code)
	return RGBHex(r, g, b)
}

// XtermColors takes a Xterm non-system color code and returns the corresponding RGB values.
// The code values begin at 16 and finish at 255.
// If a code is out of range, then the returned RGB values will be -1, which are invalid.
//
// Some helpful links, [256 colors cheat sheet] and [8-bit colors wiki].
//
// [256 colors cheat sheet]: https://www.ditig.com/256-colors-cheat-sheet
// [8-bit colors wiki]: https://en.wikipedia.org/wiki/ANSI_escape_code#8-bit
func XtermColors(code int) (int, int, int) {
	if code >= 16 && code <= 231 {
		return XtermColor(code)
	}
	if code >= 232 && code <= 255 {
		return XtermGray(code)
	}
	return -1, -1, -1
}

// XtermColor returns the RGB values for the 6×6×6 color cube, codes 16 to 231.
// Each of the six levels of a channel is a multiple of 51.
//
//nolint:mnd
func XtermColor(code int) (int, int, int) {
	c := code - 16
	r := (c / 36) * 51
	g := (c / 6 % 6) * 51
	b := (c % 6) * 51
	return r, g, b
}

// XtermGray returns the RGB values for the Xterm greyscale colors.
//
//nolint:mnd
func XtermGray(code int) (int, int, int) {
	level := code - 232
	v := 8 + level*10
	return v, v, v
}

// RGBHex returns the hexadecimal string of the red, green and blue values,
// each clamped to 0-255. Colors where every channel repeats its digit,
// such as "aa0000", use the 3 digit shorthand "a00".
func RGBHex(r, g, b int) Hex {
	const hi = 255
	r = clamp(r, 0, hi)
	g = clamp(g, 0, hi)
	b = clamp(b, 0, hi)
	if short(r) && short(g) && short(b) {
		return Hex(fmt.Sprintf("%x%x%x", r>>4, g>>4, b>>4))
	}
	return Hex(fmt.Sprintf("%02x%02x%02x", r, g, b))
}

// short reports whether the high and low nibbles of v are equal.
func short(v int) bool {
	return v>>4 == v&0xf //nolint:mnd
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
