package shellvetica

import (
	"fmt"
	"strings"
)

// Select Graphic Rendition parameter codes.
const (
	Reset           = 0
	Bold            = 1
	Faint           = 2
	Italic          = 3
	Underline       = 4
	Blink           = 5
	RapidBlink      = 6
	Invert          = 7
	Conceal         = 8
	CrossedOut      = 9
	Font0           = 10
	Font9           = 19
	Fraktur         = 20
	NotBold         = 21
	NotBoldFaint    = 22
	NotItalic       = 23
	NotUnderline    = 24
	NotBlink        = 25
	Proportional    = 26
	NotInvert       = 27
	Reveal          = 28
	NotCrossedOut   = 29
	FG1st           = 30
	FGEnd           = 37
	SetFG           = 38
	DefaultFG       = 39
	BG1st           = 40
	BGEnd           = 47
	SetBG           = 48
	DefaultBG       = 49
	NotProportional = 50
	Framed          = 51
	Encircled       = 52
	Overlined       = 53
	NotFramed       = 54
	NotOverlined    = 55
	SetUnderline    = 58
	DefaultULColor  = 59
	Superscript     = 73
	Subscript       = 74
	NotScript       = 75
	BrightFG1st     = 90
	BrightFGEnd     = 97
	BrightBG1st     = 100
	BrightBGEnd     = 107

	xterm256  = 5 // xterm256 selects a 256 color palette index, 38;5;n
	truecolor = 2 // truecolor selects a 24-bit color, 38;2;r;g;b
)

// UnderlineStyle is the decoration line drawn by SGR 4 and its 4:n sub-parameters.
type UnderlineStyle uint8

const (
	UnderlineNone UnderlineStyle = iota
	UnderlineSingle
	UnderlineDouble
	UnderlineCurly
	UnderlineDotted
	UnderlineDashed
)

func (u UnderlineStyle) String() string {
	switch u {
	case UnderlineNone:
		return "none"
	case UnderlineSingle:
		return "single"
	case UnderlineDouble:
		return "double"
	case UnderlineCurly:
		return "curly"
	case UnderlineDotted:
		return "dotted"
	case UnderlineDashed:
		return "dashed"
	}
	return fmt.Sprintf("UnderlineStyle(%d)", uint8(u))
}

// Script is the vertical alignment set by SGR 73 and 74.
type Script uint8

const (
	ScriptNone Script = iota
	ScriptSuper
	ScriptSub
)

// Style is the graphic rendition state produced by folding SGR sequences.
// The zero value is the terminal default, and two styles render the same when they are ==.
type Style struct {
	Bold           bool
	Dim            bool
	Italic         bool
	Underline      UnderlineStyle
	UnderlineColor Color
	Blink          bool
	RapidBlink     bool
	Reverse        bool
	Hidden         bool
	Strikethrough  bool
	Font           uint8 // Font is the alternative font 1-9, or 0 for the primary font
	Fraktur        bool
	Proportional   bool
	Framed         bool
	Encircled      bool
	Overlined      bool
	Script         Script
	Foreground     Color
	Background     Color

	// FgBrightFromBold is set while Foreground is a bright color that bold promoted from a standard color.
	FgBrightFromBold bool
	// BgBrightFromBold is set while Background is a bright color that bold promoted from a standard color.
	BgBrightFromBold bool
}

// IsZero reports whether the style is the terminal default.
func (s Style) IsZero() bool {
	return s == Style{}
}

// Rendition returns the style without the bold provenance flags,
// so styles that render the same are ==.
func (s Style) Rendition() Style {
	s.FgBrightFromBold, s.BgBrightFromBold = false, false
	return s
}

func (s Style) String() string {
	parts := []string{
		"fg:" + s.Foreground.String(),
		"bg:" + s.Background.String(),
	}
	flags := []struct {
		name string
		on   bool
	}{
		{"bold", s.Bold}, {"dim", s.Dim}, {"italic", s.Italic},
		{"blink", s.Blink}, {"rapid-blink", s.RapidBlink}, {"reverse", s.Reverse},
		{"hidden", s.Hidden}, {"strikethrough", s.Strikethrough}, {"fraktur", s.Fraktur},
		{"proportional", s.Proportional}, {"framed", s.Framed}, {"encircled", s.Encircled},
		{"overlined", s.Overlined},
	}
	for _, f := range flags {
		if f.on {
			parts = append(parts, f.name)
		}
	}
	if s.Underline != UnderlineNone {
		parts = append(parts, "underline:"+s.Underline.String())
	}
	if !s.UnderlineColor.IsNone() {
		parts = append(parts, "underline-color:"+s.UnderlineColor.String())
	}
	if s.Font != 0 {
		parts = append(parts, fmt.Sprintf("font:%d", s.Font))
	}
	if s.Script == ScriptSuper {
		parts = append(parts, "superscript")
	}
	if s.Script == ScriptSub {
		parts = append(parts, "subscript")
	}
	return strings.Join(parts, ", ")
}

// param is one CSI parameter position, the code followed by its sub-values.
type param []uint16

// at returns the value at position i, or 0 when it is absent.
func (p param) at(i int) uint16 {
	if i < len(p) {
		return p[i]
	}
	return 0
}

// sgrRule applies the codes from first to last.
type sgrRule struct {
	first, last uint16
	apply       func(s Style, p param) Style
}

// sgrRules is the ordered rule table, the first rule whose range holds the code of a
// parameter group is applied. Codes without a rule are ignored.
var sgrRules = []sgrRule{
	{Reset, Reset, func(Style, param) Style { return Style{} }},
	{Bold, Bold, bold},
	{Faint, Faint, func(s Style, _ param) Style { s.Dim = true; return s }},
	{Italic, Italic, func(s Style, _ param) Style { s.Italic = true; return s }},
	{Underline, Underline, underline},
	{Blink, Blink, func(s Style, _ param) Style { s.Blink = true; return s }},
	{RapidBlink, RapidBlink, func(s Style, _ param) Style { s.RapidBlink = true; return s }},
	{Invert, Invert, func(s Style, _ param) Style { s.Reverse = true; return s }},
	{Conceal, Conceal, func(s Style, _ param) Style { s.Hidden = true; return s }},
	{CrossedOut, CrossedOut, func(s Style, _ param) Style { s.Strikethrough = true; return s }},
	{Font0, Font9, func(s Style, p param) Style { s.Font = uint8(p.at(0) - Font0); return s }}, //nolint:gosec
	{Fraktur, Fraktur, func(s Style, _ param) Style { s.Fraktur = true; return s }},
	{NotBold, NotBoldFaint, notBold},
	{NotItalic, NotItalic, func(s Style, _ param) Style { s.Italic = false; return s }},
	{NotUnderline, NotUnderline, func(s Style, _ param) Style { s.Underline = UnderlineNone; return s }},
	{NotBlink, NotBlink, func(s Style, _ param) Style { s.Blink, s.RapidBlink = false, false; return s }},
	{Proportional, Proportional, func(s Style, _ param) Style { s.Proportional = true; return s }},
	{NotInvert, NotInvert, func(s Style, _ param) Style { s.Reverse = false; return s }},
	{Reveal, Reveal, func(s Style, _ param) Style { s.Hidden = false; return s }},
	{NotCrossedOut, NotCrossedOut, func(s Style, _ param) Style { s.Strikethrough = false; return s }},
	{FG1st, FGEnd, standardFG},
	{SetFG, SetFG, func(s Style, p param) Style {
		if c, ok := extended(p); ok {
			s.Foreground, s.FgBrightFromBold = c, false
		}
		return s
	}},
	{DefaultFG, DefaultFG, func(s Style, _ param) Style { s.Foreground, s.FgBrightFromBold = Color{}, false; return s }},
	{BG1st, BGEnd, standardBG},
	{SetBG, SetBG, func(s Style, p param) Style {
		if c, ok := extended(p); ok {
			s.Background, s.BgBrightFromBold = c, false
		}
		return s
	}},
	{DefaultBG, DefaultBG, func(s Style, _ param) Style { s.Background, s.BgBrightFromBold = Color{}, false; return s }},
	{NotProportional, NotProportional, func(s Style, _ param) Style { s.Proportional = false; return s }},
	{Framed, Framed, func(s Style, _ param) Style { s.Framed = true; return s }},
	{Encircled, Encircled, func(s Style, _ param) Style { s.Encircled = true; return s }},
	{Overlined, Overlined, func(s Style, _ param) Style { s.Overlined = true; return s }},
	{NotFramed, NotFramed, func(s Style, _ param) Style { s.Framed, s.Encircled = false, false; return s }},
	{NotOverlined, NotOverlined, func(s Style, _ param) Style { s.Overlined = false; return s }},
	{SetUnderline, SetUnderline, func(s Style, p param) Style {
		if c, ok := extended(p); ok {
			s.UnderlineColor = c
		}
		return s
	}},
	{DefaultULColor, DefaultULColor, func(s Style, _ param) Style { s.UnderlineColor = Color{}; return s }},
	{Superscript, Superscript, func(s Style, _ param) Style { s.Script = ScriptSuper; return s }},
	{Subscript, Subscript, func(s Style, _ param) Style { s.Script = ScriptSub; return s }},
	{NotScript, NotScript, func(s Style, _ param) Style { s.Script = ScriptNone; return s }},
	{BrightFG1st, BrightFGEnd, func(s Style, p param) Style {
		s.Foreground, s.FgBrightFromBold = Bright(uint8(p.at(0)-BrightFG1st)), false //nolint:gosec
		return s
	}},
	{BrightBG1st, BrightBGEnd, func(s Style, p param) Style {
		s.Background, s.BgBrightFromBold = Bright(uint8(p.at(0)-BrightBG1st)), false //nolint:gosec
		return s
	}},
}

func bold(s Style, _ param) Style {
	s.Bold = true
	if s.Foreground.Kind == ColorStandard {
		s.Foreground, s.FgBrightFromBold = Bright(s.Foreground.Index), true
	}
	if s.Background.Kind == ColorStandard {
		s.Background, s.BgBrightFromBold = Bright(s.Background.Index), true
	}
	return s
}

// notBold turns off both bold and dim, and returns any color that bold made bright to
// its standard variant. Bright colors that were explicitly selected are kept.
func notBold(s Style, _ param) Style {
	s.Bold, s.Dim = false, false
	if s.FgBrightFromBold && s.Foreground.Kind == ColorBright {
		s.Foreground = Standard(s.Foreground.Index)
	}
	if s.BgBrightFromBold && s.Background.Kind == ColorBright {
		s.Background = Standard(s.Background.Index)
	}
	s.FgBrightFromBold, s.BgBrightFromBold = false, false
	return s
}

func underline(s Style, p param) Style {
	if len(p) < 2 { //nolint:mnd
		s.Underline = UnderlineSingle
		return s
	}
	switch n := p.at(1); {
	case n == 0:
		s.Underline = UnderlineNone
	case n <= uint16(UnderlineDashed):
		s.Underline = UnderlineStyle(n) //nolint:gosec
	default:
		s.Underline = UnderlineSingle
	}
	return s
}

func standardFG(s Style, p param) Style {
	s.Foreground, s.FgBrightFromBold = basic(s.Bold, p.at(0)-FG1st)
	return s
}

func standardBG(s Style, p param) Style {
	s.Background, s.BgBrightFromBold = basic(s.Bold, p.at(0)-BG1st)
	return s
}

// basic returns the standard color of index, or its bright variant while bold is active.
func basic(bold bool, index uint16) (Color, bool) {
	if bold {
		return Bright(uint8(index)), true //nolint:gosec
	}
	return Standard(uint8(index)), false //nolint:gosec
}

// extended returns the color of a 38, 48 or 58 group, either 5:n or 2:r:g:b.
// A 2 group with six or more values carries a color space identifier before r:g:b.
func extended(p param) (Color, bool) {
	const hi = 255
	channel := func(i int) uint8 {
		return uint8(min(p.at(i), hi)) //nolint:gosec
	}
	switch p.at(1) {
	case xterm256:
		return Indexed(channel(2)), true //nolint:mnd
	case truecolor:
		first := 2
		if len(p) >= 6 { //nolint:mnd
			first = 3
		}
		return RGB(channel(first), channel(first+1), channel(first+2)), true
	}
	return Color{}, false
}

// Apply returns the style after applying a single parameter group,
// the code followed by any of its ':' separated sub-values.
// Unknown codes leave the style unchanged.
func (s Style) Apply(group []uint16) Style {
	if len(group) == 0 {
		return s
	}
	p := param(group)
	code := p.at(0)
	for _, rule := range sgrRules {
		if code >= rule.first && code <= rule.last {
			return rule.apply(s, p)
		}
	}
	return s
}

// ApplyParams returns the style after applying every parameter position of a SGR sequence in order.
//
// The extended colors 38, 48 and 58 accept both the ':' sub-parameter form, ESC[38:5:n,
// and the ';' form used by most programs, ESC[38;5;n, in which case the following
// positions are consumed as the color values.
func (s Style) ApplyParams(params [][]uint16) Style {
	for i := 0; i < len(params); i++ {
		group := params[i]
		if len(group) == 1 && isExtended(group[0]) && i+1 < len(params) {
			need := 0
			switch param(params[i+1]).at(0) {
			case xterm256:
				need = 2 //nolint:mnd
			case truecolor:
				need = 4 //nolint:mnd
			}
			if need > 0 {
				joined := param{group[0]}
				for j := 1; j <= need && i+j < len(params); j++ {
					joined = append(joined, param(params[i+j]).at(0))
				}
				i += need
				group = joined
			}
		}
		s = s.Apply(group)
	}
	return s
}

func isExtended(code uint16) bool {
	return code == SetFG || code == SetBG || code == SetUnderline
}

// Styled pairs a node with the style active at its position.
type Styled struct {
	Node  Node
	Style Style
}

// Resolve folds every SGR node over a default style and pairs each node with the
// style active at its position. SGR nodes are paired with the style they produce.
// All other nodes pass through unchanged.
func Resolve(nodes []Node) []Styled {
	out := make([]Styled, 0, len(nodes))
	var s Style
	for _, n := range nodes {
		if n.IsSGR() {
			s = s.ApplyParams(n.Params)
		}
		out = append(out, Styled{Node: n, Style: s})
	}
	return out
}
