package shellvetica

import (
	"html"
	"strings"
)

// Serialize renders the run sequence as HTML, each scope becoming an inline styled
// span and all text being escaped. Colors use the palette for the standard and
// bright colors. Invalid UTF-8 in the text is replaced with U+FFFD.
func Serialize(tokens []Token, pal Palette) string {
	var b strings.Builder
	open := false
	for _, t := range tokens {
		switch t.Kind {
		case TokenOpen:
			if open {
				b.WriteString(`</span>`)
			}
			style := Declaration(t.Style, pal)
			if style == "" {
				b.WriteString(`<span>`)
			} else {
				b.WriteString(`<span style="`)
				b.WriteString(html.EscapeString(style))
				b.WriteString(`">`)
			}
			open = true
		case TokenText:
			b.WriteString(html.EscapeString(strings.ToValidUTF8(t.Text, "\uFFFD")))
		case TokenClose:
			if open {
				b.WriteString(`</span>`)
				open = false
			}
		}
	}
	if open {
		b.WriteString(`</span>`)
	}
	return b.String()
}

// Declaration returns the CSS declarations of the style in a fixed order:
// weight, opacity, font style, text decoration, color, background color,
// followed by visibility, vertical alignment and border.
// The default style returns a blank string.
func Declaration(s Style, pal Palette) string { //nolint:gocognit,cyclop
	var b strings.Builder
	if s.Bold {
		b.WriteString("font-weight:bold;")
	}
	if s.Dim {
		b.WriteString("opacity:0.5;")
	}
	if s.Italic {
		b.WriteString("font-style:italic;")
	}
	b.WriteString(decoration(s, pal))
	fg, bg := s.Foreground, s.Background
	if s.Reverse {
		// an unset side falls back to the default colors so the swap remains visible
		if fg.IsNone() {
			fg = Standard(7) //nolint:mnd
		}
		if bg.IsNone() {
			bg = Standard(0)
		}
		fg, bg = bg, fg
	}
	b.WriteString(fg.Hex(pal).FG())
	b.WriteString(bg.Hex(pal).BG())
	if s.Hidden {
		b.WriteString("visibility:hidden;")
	}
	switch s.Script {
	case ScriptSuper:
		b.WriteString("vertical-align:super;")
	case ScriptSub:
		b.WriteString("vertical-align:sub;")
	case ScriptNone:
	}
	if s.Framed || s.Encircled {
		b.WriteString("border:1px solid;")
	}
	if s.Encircled {
		b.WriteString("border-radius:50%;")
	}
	return b.String()
}

// decoration returns the text-decoration declarations for the underline, overline,
// strikethrough and blink lines, their underline style and color.
func decoration(s Style, pal Palette) string {
	lines := make([]string, 0, 4) //nolint:mnd
	if s.Underline != UnderlineNone {
		lines = append(lines, "underline")
	}
	if s.Overlined {
		lines = append(lines, "overline")
	}
	if s.Strikethrough {
		lines = append(lines, "line-through")
	}
	if s.Blink || s.RapidBlink {
		lines = append(lines, "blink")
	}
	if len(lines) == 0 {
		return ""
	}
	decl := "text-decoration:" + strings.Join(lines, " ") + ";"
	switch s.Underline {
	case UnderlineDouble:
		decl += "text-decoration-style:double;"
	case UnderlineCurly:
		decl += "text-decoration-style:wavy;"
	case UnderlineDotted:
		decl += "text-decoration-style:dotted;"
	case UnderlineDashed:
		decl += "text-decoration-style:dashed;"
	case UnderlineNone, UnderlineSingle:
	}
	if s.Underline != UnderlineNone {
		decl += s.UnderlineColor.Hex(pal).Decoration()
	}
	return decl
}
