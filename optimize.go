package shellvetica

import (
	"fmt"
	"strings"
	"unicode"
)

// TokenKind is the tag of a run Token.
type TokenKind int

const (
	TokenText  TokenKind = iota // TokenText is styled or unstyled text content
	TokenOpen                   // TokenOpen starts a style scope
	TokenClose                  // TokenClose ends the active style scope
)

func (k TokenKind) String() string {
	switch k {
	case TokenText:
		return "Text"
	case TokenOpen:
		return "Open"
	case TokenClose:
		return "Close"
	default:
		return fmt.Sprintf("TokenKind(%d)", k)
	}
}

// Token is an element of a run sequence, the style transitions and the text between them.
type Token struct {
	Kind  TokenKind
	Style Style  // Style is the style of a TokenOpen
	Text  string // Text is the content of a TokenText
}

// Open returns a token that starts a scope of the style.
func Open(s Style) Token {
	return Token{Kind: TokenOpen, Style: s}
}

// Close returns a token that ends the active scope.
func Close() Token {
	return Token{Kind: TokenClose}
}

// Content returns a text token.
func Content(s string) Token {
	return Token{Kind: TokenText, Text: s}
}

func (t Token) String() string {
	switch t.Kind {
	case TokenText:
		return fmt.Sprintf("Text(%q)", t.Text)
	case TokenOpen:
		return "Open(" + t.Style.String() + ")"
	case TokenClose:
		return "Close"
	}
	return t.Kind.String()
}

// Optimize returns the minimal run sequence of the resolved nodes.
func Optimize(resolved []Styled) []Token {
	return Compact(Tokenize(resolved))
}

// Tokenize returns the naive run sequence of the resolved nodes, closing the active
// scope and opening a new one each time the rendition of the text changes.
// Only text nodes produce content, control nodes and sequences are dropped.
func Tokenize(resolved []Styled) []Token {
	out := make([]Token, 0, len(resolved))
	var active Style
	for _, r := range resolved {
		if r.Node.Kind != NodeText || r.Node.Text == "" {
			continue
		}
		if s := r.Style.Rendition(); s != active {
			if !active.IsZero() {
				out = append(out, Close())
			}
			if !s.IsZero() {
				out = append(out, Open(s))
			}
			active = s
		}
		out = append(out, Content(r.Node.Text))
	}
	if !active.IsZero() {
		out = append(out, Close())
	}
	return out
}

// Compact reduces a run sequence to the fewest tokens that render the same markup.
//
// At most one scope is open at a time. Reopening the active style is dropped, and
// opening another style closes the active scope, or replaces it when it holds no content.
// Closes without an open scope are dropped, and so are scopes without any content,
// including opens that another open or a close follows before any text.
// A close followed only by whitespace and then an open of the same style is dropped
// so the scope spans the whitespace, as long as the style draws nothing on whitespace.
// Adjacent text is merged. Styles are compared by their [Style.Rendition].
// Compact of its own output returns the same output.
func Compact(tokens []Token) []Token { //nolint:gocognit
	c := compactor{out: make([]Token, 0, len(tokens))}
	for i, t := range tokens {
		switch t.Kind {
		case TokenOpen:
			t.Style = t.Style.Rendition()
			if c.open && t.Style == c.style {
				continue
			}
			if vacant(tokens[i+1:]) {
				continue
			}
			c.end()
			c.open, c.style, c.at, c.content = true, t.Style, len(c.out), false
			c.out = append(c.out, t)
		case TokenText:
			c.text(t.Text)
		case TokenClose:
			if !c.open {
				continue
			}
			if c.content && invisibleSpace(c.style) && reopens(tokens[i+1:], c.style) {
				continue
			}
			c.end()
		}
	}
	c.end()
	return c.out
}

type compactor struct {
	out     []Token
	open    bool  // open is set while a scope is active
	style   Style // style of the active scope
	at      int   // at is the index in out of the active open token
	content bool  // content is set once the active scope holds text
}

func (c *compactor) text(s string) {
	if s == "" {
		return
	}
	if c.open {
		c.content = true
	}
	if n := len(c.out); n > 0 && c.out[n-1].Kind == TokenText {
		c.out[n-1].Text += s
		return
	}
	c.out = append(c.out, Content(s))
}

// end closes the active scope, or removes it when it holds no content.
func (c *compactor) end() {
	if !c.open {
		return
	}
	if c.content {
		c.out = append(c.out, Close())
	} else {
		c.out = c.out[:c.at]
	}
	c.open, c.content = false, false
}

// reopens reports whether the next style affecting token is an open of the style,
// with nothing but whitespace and closes before it.
// Opens of vacant scopes are skipped as Compact drops them.
func reopens(tokens []Token, s Style) bool {
	for i, t := range tokens {
		switch t.Kind {
		case TokenText:
			if !blank(t.Text) {
				return false
			}
		case TokenClose:
			continue
		case TokenOpen:
			if vacant(tokens[i+1:]) {
				continue
			}
			return t.Style.Rendition() == s
		}
	}
	return false
}

// vacant reports whether a scope opened just before the tokens ends without any text,
// because another open, a close or the end of the tokens comes first.
func vacant(tokens []Token) bool {
	for _, t := range tokens {
		switch t.Kind {
		case TokenText:
			if t.Text != "" {
				return false
			}
		case TokenOpen, TokenClose:
			return true
		}
	}
	return true
}

func blank(s string) bool {
	return strings.TrimFunc(s, unicode.IsSpace) == ""
}

// invisibleSpace reports whether whitespace renders the same inside and outside the style.
// Text colors, weight and slant only affect glyphs, while backgrounds and lines are drawn
// across the spaces.
func invisibleSpace(s Style) bool {
	return s.Background.IsNone() &&
		!s.Reverse &&
		s.Underline == UnderlineNone &&
		!s.Strikethrough &&
		!s.Overlined &&
		!s.Framed &&
		!s.Encircled
}
