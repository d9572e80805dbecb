package shellvetica

import (
	"fmt"
	"strings"
)

const (
	NUL = 0x00 // NUL is an ASCII null character
	BEL = 0x07 // BEL is the bell, one of the two OSC terminators
	HT  = 0x09 // HT is the horizontal tab
	LF  = 0x0a // LF is the line feed
	CR  = 0x0d // CR is the carriage return
	CAN = 0x18 // CAN cancels a control sequence in progress
	SUB = 0x1a // SUB cancels a control sequence in progress
	ESC = 0x1b // ESC is the escape control character code
	DEL = 0x7f // DEL is the delete control character code
)

// NodeKind is the tag of a lexed Node.
type NodeKind int

const (
	NodeText    NodeKind = iota // NodeText is a run of printable text
	NodeCSI                     // NodeCSI is a Control Sequence Introducer dispatch
	NodeEsc                     // NodeEsc is a single character escape dispatch
	NodeControl                 // NodeControl is a standalone C0 or DEL byte
	NodeOSC                     // NodeOSC is an Operating System Command
)

func (k NodeKind) String() string {
	switch k {
	case NodeText:
		return "Text"
	case NodeCSI:
		return "CSI"
	case NodeEsc:
		return "ESC"
	case NodeControl:
		return "Control"
	case NodeOSC:
		return "OSC"
	default:
		return fmt.Sprintf("NodeKind(%d)", k)
	}
}

// Node is a single element of lexed terminal output.
// Only the fields relevant to the Kind are set.
type Node struct {
	Kind           NodeKind
	Text           string     // Text is the content of a NodeText
	Params         [][]uint16 // Params are the CSI parameter positions, each with its ':' sub-values
	Intermediates  []byte     // Intermediates are the CSI or ESC intermediate and private marker bytes
	Code           byte       // Code is the final byte of a CSI or ESC
	Control        byte       // Control is the byte of a NodeControl
	OSC            [][]byte   // OSC are the ';' separated payloads of a NodeOSC
	BellTerminated bool       // BellTerminated is true when an OSC ended with BEL rather than ST
}

// Text returns a text node.
func Text(s string) Node {
	return Node{Kind: NodeText, Text: s}
}

// CSI returns a control sequence node.
func CSI(code byte, intermediates []byte, params ...[]uint16) Node {
	return Node{Kind: NodeCSI, Code: code, Intermediates: intermediates, Params: params}
}

// SGR returns a Select Graphic Rendition node using one value per parameter position.
func SGR(values ...uint16) Node {
	params := make([][]uint16, 0, len(values))
	for _, v := range values {
		params = append(params, []uint16{v})
	}
	return CSI('m', nil, params...)
}

// IsSGR reports whether the node is a Select Graphic Rendition sequence.
// Sequences with intermediates or private markers, such as CSI > 4 m, are not.
func (n Node) IsSGR() bool {
	return n.Kind == NodeCSI && n.Code == 'm' && len(n.Intermediates) == 0
}

// IsZeroWidth reports whether the node takes no column when displayed,
// an empty text or a control byte other than TAB, LF and CR.
func (n Node) IsZeroWidth() bool {
	switch n.Kind {
	case NodeText:
		return n.Text == ""
	case NodeControl:
		b := n.Control
		return b <= 0x08 || b == 0x0b || b == 0x0c || (b >= 0x0e && b <= 0x1f) || b == DEL //nolint:mnd
	default:
		return false
	}
}

// IsCursorMovement reports whether the node is a CSI that moves the cursor,
// scrolls, erases or saves and restores the cursor position.
func (n Node) IsCursorMovement() bool {
	if n.Kind != NodeCSI {
		return false
	}
	return strings.IndexByte("HJKABCDEFGSTfsu", n.Code) >= 0
}

func (n Node) String() string {
	switch n.Kind {
	case NodeText:
		return fmt.Sprintf("Text(%q)", n.Text)
	case NodeCSI:
		groups := make([]string, 0, len(n.Params))
		for _, group := range n.Params {
			vals := make([]string, 0, len(group))
			for _, v := range group {
				vals = append(vals, fmt.Sprint(v))
			}
			groups = append(groups, strings.Join(vals, ":"))
		}
		return fmt.Sprintf("CSI(%s%s%c)", n.Intermediates, strings.Join(groups, ";"), n.Code)
	case NodeEsc:
		return fmt.Sprintf("ESC(%s%c)", n.Intermediates, n.Code)
	case NodeControl:
		if name, ok := C0Names[n.Control]; ok {
			return "Control(" + name + ")"
		}
		return fmt.Sprintf("Control(0x%02x)", n.Control)
	case NodeOSC:
		parts := make([]string, 0, len(n.OSC))
		for _, p := range n.OSC {
			parts = append(parts, string(p))
		}
		return fmt.Sprintf("OSC(%q, bell=%t)", strings.Join(parts, ";"), n.BellTerminated)
	default:
		return n.Kind.String()
	}
}

// C0Names maps the C0 control codes and DEL to their mnemonics.
var C0Names = map[byte]string{
	0x00: "NUL",
	0x01: "SOH",
	0x02: "STX",
	0x03: "ETX",
	0x04: "EOT",
	0x05: "ENQ",
	0x06: "ACK",
	0x07: "BEL",
	0x08: "BS",
	0x09: "HT",
	0x0A: "LF",
	0x0B: "VT",
	0x0C: "FF",
	0x0D: "CR",
	0x0E: "SO",
	0x0F: "SI",
	0x10: "DLE",
	0x11: "DC1",
	0x12: "DC2",
	0x13: "DC3",
	0x14: "DC4",
	0x15: "NAK",
	0x16: "SYN",
	0x17: "ETB",
	0x18: "CAN",
	0x19: "EM",
	0x1A: "SUB",
	0x1B: "ESC",
	0x1C: "FS",
	0x1D: "GS",
	0x1E: "RS",
	0x1F: "US",
	0x7F: "DEL",
}
