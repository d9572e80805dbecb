package shellvetica

// Sources :
// - https://vt100.net/emu/dec_ansi_parser
// - https://invisible-island.net/xterm/ctlseqs/ctlseqs.html
// - https://ecma-international.org/wp-content/uploads/ECMA-48_5th_edition_june_1991.pdf

import (
	"bytes"
	"math"
)

const (
	maxParams    = 32 // maxParams caps the number of CSI values, sub-values included
	maxOSCParams = 16 // maxOSCParams caps the OSC payloads, the last keeps any further ';'
)

type lexer struct {
	input []byte
	pos   int
	nodes []Node
	text  []byte
}

// Lex splits the terminal output in p into an ordered sequence of nodes.
//
// CRLF pairs are normalized to LF before lexing. Printable bytes, LF, CR and
// TAB are collected into text nodes, other C0 bytes and DEL become control nodes,
// and CSI, OSC and ESC sequences become their own nodes without any interpretation
// of their parameters. Sequences truncated by the end of p are discarded.
// Lex never fails and never alters the bytes of text or OSC payloads.
func Lex(p []byte) []Node {
	in := normalizeCRLF(p)
	l := &lexer{
		input: in,
		nodes: make([]Node, 0, len(in)/8+1), //nolint:mnd
		text:  make([]byte, 0, len(in)),
	}
	for l.pos < len(l.input) {
		b := l.input[l.pos]
		l.pos++
		if b != ESC {
			l.ground(b)
			continue
		}
		for l.escape() {
			// an ESC interrupted the previous sequence and starts a new one
		}
	}
	l.flush()
	return l.nodes
}

func normalizeCRLF(p []byte) []byte {
	crlf := []byte{CR, LF}
	if !bytes.Contains(p, crlf) {
		return p
	}
	return bytes.ReplaceAll(p, crlf, []byte{LF})
}

// ground handles a byte outside of any sequence, or a C0 byte executed inside one.
func (l *lexer) ground(b byte) {
	if isText(b) {
		l.text = append(l.text, b)
		return
	}
	l.control(b)
}

func isText(b byte) bool {
	switch b {
	case LF, CR, HT:
		return true
	case DEL:
		return false
	}
	return b >= 0x20 //nolint:mnd
}

func (l *lexer) control(b byte) {
	l.emit(Node{Kind: NodeControl, Control: b})
}

// flush moves any pending text into a text node.
func (l *lexer) flush() {
	if len(l.text) == 0 {
		return
	}
	l.nodes = append(l.nodes, Text(string(l.text)))
	l.text = l.text[:0]
}

func (l *lexer) emit(n Node) {
	l.flush()
	l.nodes = append(l.nodes, n)
}

// escape handles the bytes following an ESC.
// It returns true when another ESC cut the sequence short and must be handled next.
func (l *lexer) escape() bool {
	var inter []byte
	for l.pos < len(l.input) {
		b := l.input[l.pos]
		l.pos++
		switch {
		case b == '[' && len(inter) == 0:
			return l.csi()
		case b == ']' && len(inter) == 0:
			return l.osc()
		case b == ESC:
			inter = nil
		case b == CAN || b == SUB:
			l.control(b)
			return false
		case b == DEL:
			continue
		case b < 0x20: //nolint:mnd
			l.ground(b)
		case b <= 0x2f: //nolint:mnd
			inter = append(inter, b)
		case b > 0x7e: //nolint:mnd
			// not a valid final byte, the ESC is dropped and b is text
			l.ground(b)
			return false
		default:
			l.emit(Node{Kind: NodeEsc, Intermediates: inter, Code: b})
			return false
		}
	}
	return false
}

// csi handles the bytes following ESC [.
// It returns true when an ESC aborted the sequence.
func (l *lexer) csi() bool { //nolint:gocognit,gocyclo
	var (
		params     [][]uint16
		group      []uint16
		value      uint32
		count      int
		inter      []byte
		seenParam  bool
		afterInter bool
		ignore     bool
	)
	push := func() {
		if count < maxParams {
			group = append(group, uint16(value)) //nolint:gosec
			count++
		}
		value = 0
	}
	endGroup := func() {
		if len(group) > 0 {
			params = append(params, group)
		}
		group = nil
	}
	for l.pos < len(l.input) {
		b := l.input[l.pos]
		l.pos++
		switch {
		case b >= '0' && b <= '9':
			if afterInter {
				ignore = true
				continue
			}
			seenParam = true
			value = min(value*10+uint32(b-'0'), math.MaxUint16) //nolint:mnd
		case b == ';' || b == ':':
			if afterInter {
				ignore = true
				continue
			}
			seenParam = true
			push()
			if b == ';' {
				endGroup()
			}
		case b >= '<' && b <= '?':
			// private markers are only valid before any parameter
			if seenParam || afterInter {
				ignore = true
				continue
			}
			inter = append(inter, b)
		case b >= 0x20 && b <= 0x2f: //nolint:mnd
			afterInter = true
			inter = append(inter, b)
		case b >= 0x40 && b <= 0x7e: //nolint:mnd
			if ignore {
				return false
			}
			push()
			endGroup()
			l.emit(Node{Kind: NodeCSI, Params: params, Intermediates: inter, Code: b})
			return false
		case b == ESC:
			return true
		case b == CAN || b == SUB:
			l.control(b)
			return false
		case b == DEL:
			continue
		case b < 0x20: //nolint:mnd
			l.ground(b)
		default:
			ignore = true
		}
	}
	return false
}

// osc handles the bytes following ESC ].
// It returns true when an ESC other than a String Terminator ended the sequence.
func (l *lexer) osc() bool {
	var payload []byte
	for l.pos < len(l.input) {
		b := l.input[l.pos]
		l.pos++
		switch {
		case b == BEL:
			l.dispatchOSC(payload, true)
			return false
		case b == CAN || b == SUB:
			l.control(b)
			return false
		case b == ESC:
			if l.pos >= len(l.input) {
				return false
			}
			l.dispatchOSC(payload, false)
			if l.input[l.pos] == '\\' {
				l.pos++
				return false
			}
			return true
		case b < 0x20: //nolint:mnd
			continue
		default:
			payload = append(payload, b)
		}
	}
	return false
}

func (l *lexer) dispatchOSC(payload []byte, bell bool) {
	params := bytes.SplitN(payload, []byte{';'}, maxOSCParams)
	l.emit(Node{Kind: NodeOSC, OSC: params, BellTerminated: bell})
}
