package shellvetica_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/bengarrett/shellvetica"
	"github.com/nalgeon/be"
)

// lexed returns the string representation of the nodes of the input.
func lexed(s string) []string {
	nodes := shellvetica.Lex([]byte(s))
	out := make([]string, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n.String())
	}
	return out
}

// stripped returns the content of every text node of the input.
func stripped(s string) string {
	var b strings.Builder
	for _, n := range shellvetica.Lex([]byte(s)) {
		if n.Kind == shellvetica.NodeText {
			b.WriteString(n.Text)
		}
	}
	return b.String()
}

func oscParams(n shellvetica.Node) []string {
	out := make([]string, 0, len(n.OSC))
	for _, p := range n.OSC {
		out = append(out, string(p))
	}
	return out
}

func ExampleLex() {
	for _, n := range shellvetica.Lex([]byte("te\x1b[33;1mst\x07")) {
		fmt.Println(n)
	}
	// Output: Text("te")
	// CSI(33;1m)
	// Text("st")
	// Control(BEL)
}

func TestLexCSI(t *testing.T) {
	t.Parallel()
	nodes := shellvetica.Lex([]byte("\x1b[4m test "))
	be.Equal(t, len(nodes), 2)
	be.Equal(t, nodes[0], shellvetica.CSI('m', nil, []uint16{4}))
	be.Equal(t, nodes[1], shellvetica.Text(" test "))
	be.True(t, nodes[0].IsSGR())

	nodes = shellvetica.Lex([]byte("\x1b[4:2m"))
	be.Equal(t, len(nodes), 1)
	be.Equal(t, nodes[0].Params, [][]uint16{{4, 2}})

	nodes = shellvetica.Lex([]byte("\x1b[38:2:255:50:0mtest"))
	be.Equal(t, nodes[0].Params, [][]uint16{{38, 2, 255, 50, 0}})
	be.Equal(t, nodes[1].Text, "test")

	nodes = shellvetica.Lex([]byte("\x1b[m"))
	be.Equal(t, nodes[0].Params, [][]uint16{{0}})

	nodes = shellvetica.Lex([]byte("\x1b[1;;3m"))
	be.Equal(t, nodes[0].Params, [][]uint16{{1}, {0}, {3}})

	nodes = shellvetica.Lex([]byte("\x1b[9999;65535m"))
	be.Equal(t, nodes[0].Params, [][]uint16{{9999}, {65535}})

	nodes = shellvetica.Lex([]byte("\x1b[99999m"))
	be.Equal(t, nodes[0].Params, [][]uint16{{65535}})
}

func TestLexCSIFinal(t *testing.T) {
	t.Parallel()
	be.Equal(t, lexed("\x1b[2J"), []string{"CSI(2J)"})
	be.Equal(t, lexed("\x1b[5@"), []string{"CSI(5@)"})
	be.Equal(t, lexed("\x1b[1 q"), []string{"CSI( 1q)"})
	nodes := shellvetica.Lex([]byte("\x1b[?25h"))
	be.Equal(t, len(nodes), 1)
	be.Equal(t, nodes[0], shellvetica.CSI('h', []byte("?"), []uint16{25}))
	be.True(t, !nodes[0].IsSGR())
	nodes = shellvetica.Lex([]byte("\x1b[>4;1m"))
	be.Equal(t, string(nodes[0].Intermediates), ">")
	be.True(t, !nodes[0].IsSGR())
}

func TestLexParamLimit(t *testing.T) {
	t.Parallel()
	vals := make([]string, 100)
	for i := range vals {
		vals[i] = "1"
	}
	nodes := shellvetica.Lex([]byte("\x1b[" + strings.Join(vals, ";") + "m"))
	be.Equal(t, len(nodes), 1)
	be.Equal(t, len(nodes[0].Params), 32)
}

func TestLexTruncated(t *testing.T) {
	t.Parallel()
	be.Equal(t, lexed("text\x1b[38"), []string{`Text("text")`})
	be.Equal(t, lexed("text\x1b"), []string{`Text("text")`})
	be.Equal(t, lexed("text\x1b]0;title"), []string{`Text("text")`})
	be.Equal(t, lexed("text\x1b]0;title\x1b"), []string{`Text("text")`})
	be.Equal(t, len(shellvetica.Lex(nil)), 0)
}

func TestLexInterrupted(t *testing.T) {
	t.Parallel()
	// an ESC aborts the sequence and starts the next one
	be.Equal(t, lexed("\x1b[31\x1b[32mx"), []string{"CSI(32m)", `Text("x")`})
	// CAN and SUB abort the sequence and are kept as controls
	be.Equal(t, lexed("a\x1b[31\x18b"), []string{`Text("a")`, "Control(CAN)", `Text("b")`})
	be.Equal(t, lexed("a\x1b]0;x\x1ab"), []string{`Text("a")`, "Control(SUB)", `Text("b")`})
	// C0 bytes inside a sequence are executed in place
	be.Equal(t, lexed("\x1b[3\n1m"), []string{`Text("\n")`, "CSI(31m)"})
	// a parameter after an intermediate is malformed and dropped
	be.Equal(t, lexed("a\x1b[1$2mb"), []string{`Text("ab")`})
	// DEL is ignored inside a sequence
	be.Equal(t, lexed("\x1b[3\x7f1m"), []string{"CSI(31m)"})
}

func TestLexControl(t *testing.T) {
	t.Parallel()
	be.Equal(t, lexed("Hello\nWorld\x07"), []string{`Text("Hello\nWorld")`, "Control(BEL)"})
	be.Equal(t, lexed("\x07\x1b[31m\x08"), []string{"Control(BEL)", "CSI(31m)", "Control(BS)"})
	be.Equal(t, lexed("a\x7fb"), []string{`Text("a")`, "Control(DEL)", `Text("b")`})
	be.Equal(t, lexed("a\tb"), []string{`Text("a\tb")`})
	// backspace overstrike is kept as text and controls
	be.Equal(t, lexed("_\x08a"), []string{`Text("_")`, "Control(BS)", `Text("a")`})
}

func TestLexCRLF(t *testing.T) {
	t.Parallel()
	nodes := shellvetica.Lex([]byte("line1\r\nline2\nline3\r"))
	be.Equal(t, len(nodes), 1)
	be.Equal(t, nodes[0].Text, "line1\nline2\nline3\r")
}

func TestLexEsc(t *testing.T) {
	t.Parallel()
	nodes := shellvetica.Lex([]byte("\x1bZ"))
	be.Equal(t, len(nodes), 1)
	be.Equal(t, nodes[0].Kind, shellvetica.NodeEsc)
	be.Equal(t, nodes[0].Code, byte('Z'))
	be.Equal(t, len(nodes[0].Intermediates), 0)
	nodes = shellvetica.Lex([]byte("\x1b(Bok"))
	be.Equal(t, nodes[0].String(), "ESC((B)")
	be.Equal(t, nodes[1].Text, "ok")
	be.Equal(t, lexed("\x1b7\x1b8"), []string{"ESC(7)", "ESC(8)"})
}

func TestLexOSC(t *testing.T) {
	t.Parallel()
	nodes := shellvetica.Lex([]byte("\x1b]0;Terminal Title\x07"))
	be.Equal(t, len(nodes), 1)
	be.Equal(t, nodes[0].Kind, shellvetica.NodeOSC)
	be.Equal(t, oscParams(nodes[0]), []string{"0", "Terminal Title"})
	be.True(t, nodes[0].BellTerminated)

	nodes = shellvetica.Lex([]byte("\x1b]0;Title\x1b\\after"))
	be.Equal(t, len(nodes), 2)
	be.Equal(t, oscParams(nodes[0]), []string{"0", "Title"})
	be.True(t, !nodes[0].BellTerminated)
	be.Equal(t, nodes[1].Text, "after")

	// invalid UTF-8 is preserved
	nodes = shellvetica.Lex([]byte("\x1b]0;Valid\xffInvalid\x07"))
	be.Equal(t, oscParams(nodes[0]), []string{"0", "Valid\xffInvalid"})

	// an ESC that is not a string terminator ends the OSC and starts a new sequence
	nodes = shellvetica.Lex([]byte("\x1b]2;x\x1b[1m"))
	be.Equal(t, len(nodes), 2)
	be.Equal(t, oscParams(nodes[0]), []string{"2", "x"})
	be.Equal(t, nodes[1].String(), "CSI(1m)")

	// the last payload keeps any further separators
	nodes = shellvetica.Lex([]byte("\x1b]" + strings.Repeat("a;", 20) + "\x07"))
	params := oscParams(nodes[0])
	be.Equal(t, len(params), 16)
	be.Equal(t, params[15], "a;a;a;a;a;")
}

func TestLexHyperlink(t *testing.T) {
	t.Parallel()
	const input = "\x1b]0;Title\x07\x1b[31mRed\x1b]8;;http://example.com\x07Link\x1b]8;;\x07\x1b[0m"
	nodes := shellvetica.Lex([]byte(input))
	be.Equal(t, len(nodes), 7)
	be.Equal(t, nodes[0].Kind, shellvetica.NodeOSC)
	be.Equal(t, nodes[1].String(), "CSI(31m)")
	be.Equal(t, nodes[2].Text, "Red")
	be.Equal(t, oscParams(nodes[3]), []string{"8", "", "http://example.com"})
	be.Equal(t, nodes[4].Text, "Link")
	be.Equal(t, oscParams(nodes[5]), []string{"8", "", ""})
	be.Equal(t, nodes[6].String(), "CSI(0m)")
}

func TestLexUTF8(t *testing.T) {
	t.Parallel()
	be.Equal(t, lexed("Hello 世界 \x1b[1m🌍\x1b[0m"),
		[]string{`Text("Hello 世界 ")`, "CSI(1m)", `Text("🌍")`, "CSI(0m)"})
	nodes := shellvetica.Lex([]byte("a\xffb"))
	be.Equal(t, nodes[0].Text, "a\xffb")
}

func TestLexText(t *testing.T) {
	t.Parallel()
	tests := []struct {
		input, want string
	}{
		{"plain", "plain"},
		{"\x1b[1;31mred\x1b[0m text", "red text"},
		{"a\x1b]8;;http://x\x07link\x1b]8;;\x1b\\b", "alinkb"},
		{"\x1b[?1049h\x1b[2Jscreen\x1b(B", "screen"},
		{"one\r\ntwo\x07three", "one\ntwothree"},
		{"half\x1b[31", "half"},
	}
	for _, tt := range tests {
		be.Equal(t, stripped(tt.input), tt.want)
	}
}

func TestNodeZeroWidth(t *testing.T) {
	t.Parallel()
	be.True(t, shellvetica.Text("").IsZeroWidth())
	be.True(t, !shellvetica.Text("a").IsZeroWidth())
	for _, b := range []byte{0x00, 0x07, 0x08, 0x0b, 0x0c, 0x0e, 0x1b, 0x1f, 0x7f} {
		n := shellvetica.Node{Kind: shellvetica.NodeControl, Control: b}
		be.True(t, n.IsZeroWidth())
	}
	for _, b := range []byte{0x09, 0x0a, 0x0d} {
		n := shellvetica.Node{Kind: shellvetica.NodeControl, Control: b}
		be.True(t, !n.IsZeroWidth())
	}
	be.True(t, !shellvetica.SGR(0).IsZeroWidth())
	nodes := shellvetica.Lex([]byte("\x07\x08"))
	be.Equal(t, len(nodes), 2)
	be.True(t, nodes[0].IsZeroWidth())
	be.True(t, nodes[1].IsZeroWidth())
}

func TestNodeCursorMovement(t *testing.T) {
	t.Parallel()
	for _, seq := range []string{
		"\x1b[H", "\x1b[2J", "\x1b[K", "\x1b[3A", "\x1b[B", "\x1b[C", "\x1b[D",
		"\x1b[E", "\x1b[F", "\x1b[10G", "\x1b[S", "\x1b[T", "\x1b[1;1f", "\x1b[s", "\x1b[u",
	} {
		nodes := shellvetica.Lex([]byte(seq))
		be.Equal(t, len(nodes), 1)
		be.True(t, nodes[0].IsCursorMovement())
	}
	for _, seq := range []string{"\x1b[31m", "\x1b[?25h", "\x1b[2X", "\x1bH", "A"} {
		nodes := shellvetica.Lex([]byte(seq))
		be.Equal(t, len(nodes), 1)
		be.True(t, !nodes[0].IsCursorMovement())
	}
}
