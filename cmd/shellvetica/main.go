// Command shellvetica converts terminal output with ANSI colors and text styles into HTML.
//
// Usage:
//
//	ls --color=always | shellvetica > ls.html
//	shellvetica --charset=cp437 --palette=cga art.ans -o art.html
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/bengarrett/shellvetica"
	"golang.org/x/term"
)

var ErrNoInput = errors.New("no file argument and stdin is a terminal, pipe the terminal output or name a file")

// CLI are the command line flags and arguments.
type CLI struct {
	File     string `arg:"" optional:"" type:"existingfile" help:"File of terminal output to convert, stdin is read when omitted."`
	Output   string `short:"o" type:"path" help:"Write the HTML to this file instead of stdout."`
	Palette  string `short:"p" enum:"xterm,cga" default:"xterm" help:"Colorset for the 16 standard and bright colors (${enum})."`
	Charset  string `short:"c" enum:"utf8,cp437,cp850,iso-8859-1" default:"utf8" help:"Character encoding of the input (${enum})."`
	Fragment bool   `short:"f" help:"Only write the span elements, without the pre element wrapper."`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("shellvetica"),
		kong.Description("Convert terminal output with ANSI colors and text styles into HTML."),
		kong.UsageOnError(),
	)
	ctx.FatalIfErrorf(ctx.Run())
}

// Run reads the input, converts it and writes the HTML.
func (c *CLI) Run() (err error) {
	var (
		in  io.Reader = os.Stdin
		out io.Writer = os.Stdout
	)
	if c.File != "" {
		f, ferr := os.Open(c.File)
		if ferr != nil {
			return fmt.Errorf("open input: %w", ferr)
		}
		defer f.Close()
		in = f
	} else if term.IsTerminal(int(os.Stdin.Fd())) { //nolint:gosec
		return ErrNoInput
	}
	if c.Output != "" {
		f, ferr := os.Create(c.Output)
		if ferr != nil {
			return fmt.Errorf("create output: %w", ferr)
		}
		defer closeJoin(&err, f, "output")
		out = f
	}
	return c.convert(in, out)
}

// closeJoin closes c and joins any close error to err.
func closeJoin(err *error, c io.Closer, name string) {
	if cerr := c.Close(); cerr != nil {
		*err = errors.Join(*err, fmt.Errorf("close %s: %w", name, cerr))
	}
}

func (c *CLI) convert(r io.Reader, w io.Writer) error {
	charset, err := shellvetica.Charset(c.Charset)
	if err != nil {
		return err
	}
	pal := shellvetica.Xterm16
	if c.Palette == "cga" {
		pal = shellvetica.CGA16
	}
	p, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	conv := shellvetica.NewConverter(pal, charset)
	if c.Fragment {
		if _, err := io.WriteString(w, conv.Convert(p)); err != nil {
			return fmt.Errorf("write fragment: %w", err)
		}
		return nil
	}
	return conv.Write(w, p)
}
