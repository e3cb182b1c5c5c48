package report

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"gopkg.in/yaml.v3"
)

type Format string

const (
	FormatText Format = "text"
	FormatYAML Format = "yaml"
)

type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatText, FormatYAML:
		return f, nil
	}

	return "", fmt.Errorf("unknown diagnostics format '%v' (want text or yaml)", s)
}

func ParseColorMode(s string) (ColorMode, error) {
	switch m := ColorMode(strings.ToLower(s)); m {
	case ColorAuto, ColorAlways, ColorNever:
		return m, nil
	}

	return "", fmt.Errorf("unknown color mode '%v' (want auto, always or never)", s)
}

// Renders diagnostics to a sink.
type Printer struct {
	out    io.Writer
	format Format
	color  bool
}

func NewPrinter(out io.Writer, format Format, mode ColorMode) *Printer {
	return &Printer{out: out, format: format, color: useColor(out, mode)}
}

func (p *Printer) Print(diagnostics []Diagnostic) error {
	if len(diagnostics) == 0 {
		return nil
	}

	if p.format == FormatYAML {
		enc := yaml.NewEncoder(p.out)
		enc.SetIndent(2)
		if err := enc.Encode(struct {
			Diagnostics []Diagnostic `yaml:"diagnostics"`
		}{diagnostics}); err != nil {
			return err
		}
		return enc.Close()
	}

	for _, d := range diagnostics {
		if _, err := io.WriteString(p.out, p.text(d)); err != nil {
			return err
		}
	}

	return nil
}

func (p *Printer) text(d Diagnostic) string {
	var b strings.Builder

	header := fmt.Sprintf("%v error", d.Phase)
	if p.color {
		header = red(header)
	}

	fmt.Fprintf(&b, "%v at %v:%v: %v", header, d.File, d.Line, d.Message)
	if d.Kind != "" {
		kind := fmt.Sprintf(" [%v]", d.Kind)
		if p.color {
			kind = dim(kind)
		}
		b.WriteString(kind)
	}
	b.WriteByte('\n')

	for _, frame := range d.Trace {
		b.WriteString(frame)
		b.WriteByte('\n')
	}

	return b.String()
}

func useColor(out io.Writer, mode ColorMode) bool {
	switch mode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	}

	f, ok := out.(*os.File)
	if !ok {
		return false
	}

	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func red(s string) string { return "\x1b[31m" + s + "\x1b[0m" }
func dim(s string) string { return "\x1b[2m" + s + "\x1b[0m" }
