// Package output renders operation results for the command line.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yokitheyo/logsweep/internal/model"
)

// Renderer writes operation results to a stream.
type Renderer interface {
	SearchResults(results []model.SearchResult) error
	SizeResults(results []model.SizeResult) error
	Message(msg string) error
	Failures(failures []model.Failure) error
}

// New returns the renderer for format ("text" or "json").
func New(format string, w io.Writer) Renderer {
	if strings.EqualFold(format, "json") {
		return NewJSONRenderer(w)
	}
	return NewTextRenderer(w)
}

var (
	stylePath    = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Faint(true)
	styleSize    = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	styleKind    = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	styleMessage = lipgloss.NewStyle().Bold(true)
)

// TextRenderer prints human-readable, colorized lines.
type TextRenderer struct {
	w io.Writer
}

func NewTextRenderer(w io.Writer) *TextRenderer {
	return &TextRenderer{w: w}
}

func (r *TextRenderer) SearchResults(results []model.SearchResult) error {
	for _, res := range results {
		if _, err := fmt.Fprintf(r.w, "%s: %s\n", stylePath.Render(res.FilePath), res.Line); err != nil {
			return err
		}
	}
	return nil
}

func (r *TextRenderer) SizeResults(results []model.SizeResult) error {
	for _, res := range results {
		size := styleSize.Render(fmt.Sprintf("%8d KB", res.SizeKB))
		if _, err := fmt.Fprintf(r.w, "%s  %s\n", size, stylePath.Render(res.FilePath)); err != nil {
			return err
		}
	}
	return nil
}

func (r *TextRenderer) Message(msg string) error {
	_, err := fmt.Fprintln(r.w, styleMessage.Render(strings.TrimRight(msg, "\n")))
	return err
}

func (r *TextRenderer) Failures(failures []model.Failure) error {
	for _, f := range failures {
		if _, err := fmt.Fprintf(r.w, "%s %s: %s\n", styleKind.Render(string(f.Kind)), f.Unit, f.Reason); err != nil {
			return err
		}
	}
	return nil
}

// JSONRenderer prints one JSON object per line.
type JSONRenderer struct {
	enc *json.Encoder
}

func NewJSONRenderer(w io.Writer) *JSONRenderer {
	return &JSONRenderer{enc: json.NewEncoder(w)}
}

func (r *JSONRenderer) SearchResults(results []model.SearchResult) error {
	for _, res := range results {
		if err := r.enc.Encode(res); err != nil {
			return err
		}
	}
	return nil
}

func (r *JSONRenderer) SizeResults(results []model.SizeResult) error {
	for _, res := range results {
		if err := r.enc.Encode(res); err != nil {
			return err
		}
	}
	return nil
}

func (r *JSONRenderer) Message(msg string) error {
	return r.enc.Encode(map[string]string{"message": msg})
}

func (r *JSONRenderer) Failures(failures []model.Failure) error {
	for _, f := range failures {
		if err := r.enc.Encode(map[string]any{"failure": f}); err != nil {
			return err
		}
	}
	return nil
}
