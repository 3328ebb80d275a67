// Package prompt turns a ProductSpec into the instruction text sent to the
// text-generation model. Building is deterministic: the same spec always yields
// the same prompt.
package prompt

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"
	"text/template"

	"github.com/phrazzld/prodwriter/internal/domain"
)

//go:embed templates/product_description.tmpl
var defaultTemplate string

// ErrTemplate is returned when a prompt template cannot be loaded, parsed or executed.
var ErrTemplate = errors.New("prompt template error")

var funcs = template.FuncMap{
	"join": func(items []string) string { return strings.Join(items, ", ") },
}

// promptData is the view of a ProductSpec exposed to templates.
type promptData struct {
	Title      string
	Details    []string
	Audience   []string
	Tone       string
	Length     string
	WordTarget int
	Keywords   []string
}

// Builder renders prompts from a parsed template.
type Builder struct {
	tmpl *template.Template
}

// Default returns a Builder using the embedded product description template.
func Default() *Builder {
	return &Builder{
		tmpl: template.Must(template.New("product_description").Funcs(funcs).Parse(defaultTemplate)),
	}
}

// NewBuilder loads the template at path. An empty path selects the embedded default.
func NewBuilder(path string) (*Builder, error) {
	if path == "" {
		return Default(), nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read %s: %v", ErrTemplate, path, err)
	}

	return Parse(string(content))
}

// Parse builds a Builder from template text. Templates may use the join
// function and the fields Title, Details, Audience, Tone, Length, WordTarget
// and Keywords.
func Parse(text string) (*Builder, error) {
	tmpl, err := template.New("product_description").Funcs(funcs).Option("missingkey=error").Parse(text)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTemplate, err)
	}
	return &Builder{tmpl: tmpl}, nil
}

// Build renders the prompt for spec. The caller is responsible for validating
// spec first; Build does not check for missing fields.
func (b *Builder) Build(spec domain.ProductSpec) (string, error) {
	data := promptData{
		Title:      spec.Title,
		Details:    spec.Details,
		Audience:   spec.AudienceLabels(),
		Tone:       string(spec.Tone),
		Length:     string(spec.Length),
		WordTarget: spec.Length.WordTarget(),
		Keywords:   spec.Keywords,
	}

	var buf bytes.Buffer
	if err := b.tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("%w: %v", ErrTemplate, err)
	}
	return strings.TrimSpace(buf.String()), nil
}
