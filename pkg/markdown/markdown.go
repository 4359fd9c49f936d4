// Package markdown renders blog content from Markdown to sanitized HTML.
package markdown

import (
	"bytes"
	"html/template"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"

	"github.com/dmitrymomot/awesome/pkg/sanitizer"
)

// Renderer converts Markdown to HTML. It is safe for concurrent use.
type Renderer struct {
	md goldmark.Markdown
}

// New creates a Renderer with GitHub flavoured extensions (tables,
// strikethrough, autolinks, task lists) and auto heading ids.
func New() *Renderer {
	return &Renderer{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		),
	}
}

// Render converts src and strips anything unsafe from the result.
func (r *Renderer) Render(src string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(src), &buf); err != nil {
		return "", err
	}
	return template.HTML(sanitizer.HTMLBytes(buf.Bytes())), nil
}

// HTML is Render for templates: on a conversion error the source is
// returned as escaped text.
func (r *Renderer) HTML(src string) template.HTML {
	out, err := r.Render(src)
	if err != nil {
		return template.HTML(template.HTMLEscapeString(src))
	}
	return out
}

var std = New()

// ToHTML renders src with a package level Renderer.
func ToHTML(src string) template.HTML {
	return std.HTML(src)
}
