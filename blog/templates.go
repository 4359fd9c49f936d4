package blog

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path"
	"strings"
	"time"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/awesome"
	"github.com/dmitrymomot/awesome/pkg/markdown"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// StaticFS holds the stylesheets and scripts served under /static/.
func StaticFS() fs.FS { return staticFS }

const baseTemplate = "__base__.html"

// Templates renders the page templates. Every page is parsed together with
// the base layout when Templates is created.
type Templates struct {
	pages map[string]*template.Template
	now   func() time.Time
}

var _ awesome.Renderer = (*Templates)(nil)

// NewTemplates parses the embedded templates.
func NewTemplates() (*Templates, error) {
	return ParseTemplates(templateFS, "templates")
}

// ParseTemplates parses every *.html file of dir in fsys. Files whose name
// starts with "__" are layouts shared by all pages.
func ParseTemplates(fsys fs.FS, dir string) (*Templates, error) {
	t := &Templates{pages: make(map[string]*template.Template), now: time.Now}

	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParseTemplates, err)
	}
	base := path.Join(dir, baseTemplate)
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || path.Ext(name) != ".html" || strings.HasPrefix(name, "__") {
			continue
		}
		page, err := template.New(name).Funcs(t.funcs()).ParseFS(fsys, base, path.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrParseTemplates, name, err)
		}
		t.pages[name] = page
	}
	return t, nil
}

// Template implements awesome.Renderer.
func (t *Templates) Template(name string, data map[string]any) (awesome.Component, error) {
	page, ok := t.pages[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrTemplateNotFound, name)
	}
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		return page.ExecuteTemplate(w, baseTemplate, data)
	}), nil
}

func (t *Templates) funcs() template.FuncMap {
	return template.FuncMap{
		"datetime":  func(ts float64) string { return Datetime(t.now(), ts) },
		"markdown":  markdown.ToHTML,
		"text2html": Text2HTML,
		"add":       func(a, b int) int { return a + b },
		"sub":       func(a, b int) int { return a - b },
	}
}

// Datetime formats a Unix timestamp relative to now.
func Datetime(now time.Time, ts float64) string {
	delta := now.Sub(time.Unix(0, int64(ts*float64(time.Second))))
	switch {
	case delta < time.Minute:
		return "1分钟前"
	case delta < time.Hour:
		return fmt.Sprintf("%d分钟前", int(delta/time.Minute))
	case delta < 24*time.Hour:
		return fmt.Sprintf("%d小时前", int(delta/time.Hour))
	case delta < 7*24*time.Hour:
		return fmt.Sprintf("%d天前", int(delta/(24*time.Hour)))
	}
	d := time.Unix(int64(ts), 0).In(now.Location())
	return fmt.Sprintf("%d年%d月%d日", d.Year(), d.Month(), d.Day())
}

// Text2HTML escapes plain text and wraps every non-blank line in a paragraph.
func Text2HTML(text string) template.HTML {
	var b strings.Builder
	for line := range strings.SplitSeq(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		b.WriteString("<p>")
		b.WriteString(template.HTMLEscapeString(line))
		b.WriteString("</p>")
	}
	return template.HTML(b.String())
}
