package blog_test

import (
	"bytes"
	"context"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/awesome"
	"github.com/dmitrymomot/awesome/blog"
)

func TestDatetime(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 5, 20, 12, 0, 0, 0, time.UTC)
	ago := func(d time.Duration) float64 { return float64(now.Add(-d).Unix()) }

	tests := []struct {
		name string
		want string
		ts   float64
	}{
		{name: "seconds", ts: ago(30 * time.Second), want: "1分钟前"},
		{name: "minutes", ts: ago(5 * time.Minute), want: "5分钟前"},
		{name: "hours", ts: ago(3 * time.Hour), want: "3小时前"},
		{name: "days", ts: ago(6 * 24 * time.Hour), want: "6天前"},
		{name: "date", ts: ago(8 * 24 * time.Hour), want: "2024年5月12日"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, blog.Datetime(now, tt.ts))
		})
	}
}

func TestText2HTML(t *testing.T) {
	t.Parallel()

	require.Equal(t, "<p>a &amp; b</p><p>c</p>", string(blog.Text2HTML("a & b\n\n  \nc")))
	require.Empty(t, blog.Text2HTML(""))
}

func TestTemplates(t *testing.T) {
	t.Parallel()

	render := func(t *testing.T, tpl awesome.Renderer, name string, data map[string]any) string {
		t.Helper()

		c, err := tpl.Template(name, data)
		require.NoError(t, err)
		var buf bytes.Buffer
		require.NoError(t, c.Render(context.Background(), &buf))
		return buf.String()
	}

	t.Run("embedded pages parse", func(t *testing.T) {
		t.Parallel()

		tpl, err := blog.NewTemplates()
		require.NoError(t, err)

		out := render(t, tpl, "signin.html", map[string]any{awesome.UserKey: nil})
		require.Contains(t, out, "<title>Sign in - Awesome Blog</title>")
		require.Contains(t, out, `href="/register"`)

		out = render(t, tpl, "signin.html", map[string]any{awesome.UserKey: admin.Masked()})
		require.Contains(t, out, `href="/manage/"`)
	})

	t.Run("unknown template", func(t *testing.T) {
		t.Parallel()

		tpl, err := blog.NewTemplates()
		require.NoError(t, err)

		_, err = tpl.Template("missing.html", nil)
		require.ErrorIs(t, err, blog.ErrTemplateNotFound)
	})

	t.Run("custom set", func(t *testing.T) {
		t.Parallel()

		fsys := fstest.MapFS{
			"tpl/__base__.html": {Data: []byte(`[{{block "content" .}}{{end}}]`)},
			"tpl/hello.html":    {Data: []byte(`{{define "content"}}{{markdown .body}}{{end}}`)},
			"tpl/notes.txt":     {Data: []byte("ignored")},
		}
		tpl, err := blog.ParseTemplates(fsys, "tpl")
		require.NoError(t, err)
		require.Equal(t, "[<p><em>hi</em></p>\n]", render(t, tpl, "hello.html", map[string]any{"body": "*hi*"}))
	})

	t.Run("broken template", func(t *testing.T) {
		t.Parallel()

		fsys := fstest.MapFS{
			"tpl/__base__.html": {Data: []byte(`{{block "content" .}}{{end}}`)},
			"tpl/bad.html":      {Data: []byte(`{{define "content"}}{{.x`)},
		}
		_, err := blog.ParseTemplates(fsys, "tpl")
		require.ErrorIs(t, err, blog.ErrParseTemplates)
	})
}
