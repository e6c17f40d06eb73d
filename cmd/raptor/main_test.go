package main

import (
	"bytes"
	"context"
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/raptor-dev/raptor/internal/errors"
)

const doc = `
components:
  x-badge:
    render:
      - h: span
        children: [{text: new}]
root:
  tag: main
  children:
    - c: x-badge
`

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func writeDoc(t *testing.T) (dir, path string) {
	t.Helper()
	dir = t.TempDir()
	path = filepath.Join(dir, "page.yaml")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))
	return dir, path
}

func TestRenderCommand(t *testing.T) {
	dir, path := writeDoc(t)

	stdout, _, err := execute(t, "render", path, "--config", dir, "--no-color")
	require.NoError(t, err)
	assert.Equal(t, "<main><x-badge><span>new</span></x-badge></main>\n", stdout)
}

func TestRenderCommandOut(t *testing.T) {
	dir, path := writeDoc(t)
	out := filepath.Join(dir, "page.html")

	_, stderr, err := execute(t, "render", path, "-c", dir, "--pretty", "--out", out)
	require.NoError(t, err)
	assert.Contains(t, stderr, "Rendered")

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "<main>\n"))
}

func TestRenderCommandUsesConfig(t *testing.T) {
	dir, path := writeDoc(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "raptor.yaml"), []byte("render:\n  pretty: true\n  indent: \"\\t\"\n"), 0o644))

	stdout, _, err := execute(t, "render", path, "-c", dir)
	require.NoError(t, err)
	assert.Contains(t, stdout, "\n\t<x-badge>")
}

func TestRenderCommandErrors(t *testing.T) {
	dir := t.TempDir()

	_, _, err := execute(t, "render", filepath.Join(dir, "missing.yaml"), "-c", dir)
	var re *errors.RaptorError
	require.True(t, stderrors.As(err, &re))
	assert.Equal(t, errors.CategoryCLI, re.Category)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("root: {tag: div, children: [{}]}"), 0o644))
	_, _, err = execute(t, "render", bad, "-c", dir)
	require.True(t, stderrors.As(err, &re))
	assert.Equal(t, errors.CodeInvalidNode, re.Code)
	assert.Equal(t, bad+": root.children[0]", re.Location.String())

	_, _, err = execute(t, "render")
	assert.Error(t, err)
}

type fakePublisher struct {
	doc, html string
}

func (f *fakePublisher) Publish(_ context.Context, doc, html string) (string, error) {
	f.doc, f.html = doc, html
	return "pages/page.html", nil
}

func TestPublishCommand(t *testing.T) {
	dir, path := writeDoc(t)

	fake := &fakePublisher{}
	var gotBucket, gotPrefix string
	orig := newPublisher
	newPublisher = func(_ context.Context, bucket, prefix, _ string, _ *zap.Logger) (publisher, error) {
		gotBucket, gotPrefix = bucket, prefix
		return fake, nil
	}
	t.Cleanup(func() { newPublisher = orig })

	stdout, _, err := execute(t, "publish", path, "-c", dir, "--bucket", "site", "--prefix", "pages")
	require.NoError(t, err)

	assert.Equal(t, "site", gotBucket)
	assert.Equal(t, "pages", gotPrefix)
	assert.Equal(t, path, fake.doc)
	assert.Equal(t, "<main><x-badge><span>new</span></x-badge></main>", fake.html)
	assert.Equal(t, "s3://site/pages/page.html\n", stdout)
}

func TestPublishCommandRequiresBucket(t *testing.T) {
	dir, path := writeDoc(t)

	_, _, err := execute(t, "publish", path, "-c", dir)
	var re *errors.RaptorError
	require.True(t, stderrors.As(err, &re))
	assert.Equal(t, errors.CodeMissingArgument, re.Code)
}

func TestVersionCommand(t *testing.T) {
	stdout, _, err := execute(t, "version", "--short")
	require.NoError(t, err)
	assert.Equal(t, "dev\n", stdout)

	stdout, _, err = execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Go version:")
}

func TestSuccess(t *testing.T) {
	saved := color.NoColor
	t.Cleanup(func() { color.NoColor = saved })

	tests := []struct {
		name    string
		noColor bool
		want    string
	}{
		{"colored", false, "\x1b[32m✓\x1b[0m Rendered a\n"},
		{"plain", true, "✓ Rendered a\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			color.NoColor = tt.noColor
			var buf bytes.Buffer
			success(&buf, "Rendered %s", "a")
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestNoColorFlag(t *testing.T) {
	saved := color.NoColor
	t.Cleanup(func() { color.NoColor = saved })

	dir, path := writeDoc(t)
	out := filepath.Join(dir, "page.html")

	errors.EnableColors()
	_, stderr, err := execute(t, "render", path, "-c", dir, "--out", out, "--no-color")
	require.NoError(t, err)
	assert.Contains(t, stderr, "✓ Rendered")
	assert.NotContains(t, stderr, "\x1b[")
}
