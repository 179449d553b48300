package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderMarkdown(t *testing.T) {
	out, err := RenderMarkdown("# Nguồn nước\n\nPure **water** from the highlands.")
	require.NoError(t, err)
	assert.Contains(t, out, "<h1")
	assert.Contains(t, out, "Nguồn nước")
	assert.Contains(t, out, "<strong>water</strong>")
}

func TestRenderMarkdownStripsScripts(t *testing.T) {
	out, err := RenderMarkdown("hello <script>alert(1)</script><img src=\"/api/storage/abc\" onerror=\"x()\">")
	require.NoError(t, err)
	assert.NotContains(t, out, "<script")
	assert.NotContains(t, out, "onerror")
	assert.Contains(t, out, `src="/api/storage/abc"`)
}

func TestRenderMarkdownTables(t *testing.T) {
	out, err := RenderMarkdown("| a | b |\n|---|---|\n| 1 | 2 |")
	require.NoError(t, err)
	assert.Contains(t, out, "<table>")
}
