package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"simple title", "Hello World", "hello-world"},
		{"punctuation", "Hello, World!", "hello-world"},
		{"numbers", "Top 10 reasons", "top-10-reasons"},
		{"vietnamese", "Nước khoáng La Gougah", "nuoc-khoang-la-gougah"},
		{"vietnamese d", "Đà Lạt đẹp", "da-lat-dep"},
		{"repeated spaces", "  Hello   World  ", "hello-world"},
		{"hyphen runs", "Hello - World", "hello-world"},
		{"only symbols", "!@#$%^&*()", ""},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Slugify(tt.input))
		})
	}
}

func TestSlugifyTruncates(t *testing.T) {
	got := Slugify(strings.Repeat("word ", 60))
	assert.LessOrEqual(t, len(got), MaxSlugLength)
	assert.True(t, IsValidSlug(got))
}

func TestIsValidSlug(t *testing.T) {
	valid := []string{"x", "hello-world", "post-2024", "a1-b2-c3"}
	for _, s := range valid {
		assert.True(t, IsValidSlug(s), s)
	}
	invalid := []string{"", "Hello", "hello world", "-hello", "hello-", "hello--world", "héllo", "a/b"}
	for _, s := range invalid {
		assert.False(t, IsValidSlug(s), s)
	}
}
