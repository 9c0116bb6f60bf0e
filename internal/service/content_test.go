package service

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeContent(t *testing.T, dir, name, body string) {
	t.Helper()
	err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0644)
	require.NoError(t, err)
}

func TestContentPageWithFrontmatter(t *testing.T) {
	dir := t.TempDir()
	writeContent(t, dir, "about.md", "---\ntitle: About Us\n---\n\nHello **world**.\n")

	content := NewContentService(dir)

	page, err := content.Page("about")
	require.NoError(t, err)
	assert.Equal(t, "About Us", page.Title)
	assert.Equal(t, "about", page.Slug)
	assert.Contains(t, page.Content, "<strong>world</strong>")
}

func TestContentPageTitleFromSlug(t *testing.T) {
	dir := t.TempDir()
	writeContent(t, dir, "house-rules.md", "No frontmatter here.\n")

	content := NewContentService(dir)

	page, err := content.Page("house-rules")
	require.NoError(t, err)
	assert.Equal(t, "House Rules", page.Title)
}

func TestContentPageMissing(t *testing.T) {
	content := NewContentService(t.TempDir())

	_, err := content.Page("nope")
	assert.Error(t, err)
}

func TestContentMissingDirIsNotAnError(t *testing.T) {
	content := NewContentService(filepath.Join(t.TempDir(), "does-not-exist"))

	err := content.LoadPages()
	assert.NoError(t, err)
}
