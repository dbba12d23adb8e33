package extract

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExtract_Links(t *testing.T) {
	t.Parallel()

	html := `<html><body>
		<a href="/about">About</a>
		<a href="blog/post">Post</a>
		<a href="https://other.com/x">Other</a>
		<a href="">empty</a>
		<a>no href</a>
	</body></html>`

	data, err := New().Extract("https://example.com/", []byte(html))
	require.NoError(t, err)
	require.Equal(t, []string{
		"https://example.com/about",
		"https://example.com/blog/post",
		"https://other.com/x",
	}, data.Links)
}

func TestExtract_H1AndFirstParagraph(t *testing.T) {
	t.Parallel()

	html := `<html><body>
		<h1>  Main   Title </h1>
		<h1>Second Title</h1>
		<p>outside paragraph</p>
		<main><p>inside main</p></main>
	</body></html>`

	data, err := New().Extract("https://example.com/", []byte(html))
	require.NoError(t, err)
	require.Equal(t, "Main Title", data.H1, "first h1 wins, whitespace collapsed")
	require.Equal(t, "inside main", data.FirstParagraph, "paragraph inside <main> is preferred")
}

func TestExtract_FirstParagraphFallback(t *testing.T) {
	t.Parallel()

	html := `<html><body><p>only paragraph</p></body></html>`
	data, err := New().Extract("https://example.com/", []byte(html))
	require.NoError(t, err)
	require.Equal(t, "only paragraph", data.FirstParagraph)

	data, err = New().Extract("https://example.com/", []byte(`<html><body></body></html>`))
	require.NoError(t, err)
	require.Empty(t, data.FirstParagraph)
	require.Empty(t, data.H1)
}

func TestExtract_Images(t *testing.T) {
	t.Parallel()

	html := `<html><body>
		<img src="/logo.png">
		<img src="https://cdn.example.com/pic.jpg">
		<img>
	</body></html>`

	data, err := New().Extract("https://example.com/gallery", []byte(html))
	require.NoError(t, err)
	require.Equal(t, []string{
		"https://example.com/logo.png",
		"https://cdn.example.com/pic.jpg",
	}, data.ImageURLs)
}

func TestExtract_BadBaseURL(t *testing.T) {
	t.Parallel()

	_, err := New().Extract("://bad", []byte("<html></html>"))
	require.Error(t, err)
}
