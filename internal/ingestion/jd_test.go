package ingestion

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJDFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "jd.txt")
	require.NoError(t, os.WriteFile(path, []byte("  We need a data engineer.  \n"), 0644))

	text, err := JDFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "We need a data engineer.", text)
}

func TestJDFromFile_Missing(t *testing.T) {
	_, err := JDFromFile(filepath.Join(t.TempDir(), "nope.txt"))
	assert.Error(t, err)
}

func TestJDFromFile_Empty(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "jd.txt")
	require.NoError(t, os.WriteFile(path, []byte("   \n"), 0644))

	_, err := JDFromFile(path)
	assert.Error(t, err)
}

func TestJDFromURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html><body>
			<nav>Home | Jobs | About</nav>
			<div class="job-description">
				<h1>Data Engineer</h1>
				<p>Build    pipelines in Go.</p>
			</div>
			<footer>© Initech</footer>
		</body></html>`))
	}))
	defer server.Close()

	text, err := JDFromURL(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Contains(t, text, "Data Engineer")
	assert.Contains(t, text, "Build pipelines in Go.")
	assert.NotContains(t, text, "Home | Jobs")
	assert.NotContains(t, text, "Initech")
}

func TestJDFromURL_NonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	_, err := JDFromURL(context.Background(), server.URL)
	assert.ErrorIs(t, err, ErrHTTPRequestFailed)
}

func TestExtractMainText_BodyFallback(t *testing.T) {
	text, err := extractMainText(`<html><body><p>Just a plain page.</p></body></html>`)
	require.NoError(t, err)
	assert.Equal(t, "Just a plain page.", text)
}

func TestCleanWhitespace(t *testing.T) {
	input := "a   b\t\tc\n\n\n\n\nd"
	assert.Equal(t, "a b c\n\nd", cleanWhitespace(input))
}
