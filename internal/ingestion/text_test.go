package ingestion

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		contains []string
		absent   []string
	}{
		{"headings", "  # Title\n## Subtitle\nContent here", []string{"# Title", "## Subtitle", "Content here"}, nil},
		{"bullets", "- Item 1\n- Item 2\n* Item 3\n• Item 4", []string{"- Item 1", "* Item 3", "• Item 4"}, nil},
		{"collapses spaces", "Line    with    multiple    spaces", []string{"Line with multiple spaces"}, []string{"    "}},
		{"blank runs", "Line 1\n\n\n\n\nLine 2", []string{"Line 1\n\nLine 2"}, []string{"\n\n\n"}},
		{"line endings", "Line 1\r\nLine 2\rLine 3", []string{"Line 1\nLine 2\nLine 3"}, []string{"\r"}},
		{"unicode", "Test with émojis 🚀 and spéciàl chàracters", []string{"émojis", "🚀", "spéciàl chàracters"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CleanText(tt.input)
			for _, want := range tt.contains {
				assert.Contains(t, got, want)
			}
			for _, bad := range tt.absent {
				assert.NotContains(t, got, bad)
			}
			assert.Equal(t, got, CleanText(tt.input))
		})
	}

	assert.Empty(t, CleanText(""))
	assert.Empty(t, CleanText("   \n  \n  "))
}

func writeFile(t *testing.T, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, content, 0644))
	return path
}

func TestExtractFile(t *testing.T) {
	t.Run("text", func(t *testing.T) {
		path := writeFile(t, "job.txt", []byte("# Job Title\n\n\n\nDescription   here"))
		doc, err := ExtractFile(path)
		require.NoError(t, err)
		assert.Equal(t, "# Job Title\n\nDescription here", doc.Text)
		assert.Equal(t, "txt", doc.Metadata.Format)
		assert.Equal(t, path, doc.Metadata.Source)
		assert.Equal(t, computeHash(doc.Text), doc.Metadata.Hash)
	})

	t.Run("markdown", func(t *testing.T) {
		doc, err := ExtractFile(writeFile(t, "resume.MD", []byte("## Experience\n- Led migration")))
		require.NoError(t, err)
		assert.Equal(t, "md", doc.Metadata.Format)
	})

	t.Run("html", func(t *testing.T) {
		page := `<html><body><nav>Home | Jobs</nav>
			<main><h1>Platform Engineer</h1><p>Build   Python services.</p><ul><li>Own SQL pipelines</li></ul></main>
			<footer>© Corp</footer></body></html>`
		doc, err := ExtractFile(writeFile(t, "posting.html", []byte(page)))
		require.NoError(t, err)
		assert.Contains(t, doc.Text, "Platform Engineer")
		assert.Contains(t, doc.Text, "Build Python services.")
		assert.Contains(t, doc.Text, "Own SQL pipelines")
		assert.NotContains(t, doc.Text, "Home | Jobs")
		assert.NotContains(t, doc.Text, "Corp")
	})

	failures := []struct {
		name    string
		file    string
		content []byte
		message string
	}{
		{"unsupported", "resume.pdf", []byte("%PDF-1.4"), "unsupported format"},
		{"binary", "job.txt", []byte{0xff, 0xfe, 0x00, 0x01}, "not UTF-8 text"},
		{"empty", "job.txt", []byte("  \n\n "), "no text content"},
	}
	for _, tt := range failures {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ExtractFile(writeFile(t, tt.file, tt.content))
			var extractErr *ExtractionError
			require.ErrorAs(t, err, &extractErr)
			assert.Contains(t, extractErr.Message, tt.message)
		})
	}

	_, err := ExtractFile("/nonexistent/file.txt")
	var extractErr *ExtractionError
	require.ErrorAs(t, err, &extractErr)
	assert.Equal(t, "file not found", extractErr.Message)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestExtract_TooLarge(t *testing.T) {
	_, err := Extract("big.txt", "txt", make([]byte, MaxFileSize+1))
	var extractErr *ExtractionError
	require.ErrorAs(t, err, &extractErr)
}

func TestWriteOutput(t *testing.T) {
	doc, err := Extract("job.txt", "txt", []byte("Senior engineer"))
	require.NoError(t, err)

	dir := filepath.Join(t.TempDir(), "out")
	require.NoError(t, WriteOutput(dir, "job", doc))

	text, err := os.ReadFile(filepath.Join(dir, "job.txt"))
	require.NoError(t, err)
	assert.Equal(t, "Senior engineer", string(text))

	meta, err := os.ReadFile(filepath.Join(dir, "job.meta.json"))
	require.NoError(t, err)
	assert.Contains(t, string(meta), doc.Metadata.Hash)
}
