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
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"only whitespace", "   \n  \n  ", ""},
		{"collapses inner spaces", "Line    with    multiple    spaces", "Line with multiple spaces"},
		{"caps blank lines at one", "Line 1\n\n\n\n\nLine 2", "Line 1\n\nLine 2"},
		{"normalizes line endings", "Line 1\r\nLine 2\rLine 3", "Line 1\nLine 2\nLine 3"},
		{"headings lose indentation", "Intro\n  ## Requirements  ", "Intro\n## Requirements"},
		{"bullets keep indentation", "Intro\n  - Go\n* Rust", "Intro\n  - Go\n* Rust"},
		{"indented text keeps its indent", "Intro\n    indented   text", "Intro\n    indented text"},
		{"unicode untouched", "Go 🚀  and  spéciàl", "Go 🚀 and spéciàl"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanText(tt.in))
		})
	}
}

func TestIngestFromFile_Success(t *testing.T) {
	tmpDir := t.TempDir()
	testFile := filepath.Join(tmpDir, "test.txt")
	testContent := "# Job Title\n\nDescription here"
	err := os.WriteFile(testFile, []byte(testContent), 0644)
	require.NoError(t, err)

	cleanedText, metadata, err := IngestFromFile(testFile)
	require.NoError(t, err)

	assert.Contains(t, cleanedText, "Job Title")
	require.NotNil(t, metadata)
	assert.Len(t, metadata.Hash, 64)
	assert.NotEmpty(t, metadata.Timestamp)
	assert.Equal(t, testFile, metadata.Path)
	assert.Equal(t, 5, metadata.Words)
}

func TestIngestFromFile_FileNotFound(t *testing.T) {
	cleanedText, metadata, err := IngestFromFile("/nonexistent/file.txt")

	assert.Error(t, err)
	assert.Empty(t, cleanedText)
	assert.Nil(t, metadata)
	assert.Contains(t, err.Error(), "file not found")
}

func TestIngestFromFile_InvalidPDF(t *testing.T) {
	tmpDir := t.TempDir()
	testFile := filepath.Join(tmpDir, "resume.pdf")
	require.NoError(t, os.WriteFile(testFile, []byte("not a pdf"), 0644))

	_, _, err := IngestFromFile(testFile)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open PDF")
}

func TestIngestFromFile_HashUniqueness(t *testing.T) {
	tmpDir := t.TempDir()

	testFile1 := filepath.Join(tmpDir, "test1.txt")
	testFile2 := filepath.Join(tmpDir, "test2.txt")

	require.NoError(t, os.WriteFile(testFile1, []byte("Content 1"), 0644))
	require.NoError(t, os.WriteFile(testFile2, []byte("Content 2"), 0644))

	_, metadata1, err1 := IngestFromFile(testFile1)
	require.NoError(t, err1)

	_, metadata2, err2 := IngestFromFile(testFile2)
	require.NoError(t, err2)

	assert.NotEqual(t, metadata1.Hash, metadata2.Hash)
}

func TestWriteOutput_CreatesFiles(t *testing.T) {
	outDir := filepath.Join(t.TempDir(), "nested", "out")
	meta := NewMetadata("posting text", "https://example.com/job")
	meta.Source = SourceRawBody

	require.NoError(t, WriteOutput(outDir, "posting text", meta))

	text, err := os.ReadFile(filepath.Join(outDir, PostingFile))
	require.NoError(t, err)
	assert.Equal(t, "posting text", string(text))

	metaJSON, err := os.ReadFile(filepath.Join(outDir, MetadataFile))
	require.NoError(t, err)
	assert.Contains(t, string(metaJSON), `"source": "raw_body"`)
}

func TestCleanText_ComplexFormatting(t *testing.T) {
	// Read test fixture
	testFile := filepath.Join("testdata", "complex_formatting.txt")
	content, err := os.ReadFile(testFile)
	require.NoError(t, err)

	result := CleanText(string(content))

	// Should preserve headings
	assert.Contains(t, result, "# Senior Software Engineer")
	assert.Contains(t, result, "## Responsibilities")

	// Should preserve bullets
	assert.Contains(t, result, "- Go experience")
	assert.Contains(t, result, "* Go (5+ years)")

	// Should normalize whitespace but preserve structure
	assert.NotEmpty(t, result)
}
