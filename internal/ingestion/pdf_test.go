package ingestion

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadPDFText_NotAPDF(t *testing.T) {
	_, err := ReadPDFText([]byte("Jane Doe\nSenior Engineer"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open PDF")
}

func TestReadPDFText_Empty(t *testing.T) {
	_, err := ReadPDFText(nil)
	require.Error(t, err)
}

func TestIngestFromFile_PDFExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "resume.PDF")
	require.NoError(t, os.WriteFile(path, []byte("plain text with a pdf name"), 0644))

	_, _, err := IngestFromFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open PDF")
}
