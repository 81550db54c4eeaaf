package export

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExporter_MissingBrowser(t *testing.T) {
	e := &Exporter{BrowserPath: "/nonexistent/chrome"}
	assert.Nil(t, e.PDF(context.Background(), "<html><body>resume</body></html>"))
}

func TestFindBrowser_ReturnsExistingPath(t *testing.T) {
	p := FindBrowser()
	if p == "" {
		t.Skip("no Chrome/Chromium installed")
	}
	assert.FileExists(t, p)
}

func TestExporter_PrintsPDF(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping browser test in short mode")
	}
	if FindBrowser() == "" {
		t.Skip("no Chrome/Chromium installed")
	}

	out := PDF(context.Background(), "<html><body><h1>Jane Doe</h1></body></html>")

	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}
