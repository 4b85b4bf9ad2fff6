package infrastructure

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"testing"
	"time"
)

func TestNewDraftsPoolWithoutURL(t *testing.T) {
	if _, err := NewDraftsPool(context.Background(), ""); !errors.Is(err, ErrNoDatabaseURL) {
		t.Errorf("NewDraftsPool(\"\") error = %v, want ErrNoDatabaseURL", err)
	}
}

func TestNewChromedpRendererDefaults(t *testing.T) {
	r := NewChromedpRenderer("", 0)
	if r.Timeout != 60*time.Second {
		t.Errorf("Timeout = %v", r.Timeout)
	}
}

func chromePath(t *testing.T) string {
	t.Helper()
	if p := os.Getenv("CHROME_PATH"); p != "" {
		return p
	}
	for _, name := range []string{"google-chrome", "chromium", "chromium-browser"} {
		if p, err := exec.LookPath(name); err == nil {
			return p
		}
	}
	t.Skip("no Chrome installation found")
	return ""
}

func TestRenderHTMLToPDF(t *testing.T) {
	if testing.Short() {
		t.Skip("starts a browser")
	}
	r := NewChromedpRenderer(chromePath(t), 30*time.Second)
	pdf, err := r.RenderHTMLToPDF(context.Background(), "<html><body><h1>John Doe</h1></body></html>")
	if err != nil {
		t.Fatalf("RenderHTMLToPDF() error = %v", err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Error("output is not a PDF")
	}
}
