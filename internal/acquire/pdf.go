package acquire

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"time"
)

// Extractor converts a document file into plain text.
type Extractor interface {
	ExtractText(ctx context.Context, path string) (string, error)
}

// PDFToText extracts PDF text by shelling out to the poppler pdftotext
// binary. It writes to stdout ("-") so no temp file is needed.
type PDFToText struct {
	// Binary overrides the executable name (default "pdftotext").
	Binary string
	// Timeout bounds a single extraction (default 30s).
	Timeout time.Duration
}

// ExtractText runs pdftotext and returns its stdout.
func (p *PDFToText) ExtractText(ctx context.Context, path string) (string, error) {
	bin := p.Binary
	if bin == "" {
		bin = "pdftotext"
	}
	timeout := p.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, bin, "-layout", path, "-")
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("%s %s: %w (%s)", bin, path, err, bytes.TrimSpace(stderr.Bytes()))
	}
	return stdout.String(), nil
}
