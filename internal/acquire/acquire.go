// Package acquire loads source text for a classified input: PDF extraction,
// plain file reads, and URL scraping. Results carry an explicit success or
// failure tag so downstream stages never have to guess whether a string is
// real content or an error message.
package acquire

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"edumuse/internal/classify"

	"go.uber.org/zap"
)

// Error kinds, one per external call site.
var (
	ErrFetch      = errors.New("url fetch failed")
	ErrExtraction = errors.New("document extraction failed")
)

// Acquisition is the tagged result of content acquisition. Exactly one of
// Text and Err is meaningful: Err == nil means Text holds the acquired
// content, Err != nil means acquisition failed and Text holds a
// human-readable failure marker for display. Usable reports which.
type Acquisition struct {
	Text string
	Err  error
}

// Usable reports whether the acquisition produced content worth retrieving
// against. Failure markers and empty extractions are not usable.
func (a *Acquisition) Usable() bool {
	return a != nil && a.Err == nil && strings.TrimSpace(a.Text) != ""
}

// Acquirer fetches and extracts source content.
type Acquirer struct {
	httpClient *http.Client
	extractor  Extractor
	userAgent  string
	maxBody    int64
	logger     *zap.Logger
}

// Config holds acquisition settings.
type Config struct {
	FetchTimeout time.Duration
	MaxBodyBytes int64
	UserAgent    string
	Extractor    Extractor
}

// DefaultConfig returns sensible defaults. The fetch timeout matches the
// original system's 10-second bound.
func DefaultConfig() Config {
	return Config{
		FetchTimeout: 10 * time.Second,
		MaxBodyBytes: 2 << 20,
		UserAgent:    "Mozilla/5.0 (compatible; EduMUSE/1.0)",
		Extractor:    &PDFToText{},
	}
}

// New creates an Acquirer. A nil logger defaults to zap.NewNop.
func New(cfg Config, logger *zap.Logger) *Acquirer {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Extractor == nil {
		cfg.Extractor = &PDFToText{}
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = 2 << 20
	}
	if cfg.FetchTimeout <= 0 {
		cfg.FetchTimeout = 10 * time.Second
	}
	return &Acquirer{
		httpClient: &http.Client{Timeout: cfg.FetchTimeout},
		extractor:  cfg.Extractor,
		userAgent:  cfg.UserAgent,
		maxBody:    cfg.MaxBodyBytes,
		logger:     logger,
	}
}

// Acquire loads content for the descriptor. Queries have no content and
// return nil. Failures are captured in the Acquisition, never returned as
// errors: the pipeline is total and always produces a formattable response.
func (a *Acquirer) Acquire(ctx context.Context, d classify.Descriptor) *Acquisition {
	switch d.Kind {
	case classify.KindURL:
		return a.fetchURL(ctx, d.Payload)
	case classify.KindDocument:
		return a.readDocument(ctx, d.Payload)
	default:
		return nil
	}
}

func (a *Acquirer) readDocument(ctx context.Context, path string) *Acquisition {
	if strings.ToLower(filepath.Ext(path)) == ".pdf" {
		text, err := a.extractor.ExtractText(ctx, path)
		if err != nil {
			a.logger.Warn("pdf extraction failed", zap.String("path", path), zap.Error(err))
			return &Acquisition{
				Text: fmt.Sprintf("<PDF extraction failed for %s: %v>", path, err),
				Err:  fmt.Errorf("%w: %v", ErrExtraction, err),
			}
		}
		if strings.TrimSpace(text) == "" {
			// An empty extraction is surfaced explicitly, not silently
			// swallowed as "".
			return &Acquisition{
				Text: "<PDF was empty>",
				Err:  fmt.Errorf("%w: no text extracted from %s", ErrExtraction, path),
			}
		}
		return &Acquisition{Text: text}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		a.logger.Warn("document read failed", zap.String("path", path), zap.Error(err))
		return &Acquisition{
			Text: fmt.Sprintf("<Failed to read %s: %v>", path, err),
			Err:  fmt.Errorf("%w: %v", ErrExtraction, err),
		}
	}
	return &Acquisition{Text: string(data)}
}
