package acquire

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/net/html"
)

// fetchURL pulls a page over HTTP and extracts its visible paragraph text.
func (a *Acquirer) fetchURL(ctx context.Context, url string) *Acquisition {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return a.fetchFailure(url, err)
	}
	req.Header.Set("User-Agent", a.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return a.fetchFailure(url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return a.fetchFailure(url, fmt.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, a.maxBody))
	if err != nil {
		return a.fetchFailure(url, err)
	}

	text, err := extractParagraphs(string(body))
	if err != nil {
		return a.fetchFailure(url, err)
	}

	a.logger.Debug("url fetched", zap.String("url", url), zap.Int("chars", len(text)))
	return &Acquisition{Text: text}
}

func (a *Acquirer) fetchFailure(url string, err error) *Acquisition {
	a.logger.Warn("url fetch failed", zap.String("url", url), zap.Error(err))
	return &Acquisition{
		Text: fmt.Sprintf("<Failed to fetch URL %s: %v>", url, err),
		Err:  fmt.Errorf("%w: %v", ErrFetch, err),
	}
}

// extractParagraphs parses HTML, drops script/style subtrees, and joins the
// text of each <p> element with blank lines. The blank-line joins are what
// the retriever later splits passages on.
func extractParagraphs(htmlContent string) (string, error) {
	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return "", err
	}

	var paragraphs []string
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript":
				return
			case "p":
				text := strings.TrimSpace(nodeText(n))
				if text != "" {
					paragraphs = append(paragraphs, text)
				}
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return strings.Join(paragraphs, "\n\n"), nil
}

// nodeText collects the text content of a node's subtree, skipping
// script/style, with single spaces between fragments.
func nodeText(n *html.Node) string {
	var sb strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			text := strings.TrimSpace(n.Data)
			if text != "" {
				if sb.Len() > 0 {
					sb.WriteString(" ")
				}
				sb.WriteString(text)
			}
		case html.ElementNode:
			if n.Data == "script" || n.Data == "style" {
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}
