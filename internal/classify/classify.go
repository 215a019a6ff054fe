// Package classify tags raw user input as a document path, audio file,
// remote URL, or plain-text query. Classification never fails: anything
// unrecognized degrades to a query.
package classify

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// Kind identifies what a piece of user input refers to.
type Kind string

const (
	KindDocument Kind = "document" // local text-bearing file (pdf, txt, docx, ...)
	KindAudio    Kind = "audio"    // local audio file awaiting transcription
	KindURL      Kind = "url"      // remote HTTP(S) resource
	KindQuery    Kind = "query"    // plain-text question
)

// Descriptor is the classified form of raw input. Payload is the file path,
// URL, or query text depending on Kind.
type Descriptor struct {
	Kind    Kind
	Payload string
}

var urlPattern = regexp.MustCompile(`^https?://[\w\-.]+(\.[\w\-.]+)+[/#?]?.*$`)

var (
	documentExts = map[string]bool{".pdf": true, ".txt": true, ".docx": true}
	audioExts    = map[string]bool{".wav": true, ".mp3": true, ".m4a": true}
)

// Classify inspects raw input and produces a Descriptor. The only I/O is a
// filesystem existence check; a path that exists but has an unknown
// extension is treated as a document.
func Classify(raw string) Descriptor {
	if isFile(raw) {
		ext := strings.ToLower(filepath.Ext(raw))
		switch {
		case audioExts[ext]:
			return Descriptor{Kind: KindAudio, Payload: raw}
		case documentExts[ext]:
			return Descriptor{Kind: KindDocument, Payload: raw}
		default:
			// Unknown extension on an existing file: assume document.
			return Descriptor{Kind: KindDocument, Payload: raw}
		}
	}

	if urlPattern.MatchString(raw) {
		return Descriptor{Kind: KindURL, Payload: raw}
	}

	return Descriptor{Kind: KindQuery, Payload: raw}
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
