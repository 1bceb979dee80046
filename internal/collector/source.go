package collector

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrNoText means the upstream extraction produced nothing to parse: an
// unreadable file, a page index past the end, or blank text.
var ErrNoText = errors.New("no text extracted")

// pageBreak separates pages in pdftotext-style output.
const pageBreak = "\f"

// Source supplies the raw text of one chart report section.
type Source interface {
	ReadText() (string, error)
	Name() string
}

// FileSource reads a plain-text extraction from disk.
type FileSource struct {
	Path string
	// Page is 1-based; 0 reads the whole file.
	Page int
}

// NewFileSource creates a FileSource for path, reading the given page.
func NewFileSource(path string, page int) *FileSource {
	return &FileSource{Path: path, Page: page}
}

func (f *FileSource) Name() string { return filepath.Base(f.Path) }

func (f *FileSource) ReadText() (string, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrNoText, err)
	}
	return selectPage(string(data), f.Page)
}

func selectPage(text string, page int) (string, error) {
	if page < 0 {
		return "", fmt.Errorf("%w: invalid page %d", ErrNoText, page)
	}
	if page == 0 {
		return text, nil
	}
	pages := strings.Split(text, pageBreak)
	if page > len(pages) {
		return "", fmt.Errorf("%w: page %d requested, document has %d", ErrNoText, page, len(pages))
	}
	return pages[page-1], nil
}

// StaticSource serves text already held in memory, e.g. an HTTP request body.
type StaticSource struct {
	Label string
	Text  string
}

func (s *StaticSource) Name() string {
	if s.Label == "" {
		return "inline"
	}
	return s.Label
}

func (s *StaticSource) ReadText() (string, error) { return s.Text, nil }
