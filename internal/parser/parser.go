package parser

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/dgallion1/docrank/internal/document"
)

// Parser converts raw document bytes into the page/span/table form the
// segmenter consumes.
type Parser interface {
	Parse(r io.Reader, filename string) (*document.Document, error)
}

// SupportedExtensions lists file extensions this service can handle.
var SupportedExtensions = map[string]bool{
	".txt":  true,
	".md":   true,
	".csv":  true,
	".html": true,
	".htm":  true,
	".pdf":  true,
	".docx": true,
}

// ForFile returns the appropriate parser for a filename.
func ForFile(filename string) (Parser, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".txt":
		return &TextParser{}, nil
	case ".md", ".markdown":
		return &MarkdownParser{}, nil
	case ".csv":
		return &CSVParser{}, nil
	case ".html", ".htm":
		return &HTMLParser{}, nil
	case ".pdf":
		return &PDFParser{}, nil
	case ".docx":
		return &DOCXParser{}, nil
	default:
		return nil, fmt.Errorf("unsupported file extension: %s", ext)
	}
}

// IsSupportedExtension checks if a file extension is supported.
func IsSupportedExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return SupportedExtensions[ext]
}

// Synthetic font sizes for formats that mark headings structurally rather
// than typographically. Sized so the segmenter maps h1 to level 1, h2 to
// level 2, and h3 and below to level 3.
const (
	fontH1   = 18.0
	fontH2   = 14.0
	fontH3   = 13.0
	fontBody = 12.0
)

func headingFont(level int) (size float64, bold bool) {
	switch level {
	case 1:
		return fontH1, true
	case 2:
		return fontH2, true
	default:
		return fontH3, false
	}
}
