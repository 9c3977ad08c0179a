// Package ingestion turns uploaded job postings and resumes into plain
// UTF-8 text for the engine. It never fetches anything over the network.
package ingestion

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"
)

// MaxFileSize caps uploads read by ExtractFile
const MaxFileSize = 5 << 20

var (
	spaceRun  = regexp.MustCompile(`\s+`)
	blankRuns = regexp.MustCompile(`\n\n\n+`)
)

// Document is extracted text plus where it came from
type Document struct {
	Text     string
	Metadata *Metadata
}

// CleanText cleans and normalizes text content while preserving structure
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")
	content = strings.ReplaceAll(content, "\u00a0", " ")

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = cleanLine(line)
	}

	result := blankRuns.ReplaceAllString(strings.Join(lines, "\n"), "\n\n")
	return strings.TrimSpace(result)
}

// cleanLine cleans a single line while preserving headings, bullets and indentation
func cleanLine(line string) string {
	line = strings.TrimRight(line, " \t")
	if strings.TrimSpace(line) == "" {
		return ""
	}

	trimmed := strings.TrimLeft(line, " \t")
	if strings.HasPrefix(trimmed, "#") {
		return trimmed
	}

	indent := len(line) - len(trimmed)
	if isBulletLine(trimmed) {
		return strings.Repeat(" ", indent) + trimmed
	}
	return strings.Repeat(" ", indent) + spaceRun.ReplaceAllString(trimmed, " ")
}

func isBulletLine(line string) bool {
	trimmed := strings.TrimLeft(line, " \t")
	return strings.HasPrefix(trimmed, "- ") || strings.HasPrefix(trimmed, "* ") ||
		strings.HasPrefix(trimmed, "• ") || strings.HasPrefix(trimmed, "· ")
}

// Extract converts raw bytes to text according to format ("txt", "md" or "html")
func Extract(source, format string, content []byte) (*Document, error) {
	if len(content) > MaxFileSize {
		return nil, &ExtractionError{Source: source, Message: fmt.Sprintf("larger than %d bytes", MaxFileSize)}
	}
	if !utf8.Valid(content) || bytes.IndexByte(content, 0) >= 0 {
		return nil, &ExtractionError{Source: source, Message: "not UTF-8 text"}
	}

	var (
		text     string
		platform = PlatformUnknown
		err      error
	)
	switch strings.ToLower(format) {
	case "txt", "text", "md", "markdown":
		text = CleanText(string(content))
	case "html", "htm":
		text, platform, err = ExtractHTML(source, string(content))
		if err != nil {
			return nil, err
		}
	default:
		return nil, &ExtractionError{Source: source, Message: fmt.Sprintf("unsupported format %q", format)}
	}
	if text == "" {
		return nil, &ExtractionError{Source: source, Message: "no text content"}
	}

	meta := NewMetadata(text, source)
	meta.Format = strings.ToLower(format)
	if platform != PlatformUnknown {
		meta.Platform = string(platform)
	}
	return &Document{Text: text, Metadata: meta}, nil
}

// ExtractFile reads a .txt, .md or .html file and returns its text
func ExtractFile(path string) (*Document, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &ExtractionError{Source: path, Message: "file not found", Cause: err}
		}
		return nil, &ExtractionError{Source: path, Message: "failed to read file", Cause: err}
	}
	return Extract(path, strings.TrimPrefix(filepath.Ext(path), "."), content)
}

// WriteOutput writes the cleaned text and metadata next to each other in outDir
func WriteOutput(outDir, name string, doc *Document) error {
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	if err := os.WriteFile(filepath.Join(outDir, name+".txt"), []byte(doc.Text), 0644); err != nil {
		return fmt.Errorf("failed to write text file: %w", err)
	}

	metaJSON, err := doc.Metadata.ToJSON()
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(outDir, name+".meta.json"), metaJSON, 0644); err != nil {
		return fmt.Errorf("failed to write metadata file: %w", err)
	}
	return nil
}
