package util

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/fumiama/go-docx"
	"github.com/gen2brain/go-fitz"
)

var ErrUnsupportedType = errors.New("unsupported file type")

// FileTextExtractor turns raw resume bytes into plain text.
type FileTextExtractor struct{}

// ExtractText extracts plain text from pdf or docx content.
func (FileTextExtractor) ExtractText(data []byte, fileType string) (string, error) {
	switch strings.ToLower(fileType) {
	case "pdf":
		return extractPDF(data)
	case "docx", "doc":
		return extractDOCX(data)
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedType, fileType)
	}
}

func extractPDF(data []byte) (string, error) {
	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}
	defer doc.Close()

	var parts []string
	for n := 0; n < doc.NumPage(); n++ {
		text, err := doc.Text(n)
		if err != nil {
			return "", fmt.Errorf("page %d: failed to extract text: %w", n+1, err)
		}
		if strings.TrimSpace(text) != "" {
			parts = append(parts, text)
		}
	}

	return normalizeWhitespace(strings.Join(parts, "\n")), nil
}

func extractDOCX(data []byte) (string, error) {
	doc, err := docx.Parse(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to open DOCX: %w", err)
	}

	var parts []string
	for _, item := range doc.Document.Body.Items {
		switch it := item.(type) {
		case *docx.Paragraph:
			if text := strings.TrimSpace(it.String()); text != "" {
				parts = append(parts, text)
			}
		case *docx.Table:
			if text := strings.TrimSpace(it.String()); text != "" {
				parts = append(parts, text)
			}
		}
	}

	return normalizeWhitespace(strings.Join(parts, "\n")), nil
}

// normalizeWhitespace collapses runs of whitespace into single spaces.
func normalizeWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
