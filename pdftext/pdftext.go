// Package pdftext extracts plain text from PDF byte content.
package pdftext

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/documentloaders"
)

func New() Extractor {
	return Extractor{}
}

type Extractor struct{}

// Extract returns the plain text of the PDF, with page contents joined by
// newlines. An unparsable document returns an error; a parsable document with
// no text content returns an empty string and no error, so the caller can
// distinguish a corrupt file from a scanned image.
func (e Extractor) Extract(ctx context.Context, data []byte) (string, error) {
	loader := documentloaders.NewPDF(bytes.NewReader(data), int64(len(data)))
	docs, err := loader.Load(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to load PDF: %w", err)
	}
	var sb strings.Builder
	for _, doc := range docs {
		sb.WriteString(doc.PageContent)
		sb.WriteString("\n")
	}
	return sb.String(), nil
}
