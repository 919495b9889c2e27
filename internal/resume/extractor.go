package resume

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ExtractText pulls the plain text out of a PDF resume on disk. The text is
// stored alongside the candidate so ATS scoring and search never need the
// original file again.
func ExtractText(path string) (string, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open pdf: %w", err)
	}
	defer f.Close()

	var buf bytes.Buffer
	plainText, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("failed to extract pdf text: %w", err)
	}
	if _, err := buf.ReadFrom(plainText); err != nil {
		return "", fmt.Errorf("failed to read pdf text: %w", err)
	}

	return normalize(buf.String()), nil
}

// normalize collapses whitespace runs left behind by PDF text extraction.
func normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
