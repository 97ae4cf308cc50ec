package docparse

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ExtractText pulls plain text out of an uploaded resume or job description.
// PDF files go through the PDF reader; everything else is treated as UTF-8
// text.
func ExtractText(data []byte, filename string) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("file is empty")
	}

	if strings.HasSuffix(strings.ToLower(filename), ".pdf") {
		return extractPDF(data)
	}

	return strings.TrimSpace(string(bytes.ToValidUTF8(data, nil))), nil
}

func extractPDF(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to open pdf: %w", err)
	}

	plain, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("failed to extract pdf text: %w", err)
	}

	var builder strings.Builder
	if _, err := io.Copy(&builder, plain); err != nil {
		return "", fmt.Errorf("failed to read pdf text: %w", err)
	}
	return strings.TrimSpace(builder.String()), nil
}
