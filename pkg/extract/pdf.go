package extract

import (
	"bytes"
	"strings"

	"github.com/ledongthuc/pdf"

	"clinical-notes-be/pkg/marker"
)

// PDFExtractor pulls plain text out of a PDF locally, page by page. It is
// cheap enough that it bypasses the result cache.
type PDFExtractor struct{}

func NewPDFExtractor() *PDFExtractor {
	return &PDFExtractor{}
}

// Extract concatenates per-page text in page order. Parse failures degrade to
// a fixed marker instead of an error; the batch must never abort on one file.
func (e *PDFExtractor) Extract(data []byte) string {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return marker.PdfExtractionFailed
	}

	var textBuilder strings.Builder
	numPages := reader.NumPage()

	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			// Skip unreadable pages, keep the rest.
			continue
		}

		textBuilder.WriteString(text)
		textBuilder.WriteString("\n")
	}

	return strings.TrimSpace(textBuilder.String())
}
