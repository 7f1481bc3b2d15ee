package extract

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"clinical-notes-be/pkg/marker"
)

// buildPDF assembles a minimal uncompressed PDF with one page per entry,
// each page drawing its text with the standard Helvetica font.
func buildPDF(pages []string) []byte {
	var objects []string

	kids := make([]string, len(pages))
	for i := range pages {
		kids[i] = fmt.Sprintf("%d 0 R", 3+i*2)
	}

	objects = append(objects, "<< /Type /Catalog /Pages 2 0 R >>")
	objects = append(objects, fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>",
		strings.Join(kids, " "), len(pages)))

	fontObj := 3 + len(pages)*2
	for i, text := range pages {
		pageObj := 3 + i*2
		contentObj := pageObj + 1
		objects = append(objects, fmt.Sprintf(
			"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 %d 0 R >> >> /Contents %d 0 R >>",
			fontObj, contentObj))

		stream := fmt.Sprintf("BT /F1 12 Tf 72 720 Td (%s) Tj ET", text)
		objects = append(objects, fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(stream), stream))
	}
	objects = append(objects, "<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>")

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")

	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}

	xrefStart := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objects)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n",
		len(objects)+1, xrefStart)

	return buf.Bytes()
}

func TestPDFExtractMultiPageInOrder(t *testing.T) {
	e := NewPDFExtractor()
	data := buildPDF([]string{"first page findings", "second page findings"})

	got := e.Extract(data)
	assert.NotEqual(t, marker.PdfExtractionFailed, got)

	firstIdx := strings.Index(got, "first page findings")
	secondIdx := strings.Index(got, "second page findings")
	assert.GreaterOrEqual(t, firstIdx, 0)
	assert.Greater(t, secondIdx, firstIdx, "page order must be preserved")

	// Leading/trailing whitespace stripped.
	assert.Equal(t, strings.TrimSpace(got), got)
}

func TestPDFExtractGarbageReturnsMarker(t *testing.T) {
	e := NewPDFExtractor()
	assert.Equal(t, marker.PdfExtractionFailed, e.Extract([]byte("not a pdf at all")))
	assert.Equal(t, marker.PdfExtractionFailed, e.Extract(nil))
}
