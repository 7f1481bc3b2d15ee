package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clinical-notes-be/internal/pkg/logger"
)

func TestGenerateDocumentProducesDocx(t *testing.T) {
	svc := NewExportService(logger.NewNoopLogger())

	data, err := svc.GenerateDocument(map[string]string{
		"Present Illness":    "Patient presents with chest pain.\nOnset two days ago.",
		"Proposed Diagnosis": "Unstable angina.",
	})

	require.NoError(t, err)
	require.NotEmpty(t, data)
	// DOCX is a zip container.
	assert.Equal(t, []byte{'P', 'K'}, data[:2])
}

func TestGenerateDocumentIgnoresUnknownSections(t *testing.T) {
	svc := NewExportService(logger.NewNoopLogger())

	data, err := svc.GenerateDocument(map[string]string{
		"Present Illness": "Some history.",
		"Scratch Notes":   "should not break the export",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, data)
}

func TestGenerateDocumentRejectsEmptyInput(t *testing.T) {
	svc := NewExportService(logger.NewNoopLogger())

	cases := map[string]map[string]string{
		"no sections":        {},
		"only unknown names": {"Scratch Notes": "text"},
		"only blank text":    {"Present Illness": "   "},
	}

	for name, sections := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := svc.GenerateDocument(sections)
			assert.Error(t, err)
		})
	}
}
