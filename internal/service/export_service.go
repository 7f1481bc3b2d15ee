package service

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/fumiama/go-docx"

	"clinical-notes-be/internal/constant"
	"clinical-notes-be/internal/pkg/logger"
)

type IExportService interface {
	// GenerateDocument renders the generated sections as a DOCX file,
	// ordered the way the note reads clinically.
	GenerateDocument(sections map[string]string) ([]byte, error)
}

type exportService struct {
	logger logger.ILogger
}

func NewExportService(log logger.ILogger) IExportService {
	return &exportService{logger: log}
}

func (s *exportService) GenerateDocument(sections map[string]string) ([]byte, error) {
	doc := docx.New().WithDefaultTheme()

	doc.AddParagraph().AddText("Clinical Note").Size("36").Bold()
	doc.AddParagraph()

	included := 0
	for _, section := range constant.DocumentSectionOrder {
		text := strings.TrimSpace(sections[string(section)])
		if text == "" {
			continue
		}
		included++

		doc.AddParagraph().AddText(string(section)).Size("28").Bold()
		for _, line := range strings.Split(text, "\n") {
			doc.AddParagraph().AddText(line)
		}
		doc.AddParagraph()
	}

	if included == 0 {
		return nil, fmt.Errorf("no known sections to export")
	}

	var buf bytes.Buffer
	if _, err := doc.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("write document: %w", err)
	}

	s.logger.Info("export", "document generated", map[string]interface{}{"sections": included})
	return buf.Bytes(), nil
}
