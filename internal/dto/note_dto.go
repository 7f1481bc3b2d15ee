package dto

import "clinical-notes-be/internal/constant"

// UploadedFile is one received multipart file. Immutable once constructed;
// owned by the request scope and never persisted.
type UploadedFile struct {
	Name        string
	ContentType string
	Data        []byte
}

type GenerateSectionRequest struct {
	Section          constant.SectionName
	UserID           string
	Language         string
	Specialty        string
	PhysicianNotes   string
	PreviousSections map[string]string
	Files            []*UploadedFile
}

type GenerateSectionResponse struct {
	SectionName     string `json:"section_name"`
	GeneratedText   string `json:"generated_text"`
	RemainingTokens int    `json:"remaining_tokens"`
}

// AnalysisPlanPayload is the JSON carried in the request_data form field of
// the analysis-and-plan endpoint.
type AnalysisPlanPayload struct {
	PreviousSections map[string]string `json:"previous_sections" validate:"required"`
	UserID           string            `json:"user_id"`
	PhysicianNotes   string            `json:"physician_notes"`
	Language         string            `json:"language"`
	Specialty        string            `json:"specialty"`
}

type GenerateDocumentRequest struct {
	Sections map[string]string `json:"sections" validate:"required"`
	Language string            `json:"language"`
}
