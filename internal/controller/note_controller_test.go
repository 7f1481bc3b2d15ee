package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clinical-notes-be/internal/constant"
	"clinical-notes-be/internal/dto"
	"clinical-notes-be/internal/pkg/serverutils"
)

type stubSectionService struct {
	res    *dto.GenerateSectionResponse
	err    error
	gotReq *dto.GenerateSectionRequest
}

func (s *stubSectionService) GenerateSection(ctx context.Context, req *dto.GenerateSectionRequest) (*dto.GenerateSectionResponse, error) {
	s.gotReq = req
	return s.res, s.err
}

type stubExportService struct {
	out []byte
	err error
}

func (s *stubExportService) GenerateDocument(sections map[string]string) ([]byte, error) {
	return s.out, s.err
}

func newTestApp(t *testing.T, section *stubSectionService, export *stubExportService) *fiber.App {
	t.Setenv("JWT_SECRET", "")

	app := fiber.New()
	app.Use(serverutils.ErrorHandlerMiddleware())
	NewNoteController(section, export).RegisterRoutes(app.Group("/api"))
	return app
}

func multipartBody(t *testing.T, fields map[string]string, fileName string, fileData []byte) (*bytes.Buffer, string) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}
	if fileName != "" {
		part, err := writer.CreateFormFile("files", fileName)
		require.NoError(t, err)
		_, err = part.Write(fileData)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())
	return &buf, writer.FormDataContentType()
}

func TestGenerateSectionEndpoint(t *testing.T) {
	section := &stubSectionService{res: &dto.GenerateSectionResponse{
		SectionName:     "Present Illness",
		GeneratedText:   "the text",
		RemainingTokens: 4,
	}}
	app := newTestApp(t, section, &stubExportService{})

	body, contentType := multipartBody(t, map[string]string{
		"user_id":           "user-1",
		"language":          "Spanish",
		"physician_notes":   "stable overnight",
		"previous_sections": `{"Past Medical History":"diabetes"}`,
	}, "visit.mp3", []byte("audio bytes"))

	req := httptest.NewRequest("POST", "/api/note/v1/generate_section/"+url.PathEscape("Present Illness"), body)
	req.Header.Set("Content-Type", contentType)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	require.NotNil(t, section.gotReq)
	assert.Equal(t, constant.SectionPresentIllness, section.gotReq.Section)
	assert.Equal(t, "user-1", section.gotReq.UserID)
	assert.Equal(t, "Spanish", section.gotReq.Language)
	assert.Equal(t, "stable overnight", section.gotReq.PhysicianNotes)
	assert.Equal(t, "diabetes", section.gotReq.PreviousSections["Past Medical History"])
	require.Len(t, section.gotReq.Files, 1)
	assert.Equal(t, "visit.mp3", section.gotReq.Files[0].Name)
	assert.Equal(t, []byte("audio bytes"), section.gotReq.Files[0].Data)

	raw, _ := io.ReadAll(resp.Body)
	var envelope serverutils.Response
	require.NoError(t, json.Unmarshal(raw, &envelope))
	assert.True(t, envelope.Success)
}

func TestGenerateSectionFileOrderFollowsBody(t *testing.T) {
	// Many files under the "files" field must reach the service in the order
	// they appear in the multipart body, and stray file fields are ignored.
	section := &stubSectionService{res: &dto.GenerateSectionResponse{}}
	app := newTestApp(t, section, &stubExportService{})

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	names := []string{"0.pdf", "1.pdf", "2.pdf", "3.pdf", "4.pdf", "5.pdf", "6.pdf", "7.pdf"}
	for _, name := range names {
		part, err := writer.CreateFormFile("files", name)
		require.NoError(t, err)
		_, err = part.Write([]byte("%PDF-1.4 " + name))
		require.NoError(t, err)
	}
	stray, err := writer.CreateFormFile("attachment", "stray.pdf")
	require.NoError(t, err)
	_, err = stray.Write([]byte("%PDF-1.4 stray"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest("POST", "/api/note/v1/generate_section/"+url.PathEscape("Present Illness"), &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	require.NotNil(t, section.gotReq)
	require.Len(t, section.gotReq.Files, len(names))
	for i, name := range names {
		assert.Equal(t, name, section.gotReq.Files[i].Name)
	}
}

func TestGenerateSectionUnknownName(t *testing.T) {
	app := newTestApp(t, &stubSectionService{}, &stubExportService{})

	body, contentType := multipartBody(t, nil, "", nil)
	req := httptest.NewRequest("POST", "/api/note/v1/generate_section/"+url.PathEscape("Bogus Section"), body)
	req.Header.Set("Content-Type", contentType)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGenerateSectionRejectsAnalysisAndPlan(t *testing.T) {
	section := &stubSectionService{}
	app := newTestApp(t, section, &stubExportService{})

	body, contentType := multipartBody(t, nil, "", nil)
	req := httptest.NewRequest("POST", "/api/note/v1/generate_section/"+url.PathEscape("Analysis and Plan"), body)
	req.Header.Set("Content-Type", contentType)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Nil(t, section.gotReq)
}

func TestGenerateAnalysisPlanEndpoint(t *testing.T) {
	section := &stubSectionService{res: &dto.GenerateSectionResponse{SectionName: "Analysis and Plan"}}
	app := newTestApp(t, section, &stubExportService{})

	payload := `{"previous_sections":{"Present Illness":"chest pain"},"user_id":"user-2","language":"English"}`
	body, contentType := multipartBody(t, map[string]string{"request_data": payload}, "labs.pdf", []byte("%PDF-1.4"))

	req := httptest.NewRequest("POST", "/api/note/v1/generate_analysis_plan", body)
	req.Header.Set("Content-Type", contentType)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	require.NotNil(t, section.gotReq)
	assert.Equal(t, constant.SectionAnalysisAndPlan, section.gotReq.Section)
	assert.Equal(t, "user-2", section.gotReq.UserID)
	assert.Equal(t, "chest pain", section.gotReq.PreviousSections["Present Illness"])
	require.Len(t, section.gotReq.Files, 1)
}

func TestGenerateAnalysisPlanBadPayload(t *testing.T) {
	section := &stubSectionService{}
	app := newTestApp(t, section, &stubExportService{})

	cases := map[string]map[string]string{
		"missing request_data": {},
		"malformed json":       {"request_data": "{not json"},
		"missing sections":     {"request_data": `{"user_id":"u"}`},
	}

	for name, fields := range cases {
		t.Run(name, func(t *testing.T) {
			body, contentType := multipartBody(t, fields, "", nil)
			req := httptest.NewRequest("POST", "/api/note/v1/generate_analysis_plan", body)
			req.Header.Set("Content-Type", contentType)

			resp, err := app.Test(req, -1)
			require.NoError(t, err)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			assert.Nil(t, section.gotReq)
		})
	}
}

func TestQuickReportEndpoint(t *testing.T) {
	section := &stubSectionService{res: &dto.GenerateSectionResponse{SectionName: "Quick Report"}}
	app := newTestApp(t, section, &stubExportService{})

	body, contentType := multipartBody(t, map[string]string{"user_id": "user-3"}, "scan.png", []byte{0x89, 'P', 'N', 'G'})
	req := httptest.NewRequest("POST", "/api/note/v1/quick_report", body)
	req.Header.Set("Content-Type", contentType)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotNil(t, section.gotReq)
	assert.Equal(t, constant.SectionQuickReport, section.gotReq.Section)
}

func TestGenerateDocumentEndpoint(t *testing.T) {
	export := &stubExportService{out: []byte("PKdocxbytes")}
	app := newTestApp(t, &stubSectionService{}, export)

	payload, _ := json.Marshal(dto.GenerateDocumentRequest{
		Sections: map[string]string{"Present Illness": "text"},
	})
	req := httptest.NewRequest("POST", "/api/note/v1/generate_document", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "wordprocessingml")
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "clinical_note.docx")

	raw, _ := io.ReadAll(resp.Body)
	assert.True(t, strings.HasPrefix(string(raw), "PK"))
}

func TestGenerateDocumentMissingSections(t *testing.T) {
	app := newTestApp(t, &stubSectionService{}, &stubExportService{})

	req := httptest.NewRequest("POST", "/api/note/v1/generate_document", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
