package controller

import (
	"encoding/json"
	"errors"
	"io"
	"net/url"

	"clinical-notes-be/internal/constant"
	"clinical-notes-be/internal/dto"
	"clinical-notes-be/internal/pkg/serverutils"
	"clinical-notes-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"
)

type INoteController interface {
	RegisterRoutes(r fiber.Router)
	GenerateSection(ctx *fiber.Ctx) error
	GenerateAnalysisPlan(ctx *fiber.Ctx) error
	QuickReport(ctx *fiber.Ctx) error
	GenerateDocument(ctx *fiber.Ctx) error
}

type noteController struct {
	sectionService service.ISectionService
	exportService  service.IExportService
}

func NewNoteController(sectionService service.ISectionService, exportService service.IExportService) INoteController {
	return &noteController{
		sectionService: sectionService,
		exportService:  exportService,
	}
}

func (c *noteController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/note/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("generate_section/:section_name", c.GenerateSection)
	h.Post("generate_analysis_plan", c.GenerateAnalysisPlan)
	h.Post("quick_report", c.QuickReport)
	h.Post("generate_document", c.GenerateDocument)
}

func (c *noteController) GenerateSection(ctx *fiber.Ctx) error {
	rawSection, err := url.PathUnescape(ctx.Params("section_name"))
	if err != nil {
		rawSection = ctx.Params("section_name")
	}
	section, ok := constant.ParseSectionName(rawSection)
	if !ok {
		return serverutils.NewAppError(fiber.StatusBadRequest, "Unknown section name")
	}
	if section == constant.SectionAnalysisAndPlan {
		return serverutils.NewAppError(fiber.StatusBadRequest, "Analysis and Plan uses the generate_analysis_plan endpoint")
	}

	req, err := c.buildRequestFromForm(ctx, section)
	if err != nil {
		return err
	}

	res, err := c.sectionService.GenerateSection(ctx.Context(), req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success generate section", res))
}

func (c *noteController) GenerateAnalysisPlan(ctx *fiber.Ctx) error {
	raw := ctx.FormValue("request_data")
	if raw == "" {
		return serverutils.NewAppError(fiber.StatusBadRequest, "Missing request_data field")
	}

	var payload dto.AnalysisPlanPayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return serverutils.NewAppError(fiber.StatusBadRequest, "Malformed request_data field")
	}
	if err := serverutils.ValidateRequest(payload); err != nil {
		return err
	}

	files, err := c.readUploadedFiles(ctx)
	if err != nil {
		return err
	}

	req := &dto.GenerateSectionRequest{
		Section:          constant.SectionAnalysisAndPlan,
		UserID:           c.resolveUserID(ctx, payload.UserID),
		Language:         payload.Language,
		Specialty:        payload.Specialty,
		PhysicianNotes:   payload.PhysicianNotes,
		PreviousSections: payload.PreviousSections,
		Files:            files,
	}

	res, err := c.sectionService.GenerateSection(ctx.Context(), req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success generate analysis and plan", res))
}

func (c *noteController) QuickReport(ctx *fiber.Ctx) error {
	req, err := c.buildRequestFromForm(ctx, constant.SectionQuickReport)
	if err != nil {
		return err
	}

	res, err := c.sectionService.GenerateSection(ctx.Context(), req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success generate quick report", res))
}

func (c *noteController) GenerateDocument(ctx *fiber.Ctx) error {
	var req dto.GenerateDocumentRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.NewAppError(fiber.StatusBadRequest, "Malformed request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	document, err := c.exportService.GenerateDocument(req.Sections)
	if err != nil {
		return serverutils.NewAppError(fiber.StatusBadRequest, err.Error())
	}

	ctx.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.wordprocessingml.document")
	ctx.Set(fiber.HeaderContentDisposition, `attachment; filename="clinical_note.docx"`)
	return ctx.Send(document)
}

func (c *noteController) buildRequestFromForm(ctx *fiber.Ctx, section constant.SectionName) (*dto.GenerateSectionRequest, error) {
	files, err := c.readUploadedFiles(ctx)
	if err != nil {
		return nil, err
	}

	previous := map[string]string{}
	if raw := ctx.FormValue("previous_sections"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &previous); err != nil {
			return nil, serverutils.NewAppError(fiber.StatusBadRequest, "Malformed previous_sections field")
		}
	}

	return &dto.GenerateSectionRequest{
		Section:          section,
		UserID:           c.resolveUserID(ctx, ctx.FormValue("user_id")),
		Language:         ctx.FormValue("language"),
		Specialty:        ctx.FormValue("specialty"),
		PhysicianNotes:   ctx.FormValue("physician_notes"),
		PreviousSections: previous,
		Files:            files,
	}, nil
}

// readUploadedFiles drains the multipart "files" field into memory. Only that
// field is read: its headers arrive in body order, which downstream framing
// relies on. File contents never touch disk; they live only for the request.
func (c *noteController) readUploadedFiles(ctx *fiber.Ctx) ([]*dto.UploadedFile, error) {
	form, err := ctx.MultipartForm()
	if err != nil {
		if errors.Is(err, fasthttp.ErrNoMultipartForm) {
			return nil, nil
		}
		return nil, serverutils.NewAppError(fiber.StatusBadRequest, "Malformed multipart form")
	}

	var files []*dto.UploadedFile
	for _, header := range form.File["files"] {
		f, err := header.Open()
		if err != nil {
			return nil, serverutils.NewAppError(fiber.StatusBadRequest, "Unable to read uploaded file: "+header.Filename)
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return nil, serverutils.NewAppError(fiber.StatusBadRequest, "Unable to read uploaded file: "+header.Filename)
		}

		files = append(files, &dto.UploadedFile{
			Name:        header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Data:        data,
		})
	}
	return files, nil
}

// resolveUserID prefers the authenticated identity over the form payload.
func (c *noteController) resolveUserID(ctx *fiber.Ctx, fallback string) string {
	if id, ok := ctx.Locals("user_id").(string); ok && id != "" {
		return id
	}
	return fallback
}
