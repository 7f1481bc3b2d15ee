package service

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"clinical-notes-be/internal/dto"
	"clinical-notes-be/internal/pkg/logger"
	"clinical-notes-be/internal/pkg/serverutils"
)

type ISectionService interface {
	GenerateSection(ctx context.Context, req *dto.GenerateSectionRequest) (*dto.GenerateSectionResponse, error)
}

type sectionService struct {
	processingService IProcessingService
	generationService IGenerationService
	tokenService      ITokenService
	defaultLanguage   string
	defaultSpecialty  string
	logger            logger.ILogger
}

func NewSectionService(
	processing IProcessingService,
	generation IGenerationService,
	token ITokenService,
	defaultLanguage string,
	defaultSpecialty string,
	log logger.ILogger,
) ISectionService {
	return &sectionService{
		processingService: processing,
		generationService: generation,
		tokenService:      token,
		defaultLanguage:   defaultLanguage,
		defaultSpecialty:  defaultSpecialty,
		logger:            log,
	}
}

// GenerateSection runs the full pipeline for one section: admission check,
// file extraction, text generation, then usage settlement. Admission is
// checked before any file is touched so denied users pay no processing cost.
func (s *sectionService) GenerateSection(ctx context.Context, req *dto.GenerateSectionRequest) (*dto.GenerateSectionResponse, error) {
	if !s.tokenService.CheckAdmission(ctx, req.UserID) {
		s.logger.Info("section", "request denied: insufficient balance", map[string]interface{}{"user": req.UserID})
		return nil, serverutils.NewAppError(fiber.StatusForbidden, "Insufficient token balance")
	}

	if req.Language == "" {
		req.Language = s.defaultLanguage
	}
	if req.Specialty == "" {
		req.Specialty = s.defaultSpecialty
	}

	aggregated := s.processingService.ProcessFiles(ctx, req.Files)
	generated := s.generationService.GenerateSection(ctx, req, aggregated)
	remaining := s.tokenService.Settle(ctx, req.UserID, aggregated, generated)

	return &dto.GenerateSectionResponse{
		SectionName:     string(req.Section),
		GeneratedText:   generated,
		RemainingTokens: remaining,
	}, nil
}
