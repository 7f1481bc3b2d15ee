package service

import (
	"context"
	"errors"
	"sort"
	"strings"

	"clinical-notes-be/internal/constant"
	"clinical-notes-be/internal/dto"
	"clinical-notes-be/internal/pkg/logger"
	"clinical-notes-be/pkg/llm"
	"clinical-notes-be/pkg/marker"
)

type IGenerationService interface {
	// GenerateSection composes the provider request for one section from the
	// aggregated extraction text and returns the produced text, or a sentinel
	// marker when the provider fails or withholds output.
	GenerateSection(ctx context.Context, req *dto.GenerateSectionRequest, aggregatedText string) string
}

type generationService struct {
	provider       llm.Provider
	synthesisModel string
	logger         logger.ILogger
}

func NewGenerationService(provider llm.Provider, synthesisModel string, log logger.ILogger) IGenerationService {
	return &generationService{
		provider:       provider,
		synthesisModel: synthesisModel,
		logger:         log,
	}
}

func (s *generationService) GenerateSection(ctx context.Context, req *dto.GenerateSectionRequest, aggregatedText string) string {
	prompt := buildPrompt(req, aggregatedText)

	opts := llm.GenerateOptions{}
	if req.Section == constant.SectionAnalysisAndPlan {
		// The synthesis section carries the clinical reasoning; route it to
		// the heavier model.
		opts.Model = s.synthesisModel
	}

	text, err := s.provider.Generate(ctx, prompt, opts)
	if err != nil {
		s.logger.Error("generation", "text generation failed", map[string]interface{}{
			"section": string(req.Section),
			"error":   err.Error(),
		})
		if errors.Is(err, llm.ErrContentBlocked) {
			return marker.GenerationBlocked
		}
		if req.Section == constant.SectionAnalysisAndPlan {
			return marker.SynthesisFailed
		}
		return marker.GenerationFailed
	}

	return strings.TrimSpace(text)
}

func buildPrompt(req *dto.GenerateSectionRequest, aggregatedText string) string {
	template := constant.SectionPrompts[req.Section]

	newInfo := "--- START OF NEW INFORMATION ---\n" + aggregatedText
	if req.PhysicianNotes != "" {
		newInfo += "\n\nPhysician notes:\n" + req.PhysicianNotes
	}

	replacer := strings.NewReplacer(
		"{language}", req.Language,
		"{specialty}", req.Specialty,
	)

	if req.Section == constant.SectionAnalysisAndPlan {
		return replacer.Replace(strings.NewReplacer(
			"{previous_summaries}", formatPriorSections(req.PreviousSections),
			"{current_section_context}", newInfo,
		).Replace(template))
	}

	context := newInfo
	if len(req.PreviousSections) > 0 {
		context = "--- START OF PREVIOUSLY GENERATED SECTIONS ---\n" +
			formatPriorSections(req.PreviousSections) +
			"\n--- END OF PREVIOUSLY GENERATED SECTIONS ---\n\n" +
			newInfo
	}

	return replacer.Replace(strings.ReplaceAll(template, "{context}", context))
}

// formatPriorSections renders prior section summaries deterministically; the
// map's insertion order is not observable, so the section names sort.
func formatPriorSections(sections map[string]string) string {
	names := make([]string, 0, len(sections))
	for name := range sections {
		names = append(names, name)
	}
	sort.Strings(names)

	entries := make([]string, 0, len(names))
	for _, name := range names {
		entries = append(entries, "## "+name+":\n"+sections[name])
	}
	return strings.Join(entries, "\n\n")
}
