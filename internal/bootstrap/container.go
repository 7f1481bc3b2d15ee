package bootstrap

import (
	"log"

	"clinical-notes-be/internal/config"
	"clinical-notes-be/internal/controller"
	"clinical-notes-be/internal/pkg/logger"
	"clinical-notes-be/internal/service"
	"clinical-notes-be/pkg/extract"
	"clinical-notes-be/pkg/llm/factory"
	"clinical-notes-be/pkg/metering"
	"clinical-notes-be/pkg/speech"
	"clinical-notes-be/pkg/vision"
)

type Container struct {
	// Controllers
	NoteController controller.INoteController

	// Exposed for graceful shutdown
	Logger logger.ILogger
}

func NewContainer(cfg *config.Config) *Container {
	// 1. Core Facades
	appLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Remote AI Providers
	llmProvider, err := factory.NewLLMProvider(cfg.Ai.LLMProvider, cfg.Ai.LLMModel, cfg.Ai.OllamaBaseURL, cfg.Keys.OpenAI)
	if err != nil {
		log.Panicf("Unable to initialize LLM provider: %v", err)
	}

	var transcriber speech.Transcriber = speech.NewOpenAITranscriber(cfg.Keys.OpenAI, cfg.Ai.SpeechModel)
	var describer vision.Describer = vision.NewGeminiDescriber(cfg.Keys.GoogleGemini, cfg.Ai.VisionModel)

	// 3. Extraction Pipeline
	// One shared cache so audio and image results compete for the same slots.
	extractionCache := extract.NewResultCache(cfg.Pipeline.CacheCapacity)
	pdfExtractor := extract.NewPDFExtractor()
	audioExtractor := extract.NewAudioExtractor(transcriber, extractionCache, cfg.Pipeline.MaxAudioBytes, appLogger)
	imageExtractor := extract.NewImageExtractor(describer, extractionCache, cfg.Pipeline.MaxImageEdge, cfg.Pipeline.JpegQuality, appLogger)

	// 4. Usage Metering
	meteringClient := metering.NewClient(cfg.Metering.CheckTokenURL, cfg.Metering.ReportTokenURL, cfg.Metering.FailOpen, appLogger)

	// 5. Services
	processingService := service.NewProcessingService(pdfExtractor, audioExtractor, imageExtractor, appLogger)
	generationService := service.NewGenerationService(llmProvider, cfg.Ai.SynthesisModel, appLogger)
	tokenService := service.NewTokenService(meteringClient, cfg.Metering.CostPerSection, appLogger)
	sectionService := service.NewSectionService(
		processingService,
		generationService,
		tokenService,
		cfg.Pipeline.DefaultLanguage,
		cfg.Pipeline.DefaultSpecialty,
		appLogger,
	)
	exportService := service.NewExportService(appLogger)

	// 6. Controllers
	noteController := controller.NewNoteController(sectionService, exportService)

	return &Container{
		NoteController: noteController,
		Logger:         appLogger,
	}
}
