package service

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"clinical-notes-be/internal/constant"
	"clinical-notes-be/internal/dto"
	"clinical-notes-be/internal/pkg/logger"
	"clinical-notes-be/pkg/classify"
	"clinical-notes-be/pkg/marker"
)

// FileExtractor is one extraction strategy. Implementations return in-band
// markers on handled failures, never errors.
type FileExtractor interface {
	Extract(ctx context.Context, name string, data []byte) string
}

// LocalExtractor is the offline strategy (PDF); it needs no context.
type LocalExtractor interface {
	Extract(data []byte) string
}

type IProcessingService interface {
	ProcessFiles(ctx context.Context, files []*dto.UploadedFile) string
}

// processingService is the fan-out aggregator: one classify-then-extract task
// per file, all running concurrently, joined settle-all and framed in the
// caller's original file order.
type processingService struct {
	pdfExtractor   LocalExtractor
	audioExtractor FileExtractor
	imageExtractor FileExtractor
	logger         logger.ILogger
}

func NewProcessingService(
	pdfExtractor LocalExtractor,
	audioExtractor FileExtractor,
	imageExtractor FileExtractor,
	log logger.ILogger,
) IProcessingService {
	return &processingService{
		pdfExtractor:   pdfExtractor,
		audioExtractor: audioExtractor,
		imageExtractor: imageExtractor,
		logger:         log,
	}
}

func (s *processingService) ProcessFiles(ctx context.Context, files []*dto.UploadedFile) string {
	valid := make([]*dto.UploadedFile, 0, len(files))
	for _, f := range files {
		if f == nil || f.Name == "" {
			continue
		}
		valid = append(valid, f)
	}
	if len(valid) == 0 {
		return ""
	}

	// Results are indexed by input position: output order is insertion
	// order, never completion order.
	frames := make([]string, len(valid))
	var wg sync.WaitGroup

	for i, f := range valid {
		wg.Add(1)
		go func(i int, f *dto.UploadedFile) {
			defer wg.Done()
			// A panicking extractor must not take its siblings down.
			defer func() {
				if r := recover(); r != nil {
					s.logger.Error("processing", "extraction task panicked", map[string]interface{}{
						"file":  f.Name,
						"panic": fmt.Sprintf("%v", r),
					})
					frames[i] = frame(f.Name, marker.ExtractionFailed)
				}
			}()

			text := s.extractOne(ctx, f)
			if text == "" {
				return
			}
			frames[i] = frame(f.Name, text)
		}(i, f)
	}
	wg.Wait()

	nonEmpty := make([]string, 0, len(frames))
	for _, fr := range frames {
		if fr != "" {
			nonEmpty = append(nonEmpty, fr)
		}
	}
	return strings.Join(nonEmpty, "\n")
}

func (s *processingService) extractOne(ctx context.Context, f *dto.UploadedFile) string {
	if len(f.Data) == 0 {
		// Short-circuit: an empty file never reaches an extractor.
		return marker.FileEmpty
	}

	res := classify.Classify(f.Name, f.Data)
	switch res.Category {
	case classify.CategoryPdf:
		return s.pdfExtractor.Extract(f.Data)
	case classify.CategoryAudio:
		return s.audioExtractor.Extract(ctx, f.Name, f.Data)
	case classify.CategoryImage:
		return s.imageExtractor.Extract(ctx, f.Name, f.Data)
	default:
		return fmt.Sprintf(constant.UnsupportedFilePrefix, res.Reason)
	}
}

func frame(name, text string) string {
	return fmt.Sprintf(constant.FileFrameStartFormat, name) + "\n" + text + "\n" + constant.FileFrameEnd + "\n"
}
