package extract

import (
	"context"
	"path/filepath"
	"strings"

	"clinical-notes-be/pkg/marker"
	"clinical-notes-be/pkg/speech"
)

// transcriberExtensions are the container extensions the remote speech
// backend accepts. Anything else gets the default extension appended so the
// upload always carries a usable filename hint.
var transcriberExtensions = map[string]bool{
	".mp3": true, ".mp4": true, ".mpeg": true, ".mpga": true, ".m4a": true,
	".wav": true, ".webm": true, ".flac": true, ".ogg": true, ".oga": true,
}

const defaultAudioExtension = ".mp3"

// AudioExtractor sends audio to the remote transcription capability, with a
// size gate in front and the result cache around the paid call.
type AudioExtractor struct {
	transcriber speech.Transcriber
	cache       *ResultCache
	maxBytes    int64
	logger      Logger
}

func NewAudioExtractor(transcriber speech.Transcriber, cache *ResultCache, maxBytes int64, log Logger) *AudioExtractor {
	return &AudioExtractor{
		transcriber: transcriber,
		cache:       cache,
		maxBytes:    maxBytes,
		logger:      log,
	}
}

// Extract returns the transcript, or an in-band marker for every handled
// failure mode. It never returns an error.
func (e *AudioExtractor) Extract(ctx context.Context, name string, data []byte) string {
	if len(data) == 0 {
		return marker.FileEmpty
	}
	if int64(len(data)) > e.maxBytes {
		return marker.AudioTooLarge
	}

	key := CacheKey("audio", data)
	if cached, found := e.cache.Get(key); found {
		e.logger.Debug("extract", "transcription served from cache", map[string]interface{}{"file": name})
		return cached
	}

	text, err := e.transcriber.Transcribe(ctx, ensureAudioFilename(name), data)
	if err != nil {
		e.logger.Warn("extract", "transcription failed", map[string]interface{}{
			"file":  name,
			"error": err.Error(),
		})
		switch speech.KindOf(err) {
		case speech.KindUnsupportedFormat:
			return marker.AudioUnsupportedFormat
		case speech.KindTooLarge:
			return marker.AudioTooLarge
		case speech.KindTimeout:
			return marker.AudioTimeout
		default:
			return marker.AudioFailed
		}
	}

	text = strings.TrimSpace(text)
	if text == "" {
		// Silence is a successful transcription, not an error.
		text = marker.NoSpeechDetected
	}

	e.cache.Put(key, text)
	return text
}

func ensureAudioFilename(name string) string {
	if name == "" {
		return "audio" + defaultAudioExtension
	}
	ext := strings.ToLower(filepath.Ext(name))
	if transcriberExtensions[ext] {
		return name
	}
	return name + defaultAudioExtension
}
