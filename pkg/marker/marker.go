// Package marker defines the in-band sentinel strings the pipeline degrades
// to. Extraction and generation never raise past their boundary; every failure
// mode maps onto one of these fixed strings so the caller always receives a
// well-formed response.
package marker

const (
	FileEmpty = "[File is empty.]"

	PdfExtractionFailed = "[Unable to extract text from PDF.]"

	NoSpeechDetected       = "[No speech detected in audio.]"
	AudioUnsupportedFormat = "[Audio format not supported by the transcription service.]"
	AudioTooLarge          = "[Audio file exceeds the 25 MB transcription limit.]"
	AudioTimeout           = "[Audio transcription timed out.]"
	AudioFailed            = "[Audio transcription failed.]"

	ImageDescriptionFailed = "[Image description failed.]"

	ExtractionFailed = "[File extraction failed unexpectedly.]"

	GenerationFailed  = "[AI text generation failed.]"
	SynthesisFailed   = "[AI analysis and plan generation failed.]"
	GenerationBlocked = "[AI response was withheld by the provider's content policy.]"
)

// Failures lists every marker that makes a request non-billable. A settlement
// call is skipped when the aggregated or generated text contains any of these.
var Failures = []string{
	PdfExtractionFailed,
	AudioFailed,
	AudioTimeout,
	ImageDescriptionFailed,
	ExtractionFailed,
	GenerationFailed,
	SynthesisFailed,
	GenerationBlocked,
}
