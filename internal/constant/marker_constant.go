package constant

// File framing delimiters used by the aggregator. The sentinel failure
// strings themselves live in pkg/marker so the extractor packages stay
// self-contained.
const (
	FileFrameStartFormat = "--- START OF FILE: %s ---"
	FileFrameEnd         = "--- END OF FILE ---"
)

// UnsupportedFilePrefix frames the diagnostic reason for files that no
// extractor accepts.
const UnsupportedFilePrefix = "[Unsupported file type: %s]"
