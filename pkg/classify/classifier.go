package classify

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// Category is the closed set of content categories the pipeline routes on.
type Category string

const (
	CategoryAudio       Category = "audio"
	CategoryImage       Category = "image"
	CategoryPdf         Category = "pdf"
	CategoryUnsupported Category = "unsupported"
)

// Result pairs the category with a diagnostic reason for unsupported files.
type Result struct {
	Category Category
	Reason   string
}

var audioExtensions = map[string]bool{
	".mp3": true, ".wav": true, ".m4a": true, ".aac": true, ".flac": true,
	".ogg": true, ".opus": true, ".wma": true, ".aif": true, ".aiff": true,
	".webm": true,
}

var imageExtensions = map[string]bool{
	".heic": true, ".heif": true, ".jpg": true, ".jpeg": true, ".png": true,
	".gif": true, ".bmp": true, ".webp": true, ".tiff": true, ".tif": true,
}

var videoExtensions = map[string]bool{
	".mp4": true, ".mov": true, ".avi": true, ".mkv": true, ".wmv": true,
	".flv": true, ".mpeg": true, ".mpg": true, ".3gp": true,
}

// Classify assigns a content category from the declared file name first and
// the binary signature second. It never fails: anything unrecognized resolves
// to CategoryUnsupported with a diagnostic reason.
//
// Extension order matters: .m4a is in the audio set and is checked before the
// video set, so m4a containers always route to audio even when their signature
// sniffs as video.
func Classify(name string, data []byte) Result {
	ext := strings.ToLower(filepath.Ext(name))

	switch {
	case audioExtensions[ext]:
		return Result{Category: CategoryAudio}
	case ext == ".pdf":
		return Result{Category: CategoryPdf}
	case imageExtensions[ext]:
		return Result{Category: CategoryImage}
	case videoExtensions[ext]:
		return Result{
			Category: CategoryUnsupported,
			Reason:   fmt.Sprintf("video files (%s) are not supported; extract the audio track first", ext),
		}
	}

	// Unknown extension: fall back to the content signature.
	detected := mimetype.Detect(data)
	mime := detected.String()
	switch {
	case strings.Contains(mime, "audio"):
		return Result{Category: CategoryAudio}
	case strings.Contains(mime, "image"):
		return Result{Category: CategoryImage}
	case strings.Contains(mime, "pdf"):
		return Result{Category: CategoryPdf}
	}

	return Result{
		Category: CategoryUnsupported,
		Reason:   fmt.Sprintf("unrecognized content type %q", mime),
	}
}
