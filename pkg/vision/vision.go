package vision

import (
	"context"
	"errors"
)

// ErrWithheld reports that the provider refused to describe the image
// (safety or content-policy block). Callers substitute a fixed sentinel
// rather than propagating it.
var ErrWithheld = errors.New("vision response withheld by provider")

// DescribePrompt is the fixed instruction sent with every image. It asks for
// objective content only, never a diagnosis.
const DescribePrompt = "Extract all text from this image. If it is a medical document like a lab result, format it clearly. If it shows physical findings such as a wound, describe them objectively and factually. Do not speculate or offer a diagnosis."

// Describer turns an image into a free-text description.
type Describer interface {
	Describe(ctx context.Context, data []byte, mimeType string) (string, error)
}
