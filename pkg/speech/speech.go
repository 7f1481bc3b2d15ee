package speech

import (
	"context"
	"errors"
	"strings"
)

// ErrKind classifies transcription failures so callers can pick the right
// user-facing marker without parsing provider messages themselves.
type ErrKind int

const (
	KindOther ErrKind = iota
	KindUnsupportedFormat
	KindTooLarge
	KindTimeout
)

// Error is the typed failure returned by transcription clients.
type Error struct {
	Kind    ErrKind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// KindOf extracts the failure kind from any error. Typed errors win; the
// string-matching fallback stays for providers whose error contract is
// untyped.
func KindOf(err error) ErrKind {
	if err == nil {
		return KindOther
	}

	var typed *Error
	if errors.As(err, &typed) {
		return typed.Kind
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return KindTimeout
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "timeout") || strings.Contains(msg, "timed out") || strings.Contains(msg, "deadline"):
		return KindTimeout
	case strings.Contains(msg, "format") || strings.Contains(msg, "unsupported"):
		return KindUnsupportedFormat
	case strings.Contains(msg, "too large") || strings.Contains(msg, "maximum content size") || strings.Contains(msg, "413"):
		return KindTooLarge
	}
	return KindOther
}

// Transcriber converts raw audio bytes into text. The filename carries the
// container hint some backends require.
type Transcriber interface {
	Transcribe(ctx context.Context, filename string, data []byte) (string, error)
}
