package speech

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"
)

const transcriptionURL = "https://api.openai.com/v1/audio/transcriptions"

// OpenAITranscriber calls the OpenAI speech-to-text endpoint with a multipart
// upload and returns the verbatim transcript.
type OpenAITranscriber struct {
	APIKey    string
	ModelName string
	Client    *http.Client
}

var _ Transcriber = &OpenAITranscriber{}

func NewOpenAITranscriber(apiKey, modelName string) *OpenAITranscriber {
	return &OpenAITranscriber{
		APIKey:    apiKey,
		ModelName: modelName,
		Client: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
}

type transcriptionResponse struct {
	Text string `json:"text"`
}

type transcriptionErrorResponse struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

func (t *OpenAITranscriber) Transcribe(ctx context.Context, filename string, data []byte) (string, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return "", fmt.Errorf("create form file: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return "", fmt.Errorf("write audio payload: %w", err)
	}
	if err := writer.WriteField("model", t.ModelName); err != nil {
		return "", fmt.Errorf("write model field: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("close multipart writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", transcriptionURL, &body)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+t.APIKey)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := t.Client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", classifyHTTPFailure(resp.StatusCode, bodyBytes)
	}

	var parsed transcriptionResponse
	if err := json.Unmarshal(bodyBytes, &parsed); err != nil {
		return "", fmt.Errorf("unmarshal response: %w", err)
	}

	return parsed.Text, nil
}

// classifyHTTPFailure maps a non-200 transcription response onto a typed
// error. The status code is authoritative; the body message is the fallback.
func classifyHTTPFailure(status int, body []byte) error {
	msg := fmt.Sprintf("transcription error: status %d, body: %s", status, string(body))

	var parsed transcriptionErrorResponse
	if err := json.Unmarshal(body, &parsed); err == nil && parsed.Error.Message != "" {
		msg = parsed.Error.Message
	}

	switch {
	case status == http.StatusRequestEntityTooLarge:
		return &Error{Kind: KindTooLarge, Message: msg}
	case status == http.StatusUnsupportedMediaType:
		return &Error{Kind: KindUnsupportedFormat, Message: msg}
	case status == http.StatusGatewayTimeout || status == http.StatusRequestTimeout:
		return &Error{Kind: KindTimeout, Message: msg}
	}

	// Untyped contract: fall back to the message heuristics.
	return &Error{Kind: KindOf(fmt.Errorf("%s", msg)), Message: msg}
}
