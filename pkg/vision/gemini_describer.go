package vision

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

type GeminiParts struct {
	Text       string            `json:"text,omitempty"`
	InlineData *GeminiInlineData `json:"inline_data,omitempty"`
}

type GeminiInlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type GeminiContent struct {
	Parts []*GeminiParts `json:"parts"`
	Role  string         `json:"role,omitempty"`
}

type GeminiRequest struct {
	Contents []*GeminiContent `json:"contents"`
}

type GeminiCandidate struct {
	Content      *GeminiContent `json:"content"`
	FinishReason string         `json:"finishReason"`
}

type GeminiPromptFeedback struct {
	BlockReason string `json:"blockReason"`
}

type GeminiResponse struct {
	Candidates     []*GeminiCandidate    `json:"candidates"`
	PromptFeedback *GeminiPromptFeedback `json:"promptFeedback"`
}

// GeminiDescriber sends the image inline to the Gemini generateContent
// endpoint together with the fixed description prompt.
type GeminiDescriber struct {
	APIKey    string
	ModelName string
	Client    *http.Client
}

var _ Describer = &GeminiDescriber{}

func NewGeminiDescriber(apiKey, modelName string) *GeminiDescriber {
	return &GeminiDescriber{
		APIKey:    apiKey,
		ModelName: modelName,
		Client: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
}

func (g *GeminiDescriber) Describe(ctx context.Context, data []byte, mimeType string) (string, error) {
	payload := GeminiRequest{
		Contents: []*GeminiContent{
			{
				Parts: []*GeminiParts{
					{Text: DescribePrompt},
					{InlineData: &GeminiInlineData{
						MimeType: mimeType,
						Data:     base64.StdEncoding.EncodeToString(data),
					}},
				},
				Role: "user",
			},
		},
	}
	payloadJson, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf(
		"https://generativelanguage.googleapis.com/v1/models/%s:generateContent",
		g.ModelName,
	)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(payloadJson))
	if err != nil {
		return "", err
	}

	req.Header.Set("x-goog-api-key", g.APIKey)
	req.Header.Set("Content-Type", "application/json")

	res, err := g.Client.Do(req)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()

	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		return "", err
	}

	if res.StatusCode != http.StatusOK {
		return "", fmt.Errorf(
			"status error, got status %d. with response body %s",
			res.StatusCode,
			string(resBody),
		)
	}

	var geminiRes GeminiResponse
	if err := json.Unmarshal(resBody, &geminiRes); err != nil {
		return "", err
	}

	if geminiRes.PromptFeedback != nil && geminiRes.PromptFeedback.BlockReason != "" {
		return "", ErrWithheld
	}
	if len(geminiRes.Candidates) == 0 {
		return "", ErrWithheld
	}

	candidate := geminiRes.Candidates[0]
	if candidate.FinishReason == "SAFETY" || candidate.FinishReason == "PROHIBITED_CONTENT" {
		return "", ErrWithheld
	}
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", ErrWithheld
	}

	// Long answers come back split across several parts.
	var sb strings.Builder
	for _, part := range candidate.Content.Parts {
		sb.WriteString(part.Text)
	}
	return sb.String(), nil
}
