package metering

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// SettlementFailed is the sentinel balance returned whenever a usage report
// cannot be completed. It is never rolled back or retried.
const SettlementFailed = -1

// Logger is the slice of the application logger the client uses.
type Logger interface {
	Info(module, message string, details map[string]interface{})
	Warn(module, message string, details map[string]interface{})
}

// Client talks to the external token-ledger backend. It owns no state: the
// ledger is the single source of truth for balances.
type Client struct {
	CheckURL  string
	ReportURL string
	// FailOpen admits requests when the ledger is unreachable or answers
	// malformed. Deliberate availability-over-strictness tradeoff; flip to
	// false for fail-closed admission.
	FailOpen bool
	HTTP     *http.Client
	Logger   Logger
}

func NewClient(checkURL, reportURL string, failOpen bool, log Logger) *Client {
	return &Client{
		CheckURL:  checkURL,
		ReportURL: reportURL,
		FailOpen:  failOpen,
		HTTP: &http.Client{
			Timeout: 10 * time.Second,
		},
		Logger: log,
	}
}

type checkRequest struct {
	UserID string `json:"userId"`
}

type checkResponse struct {
	Data struct {
		UserToken *float64 `json:"userToken"`
		HasToken  *bool    `json:"has_token"`
	} `json:"data"`
}

// CheckTokens reports whether the user has remaining allowance. Only an
// explicit, well-formed "no balance" answer denies; everything else resolves
// to the configured fail-open policy.
func (c *Client) CheckTokens(ctx context.Context, userID string) bool {
	if c.CheckURL == "" || userID == "" {
		c.Logger.Warn("metering", "skipping token check: missing URL or user id", nil)
		return c.FailOpen
	}

	body, err := c.post(ctx, c.CheckURL, checkRequest{UserID: userID})
	if err != nil {
		c.Logger.Warn("metering", "token check unreachable", map[string]interface{}{"error": err.Error()})
		return c.FailOpen
	}

	var parsed checkResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		c.Logger.Warn("metering", "token check returned malformed body", map[string]interface{}{"error": err.Error()})
		return c.FailOpen
	}

	if parsed.Data.UserToken != nil {
		return *parsed.Data.UserToken > 0
	}
	if parsed.Data.HasToken != nil {
		return *parsed.Data.HasToken
	}

	c.Logger.Warn("metering", "token check returned unexpected format, denying", nil)
	return false
}

type reportRequest struct {
	UserID string `json:"userId"`
	Amount int    `json:"amount"`
}

type reportResponse struct {
	Success        bool   `json:"success"`
	RemainingToken *int   `json:"remaining_token"`
	Message        string `json:"message"`
}

// ReportUsage deducts amount from the user's allowance and returns the new
// balance, or SettlementFailed on any failure.
func (c *Client) ReportUsage(ctx context.Context, userID string, amount int) int {
	if c.ReportURL == "" || userID == "" || amount <= 0 {
		c.Logger.Warn("metering", "skipping token report: missing URL, user id, or invalid amount", nil)
		return SettlementFailed
	}

	body, err := c.post(ctx, c.ReportURL, reportRequest{UserID: userID, Amount: amount})
	if err != nil {
		c.Logger.Warn("metering", "token report unreachable", map[string]interface{}{"error": err.Error()})
		return SettlementFailed
	}

	var parsed reportResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		c.Logger.Warn("metering", "token report returned malformed body", map[string]interface{}{"error": err.Error()})
		return SettlementFailed
	}

	if parsed.Success && parsed.RemainingToken != nil {
		return *parsed.RemainingToken
	}

	if strings.Contains(strings.ToLower(parsed.Message), "don't have enough token") {
		c.Logger.Info("metering", "token deduction refused: insufficient balance", map[string]interface{}{"user": userID})
		return SettlementFailed
	}

	c.Logger.Warn("metering", "token deduction failed: unexpected response", map[string]interface{}{"message": parsed.Message})
	return SettlementFailed
}

func (c *Client) post(ctx context.Context, url string, payload interface{}) ([]byte, error) {
	payloadJson, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(payloadJson))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status %d, body: %s", resp.StatusCode, string(body))
	}
	return body, nil
}
