package vision

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDescriberAgainst(server *httptest.Server) *GeminiDescriber {
	d := NewGeminiDescriber("test-key", "test-model")
	d.Client = server.Client()
	return d
}

// rewriteHost pins the describer's fixed endpoint onto the test server.
func rewriteHost(server *httptest.Server) http.RoundTripper {
	return roundTripFunc(func(req *http.Request) (*http.Response, error) {
		req.URL.Scheme = "http"
		req.URL.Host = server.Listener.Addr().String()
		return http.DefaultTransport.RoundTrip(req)
	})
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) { return f(req) }

func respond(t *testing.T, w http.ResponseWriter, body interface{}) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	require.NoError(t, json.NewEncoder(w).Encode(body))
}

func TestDescribeConcatenatesAllParts(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respond(t, w, GeminiResponse{
			Candidates: []*GeminiCandidate{{
				Content: &GeminiContent{Parts: []*GeminiParts{
					{Text: "A chest radiograph "},
					{Text: "with clear lung fields "},
					{Text: "and a normal cardiac silhouette."},
				}},
				FinishReason: "STOP",
			}},
		})
	}))
	defer server.Close()

	d := newDescriberAgainst(server)
	d.Client.Transport = rewriteHost(server)

	got, err := d.Describe(context.Background(), []byte("image bytes"), "image/png")

	require.NoError(t, err)
	assert.Equal(t, "A chest radiograph with clear lung fields and a normal cardiac silhouette.", got)
}

func TestDescribeWithheldSignals(t *testing.T) {
	cases := []struct {
		name string
		body GeminiResponse
	}{
		{"prompt blocked", GeminiResponse{PromptFeedback: &GeminiPromptFeedback{BlockReason: "SAFETY"}}},
		{"no candidates", GeminiResponse{}},
		{"safety finish", GeminiResponse{Candidates: []*GeminiCandidate{{
			Content:      &GeminiContent{Parts: []*GeminiParts{{Text: "partial"}}},
			FinishReason: "SAFETY",
		}}}},
		{"empty content", GeminiResponse{Candidates: []*GeminiCandidate{{FinishReason: "STOP"}}}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				respond(t, w, tc.body)
			}))
			defer server.Close()

			d := newDescriberAgainst(server)
			d.Client.Transport = rewriteHost(server)

			_, err := d.Describe(context.Background(), []byte("image bytes"), "image/png")
			assert.ErrorIs(t, err, ErrWithheld)
		})
	}
}
