package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRequest(text string) *GenerateContentRequest {
	return &GenerateContentRequest{
		Contents:       []*Content{UserText(text)},
		SafetySettings: DefaultSafetySettings(),
		GenerationConfig: &GenerationConfig{
			Temperature:     0.8,
			TopK:            40,
			TopP:            0.9,
			MaxOutputTokens: 2048,
		},
	}
}

func TestEndpoint(t *testing.T) {
	c := NewRESTClient("https://example.com/", "", nil)
	assert.Equal(t,
		"https://example.com/v1beta/models/gemini-2.5-flash-preview-09-2025:generateContent?key=a%2Bb",
		c.Endpoint("", "a+b"))
	assert.Equal(t,
		"https://example.com/v1/models/gemini-pro:generateContent?key=k",
		NewRESTClient("https://example.com", "v1", nil).Endpoint("gemini-pro", "k"))
}

func TestRESTClientSendsPayload(t *testing.T) {
	var (
		gotPath  string
		gotKey   string
		gotType  string
		gotBody  map[string]interface{}
		gotCalls int
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotCalls++
		gotPath = r.URL.Path
		gotKey = r.URL.Query().Get("key")
		gotType = r.Header.Get("Content-Type")
		data, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(data, &gotBody)
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"candidates":[{"content":{"parts":[{"text":"Hello quiz"}]}}]}`)
	}))
	defer srv.Close()

	c := NewRESTClient(srv.URL, "", srv.Client())
	text, err := c.GenerateText(context.Background(), GenerateTextConfig{
		APIKey:    "test-key",
		ModelName: "gemini-test",
		Request:   testRequest("hi"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Hello quiz", text)
	assert.Equal(t, 1, gotCalls)
	assert.Equal(t, "/v1beta/models/gemini-test:generateContent", gotPath)
	assert.Equal(t, "test-key", gotKey)
	assert.Equal(t, "application/json", gotType)

	contents := gotBody["contents"].([]interface{})
	require.Len(t, contents, 1)
	parts := contents[0].(map[string]interface{})["parts"].([]interface{})
	assert.Equal(t, "hi", parts[0].(map[string]interface{})["text"])
	assert.Len(t, gotBody["safetySettings"], 4)
	assert.NotContains(t, gotBody, "systemInstruction")
	gc := gotBody["generationConfig"].(map[string]interface{})
	assert.EqualValues(t, 40, gc["topK"])
	assert.EqualValues(t, 2048, gc["maxOutputTokens"])
	assert.InDelta(t, 0.8, gc["temperature"], 1e-6)
	assert.InDelta(t, 0.9, gc["topP"], 1e-6)
}

func TestRESTClientUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		io.WriteString(w, `{"error":{"message":"quota exceeded"}}`)
	}))
	defer srv.Close()

	_, err := NewRESTClient(srv.URL, "", srv.Client()).GenerateText(context.Background(), GenerateTextConfig{
		APIKey:  "k",
		Request: testRequest("hi"),
	})
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusTooManyRequests, apiErr.StatusCode)
	assert.Contains(t, apiErr.Body, "quota exceeded")
}

func TestRESTClientBadResponses(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		noContent bool
	}{
		{"empty candidates", `{"candidates":[]}`, true},
		{"no candidates field", `{}`, true},
		{"blocked prompt", `{"promptFeedback":{"blockReason":"SAFETY"}}`, true},
		{"candidate without content", `{"candidates":[{"finishReason":"SAFETY"}]}`, true},
		{"malformed json", `{"candidates":`, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				io.WriteString(w, tt.body)
			}))
			defer srv.Close()

			_, err := NewRESTClient(srv.URL, "", srv.Client()).GenerateText(context.Background(), GenerateTextConfig{
				APIKey:  "k",
				Request: testRequest("hi"),
			})
			require.Error(t, err)
			assert.Equal(t, tt.noContent, errors.Is(err, ErrNoContent))
		})
	}
}

func TestRESTClientRedactsKeyOnTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	addr := srv.URL
	srv.Close()

	_, err := NewRESTClient(addr, "", nil).GenerateText(context.Background(), GenerateTextConfig{
		APIKey:  "super-secret-key",
		Request: testRequest("hi"),
	})
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "super-secret-key")
}
