package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	log "github.com/sirupsen/logrus"
)

const (
	DefaultBaseURL    = "https://generativelanguage.googleapis.com"
	DefaultAPIVersion = "v1beta"
	DefaultModel      = "gemini-2.5-flash-preview-09-2025"
)

type GenerateTextConfig struct {
	APIKey    string
	ModelName string // empty for DefaultModel
	Request   *GenerateContentRequest
}

// Backend performs one generateContent call and returns the generated text.
// Failures are *APIError for non-2xx answers, ErrNoContent when nothing can
// be extracted, and plain errors otherwise.
type Backend interface {
	GenerateText(ctx context.Context, cfg GenerateTextConfig) (string, error)
}

// RESTClient talks to the generateContent endpoint over plain HTTP, passing
// the API key as the "key" query parameter.
type RESTClient struct {
	baseURL    string
	apiVersion string
	httpClient *http.Client
}

func NewRESTClient(baseURL, apiVersion string, httpClient *http.Client) *RESTClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if apiVersion == "" {
		apiVersion = DefaultAPIVersion
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &RESTClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiVersion: apiVersion,
		httpClient: httpClient,
	}
}

// Endpoint builds <base>/<version>/models/<model>:generateContent?key=<apiKey>.
func (c *RESTClient) Endpoint(model, apiKey string) string {
	if model == "" {
		model = DefaultModel
	}
	return fmt.Sprintf("%s/%s/models/%s:generateContent?key=%s",
		c.baseURL, c.apiVersion, url.PathEscape(model), url.QueryEscape(apiKey))
}

func (c *RESTClient) GenerateText(ctx context.Context, cfg GenerateTextConfig) (string, error) {
	body, err := json.Marshal(cfg.Request)
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint(cfg.ModelName, cfg.APIKey), bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", redactURL(err))
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to call gemini api: %w", redactURL(err))
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &APIError{StatusCode: resp.StatusCode, Body: string(data)}
	}

	result := &GenerateContentResponse{}
	if err := json.Unmarshal(data, result); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	text, err := ExtractText(result)
	if err != nil {
		log.Errorf("can't extract text from gemini response: %s", data)
		return "", err
	}
	return text, nil
}

// redactURL drops the request URL, which carries the API key, from
// transport errors.
func redactURL(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return fmt.Errorf("%s: %w", strings.ToLower(urlErr.Op), urlErr.Err)
	}
	return err
}
