package router

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inlove0810-svg/DuAnTaoDeKiemTraTieuHoc/config"
	"github.com/inlove0810-svg/DuAnTaoDeKiemTraTieuHoc/gemini"
)

type backendFunc func(ctx context.Context, cfg gemini.GenerateTextConfig) (string, error)

func (f backendFunc) GenerateText(ctx context.Context, cfg gemini.GenerateTextConfig) (string, error) {
	return f(ctx, cfg)
}

func post(t *testing.T, srv *httptest.Server, path, body string) (*http.Response, map[string]string) {
	resp, err := srv.Client().Post(srv.URL+path, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	out := map[string]string{}
	require.NoError(t, json.Unmarshal(data, &out))
	return resp, out
}

func TestRoutes(t *testing.T) {
	var strategies []string
	backend := backendFunc(func(ctx context.Context, cfg gemini.GenerateTextConfig) (string, error) {
		if cfg.Request.SystemInstruction != nil {
			strategies = append(strategies, "quiz")
		} else {
			strategies = append(strategies, "verbatim")
		}
		return "Hello quiz", nil
	})
	srv := httptest.NewServer(New(&config.Config{APIKey: "k"}, backend))
	defer srv.Close()

	resp, body := post(t, srv, GeneratePath, `{"prompt":"p"}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Hello quiz", body["text"])
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))

	resp, body = post(t, srv, GenerateQuizPath, `{"subject":"Toán","grade":"1","topic":"Đếm"}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Hello quiz", body["text"])

	assert.Equal(t, []string{"verbatim", "quiz"}, strategies)

	req, err := http.NewRequest(http.MethodOptions, srv.URL+GeneratePath, nil)
	require.NoError(t, err)
	preflight, err := srv.Client().Do(req)
	require.NoError(t, err)
	preflight.Body.Close()
	assert.Equal(t, http.StatusOK, preflight.StatusCode)

	get, err := srv.Client().Get(srv.URL + GenerateQuizPath)
	require.NoError(t, err)
	get.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, get.StatusCode)
}

func TestPanicIsReportedAsJSON(t *testing.T) {
	backend := backendFunc(func(ctx context.Context, cfg gemini.GenerateTextConfig) (string, error) {
		panic("backend exploded")
	})
	srv := httptest.NewServer(New(&config.Config{APIKey: "k"}, backend))
	defer srv.Close()

	resp, body := post(t, srv, GeneratePath, `{"prompt":"p"}`)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Contains(t, body["error"], "backend exploded")
}

func TestMisconfiguredRoutes(t *testing.T) {
	srv := httptest.NewServer(Misconfigured(errors.New("bad config")))
	defer srv.Close()

	for _, path := range []string{GeneratePath, GenerateQuizPath} {
		resp, body := post(t, srv, path, `{"prompt":"p","subject":"Toán","grade":"1","topic":"Đếm"}`)
		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		assert.Equal(t, "Cấu hình máy chủ không hợp lệ.", body["error"])
	}
}

func TestNewBackend(t *testing.T) {
	b, err := NewBackend(&config.Config{Backend: config.BackendREST, BaseURL: "https://example.com"})
	require.NoError(t, err)
	assert.IsType(t, &gemini.RESTClient{}, b)

	b, err = NewBackend(&config.Config{Backend: config.BackendSDK})
	require.NoError(t, err)
	assert.IsType(t, &gemini.SDKClient{}, b)

	_, err = NewBackend(&config.Config{Backend: "grpc"})
	assert.Error(t, err)
}
