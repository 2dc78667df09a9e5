package generate

import (
	"errors"
	"io"
	"net/http"
	"unicode/utf8"

	"github.com/go-chi/render"

	"github.com/inlove0810-svg/DuAnTaoDeKiemTraTieuHoc/config"
	"github.com/inlove0810-svg/DuAnTaoDeKiemTraTieuHoc/gemini"
	"github.com/inlove0810-svg/DuAnTaoDeKiemTraTieuHoc/prompt"
	"github.com/inlove0810-svg/DuAnTaoDeKiemTraTieuHoc/util"
)

type Response struct {
	Text string `json:"text"`
}

// Handler serves one generation endpoint. It keeps no state between
// requests besides the read-only configuration.
type Handler struct {
	variant Variant
	cfg     *config.Config
	backend gemini.Backend
	cfgErr  error
}

func New(variant Variant, cfg *config.Config, backend gemini.Backend) *Handler {
	return &Handler{
		variant: variant,
		cfg:     cfg,
		backend: backend,
	}
}

// Misconfigured returns a Handler that fails every generation request with
// 500 because the configuration could not be loaded. Preflight and method
// checks still behave as usual.
func Misconfigured(variant Variant, err error) *Handler {
	return &Handler{
		variant: variant,
		cfg:     &config.Config{},
		cfgErr:  err,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.variant.CORS {
		setCORSHeaders(w.Header())
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
	}

	text, herr := h.generate(r)
	if herr != nil {
		logger := config.WithContext(r.Context()).WithField("strategy", h.variant.Strategy.Name())
		if herr.Status >= http.StatusInternalServerError {
			logger.WithError(herr).Error("generate failed")
		} else {
			logger.Debugf("generate rejected: %s", herr)
		}
		if herr.Kind == KindMethodNotAllowed {
			w.Header().Set("Allow", h.allowedMethods())
		}
		util.Abort(w, r, herr.Status, herr.Message)
		return
	}
	render.JSON(w, r, &Response{Text: text})
}

func (h *Handler) generate(r *http.Request) (string, *Error) {
	if r.Method != http.MethodPost {
		return "", methodNotAllowed()
	}
	if h.cfgErr != nil {
		return "", invalidConfiguration(h.cfgErr)
	}
	apiKey := h.cfg.APIKey
	if apiKey == "" {
		return "", missingConfiguration()
	}

	in := &prompt.Input{}
	if err := render.DecodeJSON(r.Body, in); err != nil && !errors.Is(err, io.EOF) {
		return "", invalidInput("Nội dung yêu cầu không phải JSON hợp lệ.", err)
	}
	if err := h.variant.Strategy.Validate(in); err != nil {
		return "", invalidInput(err.Error(), nil)
	}
	req, err := h.variant.Strategy.Build(in)
	if err != nil {
		return "", unexpected(err)
	}

	text, err := h.backend.GenerateText(r.Context(), gemini.GenerateTextConfig{
		APIKey:    apiKey,
		ModelName: h.cfg.Model,
		Request:   req,
	})
	if err != nil {
		return "", h.classify(r, err)
	}
	return text, nil
}

func (h *Handler) classify(r *http.Request, err error) *Error {
	var apiErr *gemini.APIError
	switch {
	case errors.As(err, &apiErr):
		config.WithContext(r.Context()).Errorf("gemini api returned %d: %s", apiErr.StatusCode, apiErr.Body)
		status := http.StatusInternalServerError
		if h.variant.RelayUpstreamStatus && apiErr.StatusCode >= 400 && apiErr.StatusCode <= 599 {
			status = apiErr.StatusCode
		}
		return upstream(status, truncate(apiErr.Body, h.variant.MaxErrorDetail))
	case errors.Is(err, gemini.ErrNoContent):
		return extraction(err)
	default:
		return unexpected(err)
	}
}

func (h *Handler) allowedMethods() string {
	if h.variant.CORS {
		return "POST, OPTIONS"
	}
	return http.MethodPost
}

func setCORSHeaders(header http.Header) {
	header.Set("Access-Control-Allow-Origin", "*")
	header.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
	header.Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
}

// truncate cuts s to at most max bytes without splitting a UTF-8 sequence.
func truncate(s string, max int) string {
	if max <= 0 || len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
