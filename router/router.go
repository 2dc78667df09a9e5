package router

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	log "github.com/sirupsen/logrus"

	"github.com/inlove0810-svg/DuAnTaoDeKiemTraTieuHoc/config"
	"github.com/inlove0810-svg/DuAnTaoDeKiemTraTieuHoc/gemini"
	"github.com/inlove0810-svg/DuAnTaoDeKiemTraTieuHoc/generate"
	"github.com/inlove0810-svg/DuAnTaoDeKiemTraTieuHoc/util/httpclient"
	"github.com/inlove0810-svg/DuAnTaoDeKiemTraTieuHoc/util/middleware"
)

const (
	GeneratePath     = "/api/generate"
	GenerateQuizPath = "/api/generate-quiz"
)

// New mounts the generation endpoints. The handlers check the method
// themselves, so they are registered for every method.
func New(cfg *config.Config, backend gemini.Backend) *chi.Mux {
	return mount(
		generate.New(generate.FreeForm(), cfg, backend),
		generate.New(generate.Quiz(), cfg, backend),
	)
}

// Misconfigured mounts handlers that answer every generation request with
// a 500 caused by err.
func Misconfigured(err error) *chi.Mux {
	return mount(
		generate.Misconfigured(generate.FreeForm(), err),
		generate.Misconfigured(generate.Quiz(), err),
	)
}

func mount(freeForm, quiz http.Handler) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recover)

	r.Handle(GeneratePath, freeForm)
	r.Handle(GenerateQuizPath, quiz)
	return r
}

// NewBackend picks the upstream backend named by cfg.Backend.
func NewBackend(cfg *config.Config) (gemini.Backend, error) {
	switch cfg.Backend {
	case config.BackendREST, "":
		client, err := httpclient.CustomPingInterval(cfg.PingInterval)
		if err != nil {
			return nil, err
		}
		return gemini.NewRESTClient(cfg.BaseURL, cfg.APIVersion, client), nil
	case config.BackendSDK:
		return gemini.NewSDKClient(), nil
	}
	return nil, fmt.Errorf("unknown backend %q", cfg.Backend)
}

// FromConfig builds the router for an entrypoint from the process-wide
// configuration. A configuration that failed to load, or a backend that
// cannot be built, is reported on each generation request.
func FromConfig() *chi.Mux {
	cfg := config.ReadConfig()
	err := config.Err()
	var backend gemini.Backend
	if err == nil {
		backend, err = NewBackend(cfg)
	}
	if err != nil {
		log.Errorf("invalid configuration, generation requests will fail: %s", err)
		return Misconfigured(err)
	}
	log.Infof("using %s backend, model %s", cfg.Backend, cfg.Model)
	return New(cfg, backend)
}
