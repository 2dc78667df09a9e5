package api

import (
	"net/http"
	"sync"

	"github.com/inlove0810-svg/DuAnTaoDeKiemTraTieuHoc/router"
)

var (
	mux     http.Handler
	muxOnce sync.Once
)

// Handler is the Vercel function entrypoint. vercel.json rewrites every
// /api/* path here.
func Handler(w http.ResponseWriter, r *http.Request) {
	muxOnce.Do(func() {
		mux = router.FromConfig()
	})
	mux.ServeHTTP(w, r)
}
