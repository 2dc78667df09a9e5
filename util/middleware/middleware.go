package middleware

import (
	"fmt"
	"net/http"
	"runtime"

	m "github.com/go-chi/chi/v5/middleware"
	log "github.com/sirupsen/logrus"

	"github.com/inlove0810-svg/DuAnTaoDeKiemTraTieuHoc/config"
	"github.com/inlove0810-svg/DuAnTaoDeKiemTraTieuHoc/util"
)

func Logger(next http.Handler) http.Handler {
	return m.RequestLogger(
		&m.DefaultLogFormatter{
			Logger:  log.StandardLogger(),
			NoColor: runtime.GOOS == "windows",
		})(next)
}

// Recover answers a panic with a JSON 500.
func Recover(next http.Handler) http.Handler {
	fn := func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				if err == http.ErrAbortHandler {
					panic(err)
				}
				config.WithContext(r.Context()).Errorf("recovered from panic: %v", err)
				if config.GetIsDebug() {
					m.PrintPrettyStack(err)
				}
				util.Abort(w, r, http.StatusInternalServerError, fmt.Sprintf("Lỗi máy chủ nội bộ: %v", err))
			}
		}()
		next.ServeHTTP(w, r)
	}
	return http.HandlerFunc(fn)
}
