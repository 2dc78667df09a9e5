package generate

import (
	"github.com/inlove0810-svg/DuAnTaoDeKiemTraTieuHoc/prompt"
)

// Variant selects how a Handler builds prompts and reports failures.
type Variant struct {
	Strategy prompt.Strategy
	// CORS adds the CORS headers to every response and answers preflight
	// requests.
	CORS bool
	// RelayUpstreamStatus answers upstream failures with the upstream status
	// code instead of 500.
	RelayUpstreamStatus bool
	// MaxErrorDetail truncates the upstream error body in responses; 0
	// keeps it whole.
	MaxErrorDetail int
}

// FreeForm forwards the caller's prompt as is.
func FreeForm() Variant {
	return Variant{
		Strategy:            prompt.NewVerbatim(),
		CORS:                true,
		RelayUpstreamStatus: true,
	}
}

// Quiz builds an elementary school quiz prompt from structured fields.
func Quiz() Variant {
	return Variant{
		Strategy:       prompt.NewQuiz(),
		MaxErrorDetail: 1024,
	}
}
