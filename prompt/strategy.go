package prompt

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/inlove0810-svg/DuAnTaoDeKiemTraTieuHoc/gemini"
)

// Strategy turns an Input into the payload sent upstream.
type Strategy interface {
	Name() string
	// Validate reports missing or malformed fields. Its error is meant for
	// the caller.
	Validate(in *Input) error
	Build(in *Input) (*gemini.GenerateContentRequest, error)
}

// Verbatim forwards the caller's prompt unchanged.
type Verbatim struct {
	GenerationConfig gemini.GenerationConfig
}

func NewVerbatim() *Verbatim {
	return &Verbatim{
		GenerationConfig: gemini.GenerationConfig{
			Temperature:     0.8,
			TopK:            40,
			TopP:            0.9,
			MaxOutputTokens: 2048,
		},
	}
}

func (s *Verbatim) Name() string { return "verbatim" }

func (s *Verbatim) Validate(in *Input) error {
	return validation.Validate(in.Prompt, validation.Required.Error("Không nhận được prompt."))
}

func (s *Verbatim) Build(in *Input) (*gemini.GenerateContentRequest, error) {
	gc := s.GenerationConfig
	return &gemini.GenerateContentRequest{
		Contents:         []*gemini.Content{gemini.UserText(in.Prompt)},
		SafetySettings:   gemini.DefaultSafetySettings(),
		GenerationConfig: &gc,
	}, nil
}
