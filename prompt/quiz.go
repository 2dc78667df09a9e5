package prompt

import (
	"bytes"
	"fmt"
	"text/template"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/inlove0810-svg/DuAnTaoDeKiemTraTieuHoc/gemini"
)

const quizSystemInstruction = `Bạn là trợ lý tạo đề kiểm tra phù hợp với lứa tuổi cho học sinh tiểu học Việt Nam.
Yêu cầu:
- Chỉ trả về văn bản thuần (plain text), không dùng Markdown.
- Không kèm đáp án, không kèm lời giải.
- Với câu hỏi trắc nghiệm, mỗi câu phải có đúng bốn lựa chọn được đánh dấu A., B., C., D.
- Nội dung và từ ngữ phải phù hợp với trình độ của học sinh.`

var quizTemplate = template.Must(template.New("quiz").Parse(
	`Hãy tạo một đề kiểm tra môn {{.Subject}} dành cho học sinh lớp {{.Grade}}, chủ đề "{{.Topic}}". ` +
		`Đề gồm {{.NumQuestions}} câu hỏi, dạng câu hỏi: {{.QuestionType}}.`))

// Quiz assembles a quiz request from structured fields. numQuestions and
// questionType are interpolated as given.
type Quiz struct {
	GenerationConfig gemini.GenerationConfig
}

func NewQuiz() *Quiz {
	return &Quiz{
		GenerationConfig: gemini.GenerationConfig{
			Temperature:     0.7,
			TopK:            40,
			TopP:            0.95,
			MaxOutputTokens: 4096,
		},
	}
}

func (s *Quiz) Name() string { return "quiz" }

func (s *Quiz) Validate(in *Input) error {
	return validation.ValidateStruct(in,
		validation.Field(&in.Subject, validation.Required),
		validation.Field(&in.Grade, validation.Required),
		validation.Field(&in.Topic, validation.Required),
	)
}

func (s *Quiz) Build(in *Input) (*gemini.GenerateContentRequest, error) {
	text, err := RenderQuiz(in)
	if err != nil {
		return nil, err
	}
	gc := s.GenerationConfig
	return &gemini.GenerateContentRequest{
		Contents: []*gemini.Content{gemini.UserText(text)},
		SystemInstruction: &gemini.Content{
			Parts: []*gemini.Part{{Text: quizSystemInstruction}},
		},
		SafetySettings:   gemini.DefaultSafetySettings(),
		GenerationConfig: &gc,
	}, nil
}

// RenderQuiz renders the user prompt of a quiz request.
func RenderQuiz(in *Input) (string, error) {
	out := bytes.NewBuffer(nil)
	if err := quizTemplate.Execute(out, in); err != nil {
		return "", fmt.Errorf("failed to render quiz prompt: %w", err)
	}
	return out.String(), nil
}
