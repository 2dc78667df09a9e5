package generate

import (
	"fmt"
	"net/http"
)

type Kind int

const (
	KindMethodNotAllowed Kind = iota + 1
	KindMissingConfiguration
	KindInvalidInput
	KindUpstream
	KindExtraction
	KindUnexpected
)

func (k Kind) String() string {
	switch k {
	case KindMethodNotAllowed:
		return "method_not_allowed"
	case KindMissingConfiguration:
		return "missing_configuration"
	case KindInvalidInput:
		return "invalid_input"
	case KindUpstream:
		return "upstream"
	case KindExtraction:
		return "extraction"
	case KindUnexpected:
		return "unexpected"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Error is the failed outcome of a pipeline step. Message is what the
// caller sees; Err, if any, is only logged.
type Error struct {
	Kind    Kind
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %s", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func methodNotAllowed() *Error {
	return &Error{Kind: KindMethodNotAllowed, Status: http.StatusMethodNotAllowed, Message: "Method Not Allowed"}
}

func missingConfiguration() *Error {
	return &Error{
		Kind:    KindMissingConfiguration,
		Status:  http.StatusInternalServerError,
		Message: "API key chưa được cấu hình trên máy chủ.",
	}
}

func invalidConfiguration(err error) *Error {
	return &Error{
		Kind:    KindMissingConfiguration,
		Status:  http.StatusInternalServerError,
		Message: "Cấu hình máy chủ không hợp lệ.",
		Err:     err,
	}
}

func invalidInput(msg string, err error) *Error {
	return &Error{Kind: KindInvalidInput, Status: http.StatusBadRequest, Message: msg, Err: err}
}

func upstream(status int, detail string) *Error {
	return &Error{Kind: KindUpstream, Status: status, Message: "Google API báo lỗi: " + detail}
}

func extraction(err error) *Error {
	return &Error{
		Kind:    KindExtraction,
		Status:  http.StatusInternalServerError,
		Message: "Không nhận được nội dung từ AI.",
		Err:     err,
	}
}

func unexpected(err error) *Error {
	return &Error{
		Kind:    KindUnexpected,
		Status:  http.StatusInternalServerError,
		Message: "Lỗi máy chủ nội bộ: " + err.Error(),
		Err:     err,
	}
}
