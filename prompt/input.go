package prompt

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Input is the decoded body of a generation request. Which fields are
// required depends on the Strategy handling it.
type Input struct {
	Prompt       string `json:"prompt"`
	Subject      Value  `json:"subject"`
	Grade        Value  `json:"grade"`
	Topic        Value  `json:"topic"`
	NumQuestions Value  `json:"numQuestions"`
	QuestionType Value  `json:"questionType"`
}

// Value accepts a JSON string or number and keeps its textual form, so that
// both 5 and "5" interpolate as 5. null decodes to the empty string.
type Value string

func (v *Value) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*v = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = Value(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("expect a string or a number, got %s", data)
	}
	*v = Value(n.String())
	return nil
}

func (v Value) String() string {
	return string(v)
}
