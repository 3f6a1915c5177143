package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// OptionInput is the caller-supplied shape of an option. Nil fields take defaults during normalization.
type OptionInput struct {
	Text      string         `json:"text"`
	Order     *int           `json:"order,omitempty"`
	IsCorrect *bool          `json:"is_correct,omitempty"`
	ImageURL  *string        `json:"image_url,omitempty"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}

// UnmarshalJSON accepts either a bare string ("4") or an option object ({"text":"4","order":1}).
func (o *OptionInput) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var text string
		if err := json.Unmarshal(trimmed, &text); err != nil {
			return err
		}
		*o = OptionInput{Text: text}
		return nil
	}
	type plain OptionInput
	var p plain
	if err := json.Unmarshal(trimmed, &p); err != nil {
		return fmt.Errorf("option must be a string or an object: %w", err)
	}
	*o = OptionInput(p)
	return nil
}

// TextOptions builds inputs for the plain-list variant.
func TextOptions(texts ...string) []OptionInput {
	inputs := make([]OptionInput, len(texts))
	for i, t := range texts {
		inputs[i] = OptionInput{Text: t}
	}
	return inputs
}

// NormalizeOptions maps inputs to canonical options. The inputs are not modified;
// metadata maps are copied.
func NormalizeOptions(inputs []OptionInput, correctAnswer string, now time.Time) []Option {
	options := make([]Option, len(inputs))
	for i, in := range inputs {
		order := i
		if in.Order != nil {
			order = *in.Order
		}
		isCorrect := in.Text == correctAnswer
		if in.IsCorrect != nil {
			isCorrect = *in.IsCorrect
		}
		options[i] = Option{
			ID:        NewID(),
			Text:      in.Text,
			Order:     order,
			IsCorrect: isCorrect,
			ImageURL:  cloneString(in.ImageURL),
			Metadata:  copyMetadata(in.Metadata),
			CreatedAt: now,
			UpdatedAt: now,
		}
	}
	return options
}

// ValidateQuestion fails unless correctAnswer is exactly the text of one of the options.
func ValidateQuestion(options []Option, correctAnswer string) error {
	for _, opt := range options {
		if opt.Text == correctAnswer {
			return nil
		}
	}
	return ErrCorrectAnswerNotInOptions
}

// WithCorrectAnswer returns a copy of options whose is-correct flags follow the new answer.
func WithCorrectAnswer(options []Option, correctAnswer string, now time.Time) []Option {
	out := make([]Option, len(options))
	for i, opt := range options {
		flag := opt.Text == correctAnswer
		if opt.IsCorrect != flag {
			opt.IsCorrect = flag
			opt.UpdatedAt = Touch(opt.CreatedAt, now)
		}
		opt.Metadata = copyMetadata(opt.Metadata)
		out[i] = opt
	}
	return out
}

func copyMetadata(src map[string]any) map[string]any {
	dst := make(map[string]any, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
