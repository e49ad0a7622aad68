package models

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// AnswerKind tags the value held by an Answer
type AnswerKind string

const (
	AnswerUnanswered AnswerKind = "unanswered"
	AnswerText       AnswerKind = "text"
	AnswerNumber     AnswerKind = "number"
	// AnswerMalformed is numeric input that did not parse. It is kept so the
	// question is recorded as attempted, but it never matches.
	AnswerMalformed AnswerKind = "malformed"
)

const (
	NotAnswered   = "Not answered"
	malformedForm = "NaN"
)

// Answer is a user's answer to one question
type Answer struct {
	Kind   AnswerKind
	Text   string
	Number int
}

func Unanswered() Answer {
	return Answer{Kind: AnswerUnanswered}
}

func TextAnswer(s string) Answer {
	return Answer{Kind: AnswerText, Text: s}
}

func NumberAnswer(n int) Answer {
	return Answer{Kind: AnswerNumber, Number: n}
}

func MalformedAnswer(raw string) Answer {
	return Answer{Kind: AnswerMalformed, Text: raw}
}

// ParseNumberAnswer turns raw numeric input into an Answer. Empty input is
// Unanswered, anything strconv.Atoi rejects is Malformed.
func ParseNumberAnswer(raw string) Answer {
	if raw == "" {
		return Unanswered()
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return MalformedAnswer(raw)
	}
	return NumberAnswer(n)
}

// IsEmpty reports whether the answer counts as "nothing entered".
// Zero is a valid number.
func (a Answer) IsEmpty() bool {
	switch a.Kind {
	case AnswerText:
		return a.Text == ""
	case AnswerNumber, AnswerMalformed:
		return false
	default:
		return true
	}
}

// String is the canonical form compared against a question's correct answer
func (a Answer) String() string {
	switch a.Kind {
	case AnswerText:
		return a.Text
	case AnswerNumber:
		return strconv.Itoa(a.Number)
	case AnswerMalformed:
		return malformedForm
	default:
		return ""
	}
}

// Display renders the answer for a scorecard or history row
func (a Answer) Display() string {
	if a.IsEmpty() {
		return NotAnswered
	}
	return a.String()
}

// Matches applies the exact-match policy: canonical strings must be equal,
// with no trimming, case folding or numeric tolerance.
func (a Answer) Matches(correct string) bool {
	if a.IsEmpty() || a.Kind == AnswerMalformed {
		return false
	}
	return a.String() == correct
}

// MarshalJSON writes text answers as strings, numbers as numbers and
// unanswered as null.
func (a Answer) MarshalJSON() ([]byte, error) {
	switch a.Kind {
	case AnswerText, AnswerMalformed:
		return json.Marshal(a.Text)
	case AnswerNumber:
		return json.Marshal(a.Number)
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON accepts a string, an integral number or null
func (a *Answer) UnmarshalJSON(data []byte) error {
	var v interface{}
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch val := v.(type) {
	case nil:
		*a = Unanswered()
	case string:
		*a = TextAnswer(val)
	case float64:
		if val != float64(int(val)) {
			*a = MalformedAnswer(strconv.FormatFloat(val, 'f', -1, 64))
			return nil
		}
		*a = NumberAnswer(int(val))
	default:
		return fmt.Errorf("unsupported answer value: %s", string(data))
	}
	return nil
}
