package models

import (
	"encoding/json"
	"testing"
)

func TestAnswerMatches(t *testing.T) {
	testCases := []struct {
		name     string
		answer   Answer
		correct  string
		expected bool
	}{
		{"letter match", TextAnswer("B"), "B", true},
		{"letter mismatch", TextAnswer("C"), "B", false},
		{"lower case is not folded", TextAnswer("b"), "B", false},
		{"whitespace is not trimmed", TextAnswer(" B"), "B", false},
		{"number coerced to string", NumberAnswer(40), "40", true},
		{"number mismatch", NumberAnswer(41), "40", false},
		{"zero is a real answer", NumberAnswer(0), "0", true},
		{"malformed never matches", MalformedAnswer("abc"), "NaN", false},
		{"unanswered never matches", Unanswered(), "", false},
		{"empty text never matches", TextAnswer(""), "", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.answer.Matches(tc.correct); got != tc.expected {
				t.Errorf("Matches(%q) = %t, expected %t", tc.correct, got, tc.expected)
			}
		})
	}
}

func TestParseNumberAnswer(t *testing.T) {
	if a := ParseNumberAnswer(""); a.Kind != AnswerUnanswered {
		t.Errorf("Expected empty input to be unanswered, got %s", a.Kind)
	}
	if a := ParseNumberAnswer("1776"); a.Kind != AnswerNumber || a.Number != 1776 {
		t.Errorf("Expected number 1776, got %+v", a)
	}
	a := ParseNumberAnswer("12a")
	if a.Kind != AnswerMalformed {
		t.Fatalf("Expected malformed, got %s", a.Kind)
	}
	if a.IsEmpty() {
		t.Error("Malformed input should not count as empty")
	}
	if a.String() != "NaN" {
		t.Errorf("Expected NaN form, got %q", a.String())
	}
}

func TestAnswerDisplay(t *testing.T) {
	if got := Unanswered().Display(); got != NotAnswered {
		t.Errorf("Expected %q, got %q", NotAnswered, got)
	}
	if got := NumberAnswer(3).Display(); got != "3" {
		t.Errorf("Expected 3, got %q", got)
	}
}

func TestAnswerJSON(t *testing.T) {
	var a Answer
	if err := json.Unmarshal([]byte(`40`), &a); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if a.Kind != AnswerNumber || a.Number != 40 {
		t.Errorf("Expected number 40, got %+v", a)
	}

	if err := json.Unmarshal([]byte(`"A"`), &a); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if a.Kind != AnswerText || a.Text != "A" {
		t.Errorf("Expected text A, got %+v", a)
	}

	if err := json.Unmarshal([]byte(`null`), &a); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if a.Kind != AnswerUnanswered {
		t.Errorf("Expected unanswered, got %+v", a)
	}

	if err := json.Unmarshal([]byte(`2.5`), &a); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if a.Kind != AnswerMalformed {
		t.Errorf("Expected fractional input to be malformed, got %+v", a)
	}

	if err := json.Unmarshal([]byte(`[1]`), &a); err == nil {
		t.Error("Expected error for array answer")
	}

	out, err := json.Marshal(NumberAnswer(7))
	if err != nil || string(out) != "7" {
		t.Errorf("Expected 7, got %s (%v)", out, err)
	}
	out, err = json.Marshal(Unanswered())
	if err != nil || string(out) != "null" {
		t.Errorf("Expected null, got %s (%v)", out, err)
	}
}

func TestOptionLabels(t *testing.T) {
	if OptionLabel(0) != "A" || OptionLabel(3) != "D" {
		t.Errorf("Unexpected labels %s %s", OptionLabel(0), OptionLabel(3))
	}
	if OptionIndex("C") != 2 {
		t.Errorf("Expected C to be index 2, got %d", OptionIndex("C"))
	}
	for _, bad := range []string{"", "a", "AB", "1"} {
		if OptionIndex(bad) != -1 {
			t.Errorf("Expected %q to be rejected", bad)
		}
	}
}
