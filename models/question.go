package models

// QuestionKind identifies how a question is answered
type QuestionKind string

const (
	KindMultipleChoice QuestionKind = "multiple-choice"
	KindInteger        QuestionKind = "integer"
)

// Question represents one entry of the question bank
type Question struct {
	ID            int          `json:"id" validate:"gt=0"`
	Kind          QuestionKind `json:"type" validate:"oneof=multiple-choice integer"`
	Prompt        string       `json:"question" validate:"required"`
	Options       []string     `json:"options,omitempty" validate:"omitempty,dive,required"`
	CorrectAnswer string       `json:"correctAnswer" validate:"required"`
}

// OptionLabel returns the letter shown next to option i ("A" for 0)
func OptionLabel(i int) string {
	return string(rune('A' + i))
}

// OptionIndex is the inverse of OptionLabel. It returns -1 for anything that
// is not a single upper-case letter.
func OptionIndex(label string) int {
	if len(label) != 1 || label[0] < 'A' || label[0] > 'Z' {
		return -1
	}
	return int(label[0] - 'A')
}

// QuestionResult is the per-question outcome of a finished attempt
type QuestionResult struct {
	QuestionID    int    `json:"question_id"`
	Question      string `json:"question"`
	UserAnswer    Answer `json:"user_answer"`
	CorrectAnswer string `json:"correct_answer"`
	IsCorrect     bool   `json:"is_correct"`
}
