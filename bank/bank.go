// Package bank holds the static, ordered question bank a quiz runs over.
package bank

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/adamspd/timedquiz/models"
	"github.com/adamspd/timedquiz/utils"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/cast"
	"golang.org/x/crypto/blake2b"
)

var ErrInvalidBank = errors.New("invalid question bank")

var validate = validator.New()

// Bank is an immutable, ordered list of questions. Order is presentation and
// navigation order.
type Bank struct {
	title        string
	instructions []string
	questions    []models.Question
	fingerprint  string
}

// File is the on-disk JSON layout of a question bank
type File struct {
	Title        string         `json:"title"`
	Instructions []string       `json:"instructions"`
	Questions    []FileQuestion `json:"questions"`
}

// FileQuestion allows correctAnswer to be either a string or a number
type FileQuestion struct {
	ID            int         `json:"id"`
	Type          string      `json:"type"`
	Question      string      `json:"question"`
	Options       []string    `json:"options,omitempty"`
	CorrectAnswer interface{} `json:"correctAnswer"`
}

// New validates the questions and builds a bank
func New(title string, instructions []string, questions []models.Question) (*Bank, error) {
	if err := Validate(questions); err != nil {
		return nil, err
	}

	qs := make([]models.Question, len(questions))
	for i, q := range questions {
		qs[i] = copyQuestion(q)
	}

	fp, err := fingerprint(qs)
	if err != nil {
		return nil, err
	}

	return &Bank{
		title:        title,
		instructions: append([]string(nil), instructions...),
		questions:    qs,
		fingerprint:  fp,
	}, nil
}

// Load reads a bank from a JSON file
func Load(path string) (*Bank, error) {
	utils.LogBank("Loading question bank from %s", path)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read question bank: %w", err)
	}

	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBank, err)
	}

	b, err := FromFile(f)
	if err != nil {
		return nil, err
	}

	utils.LogBank("Loaded %d questions (fingerprint %s)", b.Len(), b.Fingerprint())
	return b, nil
}

// FromFile converts the JSON layout into a validated bank
func FromFile(f File) (*Bank, error) {
	questions := make([]models.Question, 0, len(f.Questions))
	for _, fq := range f.Questions {
		correct, err := cast.ToStringE(fq.CorrectAnswer)
		if err != nil {
			return nil, fmt.Errorf("%w: question %d: correct answer: %v", ErrInvalidBank, fq.ID, err)
		}
		questions = append(questions, models.Question{
			ID:            fq.ID,
			Kind:          models.QuestionKind(fq.Type),
			Prompt:        fq.Question,
			Options:       fq.Options,
			CorrectAnswer: correct,
		})
	}
	return New(f.Title, f.Instructions, questions)
}

// Validate checks field rules on every question plus the rules that span the
// whole bank.
func Validate(questions []models.Question) error {
	if len(questions) == 0 {
		return fmt.Errorf("%w: no questions", ErrInvalidBank)
	}

	seen := make(map[int]bool, len(questions))
	for i, q := range questions {
		if err := validate.Struct(q); err != nil {
			return fmt.Errorf("%w: question at position %d: %v", ErrInvalidBank, i, err)
		}
		if seen[q.ID] {
			return fmt.Errorf("%w: duplicate question id %d", ErrInvalidBank, q.ID)
		}
		seen[q.ID] = true

		switch q.Kind {
		case models.KindMultipleChoice:
			if len(q.Options) < 2 {
				return fmt.Errorf("%w: question %d needs at least two options", ErrInvalidBank, q.ID)
			}
			idx := models.OptionIndex(q.CorrectAnswer)
			if idx < 0 || idx >= len(q.Options) {
				return fmt.Errorf("%w: question %d: correct answer %q names no option", ErrInvalidBank, q.ID, q.CorrectAnswer)
			}
		case models.KindInteger:
			if len(q.Options) > 0 {
				return fmt.Errorf("%w: integer question %d must not have options", ErrInvalidBank, q.ID)
			}
			if _, err := strconv.Atoi(q.CorrectAnswer); err != nil {
				return fmt.Errorf("%w: question %d: correct answer %q is not an integer", ErrInvalidBank, q.ID, q.CorrectAnswer)
			}
		}
	}
	return nil
}

func (b *Bank) Title() string {
	return b.title
}

func (b *Bank) Instructions() []string {
	return append([]string(nil), b.instructions...)
}

func (b *Bank) Len() int {
	return len(b.questions)
}

// Question returns a copy of the question at index i
func (b *Bank) Question(i int) (models.Question, bool) {
	if i < 0 || i >= len(b.questions) {
		return models.Question{}, false
	}
	return copyQuestion(b.questions[i]), true
}

// Questions returns a copy of every question in bank order
func (b *Bank) Questions() []models.Question {
	out := make([]models.Question, len(b.questions))
	for i, q := range b.questions {
		out[i] = copyQuestion(q)
	}
	return out
}

// Fingerprint identifies the bank content an attempt was scored against
func (b *Bank) Fingerprint() string {
	return b.fingerprint
}

func fingerprint(questions []models.Question) (string, error) {
	data, err := json.Marshal(questions)
	if err != nil {
		return "", fmt.Errorf("failed to encode question bank: %w", err)
	}
	sum := blake2b.Sum256(data)
	return hex.EncodeToString(sum[:])[:16], nil
}

func copyQuestion(q models.Question) models.Question {
	if q.Options != nil {
		q.Options = append([]string(nil), q.Options...)
	}
	return q
}
