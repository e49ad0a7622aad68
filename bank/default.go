package bank

import "github.com/adamspd/timedquiz/models"

// Default returns the built-in sample bank
func Default() *Bank {
	b, err := New("Sample Quiz", defaultInstructions, defaultQuestions)
	if err != nil {
		panic("bank: built-in questions are invalid: " + err.Error())
	}
	return b
}

var defaultInstructions = []string{
	"For multiple-choice questions, select the one best answer (A, B, C, or D).",
	"For integer-type questions, write your numerical answer clearly.",
	"No calculators unless specified.",
	"You have 30 seconds for each question.",
}

var defaultQuestions = []models.Question{
	{
		ID:            1,
		Kind:          models.KindMultipleChoice,
		Prompt:        "Which planet is closest to the Sun?",
		Options:       []string{"Venus", "Mercury", "Earth", "Mars"},
		CorrectAnswer: "B",
	},
	{
		ID:            2,
		Kind:          models.KindMultipleChoice,
		Prompt:        "Which data structure organizes items in a First-In, First-Out (FIFO) manner?",
		Options:       []string{"Stack", "Queue", "Tree", "Graph"},
		CorrectAnswer: "B",
	},
	{
		ID:            3,
		Kind:          models.KindMultipleChoice,
		Prompt:        "Which of the following is primarily used for structuring web pages?",
		Options:       []string{"Python", "Java", "HTML", "C++"},
		CorrectAnswer: "C",
	},
	{
		ID:            4,
		Kind:          models.KindMultipleChoice,
		Prompt:        "Which chemical symbol stands for Gold?",
		Options:       []string{"Au", "Gd", "Ag", "Pt"},
		CorrectAnswer: "A",
	},
	{
		ID:            5,
		Kind:          models.KindMultipleChoice,
		Prompt:        "Which of these processes is not typically involved in refining petroleum?",
		Options:       []string{"Fractional distillation", "Cracking", "Polymerization", "Filtration"},
		CorrectAnswer: "D",
	},
	{
		ID:            6,
		Kind:          models.KindInteger,
		Prompt:        "What is the value of 12 + 28?",
		CorrectAnswer: "40",
	},
	{
		ID:            7,
		Kind:          models.KindInteger,
		Prompt:        "How many states are there in the United States?",
		CorrectAnswer: "50",
	},
	{
		ID:            8,
		Kind:          models.KindInteger,
		Prompt:        "In which year was the Declaration of Independence signed?",
		CorrectAnswer: "1776",
	},
	{
		ID:            9,
		Kind:          models.KindInteger,
		Prompt:        "What is the value of pi rounded to the nearest integer?",
		CorrectAnswer: "3",
	},
	{
		ID:            10,
		Kind:          models.KindInteger,
		Prompt:        "If a car travels at 60 mph for 2 hours, how many miles does it travel?",
		CorrectAnswer: "120",
	},
}
