package quiz

import (
	"errors"
	"math/rand"
)

// Question pairs a prompt with its reference answer. Questions are immutable
// once loaded and shared by reference across all user sessions.
type Question struct {
	Prompt string
	Answer string
}

// ErrEmptyCorpus reports that no questions were loaded. It is fatal at
// startup: the supplier refuses to exist rather than fail on the first draw.
var ErrEmptyCorpus = errors.New("quiz: empty corpus")

// Supplier holds the loaded corpus and hands out random questions.
type Supplier struct {
	questions []Question
}

// NewSupplier validates the corpus and constructs a Supplier.
func NewSupplier(questions []Question) (*Supplier, error) {
	if len(questions) == 0 {
		return nil, ErrEmptyCorpus
	}
	return &Supplier{questions: questions}, nil
}

// Draw returns a uniformly random question, with replacement.
func (s *Supplier) Draw() Question {
	return s.questions[rand.Intn(len(s.questions))]
}

// Len reports the corpus size.
func (s *Supplier) Len() int {
	return len(s.questions)
}
