package quiz

import (
	"errors"
	"testing"
)

func TestNewSupplierEmptyCorpus(t *testing.T) {
	if _, err := NewSupplier(nil); !errors.Is(err, ErrEmptyCorpus) {
		t.Fatalf("expected ErrEmptyCorpus, got %v", err)
	}
	if _, err := NewSupplier([]Question{}); !errors.Is(err, ErrEmptyCorpus) {
		t.Fatalf("expected ErrEmptyCorpus, got %v", err)
	}
}

func TestSupplierDrawsFromCorpus(t *testing.T) {
	corpus := []Question{
		{Prompt: "q1", Answer: "a1"},
		{Prompt: "q2", Answer: "a2"},
		{Prompt: "q3", Answer: "a3"},
	}
	s, err := NewSupplier(corpus)
	if err != nil {
		t.Fatalf("NewSupplier: %v", err)
	}
	known := make(map[string]bool, len(corpus))
	for _, q := range corpus {
		known[q.Prompt] = true
	}
	for i := 0; i < 100; i++ {
		q := s.Draw()
		if !known[q.Prompt] {
			t.Fatalf("drew unknown question %+v", q)
		}
	}
}
