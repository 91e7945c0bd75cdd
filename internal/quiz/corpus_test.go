package quiz

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/text/encoding/charmap"
)

const sampleBank = `Чемпионат:
Тестовый чемпионат

Вопрос 1:
Кто первым полетел в космос?

Ответ:
Гагарин

Вопрос 2:
Столица России?

Ответ:
Москва
`

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestParseQuestions(t *testing.T) {
	questions := ParseQuestions(sampleBank)
	if len(questions) != 2 {
		t.Fatalf("expected 2 questions, got %d: %+v", len(questions), questions)
	}
	if questions[0].Prompt != "Кто первым полетел в космос?" || questions[0].Answer != "Гагарин" {
		t.Fatalf("unexpected first pair: %+v", questions[0])
	}
	if questions[1].Prompt != "Столица России?" || questions[1].Answer != "Москва" {
		t.Fatalf("unexpected second pair: %+v", questions[1])
	}
}

func TestParseQuestionsWindowsNewlines(t *testing.T) {
	text := "Вопрос 1:\r\nКто?\r\n\r\nОтвет:\r\nОн\r\n"
	questions := ParseQuestions(text)
	if len(questions) != 1 || questions[0].Prompt != "Кто?" || questions[0].Answer != "Он" {
		t.Fatalf("unexpected parse result: %+v", questions)
	}
}

func TestLoadCorpusDecodesKOI8R(t *testing.T) {
	encoded, err := charmap.KOI8R.NewEncoder().Bytes([]byte(sampleBank))
	if err != nil {
		t.Fatalf("encode sample: %v", err)
	}
	dir := t.TempDir()
	path := filepath.Join(dir, "bank.txt")
	if err := os.WriteFile(path, encoded, 0o644); err != nil {
		t.Fatalf("write sample: %v", err)
	}

	questions, err := LoadCorpus(path, discardLogger())
	if err != nil {
		t.Fatalf("LoadCorpus: %v", err)
	}
	if len(questions) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(questions))
	}
	if questions[0].Answer != "Гагарин" {
		t.Fatalf("koi8-r round trip failed: %+v", questions[0])
	}
}

func TestLoadCorpusDirectory(t *testing.T) {
	encoded, err := charmap.KOI8R.NewEncoder().Bytes([]byte(sampleBank))
	if err != nil {
		t.Fatalf("encode sample: %v", err)
	}
	dir := t.TempDir()
	for _, name := range []string{"a.txt", "b.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), encoded, 0o644); err != nil {
			t.Fatalf("write sample: %v", err)
		}
	}

	questions, err := LoadCorpus(dir, discardLogger())
	if err != nil {
		t.Fatalf("LoadCorpus: %v", err)
	}
	if len(questions) != 4 {
		t.Fatalf("expected 4 questions from two files, got %d", len(questions))
	}
}

func TestLoadCorpusMissingPath(t *testing.T) {
	if _, err := LoadCorpus(filepath.Join(t.TempDir(), "nope"), discardLogger()); err == nil {
		t.Fatal("expected error for missing path")
	}
}
