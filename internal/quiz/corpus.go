package quiz

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/encoding/charmap"
)

// LoadCorpus reads question-bank files from path, which may be a single file
// or a directory. Files are koi8-r encoded text: paragraphs separated by
// blank lines, where a paragraph headed «Вопрос …:» carries a prompt and the
// following «Ответ:» paragraph carries its reference answer.
func LoadCorpus(path string, log *slog.Logger) ([]Question, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("corpus path: %w", err)
	}

	var files []string
	if info.IsDir() {
		entries, err := os.ReadDir(path)
		if err != nil {
			return nil, fmt.Errorf("corpus dir: %w", err)
		}
		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			files = append(files, filepath.Join(path, e.Name()))
		}
	} else {
		files = []string{path}
	}

	var questions []Question
	for _, file := range files {
		parsed, err := parseFile(file)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", file, err)
		}
		questions = append(questions, parsed...)
	}

	log.Info("corpus loaded",
		slog.String("event", "quiz.corpus"),
		slog.String("path", path),
		slog.Int("files", len(files)),
		slog.Int("questions", len(questions)),
	)
	return questions, nil
}

func parseFile(path string) ([]Question, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	decoded, err := charmap.KOI8R.NewDecoder().Bytes(raw)
	if err != nil {
		return nil, fmt.Errorf("decode koi8-r: %w", err)
	}
	return ParseQuestions(string(decoded)), nil
}

// ParseQuestions extracts prompt/answer pairs from decoded question-bank text.
func ParseQuestions(text string) []Question {
	text = strings.ReplaceAll(text, "\r\n", "\n")

	var prompts, answers []string
	for _, paragraph := range strings.Split(text, "\n\n") {
		paragraph = strings.TrimSpace(paragraph)
		header, body, ok := strings.Cut(paragraph, ":\n")
		if !ok {
			continue
		}
		switch {
		case strings.HasPrefix(header, "Вопрос"):
			prompts = append(prompts, strings.TrimSpace(body))
		case strings.HasPrefix(header, "Ответ"):
			answers = append(answers, strings.TrimSpace(body))
		}
	}

	n := len(prompts)
	if len(answers) < n {
		n = len(answers)
	}
	questions := make([]Question, 0, n)
	for i := 0; i < n; i++ {
		questions = append(questions, Question{Prompt: prompts[i], Answer: answers[i]})
	}
	return questions
}
