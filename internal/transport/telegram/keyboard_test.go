package telegram

import (
	"testing"

	"github.com/Yulia51188/HistoryQuiz/internal/quiz"
)

func TestMenuMarkupLayout(t *testing.T) {
	markup := menuMarkup()
	if !markup.ResizeKeyboard {
		t.Error("menu keyboard should resize to fit")
	}

	rows := quiz.MenuRows()
	if got := len(markup.ReplyKeyboard); got != len(rows) {
		t.Fatalf("rows = %d, want %d", got, len(rows))
	}
	for i, row := range rows {
		if got := len(markup.ReplyKeyboard[i]); got != len(row) {
			t.Fatalf("row %d buttons = %d, want %d", i, got, len(row))
		}
		for j, label := range row {
			if got := markup.ReplyKeyboard[i][j].Text; got != label {
				t.Errorf("button [%d][%d] = %q, want %q", i, j, got, label)
			}
		}
	}
}
