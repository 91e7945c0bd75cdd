package telegram

import (
	tele "gopkg.in/telebot.v4"

	"github.com/Yulia51188/HistoryQuiz/internal/quiz"
)

// menuMarkup builds the quiz reply keyboard from the shared menu layout.
func menuMarkup() *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{ResizeKeyboard: true}
	var keyboard []tele.Row
	for _, row := range quiz.MenuRows() {
		var buttons []tele.Btn
		for _, label := range row {
			buttons = append(buttons, markup.Text(label))
		}
		keyboard = append(keyboard, markup.Row(buttons...))
	}
	markup.Reply(keyboard...)
	return markup
}
