package vk

import (
	"github.com/SevereCloud/vksdk/v2/object"

	"github.com/Yulia51188/HistoryQuiz/internal/quiz"
)

// menuKeyboard builds the quiz keyboard from the shared menu layout. Action
// buttons are primary, the score button secondary.
func menuKeyboard() *object.MessagesKeyboard {
	kb := object.NewMessagesKeyboard(false)
	for i, row := range quiz.MenuRows() {
		kb.AddRow()
		color := "primary"
		if i > 0 {
			color = "secondary"
		}
		for _, label := range row {
			kb.AddTextButton(label, "", color)
		}
	}
	return kb
}

// emptyKeyboard removes any previously shown keyboard.
func emptyKeyboard() *object.MessagesKeyboard {
	return object.NewMessagesKeyboard(true)
}
