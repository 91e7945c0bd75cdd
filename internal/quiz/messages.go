package quiz

// Menu button labels shared by all transports. Adapters render them as
// platform quick-reply buttons and translate presses back into events.
const (
	ButtonNewQuestion = "Новый вопрос"
	ButtonGiveUp      = "Сдаться"
	ButtonMyScore     = "Мой счёт"
)

// MenuRows returns the reply keyboard layout: two action buttons on the
// first row, the score button on the second.
func MenuRows() [][]string {
	return [][]string{
		{ButtonNewQuestion, ButtonGiveUp},
		{ButtonMyScore},
	}
}

const (
	msgWelcome      = "Привет! Я бот для викторин. Нажми «Новый вопрос», чтобы начать"
	msgPressStart   = "Нажми /start, чтобы начать викторину"
	msgChooseAction = "Выбери действие на клавиатуре"
	msgAnswerFirst  = "Сначала ответь на вопрос или нажми «Сдаться»"
	msgCorrect      = "Правильно! Поздравляю! Для следующего вопроса нажми «Новый вопрос»"
	msgWrong        = "Неправильно... Попробуешь ещё раз?"
	msgRepeat       = "Я не расслышал ответ. Напиши его текстом, пожалуйста"
	msgScore        = "Твой счёт: %d"
	msgGiveUp       = "Правильный ответ: %s\n\nНовый вопрос: %s"
	msgFarewell     = "Викторина прервана. Возвращайся! Для начала нажми /start"

	// msgUnavailable is the recovery reply sent when the session store
	// cannot be reached; no state is persisted alongside it.
	msgUnavailable = "Викторина временно недоступна, попробуй ещё раз через минуту"
)
