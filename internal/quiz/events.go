package quiz

// EventKind enumerates the transport-agnostic event vocabulary. Adapters
// collapse platform-specific commands and button presses into these five
// kinds plus free-text submission, so one state machine serves every
// transport.
type EventKind int

const (
	// EventSubmit carries free text typed by the user.
	EventSubmit EventKind = iota
	// EventBegin starts or resyncs a conversation.
	EventBegin
	// EventNewQuestion requests a fresh question.
	EventNewQuestion
	// EventScore requests the current score.
	EventScore
	// EventGiveUp reveals the pending answer and draws a new question.
	EventGiveUp
	// EventStop ends the conversation.
	EventStop
)

func (k EventKind) String() string {
	switch k {
	case EventSubmit:
		return "submit"
	case EventBegin:
		return "begin"
	case EventNewQuestion:
		return "new_question"
	case EventScore:
		return "score"
	case EventGiveUp:
		return "give_up"
	case EventStop:
		return "stop"
	}
	return "unknown"
}

// Event is an incoming user action in the machine's vocabulary.
type Event struct {
	Kind EventKind
	// Text carries the raw message for EventSubmit.
	Text string
}

// EventFromText maps menu button labels onto events; anything else is a
// free-text submission.
func EventFromText(text string) Event {
	switch text {
	case ButtonNewQuestion:
		return Event{Kind: EventNewQuestion}
	case ButtonGiveUp:
		return Event{Kind: EventGiveUp}
	case ButtonMyScore:
		return Event{Kind: EventScore}
	}
	return Event{Kind: EventSubmit, Text: text}
}
