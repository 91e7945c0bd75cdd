package store

import "fmt"

// Key suffixes of the per-user session tuple.
const (
	// SuffixQuiz holds the reference answer of the currently posed question.
	SuffixQuiz = "quiz"
	// SuffixScore holds the score counter as text.
	SuffixScore = "score"
	// SuffixState holds the conversation state ordinal as text.
	SuffixState = "state"
)

// Key builds a namespaced session key: {transport}_{user}_{suffix}.
func Key(transport, userID, suffix string) string {
	return fmt.Sprintf("%s_%s_%s", transport, userID, suffix)
}
