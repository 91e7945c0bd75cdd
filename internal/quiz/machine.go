package quiz

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/Yulia51188/HistoryQuiz/internal/logger"
	"github.com/Yulia51188/HistoryQuiz/internal/store"
)

// State identifies a step of the per-user conversation.
type State int

const (
	// StateStart means no active quiz yet.
	StateStart State = iota
	// StateAwaitingRequest means the menu is shown and the user may
	// request a question or view the score.
	StateAwaitingRequest
	// StateAwaitingAnswer means a question is posed and its reference
	// answer is pending in the store.
	StateAwaitingAnswer
)

func (s State) String() string {
	switch s {
	case StateStart:
		return "start"
	case StateAwaitingRequest:
		return "awaiting_request"
	case StateAwaitingAnswer:
		return "awaiting_answer"
	}
	return "unknown"
}

func (s State) ordinal() string {
	return strconv.Itoa(int(s))
}

// parseState maps a persisted ordinal back to a State. Anything malformed
// degrades to StateStart so a corrupt session never fails the request.
func parseState(raw string) State {
	switch raw {
	case "1":
		return StateAwaitingRequest
	case "2":
		return StateAwaitingAnswer
	}
	return StateStart
}

// Keyboard tells the adapter which reply keyboard to render.
type Keyboard int

const (
	// KeyboardNone leaves the current keyboard untouched.
	KeyboardNone Keyboard = iota
	// KeyboardMenu shows the quiz menu buttons.
	KeyboardMenu
	// KeyboardRemove hides the keyboard.
	KeyboardRemove
)

// Reply is the outgoing message produced by a transition.
type Reply struct {
	Text     string
	Keyboard Keyboard
}

// HandleFunc is the machine-invoking call shape shared by transports and
// middleware wrappers.
type HandleFunc func(ctx context.Context, transport, userID string, ev Event) (Reply, error)

// Machine decides, for any transport, what state a user is in, which events
// are legal there and what each transition produces. It owns no session
// memory: state is reconstructed from the store on every event and written
// back before returning, which is what makes the bot restart-safe.
type Machine struct {
	store    store.Store
	supplier *Supplier
}

// NewMachine wires the machine to its collaborators.
func NewMachine(st store.Store, supplier *Supplier) *Machine {
	return &Machine{store: st, supplier: supplier}
}

// session is the per-event view of a user's persisted tuple.
type session struct {
	transport string
	userID    string
	state     State
	pending   string
	score     int
}

func (m *Machine) key(s *session, suffix string) string {
	return store.Key(s.transport, s.userID, suffix)
}

// Handle runs one transition: load persisted state, apply the event, persist
// mutations, return the reply. The reply is composed before anything is
// written; all writes for a transition go through SetMulti so a store
// failure leaves the previous session untouched.
func (m *Machine) Handle(ctx context.Context, transport, userID string, ev Event) (Reply, error) {
	sess, err := m.loadSession(ctx, transport, userID, ev)
	if err != nil {
		return Reply{}, err
	}

	reply, mutations, err := m.transition(sess, ev)
	if err != nil {
		return Reply{}, err
	}

	if len(mutations) > 0 {
		if err := m.store.SetMulti(ctx, mutations); err != nil {
			return Reply{}, fmt.Errorf("persist transition: %w", err)
		}
	}

	logger.Debug(ctx, "", "quiz.transition",
		slog.String("from", sess.state.String()),
		slog.String("on", ev.Kind.String()),
	)
	return reply, nil
}

// loadSession reads the persisted tuple. Only the pieces the event can need
// are fetched, and all reads happen before any write.
func (m *Machine) loadSession(ctx context.Context, transport, userID string, ev Event) (*session, error) {
	sess := &session{transport: transport, userID: userID}

	raw, err := m.store.Get(ctx, m.key(sess, store.SuffixState))
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("load state: %w", err)
	}
	sess.state = parseState(raw)

	if sess.state == StateAwaitingAnswer && (ev.Kind == EventSubmit || ev.Kind == EventGiveUp) {
		pending, err := m.store.Get(ctx, m.key(sess, store.SuffixQuiz))
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("load pending answer: %w", err)
		}
		sess.pending = pending
	}

	if ev.Kind == EventScore || ev.Kind == EventSubmit {
		scoreRaw, err := m.store.Get(ctx, m.key(sess, store.SuffixScore))
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("load score: %w", err)
		}
		// Absent or malformed score reads as zero for new users.
		if n, convErr := strconv.Atoi(scoreRaw); convErr == nil && n >= 0 {
			sess.score = n
		}
	}

	return sess, nil
}

func (m *Machine) transition(sess *session, ev Event) (Reply, map[string]string, error) {
	// STOP and BEGIN behave identically from every state.
	switch ev.Kind {
	case EventStop:
		return Reply{Text: msgFarewell, Keyboard: KeyboardRemove}, map[string]string{
			m.key(sess, store.SuffixState): StateStart.ordinal(),
			m.key(sess, store.SuffixQuiz):  "",
		}, nil
	case EventBegin:
		return Reply{Text: msgWelcome, Keyboard: KeyboardMenu}, map[string]string{
			m.key(sess, store.SuffixState): StateAwaitingRequest.ordinal(),
		}, nil
	}

	switch sess.state {
	case StateStart:
		// Not started yet: everything else nudges toward /start.
		return Reply{Text: msgPressStart, Keyboard: KeyboardNone}, nil, nil

	case StateAwaitingRequest:
		switch ev.Kind {
		case EventNewQuestion:
			return m.poseQuestion(sess, "")
		case EventScore:
			return Reply{Text: fmt.Sprintf(msgScore, sess.score), Keyboard: KeyboardMenu}, nil, nil
		default:
			return Reply{Text: msgChooseAction, Keyboard: KeyboardMenu}, nil, nil
		}

	case StateAwaitingAnswer:
		switch ev.Kind {
		case EventGiveUp:
			return m.poseQuestion(sess, sess.pending)
		case EventScore:
			// Read-only: the pending question stays open.
			return Reply{Text: fmt.Sprintf(msgScore, sess.score), Keyboard: KeyboardMenu}, nil, nil
		case EventSubmit:
			return m.judgeSubmission(sess, ev.Text)
		default:
			return Reply{Text: msgAnswerFirst, Keyboard: KeyboardMenu}, nil, nil
		}
	}

	return Reply{Text: msgPressStart, Keyboard: KeyboardNone}, nil, nil
}

// poseQuestion draws a fresh question and stores its reference answer. When
// revealed is non-empty the reply first discloses the given-up answer.
func (m *Machine) poseQuestion(sess *session, revealed string) (Reply, map[string]string, error) {
	q := m.supplier.Draw()
	text := q.Prompt
	if revealed != "" {
		text = fmt.Sprintf(msgGiveUp, revealed, q.Prompt)
	}
	return Reply{Text: text, Keyboard: KeyboardMenu}, map[string]string{
		m.key(sess, store.SuffixQuiz):  q.Answer,
		m.key(sess, store.SuffixState): StateAwaitingAnswer.ordinal(),
	}, nil
}

func (m *Machine) judgeSubmission(sess *session, text string) (Reply, map[string]string, error) {
	if sess.pending == "" {
		// The pending answer vanished (malformed session); fall back to
		// the menu instead of judging against nothing.
		return Reply{Text: msgChooseAction, Keyboard: KeyboardMenu}, map[string]string{
			m.key(sess, store.SuffixState): StateAwaitingRequest.ordinal(),
		}, nil
	}

	switch Judge(sess.pending, text) {
	case Correct:
		return Reply{Text: msgCorrect, Keyboard: KeyboardMenu}, map[string]string{
			m.key(sess, store.SuffixScore): strconv.Itoa(sess.score + 1),
			m.key(sess, store.SuffixState): StateAwaitingRequest.ordinal(),
			m.key(sess, store.SuffixQuiz):  "",
		}, nil
	case Indeterminate:
		return Reply{Text: msgRepeat, Keyboard: KeyboardMenu}, nil, nil
	default:
		return Reply{Text: msgWrong, Keyboard: KeyboardMenu}, nil, nil
	}
}
