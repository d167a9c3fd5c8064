// Package voice wraps an external speech-to-text capability behind a small
// state machine. Real recognition backends live behind the Recognizer
// interface; the engine only defines the contract and ships a scripted
// recognizer plus a process-spawning one.
package voice

// State is the adapter's lifecycle state.
type State int

const (
	// StateUnsupported means no recognition backend is available. It is
	// terminal: an unsupported adapter never transitions.
	StateUnsupported State = iota
	StateIdle
	StateListening
	StateError
)

func (s State) String() string {
	switch s {
	case StateUnsupported:
		return "unsupported"
	case StateIdle:
		return "idle"
	case StateListening:
		return "listening"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// EventKind tags a recognition event.
type EventKind int

const (
	EventStarted EventKind = iota
	EventResult
	EventError
	EventEnded
)

// Event is one recognition callback, as a tagged union: Transcript is set
// for EventResult, Reason for EventError.
type Event struct {
	Kind       EventKind
	Transcript string
	Reason     string
}

// Recognizer is the narrow contract a speech backend must satisfy. Sessions
// are single-utterance: one final transcript (or an error), then the session
// ends. Events may arrive on any goroutine; hosts forward them to Handle on
// their own event loop.
type Recognizer interface {
	Start(lang string) error
	Stop()
}

// Adapter drives a Recognizer and forwards recognized text into the search
// controller's submit path. Not safe for concurrent use; the host event
// loop serializes calls.
type Adapter struct {
	rec    Recognizer
	lang   string
	state  State
	reason string
	onText func(string)
}

// NewAdapter builds an adapter. A nil recognizer yields a permanently
// unsupported adapter. onText receives each final transcript.
func NewAdapter(rec Recognizer, lang string, onText func(string)) *Adapter {
	a := &Adapter{rec: rec, lang: lang, onText: onText}
	if rec == nil {
		a.state = StateUnsupported
	} else {
		a.state = StateIdle
	}
	return a
}

// State returns the current lifecycle state.
func (a *Adapter) State() State { return a.state }

// Supported reports whether a recognition backend exists.
func (a *Adapter) Supported() bool { return a.state != StateUnsupported }

// Err returns the human-readable reason for the last recognition error, or
// "" outside StateError.
func (a *Adapter) Err() string {
	if a.state != StateError {
		return ""
	}
	return a.reason
}

// Language returns the recognition language tag.
func (a *Adapter) Language() string { return a.lang }

// SetLanguage changes the recognition language for future sessions. Ignored
// while a session is live.
func (a *Adapter) SetLanguage(lang string) {
	if a.state == StateListening {
		return
	}
	a.lang = lang
}

// Start begins a single-utterance session. Starting while already listening
// is a no-op; starting from StateError retries. Returns false when the
// adapter is unsupported or the backend refused to start.
func (a *Adapter) Start() bool {
	switch a.state {
	case StateUnsupported, StateListening:
		return a.state == StateListening
	}
	if err := a.rec.Start(a.lang); err != nil {
		a.state = StateError
		a.reason = err.Error()
		return false
	}
	a.state = StateListening
	a.reason = ""
	return true
}

// Cancel stops a live session without a result.
func (a *Adapter) Cancel() {
	if a.state != StateListening {
		return
	}
	a.rec.Stop()
	a.state = StateIdle
}

// DismissError returns from StateError to StateIdle.
func (a *Adapter) DismissError() {
	if a.state == StateError {
		a.state = StateIdle
		a.reason = ""
	}
}

// Handle feeds one recognition event into the state machine. Events from a
// session that is no longer live (user cancelled, new session started) are
// stale and dropped: the most recent local action is authoritative.
func (a *Adapter) Handle(ev Event) {
	if a.state != StateListening {
		return
	}
	switch ev.Kind {
	case EventStarted:
		// Session confirmation; nothing to update.
	case EventResult:
		a.state = StateIdle
		if a.onText != nil && ev.Transcript != "" {
			a.onText(ev.Transcript)
		}
	case EventError:
		a.state = StateError
		a.reason = ev.Reason
		if a.reason == "" {
			a.reason = "speech recognition failed"
		}
	case EventEnded:
		// Session ended without a final result.
		a.state = StateIdle
	}
}

// Close releases any in-flight session. Called on host teardown.
func (a *Adapter) Close() {
	a.Cancel()
}
