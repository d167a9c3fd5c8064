package voice

import "errors"

// ScriptedRecognizer plays back canned events, one scripted session per
// Start call. It backs the adapter tests and demo mode.
type ScriptedRecognizer struct {
	// Sessions are consumed in order; each Start pops one. A session's
	// events are handed to Sink when Emit is called, so tests control the
	// interleaving explicitly.
	Sessions [][]Event
	Sink     EventSink

	StartErr  error
	started   int
	stopped   int
	pending   []Event
	listening bool
}

func (s *ScriptedRecognizer) Start(lang string) error {
	if s.StartErr != nil {
		return s.StartErr
	}
	if len(s.Sessions) == 0 {
		return errors.New("voice: no scripted session left")
	}
	s.pending = s.Sessions[0]
	s.Sessions = s.Sessions[1:]
	s.started++
	s.listening = true
	return nil
}

func (s *ScriptedRecognizer) Stop() {
	s.stopped++
	s.listening = false
	s.pending = nil
}

// Emit delivers the next pending event to the sink. Returns false when the
// scripted session is exhausted or was stopped.
func (s *ScriptedRecognizer) Emit() bool {
	if !s.listening || len(s.pending) == 0 {
		return false
	}
	ev := s.pending[0]
	s.pending = s.pending[1:]
	if ev.Kind == EventResult || ev.Kind == EventError || ev.Kind == EventEnded {
		s.listening = false
	}
	if s.Sink != nil {
		s.Sink(ev)
	}
	return true
}

// Starts returns how many sessions were started.
func (s *ScriptedRecognizer) Starts() int { return s.started }

// Stops returns how many times Stop was called.
func (s *ScriptedRecognizer) Stops() int { return s.stopped }
