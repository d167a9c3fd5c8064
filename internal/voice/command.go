package voice

import (
	"errors"
	"os/exec"
	"strings"
	"sync"
)

// EventSink receives recognition events. Called from the recognizer's own
// goroutine; hosts forward into their event loop before touching state.
type EventSink func(Event)

// CommandRecognizer runs an external speech-to-text command (for example a
// whisper wrapper) for each session. The command receives the language tag
// as its last argument and must print the final transcript on stdout.
type CommandRecognizer struct {
	argv []string
	sink EventSink

	mu  sync.Mutex
	cmd *exec.Cmd
}

// NewCommandRecognizer builds a recognizer for argv. Returns nil (meaning
// unsupported) when argv is empty or the binary is not on PATH.
func NewCommandRecognizer(argv []string, sink EventSink) *CommandRecognizer {
	if len(argv) == 0 {
		return nil
	}
	if _, err := exec.LookPath(argv[0]); err != nil {
		return nil
	}
	return &CommandRecognizer{argv: argv, sink: sink}
}

func (c *CommandRecognizer) Start(lang string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cmd != nil {
		return errors.New("voice: session already running")
	}

	args := append(append([]string(nil), c.argv[1:]...), lang)
	cmd := exec.Command(c.argv[0], args...)
	c.cmd = cmd

	go func() {
		c.sink(Event{Kind: EventStarted})
		out, err := cmd.Output()

		c.mu.Lock()
		cancelled := c.cmd != cmd
		if c.cmd == cmd {
			c.cmd = nil
		}
		c.mu.Unlock()

		if cancelled {
			return
		}
		if err != nil {
			c.sink(Event{Kind: EventError, Reason: "recognition command failed: " + err.Error()})
			return
		}
		transcript := strings.TrimSpace(string(out))
		if transcript == "" {
			c.sink(Event{Kind: EventEnded})
			return
		}
		c.sink(Event{Kind: EventResult, Transcript: transcript})
	}()
	return nil
}

func (c *CommandRecognizer) Stop() {
	c.mu.Lock()
	cmd := c.cmd
	c.cmd = nil
	c.mu.Unlock()

	if cmd != nil && cmd.Process != nil {
		_ = cmd.Process.Kill()
	}
}
