// Package clipboard copies share links and product references to the system
// clipboard, with a command-line fallback for environments where the native
// bindings fail (headless X, Wayland without portals).
package clipboard

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"github.com/atotto/clipboard"
)

// Manager handles clipboard writes.
type Manager struct{}

// NewManager creates a clipboard manager.
func NewManager() *Manager {
	return &Manager{}
}

// Copy writes text to the clipboard, trying the cross-platform library
// first and falling back to platform commands.
func (m *Manager) Copy(text string) error {
	if err := clipboard.WriteAll(text); err == nil {
		return nil
	}
	return m.copyWithCommand(text)
}

func (m *Manager) copyWithCommand(text string) error {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("pbcopy")
	case "linux":
		switch {
		case commandExists("wl-copy"):
			cmd = exec.Command("wl-copy")
		case commandExists("xclip"):
			cmd = exec.Command("xclip", "-selection", "clipboard")
		case commandExists("xsel"):
			cmd = exec.Command("xsel", "--clipboard", "--input")
		default:
			return fmt.Errorf("no clipboard command found (install wl-clipboard, xclip, or xsel)")
		}
	case "windows":
		cmd = exec.Command("clip.exe")
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}

	cmd.Stdin = strings.NewReader(text)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("clipboard command failed: %w", err)
	}
	return nil
}

func commandExists(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}
