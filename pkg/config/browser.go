package config

import (
	"fmt"
	"strings"
	"sync"
)

// SectionIDBrowser is the identifier for the browser section
const SectionIDBrowser = "browser"

const defaultBrowserCommand = "firefox"

var defaultBrowserArgs = []string{"--new-tab"}

// BrowserSection configures the command used to reopen saved tabs.
type BrowserSection struct {
	Command string   `json:"command"`
	Args    []string `json:"args"`
	mu      sync.RWMutex
}

// NewBrowserSection creates a browser section with default settings.
func NewBrowserSection() *BrowserSection {
	s := &BrowserSection{}
	s.Reset()
	return s
}

func (s *BrowserSection) ID() string          { return SectionIDBrowser }
func (s *BrowserSection) Title() string       { return "Browser" }
func (s *BrowserSection) Description() string { return "Command and arguments used to open saved tabs." }

// Data returns the current configuration data.
func (s *BrowserSection) Data() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	args := make([]any, len(s.Args))
	for i, a := range s.Args {
		args[i] = a
	}
	return map[string]any{
		"command": s.Command,
		"args":    args,
	}
}

// SetData updates the configuration from the provided data.
func (s *BrowserSection) SetData(data map[string]any) error {
	if data == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for key, value := range data {
		switch key {
		case "command":
			cmd, ok := value.(string)
			if !ok {
				return fmt.Errorf("invalid value type for command: expected string, got %T", value)
			}
			s.Command = cmd

		case "args":
			// Decoded JSON arrays arrive as []any
			switch v := value.(type) {
			case []string:
				s.Args = append([]string(nil), v...)
			case []any:
				args := make([]string, 0, len(v))
				for _, item := range v {
					arg, ok := item.(string)
					if !ok {
						return fmt.Errorf("invalid value in args: expected string, got %T", item)
					}
					args = append(args, arg)
				}
				s.Args = args
			default:
				return fmt.Errorf("invalid value type for args: expected list, got %T", value)
			}
		}
	}
	return nil
}

// Validate checks the current configuration.
func (s *BrowserSection) Validate() error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if strings.TrimSpace(s.Command) == "" {
		return fmt.Errorf("browser command cannot be empty")
	}
	return nil
}

// Reset restores the defaults.
func (s *BrowserSection) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Command = defaultBrowserCommand
	s.Args = append([]string(nil), defaultBrowserArgs...)
}

// CommandLine returns the configured command and a copy of its arguments.
func (s *BrowserSection) CommandLine() (string, []string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Command, append([]string(nil), s.Args...)
}
