package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/entrhq/tabresumer/pkg/profile"
)

// SectionIDProfiles is the identifier for the profiles section
const SectionIDProfiles = "profiles"

// ProfilesSection configures where profiles live and how new ones behave.
type ProfilesSection struct {
	Directory   string           `json:"directory"`
	DefaultSort profile.SortMode `json:"default_sort"`
	IDBase      int64            `json:"id_base"`
	mu          sync.RWMutex
}

// NewProfilesSection creates a profiles section with default settings.
func NewProfilesSection() *ProfilesSection {
	return &ProfilesSection{DefaultSort: profile.SortByDateCreation}
}

func (s *ProfilesSection) ID() string    { return SectionIDProfiles }
func (s *ProfilesSection) Title() string { return "Profiles" }

func (s *ProfilesSection) Description() string {
	return "Profile directory, default sort mode for new profiles, and the first profile id."
}

// Data returns the current configuration data.
func (s *ProfilesSection) Data() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return map[string]any{
		"directory":    s.Directory,
		"default_sort": s.DefaultSort.String(),
		"id_base":      s.IDBase,
	}
}

// SetData updates the configuration from the provided data.
// Unknown keys are ignored.
func (s *ProfilesSection) SetData(data map[string]any) error {
	if data == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for key, value := range data {
		switch key {
		case "directory":
			dir, ok := value.(string)
			if !ok {
				return fmt.Errorf("invalid value type for directory: expected string, got %T", value)
			}
			s.Directory = dir

		case "default_sort":
			name, ok := value.(string)
			if !ok {
				return fmt.Errorf("invalid value type for default_sort: expected string, got %T", value)
			}
			mode, err := profile.ParseSortMode(name)
			if err != nil {
				return err
			}
			s.DefaultSort = mode

		case "id_base":
			// JSON numbers come as float64
			switch v := value.(type) {
			case float64:
				s.IDBase = int64(v)
			case int64:
				s.IDBase = v
			case int:
				s.IDBase = int64(v)
			default:
				return fmt.Errorf("invalid value type for id_base: expected number, got %T", value)
			}
		}
	}
	return nil
}

// Validate checks the current configuration.
func (s *ProfilesSection) Validate() error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.IDBase < 0 {
		return fmt.Errorf("id_base must not be negative, got %d", s.IDBase)
	}
	if !s.DefaultSort.Valid() {
		return fmt.Errorf("unknown default_sort %s", s.DefaultSort)
	}
	return nil
}

// Reset restores the defaults.
func (s *ProfilesSection) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Directory = ""
	s.DefaultSort = profile.SortByDateCreation
	s.IDBase = 0
}

// ResolvedDirectory returns the configured directory or ~/.tabresumer/profiles.
func (s *ProfilesSection) ResolvedDirectory() (string, error) {
	s.mu.RLock()
	dir := s.Directory
	s.mu.RUnlock()

	if dir != "" {
		return dir, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, ".tabresumer", "profiles"), nil
}
