package config

import (
	"os"
	"sync"

	"github.com/entrhq/tabresumer/pkg/profile"
)

const (
	// EnvProfilesDir overrides the profiles directory from the config file.
	EnvProfilesDir = "TABRESUMER_PROFILES_DIR"
	// EnvBrowser overrides the browser command from the config file.
	EnvBrowser = "TABRESUMER_BROWSER"
)

var (
	// globalManager is the singleton configuration manager instance
	globalManager *Manager
	globalMu      sync.Mutex
)

// Initialize creates the global configuration manager with the default
// sections and loads configPath (empty selects DefaultPath). When the file
// does not exist yet it is created with the defaults.
func Initialize(configPath string) error {
	globalMu.Lock()
	defer globalMu.Unlock()

	store, err := NewFileStore(configPath)
	if err != nil {
		return err
	}
	_, statErr := os.Stat(store.Path())
	firstRun := os.IsNotExist(statErr)

	manager := NewManager(store)
	if err := manager.RegisterSection(NewProfilesSection()); err != nil {
		return err
	}
	if err := manager.RegisterSection(NewBrowserSection()); err != nil {
		return err
	}
	if err := manager.LoadAll(); err != nil {
		return err
	}
	// Write the defaults out so there is a file to edit.
	if firstRun {
		if err := manager.SaveAll(); err != nil {
			return err
		}
	}

	globalManager = manager
	return nil
}

// Global returns the global configuration manager.
// Panics if Initialize has not been called.
func Global() *Manager {
	globalMu.Lock()
	defer globalMu.Unlock()

	if globalManager == nil {
		panic("config not initialized: call config.Initialize first")
	}
	return globalManager
}

// IsInitialized returns true if the global configuration has been initialized.
func IsInitialized() bool {
	globalMu.Lock()
	defer globalMu.Unlock()
	return globalManager != nil
}

// GetProfiles returns the profiles section, or nil before Initialize.
func GetProfiles() *ProfilesSection {
	if !IsInitialized() {
		return nil
	}
	section, ok := Global().GetSection(SectionIDProfiles)
	if !ok {
		return nil
	}
	profiles, _ := section.(*ProfilesSection)
	return profiles
}

// GetBrowser returns the browser section, or nil before Initialize.
func GetBrowser() *BrowserSection {
	if !IsInitialized() {
		return nil
	}
	section, ok := Global().GetSection(SectionIDBrowser)
	if !ok {
		return nil
	}
	browser, _ := section.(*BrowserSection)
	return browser
}

// Settings is the resolved runtime configuration.
type Settings struct {
	ProfilesDir    string
	DefaultSort    profile.SortMode
	IDBase         int64
	BrowserCommand string
	BrowserArgs    []string
}

// Resolve builds Settings with the precedence
// CLI flags > environment variables > config file > defaults.
func Resolve(cliProfilesDir, cliBrowser string) (Settings, error) {
	profiles := GetProfiles()
	if profiles == nil {
		profiles = NewProfilesSection()
	}
	browser := GetBrowser()
	if browser == nil {
		browser = NewBrowserSection()
	}

	settings := Settings{
		ProfilesDir: cliProfilesDir,
		DefaultSort: profiles.DefaultSort,
		IDBase:      profiles.IDBase,
	}
	settings.BrowserCommand, settings.BrowserArgs = browser.CommandLine()

	if settings.ProfilesDir == "" {
		settings.ProfilesDir = os.Getenv(EnvProfilesDir)
	}
	if settings.ProfilesDir == "" {
		dir, err := profiles.ResolvedDirectory()
		if err != nil {
			return Settings{}, err
		}
		settings.ProfilesDir = dir
	}

	if cliBrowser != "" {
		settings.BrowserCommand = cliBrowser
	} else if env := os.Getenv(EnvBrowser); env != "" {
		settings.BrowserCommand = env
	}

	return settings, nil
}
