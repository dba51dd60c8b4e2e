// Package main provides the tabresumer terminal application. It keeps
// named profiles of browser tabs on disk and reopens them on demand.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"text/tabwriter"

	"github.com/entrhq/tabresumer/pkg/config"
	"github.com/entrhq/tabresumer/pkg/launcher"
	"github.com/entrhq/tabresumer/pkg/library"
	"github.com/entrhq/tabresumer/pkg/logging"
	"github.com/entrhq/tabresumer/pkg/storage"
	"github.com/entrhq/tabresumer/pkg/tui"
)

const version = "0.1.0"

// Config holds the command line options.
type Config struct {
	ConfigPath  string
	ProfilesDir string
	Browser     string
	ShowVersion bool
	ShowConfig  bool
	List        bool
	ImportPath  string
	ImportName  string
}

func main() {
	cfg := parseFlags()

	if cfg.ShowVersion {
		fmt.Printf("tabresumer v%s\n", version)
		return
	}

	if err := cfg.validate(); err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	if err := run(ctx, cfg, os.Stdout); err != nil {
		cancel()
		log.Fatalf("Application error: %v", err)
	}
	cancel()
}

func parseFlags() *Config {
	cfg := &Config{}

	flag.StringVar(&cfg.ConfigPath, "config", "", "Path to the config file (default: ~/.tabresumer/config.json)")
	flag.StringVar(&cfg.ProfilesDir, "profiles", "", "Profiles directory (or set "+config.EnvProfilesDir+")")
	flag.StringVar(&cfg.Browser, "browser", "", "Browser command used to open tabs (or set "+config.EnvBrowser+")")
	flag.BoolVar(&cfg.ShowVersion, "version", false, "Show version and exit")
	flag.BoolVar(&cfg.ShowConfig, "show-config", false, "Print the effective config file sections and exit")
	flag.BoolVar(&cfg.List, "list", false, "Print all profiles and exit")
	flag.StringVar(&cfg.ImportPath, "import", "", "Import a bookmarks HTML export as a new profile and exit")
	flag.StringVar(&cfg.ImportName, "name", "", "Name of the imported profile (default: the file name)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "tabresumer - save and reopen sets of browser tabs\n\n")
		fmt.Fprintf(os.Stderr, "Usage: tabresumer [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  tabresumer                                  # interactive mode\n")
		fmt.Fprintf(os.Stderr, "  tabresumer -list\n")
		fmt.Fprintf(os.Stderr, "  tabresumer -show-config\n")
		fmt.Fprintf(os.Stderr, "  tabresumer -import bookmarks.html -name research\n")
	}

	flag.Parse()
	return cfg
}

func (c *Config) validate() error {
	if c.ImportName != "" && c.ImportPath == "" {
		return fmt.Errorf("-name is only valid together with -import")
	}
	if c.ImportPath != "" {
		info, err := os.Stat(c.ImportPath)
		if err != nil {
			return fmt.Errorf("import file error: %w", err)
		}
		if info.IsDir() {
			return fmt.Errorf("import path '%s' is a directory", c.ImportPath)
		}
	}
	return nil
}

func run(ctx context.Context, cfg *Config, out io.Writer) error {
	if err := config.Initialize(cfg.ConfigPath); err != nil {
		return fmt.Errorf("failed to initialize configuration: %w", err)
	}
	if cfg.ShowConfig {
		return showConfig(config.Global(), out)
	}
	settings, err := config.Resolve(cfg.ProfilesDir, cfg.Browser)
	if err != nil {
		return fmt.Errorf("failed to resolve configuration: %w", err)
	}

	logger, err := logging.NewLogger("tabresumer")
	if err != nil {
		logger = logging.NewNop()
	}
	defer logger.Close()
	logger.Infof("starting v%s, profiles in %s", version, settings.ProfilesDir)

	store, err := storage.NewFileStore(settings.ProfilesDir)
	if err != nil {
		return err
	}
	lib, err := library.Open(ctx, store, library.Options{
		DefaultSort: settings.DefaultSort,
		IDBase:      settings.IDBase,
		Logger:      logger,
	})
	if err != nil {
		return fmt.Errorf("failed to load profiles: %w", err)
	}

	switch {
	case cfg.ImportPath != "":
		return importBookmarks(ctx, lib, cfg, out)
	case cfg.List:
		return listProfiles(lib, out)
	}

	opener := launcher.New(settings.BrowserCommand, settings.BrowserArgs...)
	if err := tui.Run(ctx, lib, opener, logger); err != nil {
		return err
	}
	// ctx may already be cancelled by a signal; the final save still runs.
	return lib.Flush(context.WithoutCancel(ctx))
}

func showConfig(m *config.Manager, out io.Writer) error {
	if fs, ok := m.Store().(*config.FileStore); ok {
		fmt.Fprintf(out, "# %s\n", fs.Path())
	}
	for _, section := range m.GetSections() {
		fmt.Fprintf(out, "\n[%s] %s\n  %s\n", section.ID(), section.Title(), section.Description())

		data := section.Data()
		keys := make([]string, 0, len(data))
		for k := range data {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(out, "  %s = %v\n", k, data[k])
		}
	}
	return nil
}

func importBookmarks(ctx context.Context, lib *library.Library, cfg *Config, out io.Writer) error {
	f, err := os.Open(cfg.ImportPath)
	if err != nil {
		return fmt.Errorf("failed to open bookmarks: %w", err)
	}
	defer f.Close()

	name := cfg.ImportName
	if name == "" {
		name = importName(cfg.ImportPath)
	}
	summary, err := lib.ImportBookmarks(ctx, name, f)
	if err != nil {
		return fmt.Errorf("failed to import bookmarks: %w", err)
	}
	fmt.Fprintf(out, "Imported %d tab(s) into %q (id %d)\n", summary.Pairs, summary.Name, summary.ID)
	return nil
}

func listProfiles(lib *library.Library, out io.Writer) error {
	profiles := lib.Profiles()
	if len(profiles) == 0 {
		fmt.Fprintln(out, "No profiles.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tTABS\tSORT\tMODIFIED")
	for _, p := range profiles {
		fmt.Fprintf(w, "%d\t%s\t%d\t%s\t%s\n",
			p.ID, p.Name, p.Pairs, p.SortMode, p.LastModifiedAt.Local().Format("2006-01-02 15:04:05"))
	}
	return w.Flush()
}
