package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/gobwas/glob"

	"github.com/entrhq/tabresumer/pkg/profile"
)

const (
	filePrefix    = "prfl_"
	fileExtension = ".yaml"
)

var (
	ErrNotFound   = errors.New("storage: profile file not found")
	ErrNoProfiles = errors.New("storage: no profile files found")
)

// Store persists profiles.
type Store interface {
	Load(ctx context.Context) ([]*profile.Profile, error)
	Save(ctx context.Context, p *profile.Profile) error
	Delete(ctx context.Context, id int64) error
}

// FileStore keeps one YAML file per profile in a single directory.
type FileStore struct {
	dir     string
	pattern glob.Glob
}

func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("storage: init directory %s: %w", dir, err)
	}
	pattern, err := glob.Compile(filePrefix + "*" + fileExtension)
	if err != nil {
		return nil, fmt.Errorf("storage: compile file pattern: %w", err)
	}
	return &FileStore{dir: dir, pattern: pattern}, nil
}

// Dir returns the directory holding the profile files.
func (fs *FileStore) Dir() string {
	return fs.dir
}

// FileName returns the file name used for a profile id.
func FileName(id int64) string {
	return fmt.Sprintf("%s%d%s", filePrefix, id, fileExtension)
}

func (fs *FileStore) pathForID(id int64) string {
	return filepath.Join(fs.dir, FileName(id))
}

// Load reads every profile file in the directory, ordered by id.
// Corrupt or unreadable files are skipped. ErrNoProfiles is returned when
// no usable file exists.
func (fs *FileStore) Load(ctx context.Context) ([]*profile.Profile, error) {
	entries, err := os.ReadDir(fs.dir)
	if err != nil {
		return nil, fmt.Errorf("storage: list %s: %w", fs.dir, err)
	}

	var out []*profile.Profile
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if e.IsDir() || !fs.pattern.Match(e.Name()) {
			continue
		}

		path := filepath.Join(fs.dir, e.Name())
		b, err := os.ReadFile(path)
		if err != nil {
			slog.Debug("storage: skipping unreadable profile file", "path", path, "err", err)
			continue
		}
		p, err := Parse(b)
		if err != nil {
			slog.Debug("storage: skipping corrupt profile file", "path", path, "err", err)
			continue
		}
		out = append(out, p)
	}

	if len(out) == 0 {
		return nil, ErrNoProfiles
	}

	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out, nil
}

// Save writes the profile atomically via a temporary file.
func (fs *FileStore) Save(_ context.Context, p *profile.Profile) error {
	b, err := Serialize(p)
	if err != nil {
		return err
	}

	path := fs.pathForID(p.ID())
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o600); err != nil {
		return fmt.Errorf("storage: write temp file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp) // best-effort cleanup
		return fmt.Errorf("storage: atomic rename %s: %w", path, err)
	}
	return nil
}

// Delete removes the file of the given profile.
func (fs *FileStore) Delete(_ context.Context, id int64) error {
	err := os.Remove(fs.pathForID(id))
	if errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	if err != nil {
		return fmt.Errorf("storage: delete profile %d: %w", id, err)
	}
	return nil
}
