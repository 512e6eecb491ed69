package report

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

const previousDir = ".previous"

// Staging collects a run's output files in a hidden directory inside the
// destination. Publish moves them into place as a unit; Discard drops them.
type Staging struct {
	dir    string
	tmp    string
	names  []string
	rename func(oldpath, newpath string) error
}

// Stage creates dir if needed and a fresh staging directory inside it.
func Stage(dir string) (*Staging, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	tmp, err := os.MkdirTemp(dir, ".staging-*")
	if err != nil {
		return nil, fmt.Errorf("create staging dir: %w", err)
	}
	return &Staging{dir: dir, tmp: tmp, rename: os.Rename}, nil
}

// Dir returns the staging directory. Files written here must be registered
// with Add to be published.
func (s *Staging) Dir() string { return s.tmp }

// Path returns the staged path of name.
func (s *Staging) Path(name string) string { return filepath.Join(s.tmp, name) }

// Add registers a file already written to the staging directory.
func (s *Staging) Add(name string) { s.names = append(s.names, name) }

// Names returns the registered file names in registration order.
func (s *Staging) Names() []string {
	return append([]string(nil), s.names...)
}

type placed struct {
	name    string
	backup  string
	visible bool
}

// Publish moves every staged file into the destination. Files it replaces
// are kept aside until all renames succeed; if any rename fails the
// destination is put back the way it was.
func (s *Staging) Publish() ([]string, error) {
	prev := filepath.Join(s.tmp, previousDir)
	if err := os.Mkdir(prev, 0o755); err != nil {
		return nil, fmt.Errorf("create backup dir: %w", err)
	}

	done := make([]placed, 0, len(s.names))
	for _, name := range s.names {
		dst := filepath.Join(s.dir, name)
		p := placed{name: name}

		if _, err := os.Lstat(dst); err == nil {
			p.backup = filepath.Join(prev, name)
			if err := s.rename(dst, p.backup); err != nil {
				s.restore(done)
				return nil, fmt.Errorf("set aside %s: %w", name, err)
			}
		} else if !errors.Is(err, os.ErrNotExist) {
			s.restore(done)
			return nil, fmt.Errorf("stat %s: %w", name, err)
		}
		done = append(done, p)

		if err := s.rename(s.Path(name), dst); err != nil {
			s.restore(done)
			return nil, fmt.Errorf("publish %s: %w", name, err)
		}
		done[len(done)-1].visible = true
	}

	s.Discard()
	return s.Names(), nil
}

// restore undoes a partial Publish in reverse order.
func (s *Staging) restore(done []placed) {
	for i := len(done) - 1; i >= 0; i-- {
		p := done[i]
		dst := filepath.Join(s.dir, p.name)
		if p.visible {
			os.Remove(dst)
		}
		if p.backup != "" {
			os.Rename(p.backup, dst)
		}
	}
}

// Discard removes the staging directory and everything left in it. It is
// safe to call after Publish.
func (s *Staging) Discard() error {
	return os.RemoveAll(s.tmp)
}
