package library

import (
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog/log"
)

// Browser tracks the directory currently shown and its entries.
type Browser struct {
	dir     string
	entries []Entry
}

// NewBrowser opens dir. The path is made absolute so parent navigation works
// from relative starting points.
func NewBrowser(dir string) (*Browser, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", dir, err)
	}

	entries, err := List(abs)
	if err != nil {
		return nil, err
	}

	return &Browser{dir: abs, entries: entries}, nil
}

func (b *Browser) Dir() string {
	return b.dir
}

// Entries returns a copy of the current listing.
func (b *Browser) Entries() []Entry {
	out := make([]Entry, len(b.entries))
	copy(out, b.entries)
	return out
}

// Entry returns the entry at index.
func (b *Browser) Entry(index int) (Entry, bool) {
	if index < 0 || index >= len(b.entries) {
		return Entry{}, false
	}
	return b.entries[index], true
}

// Enter navigates into the directory or parent marker at index. On failure
// the previous directory and listing are kept.
func (b *Browser) Enter(index int) error {
	entry, ok := b.Entry(index)
	if !ok {
		return fmt.Errorf("no entry at index %d", index)
	}

	switch entry.Kind {
	case KindParent:
		return b.Up()
	case KindDir:
		return b.ChangeDir(entry.Path)
	default:
		return fmt.Errorf("%s is not a directory", entry.Name)
	}
}

// Up moves to the parent directory.
func (b *Browser) Up() error {
	parent := filepath.Dir(b.dir)
	if parent == b.dir {
		return ErrNoParent
	}
	return b.ChangeDir(parent)
}

// ChangeDir replaces the listing with the contents of dir.
func (b *Browser) ChangeDir(dir string) error {
	entries, err := List(dir)
	if err != nil {
		log.Warn().Err(err).Str("dir", dir).Msg("Directory listing failed")
		return err
	}

	log.Debug().Msgf("Entered %s (%d entries)", dir, len(entries))
	b.dir = dir
	b.entries = entries
	return nil
}

// Reload re-reads the current directory.
func (b *Browser) Reload() error {
	return b.ChangeDir(b.dir)
}
