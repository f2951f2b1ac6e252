// Package library lists directories for the file browser and reads track metadata.
package library

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ParentName is the display name of the entry that leads to the parent directory.
const ParentName = ".."

// AudioExtensions are the file types shown in listings.
var AudioExtensions = []string{"mp3", "flac", "wav", "ogg", "m4a", "opus"}

var ErrNoParent = errors.New("already at filesystem root")

type EntryKind int

const (
	KindParent EntryKind = iota
	KindDir
	KindTrack
)

func (k EntryKind) String() string {
	switch k {
	case KindParent:
		return "PARENT"
	case KindDir:
		return "DIR"
	case KindTrack:
		return "TRACK"
	default:
		return "UNKNOWN"
	}
}

// Entry is one row of a directory listing.
type Entry struct {
	Name string
	Path string
	Kind EntryKind
}

// Playable reports whether the entry is an audio file rather than a directory or parent marker.
func (e Entry) Playable() bool {
	return e.Kind == KindTrack
}

// IsAudioFile reports whether name carries one of AudioExtensions, case-insensitively.
func IsAudioFile(name string) bool {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(name)), ".")
	if ext == "" {
		return false
	}
	for _, e := range AudioExtensions {
		if ext == e {
			return true
		}
	}
	return false
}

// List returns the entries of dir: the parent marker first (unless dir is the
// root), then subdirectories, then audio files, each group sorted by name.
func List(dir string) ([]Entry, error) {
	items, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	var dirs, tracks []Entry
	for _, item := range items {
		path := filepath.Join(dir, item.Name())

		isDir := item.IsDir()
		if item.Type()&os.ModeSymlink != 0 {
			info, err := os.Stat(path)
			if err != nil {
				continue
			}
			isDir = info.IsDir()
		}

		switch {
		case isDir:
			dirs = append(dirs, Entry{Name: item.Name(), Path: path, Kind: KindDir})
		case IsAudioFile(item.Name()):
			tracks = append(tracks, Entry{Name: item.Name(), Path: path, Kind: KindTrack})
		}
	}

	sortByName(dirs)
	sortByName(tracks)

	entries := make([]Entry, 0, len(dirs)+len(tracks)+1)
	if parent := filepath.Dir(dir); parent != dir {
		entries = append(entries, Entry{Name: ParentName, Path: parent, Kind: KindParent})
	}
	entries = append(entries, dirs...)
	entries = append(entries, tracks...)
	return entries, nil
}

func sortByName(entries []Entry) {
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name < entries[j].Name
	})
}
