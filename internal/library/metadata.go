package library

import (
	"fmt"
	"os"
	"strings"

	"github.com/dhowden/tag"
)

// Metadata is the subset of embedded tags shown by the player.
type Metadata struct {
	Title  string
	Artist string
	Album  string
}

// DisplayName returns "Artist - Title", just the title, or "" when untagged.
func (m Metadata) DisplayName() string {
	title := strings.TrimSpace(m.Title)
	artist := strings.TrimSpace(m.Artist)

	if artist != "" && title != "" {
		return fmt.Sprintf("%s - %s", artist, title)
	}
	return title
}

// ReadMetadata reads embedded tags (ID3, FLAC/Vorbis comments, MP4) from path.
func ReadMetadata(path string) (Metadata, error) {
	f, err := os.Open(path)
	if err != nil {
		return Metadata{}, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		return Metadata{}, fmt.Errorf("failed to read tags: %w", err)
	}

	return Metadata{
		Title:  m.Title(),
		Artist: m.Artist(),
		Album:  m.Album(),
	}, nil
}

// TrackName returns the tag display name for entry, falling back to the file name.
func TrackName(entry Entry) string {
	if meta, err := ReadMetadata(entry.Path); err == nil {
		if name := meta.DisplayName(); name != "" {
			return name
		}
	}
	return entry.Name
}
