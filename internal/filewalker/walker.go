package filewalker

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"
)

// Default naming convention of message bundles.
const (
	DefaultPrefix = "messages_"
	DefaultSuffix = ".properties"
)

// Walker finds translation files in a single directory.
type Walker struct {
	prefix string
	suffix string
}

// NewWalker creates a Walker matching file names by prefix and suffix.
func NewWalker(prefix, suffix string) *Walker {
	return &Walker{prefix: prefix, suffix: suffix}
}

// FileEntry represents a discovered file ready for processing.
type FileEntry struct {
	Path string
	Name string
}

// Match reports whether name follows the walker's naming convention.
func (w *Walker) Match(name string) bool {
	return strings.HasPrefix(name, w.prefix) && strings.HasSuffix(name, w.suffix)
}

// Walk lists the files directly inside dir whose names match, except
// exclude. Subdirectories are not entered. Entries are sorted by name.
func (w *Walker) Walk(dir, exclude string) ([]FileEntry, error) {
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("list directory: %w", err)
	}

	var entries []FileEntry
	for _, de := range dirEntries {
		name := de.Name()
		if de.IsDir() || name == exclude || !w.Match(name) {
			continue
		}
		entries = append(entries, FileEntry{
			Path: filepath.Join(dir, name),
			Name: name,
		})
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })

	log.Debug().Int("count", len(entries)).Str("dir", dir).Msg("Discovered translation files")
	return entries, nil
}
