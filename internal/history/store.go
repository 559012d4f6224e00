// Package history lists, reads and deletes saved chat transcripts.
package history

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/tidwall/gjson"

	"github.com/diogo/pawsitive/internal/chat"
	"github.com/diogo/pawsitive/internal/mood"
)

// stampLayout matches the prefix chat.SaveTranscript gives file names
const stampLayout = "20060102-150405"

// Entry describes one saved transcript
type Entry struct {
	ID        string
	Path      string
	Format    chat.ExportFormat
	StartedAt time.Time
	Companion string
	Mood      mood.Mood
	Messages  int
}

// Store manages the transcript directory
type Store struct {
	dir string
	mu  sync.RWMutex
}

// NewStore creates a store over dir, creating it if necessary
func NewStore(dir string) (*Store, error) {
	if dir == "" {
		return nil, fmt.Errorf("transcript directory is not set")
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create transcript directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the transcript directory
func (s *Store) Dir() string {
	return s.dir
}

// List returns every saved transcript, most recent first. Files that were
// not written by SaveTranscript are skipped.
func (s *Store) List() ([]Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	files, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read transcript directory: %w", err)
	}

	var entries []Entry
	for _, f := range files {
		if f.IsDir() {
			continue
		}
		e, ok := parseName(f.Name())
		if !ok {
			continue
		}
		e.Path = filepath.Join(s.dir, f.Name())
		if err := readMeta(&e); err != nil {
			continue
		}
		entries = append(entries, e)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].StartedAt.After(entries[j].StartedAt)
	})
	return entries, nil
}

// Read returns the transcript content
func (s *Store) Read(e Entry) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(e.Path)
	if err != nil {
		return "", fmt.Errorf("failed to read transcript: %w", err)
	}
	return string(data), nil
}

// Delete removes one transcript
func (s *Store) Delete(e Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if filepath.Dir(e.Path) != filepath.Clean(s.dir) {
		return fmt.Errorf("transcript %s is outside %s", e.Path, s.dir)
	}
	if err := os.Remove(e.Path); err != nil {
		return fmt.Errorf("failed to delete transcript: %w", err)
	}
	return nil
}

// parseName splits "<stamp>-<session id>.<ext>"
func parseName(name string) (Entry, bool) {
	ext := filepath.Ext(name)
	var format chat.ExportFormat
	switch ext {
	case chat.ExportFormatMarkdown.Extension():
		format = chat.ExportFormatMarkdown
	case chat.ExportFormatJSON.Extension():
		format = chat.ExportFormatJSON
	default:
		return Entry{}, false
	}

	base := strings.TrimSuffix(name, ext)
	if len(base) <= len(stampLayout)+1 || base[len(stampLayout)] != '-' {
		return Entry{}, false
	}
	started, err := time.ParseInLocation(stampLayout, base[:len(stampLayout)], time.Local)
	if err != nil {
		return Entry{}, false
	}

	return Entry{
		ID:        base[len(stampLayout)+1:],
		Format:    format,
		StartedAt: started,
	}, true
}

// readMeta fills companion, mood and message count from the file header
func readMeta(e *Entry) error {
	if e.Format == chat.ExportFormatJSON {
		data, err := os.ReadFile(e.Path)
		if err != nil {
			return err
		}
		if !gjson.ValidBytes(data) {
			return fmt.Errorf("invalid transcript %s", e.Path)
		}
		doc := gjson.ParseBytes(data)
		e.Companion = doc.Get("companion").String()
		e.Mood = mood.ParseMood(doc.Get("mood").String())
		e.Messages = int(doc.Get("messages.#").Int())
		return nil
	}

	f, err := os.Open(e.Path)
	if err != nil {
		return err
	}
	defer f.Close()

	// Only the header is needed; it ends at the first rule
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case line == "---":
			return nil
		case strings.HasPrefix(line, "# Chat with "):
			e.Companion = strings.TrimPrefix(line, "# Chat with ")
		case strings.HasPrefix(line, "**Mood:** "):
			e.Mood = mood.ParseMood(strings.TrimPrefix(line, "**Mood:** "))
		case strings.HasPrefix(line, "**Messages:** "):
			e.Messages, _ = strconv.Atoi(strings.TrimPrefix(line, "**Messages:** "))
		}
	}
	return scanner.Err()
}
