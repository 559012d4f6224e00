package history

import (
	"fmt"
	"strconv"
	"strings"
)

// Resolver resolves user-friendly references to saved transcripts
type Resolver struct {
	store *Store
}

// NewResolver creates a new reference resolver
func NewResolver(store *Store) *Resolver {
	return &Resolver{store: store}
}

// Resolve converts a user-friendly reference to a transcript
//
// Supported references:
//   - "@last" - most recent transcript
//   - "@first" - oldest transcript
//   - "1", "2", "3" - by index (1-based, from most recent)
//   - session id, or a unique prefix of it
func (r *Resolver) Resolve(ref string) (Entry, error) {
	ref = strings.TrimSpace(ref)

	if ref == "" {
		return Entry{}, fmt.Errorf("empty reference")
	}

	entries, err := r.store.List()
	if err != nil {
		return Entry{}, err
	}

	if len(entries) == 0 {
		return Entry{}, fmt.Errorf("no saved transcripts in %s", r.store.Dir())
	}

	// Handle special aliases
	switch strings.ToLower(ref) {
	case "@last":
		return entries[0], nil
	case "@first":
		return entries[len(entries)-1], nil
	}

	// Handle numeric index (1-based)
	if index, err := strconv.Atoi(ref); err == nil {
		if index < 1 || index > len(entries) {
			return Entry{}, fmt.Errorf("index %d out of range (1-%d)", index, len(entries))
		}
		return entries[index-1], nil
	}

	var matches []Entry
	for _, e := range entries {
		if e.ID == ref {
			return e, nil
		}
		if strings.HasPrefix(e.ID, ref) {
			matches = append(matches, e)
		}
	}

	switch len(matches) {
	case 0:
		return Entry{}, fmt.Errorf("no transcript matching '%s'", ref)
	case 1:
		return matches[0], nil
	default:
		var ids []string
		for _, m := range matches {
			ids = append(ids, m.ID)
		}
		return Entry{}, fmt.Errorf("multiple transcripts match '%s': %s. Use a longer id",
			ref, strings.Join(ids, ", "))
	}
}

// ListAliases returns information about supported references
func ListAliases() string {
	return `Supported references:
  @last          Most recent transcript
  @first         Oldest transcript
  1, 2, 3        By index (1-based, from most recent)
  3f2a...        Session id or a unique prefix of it`
}
