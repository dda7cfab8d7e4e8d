package tags

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
)

// ErrMalformedTag is returned for a line that is not key=value.
var ErrMalformedTag = errors.New("tag must be key=value")

// Sheet is a line oriented tag editor: one key=value pair per line.
type Sheet struct {
	tags map[string]string
}

// NewSheet starts a sheet from a copy of initial.
func NewSheet(initial map[string]string) *Sheet {
	s := &Sheet{tags: make(map[string]string, len(initial))}
	maps.Copy(s.tags, initial)
	return s
}

// Tags returns a copy of the edited mapping.
func (s *Sheet) Tags() map[string]string { return maps.Clone(s.tags) }

// Set stores value under key.
func (s *Sheet) Set(key, value string) { s.tags[key] = value }

// Delete removes key.
func (s *Sheet) Delete(key string) { delete(s.tags, key) }

// Keys returns the keys in sorted order.
func (s *Sheet) Keys() []string { return slices.Sorted(maps.Keys(s.tags)) }

// Apply edits the sheet from one line. "key=value" sets, "key=" deletes.
func (s *Sheet) Apply(line string) error {
	k, v, ok := strings.Cut(line, "=")
	k = strings.TrimSpace(k)
	if !ok || k == "" {
		return fmt.Errorf("%q: %w", line, ErrMalformedTag)
	}
	v = strings.TrimSpace(v)
	if v == "" {
		s.Delete(k)
		return nil
	}
	s.Set(k, v)
	return nil
}

// ApplyText applies every non-blank line of text, stopping at the first
// malformed one.
func (s *Sheet) ApplyText(text string) error {
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" || strings.HasPrefix(strings.TrimSpace(line), "#") {
			continue
		}
		if err := s.Apply(line); err != nil {
			return err
		}
	}
	return nil
}

// String renders the sheet as sorted key=value lines.
func (s *Sheet) String() string {
	var sb strings.Builder
	for _, k := range s.Keys() {
		fmt.Fprintf(&sb, "%s=%s\n", k, s.tags[k])
	}
	return sb.String()
}
