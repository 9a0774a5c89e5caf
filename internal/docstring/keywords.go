package docstring

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

// KeywordTable holds the keyword patterns that classify free-text notes as
// documenting a side-effect class. Matching is a heuristic, not a guarantee:
// it looks for case-insensitive substrings in note text.
type KeywordTable struct {
	IO          []string `toml:"io"`
	GlobalState []string `toml:"global_state"`
}

// DefaultKeywordTable returns the built-in patterns.
func DefaultKeywordTable() *KeywordTable {
	return &KeywordTable{
		IO: []string{
			"file",
			"i/o",
			"side effect",
			"write",
			"read",
			"print",
			"stdout",
			"stderr",
			"stdin",
			"input",
		},
		GlobalState: []string{
			"global",
			"modifies",
			"module-level",
			"shared state",
		},
	}
}

// Fingerprint returns a stable description of the table's patterns, in
// declaration order.
func (t *KeywordTable) Fingerprint() string {
	return "io=" + strings.Join(t.IO, ",") + ";global_state=" + strings.Join(t.GlobalState, ",")
}

// LoadKeywordTable reads a TOML keyword table, merging it over the defaults.
// An empty list in the file keeps the built-in patterns for that class.
func LoadKeywordTable(path string) (*KeywordTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read keyword table: %w", err)
	}

	var loaded KeywordTable
	if err := toml.Unmarshal(data, &loaded); err != nil {
		return nil, fmt.Errorf("failed to parse keyword table %s: %w", path, err)
	}

	table := DefaultKeywordTable()
	if len(loaded.IO) > 0 {
		table.IO = loaded.IO
	}
	if len(loaded.GlobalState) > 0 {
		table.GlobalState = loaded.GlobalState
	}
	return table, nil
}

// Classify returns the note kinds whose patterns match the given note texts.
func (t *KeywordTable) Classify(notes []string) map[NoteKind]bool {
	out := map[NoteKind]bool{}
	for _, note := range notes {
		lower := strings.ToLower(note)
		if matchAny(lower, t.IO) {
			out[NoteIO] = true
		}
		if matchAny(lower, t.GlobalState) {
			out[NoteGlobalState] = true
		}
	}
	return out
}

func matchAny(text string, patterns []string) bool {
	for _, p := range patterns {
		if p != "" && strings.Contains(text, strings.ToLower(p)) {
			return true
		}
	}
	return false
}
