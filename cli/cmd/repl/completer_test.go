package repl

import (
	"slices"
	"testing"

	"github.com/sahilm/fuzzy"
)

func TestWordBounds(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		cursor    int
		wantWord  string
		wantStart int
		wantEnd   int
	}{
		{"simple", "foo", 3, "foo", 0, 3},
		{"in_substitution", "${si", 4, "si", 2, 4},
		{"dotted_field", "${site.co", 9, "site.co", 2, 9},
		{"after_round", "round(de", 8, "de", 6, 8},
		{"after_comma", "match(a, fo", 11, "fo", 9, 11},
		{"after_question", "exists(a)?fo", 12, "fo", 10, 12},
		{"after_colon", "x:fo", 4, "fo", 2, 4},
		{"empty_at_boundary", "${", 2, "", 2, 2},
		{"mid_word", "${foobar}", 4, "foobar", 2, 8},
		{"cursor_past_end", "ab", 9, "ab", 0, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			word, start, end := wordBounds(tt.input, tt.cursor)
			if word != tt.wantWord || start != tt.wantStart || end != tt.wantEnd {
				t.Errorf("wordBounds(%q, %d) = (%q, %d, %d), want (%q, %d, %d)",
					tt.input, tt.cursor, word, start, end,
					tt.wantWord, tt.wantStart, tt.wantEnd)
			}
		})
	}
}

func TestByteOffset(t *testing.T) {
	tests := []struct {
		input string
		runes int
		want  int
	}{
		{"abc", 0, 0},
		{"abc", 2, 2},
		{"abc", 5, 3},
		{"é${x", 1, 2},
		{"日本${d", 3, 7},
	}

	for _, tt := range tests {
		if got := byteOffset(tt.input, tt.runes); got != tt.want {
			t.Errorf("byteOffset(%q, %d) = %d, want %d", tt.input, tt.runes, got, tt.want)
		}
	}
}

func TestInFieldSlot(t *testing.T) {
	tests := []struct {
		input     string
		wordStart int
		want      bool
	}{
		{"${", 2, true},
		{"x ${", 4, true},
		{"round(", 6, true},
		{"round( ", 7, true},
		{"match(", 6, true},
		{"exists(", 7, true},
		{"plain ", 6, false},
		{"round(a,", 8, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		if got := inFieldSlot(tt.input, tt.wordStart); got != tt.want {
			t.Errorf("inFieldSlot(%q, %d) = %v, want %v",
				tt.input, tt.wordStart, got, tt.want)
		}
	}
}

func TestComputeMatches(t *testing.T) {
	m := testModel(t)

	tests := []struct {
		name  string
		input string
		mode  inputMode
		want  []string
	}{
		{"empty_slot_lists_fields", "${", modeEval, []string{"depth", "geo.lat", "site", "status"}},
		{"fuzzy_field", "${st", modeEval, []string{"status", "site"}},
		{"dotted_field", "exists(geo", modeEval, []string{"geo.lat"}},
		{"call_name", "ro", modeEval, []string{"round"}},
		{"empty_outside_slot", "abc ", modeEval, nil},
		{"ctrl_command", "ne", modeCtrl, []string{"next"}},
		{"ctrl_empty", "", modeCtrl, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m.mode = tt.mode
			m.input.SetValue(tt.input)
			m.input.SetCursor(len(tt.input))

			matches, _, _, _ := m.computeMatches()

			got := make([]string, 0, len(matches))
			for _, match := range matches {
				got = append(got, match.Str)
			}

			if tt.want == nil {
				if len(got) != 0 {
					t.Errorf("matches = %v, want none", got)
				}

				return
			}

			// fuzzy ranks by score; only membership and count are stable.
			slices.Sort(got)
			want := slices.Sorted(slices.Values(tt.want))

			if !slices.Equal(got, want) {
				t.Errorf("matches = %v, want %v", got, want)
			}
		})
	}
}

func TestRenderCandidateBar(t *testing.T) {
	matches := fuzzy.Find("s", []string{"site", "status", "sample", "series"})

	wide := renderCandidateBar(matches, -1, false, 200)
	for _, c := range []string{"site", "status", "sample", "series"} {
		if !containsPlain(wide, c) {
			t.Errorf("wide bar %q missing %q", wide, c)
		}
	}

	narrow := renderCandidateBar(matches, -1, false, 12)
	if !containsPlain(narrow, "...") {
		t.Errorf("narrow bar %q not ellipsized", narrow)
	}

	if got := renderCandidateBar(nil, 0, false, 80); got != "" {
		t.Errorf("empty bar = %q", got)
	}
}
