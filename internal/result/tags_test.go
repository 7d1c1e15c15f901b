package result

import "testing"

func TestMatchTags(t *testing.T) {
	tests := []struct {
		name     string
		expected []string
		used     []string
		want     bool
	}{
		{name: "both empty", expected: nil, used: nil, want: true},
		{name: "empty vs nil", expected: []string{}, used: nil, want: true},
		{name: "identical", expected: []string{"a", "b"}, used: []string{"a", "b"}, want: true},
		{name: "permuted", expected: []string{"a", "b"}, used: []string{"b", "a"}, want: true},
		{name: "missing label", expected: []string{"a", "b"}, used: []string{"a"}, want: false},
		{name: "extra label", expected: []string{"a"}, used: []string{"a", "b"}, want: false},
		{name: "disjoint", expected: []string{"a"}, used: []string{"b"}, want: false},
		{
			// Duplicates must not mask a missing label even though the
			// raw lengths line up.
			name:     "duplicates same length",
			expected: []string{"a", "b"},
			used:     []string{"a", "a"},
			want:     false,
		},
		{name: "duplicates same set", expected: []string{"a", "a"}, used: []string{"a"}, want: true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := MatchTags(tc.expected, tc.used); got != tc.want {
				t.Fatalf("MatchTags(%v, %v) = %v, want %v", tc.expected, tc.used, got, tc.want)
			}
		})
	}
}
