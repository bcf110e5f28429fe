package wishlists

import "testing"

func TestDedupeName(t *testing.T) {
	tests := []struct {
		name      string
		candidate string
		existing  []string
		want      string
	}{
		{
			name:      "free candidate is untouched",
			candidate: "Gift",
			existing:  []string{"Trip", "Books"},
			want:      "Gift",
		},
		{
			name:      "no existing names",
			candidate: "Gift",
			existing:  nil,
			want:      "Gift",
		},
		{
			name:      "first collision appends 1",
			candidate: "Gift",
			existing:  []string{"Gift"},
			want:      "Gift 1",
		},
		{
			name:      "occupied suffixes are skipped",
			candidate: "Gift",
			existing:  []string{"Gift", "Gift 1"},
			want:      "Gift 2",
		},
		{
			name:      "gap in suffixes is reused",
			candidate: "Gift",
			existing:  []string{"Gift", "Gift 2"},
			want:      "Gift 1",
		},
		{
			name:      "suffixed candidate gets its own suffix",
			candidate: "Gift 1",
			existing:  []string{"Gift", "Gift 1"},
			want:      "Gift 1 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := dedupeName(tt.candidate, tt.existing); got != tt.want {
				t.Fatalf("dedupeName(%q, %v) = %q, want %q", tt.candidate, tt.existing, got, tt.want)
			}
		})
	}
}
