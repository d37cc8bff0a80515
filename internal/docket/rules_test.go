package docket

import (
	"os"
	"path/filepath"
	"testing"
)

func TestClassifyOrdering(t *testing.T) {
	c := DefaultClassifier()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "Motion precedes Order",
			input: "Motion for Order to Show Cause",
			want:  "Motion",
		},
		{
			name:  "Certificate of Service precedes Motion",
			input: "Certificate of Service of Motion",
			want:  "Certificate",
		},
		{
			name:  "Cert of Service abbreviation",
			input: "CERT OF SERVICE for brief",
			want:  "Certificate",
		},
		{
			name:  "Opposition maps to Response",
			input: "OPPOSITION to petition",
			want:  "Response",
		},
		{
			name:  "Memorandum maps to Brief",
			input: "Memorandum in support",
			want:  "Brief",
		},
		{
			name:  "Docketing statement",
			input: "DOCKETING STATEMENT filed",
			want:  "Statement",
		},
		{
			name:  "Case insensitive",
			input: "transcript of proceedings",
			want:  "Transcript",
		},
		{
			name:  "No match falls back to Filing",
			input: "Letter from the clerk",
			want:  "Filing",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.Classify(tt.input); got != tt.want {
				t.Errorf("Classify(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestLoadClassifierFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	content := `rules:
  - type: Sanction
    keywords: ["SANCTION"]
  - type: Motion
    keywords: ["MOTION"]
default: Misc
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write rules file: %v", err)
	}

	c, err := LoadClassifier(path)
	if err != nil {
		t.Fatalf("LoadClassifier failed: %v", err)
	}

	if got := c.Classify("motion for sanctions"); got != "Sanction" {
		t.Errorf("Classify = %q, want Sanction (file rule order)", got)
	}
	if got := c.Classify("letter"); got != "Misc" {
		t.Errorf("Classify fallback = %q, want Misc", got)
	}
}

func TestLoadClassifierEmptyPath(t *testing.T) {
	c, err := LoadClassifier("")
	if err != nil {
		t.Fatalf("LoadClassifier(\"\") failed: %v", err)
	}
	if got := c.Classify("MOTION"); got != "Motion" {
		t.Errorf("default classifier Classify = %q, want Motion", got)
	}
}

func TestLoadClassifierRejectsEmptyRules(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	if err := os.WriteFile(path, []byte("default: Filing\n"), 0644); err != nil {
		t.Fatalf("failed to write rules file: %v", err)
	}
	if _, err := LoadClassifier(path); err == nil {
		t.Error("expected error for rules file with no rules")
	}
}
