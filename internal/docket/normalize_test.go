package docket

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		want      string
		wantError bool
	}{
		{
			name:  "Valid date",
			input: "04/15/2024",
			want:  "2024-04-15",
		},
		{
			name:  "Valid date with surrounding space",
			input: " 12/31/2023 ",
			want:  "2023-12-31",
		},
		{
			name:      "Empty string",
			input:     "",
			wantError: true,
		},
		{
			name:      "ISO format rejected",
			input:     "2024-04-15",
			wantError: true,
		},
		{
			name:      "Month out of range",
			input:     "13/01/2024",
			wantError: true,
		},
		{
			name:      "Garbage",
			input:     "not a date",
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.input)
			if tt.wantError {
				if err == nil {
					t.Errorf("ParseDate(%q) expected error, got %q", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDate(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseDate(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestExtractFiledBy(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "Simple filer",
			input: "MOTION to extend time filed by John Smith. Service date 01/02/2024",
			want:  "John Smith",
		},
		{
			name:  "Parenthetical stripped",
			input: "BRIEF filed by Acme Corp (lead counsel). Pages 30",
			want:  "Acme Corp",
		},
		{
			name:  "No filer",
			input: "ORDER entered",
			want:  "",
		},
		{
			name:  "Filer at end of text",
			input: "NOTICE of appearance by Jane Doe",
			want:  "Jane Doe",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractFiledBy(tt.input, 255); got != tt.want {
				t.Errorf("ExtractFiledBy(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestExtractFiledByTruncates(t *testing.T) {
	long := "MOTION filed by " + strings.Repeat("A", 400) + ". End"
	got := ExtractFiledBy(long, 255)
	if len(got) != 255 {
		t.Errorf("ExtractFiledBy truncated length = %d, want 255", len(got))
	}
}

func TestExtractECF(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "ECF among other brackets",
			input: "MOTION for leave to file [1001734848] [24-2160] AW",
			want:  "1001734848",
		},
		{
			name:  "No brackets",
			input: "no brackets here",
			want:  "",
		},
		{
			name:  "Short bracketed number ignored",
			input: "order [24-2160] entered",
			want:  "",
		},
		{
			name:  "First of multiple runs wins",
			input: "[1001734848] then [1001999999]",
			want:  "1001734848",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractECF(tt.input); got != tt.want {
				t.Errorf("ExtractECF(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestShortenTitle(t *testing.T) {
	tests := []struct {
		name  string
		input string
		max   int
		want  string
	}{
		{
			name:  "Strips bracketed tokens and collapses whitespace",
			input: "MOTION to dismiss [1001734848]  [24-2160]   filed",
			max:   1000,
			want:  "MOTION to dismiss filed",
		},
		{
			name:  "Under limit unchanged",
			input: "ORDER entered",
			max:   1000,
			want:  "ORDER entered",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ShortenTitle(tt.input, tt.max); got != tt.want {
				t.Errorf("ShortenTitle(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestShortenTitleTruncation(t *testing.T) {
	long := strings.Repeat("x", 600)
	got := ShortenTitle(long, 500)
	if len(got) != 500 {
		t.Errorf("ShortenTitle length = %d, want 500", len(got))
	}
	if !strings.HasSuffix(got, "...") {
		t.Errorf("ShortenTitle should end with ellipsis marker, got %q", got[len(got)-10:])
	}
}

func TestShortenTitleMultibyteSafe(t *testing.T) {
	long := strings.Repeat("é", 300) // two bytes per rune
	got := ShortenTitle(long, 100)
	if len(got) > 100 {
		t.Errorf("ShortenTitle length = %d, want <= 100", len(got))
	}
	if !utf8.ValidString(got) {
		t.Errorf("ShortenTitle split a rune: %q", got)
	}
	if !strings.HasSuffix(got, "...") {
		t.Errorf("ShortenTitle should end with ellipsis marker")
	}
}

func TestExtractFiledByMultibyteSafe(t *testing.T) {
	text := "MOTION filed by " + strings.Repeat("ü", 200) + ". End"
	got := ExtractFiledBy(text, 255)
	if len(got) > 255 {
		t.Errorf("ExtractFiledBy length = %d, want <= 255", len(got))
	}
	if !utf8.ValidString(got) {
		t.Errorf("ExtractFiledBy split a rune: %q", got)
	}
}

func TestPartyTypeFor(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{name: "ACME INC", want: PartyCorporation},
		{name: "Downtown Athletic Club", want: PartyCorporation},
		{name: "John Smith", want: PartyIndividual},
		{name: "incorporated lowercase inc", want: PartyCorporation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PartyTypeFor(tt.name); got != tt.want {
				t.Errorf("PartyTypeFor(%q) = %q, want %q", tt.name, got, tt.want)
			}
		})
	}
}

func TestSynthesizeEmail(t *testing.T) {
	got := SynthesizeEmail("Jane Doe", "law.example.com")
	want := "jane.doe@law.example.com"
	if got != want {
		t.Errorf("SynthesizeEmail = %q, want %q", got, want)
	}

	// Repeated calls must produce the same key.
	if again := SynthesizeEmail("Jane Doe", "law.example.com"); again != got {
		t.Errorf("SynthesizeEmail not deterministic: %q vs %q", got, again)
	}
}

func TestNormalizeEventNullsBadDate(t *testing.T) {
	n := NewNormalizer(DefaultClassifier(), 1000, 255)

	entry, errs := n.NormalizeEvent(3, Event{
		DateFiled: "31/31/2024",
		Text:      "MOTION to seal filed by Jane Doe. [1001734848]",
	})

	if len(errs) != 1 {
		t.Fatalf("expected 1 field error, got %d", len(errs))
	}
	if entry.DateFiled != nil {
		t.Errorf("DateFiled should be nil on parse failure, got %q", *entry.DateFiled)
	}
	if entry.SequenceNumber != 3 {
		t.Errorf("SequenceNumber = %d, want 3", entry.SequenceNumber)
	}
	if entry.Type != "Motion" {
		t.Errorf("Type = %q, want Motion", entry.Type)
	}
	if entry.FiledBy == nil || *entry.FiledBy != "Jane Doe" {
		t.Errorf("FiledBy = %v, want Jane Doe", entry.FiledBy)
	}
	if entry.ECFNumber == nil || *entry.ECFNumber != "1001734848" {
		t.Errorf("ECFNumber = %v, want 1001734848", entry.ECFNumber)
	}
}
