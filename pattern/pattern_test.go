package pattern_test

import (
	"errors"
	"testing"

	"github.com/uldane/microhook/pattern"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		wantErr error
		wantLen int
	}{
		{
			name:    "literal-and-wildcards",
			in:      "50 51 52 8B CE E8 ?? ?? ?? ?? 5E 5D C2 0C 00",
			wantLen: 15,
		},
		{
			name:    "single-question-mark",
			in:      "E8 ? ? ? ?",
			wantLen: 5,
		},
		{
			name:    "empty",
			in:      "   ",
			wantErr: pattern.ErrEmptyPattern,
		},
		{
			name:    "all-wildcards",
			in:      "?? ?? ??",
			wantErr: pattern.ErrNonDiscriminating,
		},
		{
			name:    "bad-token",
			in:      "50 XY",
			wantErr: pattern.ErrBadToken,
		},
		{
			name:    "token-too-wide",
			in:      "1FF",
			wantErr: pattern.ErrBadToken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pat, err := pattern.Parse(tt.in)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Parse(%q) error = %v, want %v", tt.in, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse(%q) unexpected error: %v", tt.in, err)
			}
			if len(pat) != tt.wantLen {
				t.Fatalf("Parse(%q) length = %d, want %d", tt.in, len(pat), tt.wantLen)
			}
		})
	}
}

func TestParseRoundTrip(t *testing.T) {
	in := "50 51 ?? 8B CE E8 ?? ?? ?? ?? 5E"
	pat, err := pattern.Parse(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := pat.String(); got != in {
		t.Fatalf("String() = %q, want %q", got, in)
	}
}

func TestExact(t *testing.T) {
	pat, err := pattern.Exact([]byte{0x8B, 0xCE})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !pat.MatchAt([]byte{0x8B, 0xCE}, 0) {
		t.Fatal("exact pattern did not match its own bytes")
	}
	if _, err := pattern.Exact(nil); !errors.Is(err, pattern.ErrEmptyPattern) {
		t.Fatalf("Exact(nil) error = %v, want ErrEmptyPattern", err)
	}
}

func TestMask(t *testing.T) {
	pat, err := pattern.Mask([]byte{0xE8, 0x00, 0x00}, []byte{1, 0, 0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !pat.MatchAt([]byte{0xE8, 0xAB, 0xCD}, 0) {
		t.Fatal("masked positions should match any byte")
	}
	if pat.MatchAt([]byte{0xE9, 0xAB, 0xCD}, 0) {
		t.Fatal("literal position must still discriminate")
	}

	if _, err := pattern.Mask([]byte{0xE8}, []byte{1, 1}); !errors.Is(err, pattern.ErrLengthMismatch) {
		t.Fatalf("length mismatch error = %v", err)
	}
	if _, err := pattern.Mask([]byte{0xE8, 0x00}, []byte{0, 0}); !errors.Is(err, pattern.ErrNonDiscriminating) {
		t.Fatalf("all-wildcard mask error = %v", err)
	}
}

func TestMatchAt(t *testing.T) {
	pat, err := pattern.Parse("51 ?? 53")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	buf := []byte{0x50, 0x51, 0x52, 0x53, 0x54}

	if !pat.MatchAt(buf, 1) {
		t.Fatal("expected match at offset 1")
	}
	if pat.MatchAt(buf, 0) {
		t.Fatal("unexpected match at offset 0")
	}
	if pat.MatchAt(buf, 3) {
		t.Fatal("match may not run past the buffer")
	}
	if pat.MatchAt(buf, -1) {
		t.Fatal("negative offsets never match")
	}
}
