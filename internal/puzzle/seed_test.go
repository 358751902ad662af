package puzzle

import (
	"errors"
	"strings"
	"testing"

	"github.com/slidery/slidery/internal/config"
)

func TestSeed_StringRoundtrip(t *testing.T) {
	seed, err := NewSeed()
	if err != nil {
		t.Fatalf("NewSeed error = %v", err)
	}

	enc := seed.String()
	if len(enc) != 44 {
		t.Errorf("expected 44-char encoding, got %d: %q", len(enc), enc)
	}

	parsed, err := ParseSeed(enc)
	if err != nil {
		t.Fatalf("ParseSeed error = %v", err)
	}
	if parsed != seed {
		t.Error("seed did not roundtrip through String/ParseSeed")
	}
}

func TestSeed_Format(t *testing.T) {
	seed := Seed{0xAB}
	formatted := seed.Format()

	lines := strings.Split(formatted, "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d: %q", len(lines), formatted)
	}
	for i, line := range lines {
		if len(line) != 11 {
			t.Errorf("line %d has length %d, want 11: %q", i, len(line), line)
		}
	}

	// Format output must parse back to the same seed.
	parsed, err := ParseSeed(formatted)
	if err != nil {
		t.Fatalf("ParseSeed(formatted) error = %v", err)
	}
	if parsed != seed {
		t.Error("seed did not roundtrip through Format/ParseSeed")
	}
}

func TestParseSeed_Unpadded(t *testing.T) {
	seed := Seed{1, 2, 3}
	unpadded := strings.TrimRight(seed.String(), "=")

	parsed, err := ParseSeed(unpadded)
	if err != nil {
		t.Fatalf("ParseSeed(unpadded) error = %v", err)
	}
	if parsed != seed {
		t.Error("unpadded seed did not roundtrip")
	}
}

func TestParseSeed_Invalid(t *testing.T) {
	tests := []string{
		"",
		"not base64 at all!!!",
		"AAAA",                // too short
		strings.Repeat("A", 88) + "==", // too long
	}

	for _, input := range tests {
		if _, err := ParseSeed(input); !errors.Is(err, config.ErrInvalidSeed) {
			t.Errorf("ParseSeed(%q) error = %v, want ErrInvalidSeed", input, err)
		}
	}
}

func TestSeed_PhraseRoundtrip(t *testing.T) {
	seed, err := NewSeed()
	if err != nil {
		t.Fatalf("NewSeed error = %v", err)
	}

	phrase, err := seed.Phrase()
	if err != nil {
		t.Fatalf("Phrase error = %v", err)
	}
	if words := strings.Fields(phrase); len(words) != 24 {
		t.Errorf("expected 24-word phrase, got %d words", len(words))
	}

	parsed, err := ParsePhrase(phrase)
	if err != nil {
		t.Fatalf("ParsePhrase error = %v", err)
	}
	if parsed != seed {
		t.Error("seed did not roundtrip through Phrase/ParsePhrase")
	}
}

func TestParsePhrase_Invalid(t *testing.T) {
	tests := []string{
		"",
		"abandon abandon abandon",
		"definitely not a bip39 word list at all sorry please try again later ok",
	}

	for _, input := range tests {
		if _, err := ParsePhrase(input); !errors.Is(err, config.ErrInvalidSeed) {
			t.Errorf("ParsePhrase(%q) error = %v, want ErrInvalidSeed", input, err)
		}
	}
}
