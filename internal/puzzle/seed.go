package puzzle

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"strings"

	bip39 "github.com/tyler-smith/go-bip39"

	"github.com/slidery/slidery/internal/config"
)

// SeedSize is the number of entropy bytes behind every shuffle.
const SeedSize = 32

// seedLineLen is the line width used by Format for display.
const seedLineLen = 11

// Seed is the full entropy for a deterministic shuffle. Equal seeds produce
// equal boards for a given shape, across runs and platforms.
type Seed [SeedSize]byte

// NewSeed returns a fresh random seed.
func NewSeed() (Seed, error) {
	var s Seed
	if _, err := rand.Read(s[:]); err != nil {
		return Seed{}, fmt.Errorf("failed to read seed entropy: %w", err)
	}
	return s, nil
}

// String returns the padded URL-safe base64 form (44 characters).
func (s Seed) String() string {
	return base64.URLEncoding.EncodeToString(s[:])
}

// Format returns the display form: the base64 string broken into 11-character
// lines, matching how the seed is shown in the frontend dev panel.
func (s Seed) Format() string {
	enc := s.String()
	var b strings.Builder
	for i := 0; i < len(enc); i += seedLineLen {
		if i > 0 {
			b.WriteByte('\n')
		}
		end := min(i+seedLineLen, len(enc))
		b.WriteString(enc[i:end])
	}
	return b.String()
}

// Phrase returns the seed as a 24-word BIP-39 mnemonic for human-friendly sharing.
func (s Seed) Phrase() (string, error) {
	phrase, err := bip39.NewMnemonic(s[:])
	if err != nil {
		return "", fmt.Errorf("failed to build seed phrase: %w", err)
	}
	return phrase, nil
}

// ParseSeed decodes a seed from its base64 form. Whitespace and line breaks
// are ignored, and both padded and unpadded encodings are accepted.
func ParseSeed(input string) (Seed, error) {
	compact := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\n', '\r', '\t':
			return -1
		}
		return r
	}, input)

	enc := base64.URLEncoding
	if !strings.HasSuffix(compact, "=") {
		enc = base64.RawURLEncoding
	}

	raw, err := enc.DecodeString(compact)
	if err != nil {
		return Seed{}, fmt.Errorf("%w: %v", config.ErrInvalidSeed, err)
	}
	if len(raw) != SeedSize {
		return Seed{}, fmt.Errorf("%w: expected %d bytes, got %d", config.ErrInvalidSeed, SeedSize, len(raw))
	}

	var s Seed
	copy(s[:], raw)
	return s, nil
}

// ParsePhrase decodes a seed from its 24-word BIP-39 mnemonic form.
func ParsePhrase(phrase string) (Seed, error) {
	entropy, err := bip39.EntropyFromMnemonic(strings.TrimSpace(phrase))
	if err != nil {
		return Seed{}, fmt.Errorf("%w: %v", config.ErrInvalidSeed, err)
	}
	if len(entropy) != SeedSize {
		return Seed{}, fmt.Errorf("%w: phrase must encode %d bytes, got %d", config.ErrInvalidSeed, SeedSize, len(entropy))
	}

	var s Seed
	copy(s[:], entropy)
	return s, nil
}
