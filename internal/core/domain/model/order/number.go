package order

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"time"
)

// codeAlphabet is the character set for confirmation codes. Ambiguous glyphs
// (0/O, 1/I) are excluded because customers read the code aloud to couriers.
const codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// codeLength is the confirmation code length.
const codeLength = 4

// GenerateNumber produces a human-readable order number in the form
// DZ-YYYYMMDD-NNN, where NNN is a zero-padded per-day sequence value.
// Uniqueness is enforced by the orders table, not here; on a collision the
// caller retries with the next sequence value.
func GenerateNumber(now time.Time, sequence int) string {
	return fmt.Sprintf("DZ-%s-%03d", now.Format("20060102"), sequence)
}

// GenerateConfirmationCode produces a random 4-character alphanumeric code.
// The customer shares it with the courier at handoff; the delivered
// transition verifies it case-insensitively.
func GenerateConfirmationCode() string {
	var b strings.Builder
	b.Grow(codeLength)
	for range codeLength {
		b.WriteByte(codeAlphabet[rand.IntN(len(codeAlphabet))])
	}
	return b.String()
}

// NormalizeConfirmationCode upper-cases and trims a code for comparison, so
// "ab3x", " AB3X " and "Ab3x" all match the stored "AB3X".
func NormalizeConfirmationCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
