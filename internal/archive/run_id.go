package archive

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"time"
)

// Archive run IDs sort lexicographically by submission time: a fixed
// prefix, a UTC timestamp, and a random suffix to keep same-second
// submissions distinct.
const (
	runIDPrefix      = "run-"
	runIDTimeLayout  = "20060102T150405Z"
	runIDSuffixBytes = 6
)

// NewRunID produces an archive run ID for the current time.
func NewRunID() (string, error) {
	return NewRunIDWithRand(time.Now().UTC(), rand.Reader)
}

// NewRunIDWithRand is NewRunID with injectable time and randomness.
func NewRunIDWithRand(now time.Time, r io.Reader) (string, error) {
	if r == nil {
		return "", fmt.Errorf("random reader is nil")
	}
	buf := make([]byte, runIDSuffixBytes)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}
	return FormatRunID(now, hex.EncodeToString(buf)), nil
}

// FormatRunID renders a run ID from its parts.
func FormatRunID(now time.Time, suffix string) string {
	return runIDPrefix + now.UTC().Format(runIDTimeLayout) + "-" + suffix
}
