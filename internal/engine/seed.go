package engine

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"time"
)

// SeedLength is the length of a generated master seed in hex characters.
const SeedLength = 64

// NewSeed produces a fresh high-entropy master seed, hex-encoded.
//
// This is the only place true randomness enters the system: 32 bytes from
// the OS entropy source mixed with the current nanosecond timestamp and
// hashed with SHA-256. Everything downstream of the returned seed is
// deterministic.
func NewSeed() (string, error) {
	var entropy [32]byte
	if _, err := rand.Read(entropy[:]); err != nil {
		return "", fmt.Errorf("read entropy: %w", err)
	}

	var ts [8]byte
	binary.BigEndian.PutUint64(ts[:], uint64(time.Now().UnixNano()))

	h := sha256.New()
	h.Write(entropy[:])
	h.Write(ts[:])
	return hex.EncodeToString(h.Sum(nil)), nil
}
