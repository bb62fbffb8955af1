package engine

import (
	"crypto/hmac"
	"crypto/sha256"
	"strconv"
)

// ByteGenerator streams deterministic bytes for one (seed, context, index)
// derivation using HMAC-SHA256: the seed keys the MAC, "{context}-{index}"
// plus a round counter forms the message. It exists as the drop-in stronger
// mixer behind the same derivation contract as Derive; the default resolver
// stack does not use it.
type ByteGenerator struct {
	seed    string
	message string
	round   uint64
	pos     int
	buffer  [32]byte
}

// NewByteGenerator creates a generator for the given derivation inputs.
// The seed string is used as the HMAC key verbatim, without hex decoding.
func NewByteGenerator(seed, context string, index int) *ByteGenerator {
	if context == "" {
		context = DefaultContext
	}
	if index < 0 {
		index = 0
	}
	bg := &ByteGenerator{
		seed:    seed,
		message: context + "-" + strconv.Itoa(index),
	}
	bg.generateRound()
	return bg
}

// Next returns the next byte of the stream, rolling over to a new HMAC
// round every 32 bytes.
func (bg *ByteGenerator) Next() byte {
	if bg.pos >= len(bg.buffer) {
		bg.round++
		bg.pos = 0
		bg.generateRound()
	}
	b := bg.buffer[bg.pos]
	bg.pos++
	return b
}

// NextFloat consumes four bytes and maps them into the open unit interval.
func (bg *ByteGenerator) NextFloat() float64 {
	result := 0.0
	divider := 1.0
	for i := 0; i < 4; i++ {
		divider *= 256
		result += float64(bg.Next()) / divider
	}
	if result < minDerived {
		return minDerived
	}
	if result > maxDerived {
		return maxDerived
	}
	return result
}

func (bg *ByteGenerator) generateRound() {
	h := hmac.New(sha256.New, []byte(bg.seed))
	h.Write([]byte(bg.message + ":" + strconv.FormatUint(bg.round, 10)))
	copy(bg.buffer[:], h.Sum(nil))
}

// HMACDerive is the keyed-hash counterpart of Derive: same signature, same
// contract (determinism, totality, open-interval range), HMAC-SHA256 mixing
// internals.
func HMACDerive(seed, context string, index int) float64 {
	return NewByteGenerator(seed, context, index).NextFloat()
}
