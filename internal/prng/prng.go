// Package prng provides reproducible counter-mode pseudo-random numbers.
//
// Every draw is a pure function of its arguments: the arguments are joined
// into a key, hashed with BLAKE2s, and the 32-byte digest is read as eight
// uint32 values. Independent streams come from distinct arguments, so
// jitter for one stitch never depends on how many numbers another stitch
// consumed:
//
//	noise := prng.NewStream("cross-stitch", color)
//	jitter := noise.Next()*4 - 2
package prng

import (
	"encoding/binary"
	"fmt"
	"math"
	"strings"

	"golang.org/x/crypto/blake2s"
)

// BlockSize is the number of values produced per hash.
const BlockSize = 8

// JoinArgs stringifies args into a slash-separated key.
// JoinArgs(a, JoinArgs(b, c)) == JoinArgs(a, b, c).
func JoinArgs(args ...any) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = fmt.Sprint(a)
	}
	return strings.Join(parts, "/")
}

// UniformInts returns eight uniformly distributed uint32 values determined
// by args.
func UniformInts(args ...any) [BlockSize]uint32 {
	sum := blake2s.Sum256([]byte(JoinArgs(args...)))
	var out [BlockSize]uint32
	for i := range out {
		out[i] = binary.BigEndian.Uint32(sum[i*4:])
	}
	return out
}

// UniformFloats returns eight floats in [0, 1] determined by args.
func UniformFloats(args ...any) [BlockSize]float64 {
	ints := UniformInts(args...)
	var out [BlockSize]float64
	for i, v := range ints {
		out[i] = float64(v) / math.MaxUint32
	}
	return out
}

// Stream is an endless sequence of floats in [0, 1] for one key.
// A Stream is not safe for concurrent use.
type Stream struct {
	seed  string
	block int
	buf   [BlockSize]float64
	pos   int
}

// NewStream returns the stream determined by args.
func NewStream(args ...any) *Stream {
	return &Stream{seed: JoinArgs(args...), pos: BlockSize}
}

// Next returns the next value of the stream.
func (s *Stream) Next() float64 {
	if s.pos == BlockSize {
		s.buf = UniformFloats(s.seed, s.block)
		s.block++
		s.pos = 0
	}
	v := s.buf[s.pos]
	s.pos++
	return v
}
