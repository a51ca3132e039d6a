// Package navbits packs and unpacks fixed-width and scaled numeric fields
// into a flat, MSB-first bit sequence representing a GNSS navigation message.
//
// A Buffer is assembled by successive Append calls, then read back with the
// Unpack family. Bit 0 is the most significant, first-transmitted bit. The
// codec knows nothing about any particular message layout; callers describe
// each field as start bit, width, scale or power-of-two exponent, and
// signedness.
//
// A Buffer carries no internal locking. Concurrent reads are safe only while
// no mutation (Append*, Patch*, Invert, ResetBitsUsed, ImportText) is in
// flight.
package navbits

import (
	"time"

	"github.com/gnsskit/navpack"
)

// DefaultCapacity is the bit capacity of buffers made by New. 900 bits covers
// the longest navigation message subframes in common use.
const DefaultCapacity = 900

const wordBits = 32

// Buffer is a fixed-capacity navigation message bit store plus the metadata
// identifying where the message came from.
//
// Storage is 32-bit words, big-endian within each word: bit position p lives
// at bit 31-(p%32) of word p/32.
type Buffer struct {
	words    []uint32
	capBits  int
	bitsUsed int

	sat    navpack.SatelliteID
	obs    navpack.ObservationID
	nav    navpack.NavType
	rx     string
	xmit   time.Time
	parity navpack.ParityStatus
}

// New creates an empty buffer with DefaultCapacity bits.
func New() *Buffer {
	return NewWithCapacity(DefaultCapacity)
}

// NewWithCapacity creates an empty buffer holding up to capBits bits.
func NewWithCapacity(capBits int) *Buffer {
	if capBits < 1 {
		panic("navbits: capacity must be positive")
	}

	return &Buffer{capBits: capBits}
}

// NewWithMetadata creates an empty buffer pre-tagged with the identifiers a
// collector knows before the first bit arrives.
func NewWithMetadata(
	sat navpack.SatelliteID,
	obs navpack.ObservationID,
	nav navpack.NavType,
	rx string,
	xmit time.Time,
) *Buffer {
	b := New()
	b.sat = sat
	b.obs = obs
	b.nav = nav
	b.rx = rx
	b.xmit = xmit

	return b
}

// Clone returns a deep copy sharing no storage with the original.
func (b *Buffer) Clone() *Buffer {
	out := *b
	out.words = make([]uint32, wordsFor(b.bitsUsed))
	copy(out.words, b.words)

	return &out
}

// Len returns the number of logically valid bits.
func (b *Buffer) Len() int { return b.bitsUsed }

// Cap returns the total bit capacity.
func (b *Buffer) Cap() int { return b.capBits }

// SatelliteID returns the satellite identifier.
func (b *Buffer) SatelliteID() navpack.SatelliteID { return b.sat }

// SetSatelliteID sets the satellite identifier.
func (b *Buffer) SetSatelliteID(sat navpack.SatelliteID) { b.sat = sat }

// ObservationID returns the signal the message was collected from.
func (b *Buffer) ObservationID() navpack.ObservationID { return b.obs }

// SetObservationID sets the signal the message was collected from.
func (b *Buffer) SetObservationID(obs navpack.ObservationID) { b.obs = obs }

// NavType returns the navigation message format.
func (b *Buffer) NavType() navpack.NavType { return b.nav }

// SetNavType sets the navigation message format.
func (b *Buffer) SetNavType(nav navpack.NavType) { b.nav = nav }

// SourceLabel returns the receiver or source tag, empty by default.
func (b *Buffer) SourceLabel() string { return b.rx }

// SetSourceLabel sets the receiver or source tag.
func (b *Buffer) SetSourceLabel(rx string) { b.rx = rx }

// TransmitTime returns the message transmit timestamp.
func (b *Buffer) TransmitTime() time.Time { return b.xmit }

// SetTransmitTime sets the message transmit timestamp.
func (b *Buffer) SetTransmitTime(t time.Time) { b.xmit = t }

// ParityStatus returns the caller-recorded parity check outcome.
func (b *Buffer) ParityStatus() navpack.ParityStatus { return b.parity }

// SetParityStatus records the outcome of an external parity check.
func (b *Buffer) SetParityStatus(p navpack.ParityStatus) { b.parity = p }

// ClearBits discards all stored bits. Metadata is untouched.
func (b *Buffer) ClearBits() {
	b.words = b.words[:0]
	b.bitsUsed = 0
}

// ResetBitsUsed rewinds or advances the used-length counter without touching
// stored content, enabling truncate-then-reappend without reallocation.
// Advancing back over a rewound region re-exposes whatever was stored there.
func (b *Buffer) ResetBitsUsed(n int) error {
	if n < 0 || n > b.capBits {
		return ErrOutOfRange
	}

	b.grow(n)
	b.bitsUsed = n

	return nil
}

// Trim releases backing storage beyond the used length. Purely a storage
// optimization; capacity and content are unchanged.
func (b *Buffer) Trim() {
	n := wordsFor(b.bitsUsed)
	if n < len(b.words) {
		b.words = b.words[:n]
	}
}

// Invert flips every bit in the used region.
func (b *Buffer) Invert() {
	for i := 0; i < b.bitsUsed; i++ {
		b.setBit(i, !b.getBit(i))
	}
}

// CopyBits copies bits [startBit, endBit] from another buffer into this one.
// endBit -1 means through the last used bit. Both buffers must have the same
// used length; metadata is untouched.
func (b *Buffer) CopyBits(from *Buffer, startBit, endBit int) error {
	if b.bitsUsed != from.bitsUsed {
		return ErrLengthMismatch
	}

	if endBit == -1 {
		endBit = b.bitsUsed - 1
	}

	if startBit < 0 || endBit >= b.bitsUsed || startBit > endBit {
		return ErrOutOfRange
	}

	for i := startBit; i <= endBit; i++ {
		b.setBit(i, from.getBit(i))
	}

	return nil
}

// AppendBuffer appends another buffer's entire used content, bit for bit.
func (b *Buffer) AppendBuffer(other *Buffer) error {
	if b.bitsUsed+other.bitsUsed > b.capBits {
		return ErrCapacity
	}

	start := b.bitsUsed
	b.grow(start + other.bitsUsed)

	for i := 0; i < other.bitsUsed; i++ {
		b.setBit(start+i, other.getBit(i))
	}

	b.bitsUsed += other.bitsUsed

	return nil
}

// wordsFor returns the word count covering n bits.
func wordsFor(n int) int {
	return (n + wordBits - 1) / wordBits
}

// grow ensures backing words exist for the first n bits.
func (b *Buffer) grow(n int) {
	for len(b.words) < wordsFor(n) {
		b.words = append(b.words, 0)
	}
}

func (b *Buffer) getBit(pos int) bool {
	return (b.words[pos/wordBits]>>(wordBits-1-uint(pos%wordBits)))&1 == 1
}

func (b *Buffer) setBit(pos int, on bool) {
	mask := uint32(1) << (wordBits - 1 - uint(pos%wordBits))
	if on {
		b.words[pos/wordBits] |= mask
	} else {
		b.words[pos/wordBits] &^= mask
	}
}

// appendBits writes the low numBits of value at the end of the buffer,
// most significant bit first, and advances the used length. Every append
// path funnels through here, so the capacity check cannot be bypassed.
func (b *Buffer) appendBits(value uint64, numBits int) error {
	if numBits < 1 || numBits > 64 {
		return ErrRange
	}

	if b.bitsUsed+numBits > b.capBits {
		return ErrCapacity
	}

	b.grow(b.bitsUsed + numBits)

	for i := numBits - 1; i >= 0; i-- {
		b.setBit(b.bitsUsed, value>>uint(i)&1 == 1)
		b.bitsUsed++
	}

	return nil
}

// overwriteBits writes the low numBits of value at startBit within the used
// region, most significant bit first. Callers validate bounds.
func (b *Buffer) overwriteBits(value uint64, startBit, numBits int) {
	for i := 0; i < numBits; i++ {
		b.setBit(startBit+i, value>>uint(numBits-1-i)&1 == 1)
	}
}

// Uint64 reads numBits beginning at startBit, MSB first, into the low-order
// bits of the result. The span must lie within the used region.
func (b *Buffer) Uint64(startBit, numBits int) (uint64, error) {
	if numBits < 1 || numBits > 64 {
		return 0, ErrRange
	}

	if startBit < 0 || startBit+numBits > b.bitsUsed {
		return 0, ErrOutOfRange
	}

	var v uint64
	for i := startBit; i < startBit+numBits; i++ {
		v <<= 1
		if b.getBit(i) {
			v++
		}
	}

	return v, nil
}

// signExtend reads numBits at startBit as a two's-complement field.
func (b *Buffer) signExtend(startBit, numBits int) (int64, error) {
	v, err := b.Uint64(startBit, numBits)
	if err != nil {
		return 0, err
	}

	shift := uint(64 - numBits)

	return int64(v<<shift) >> shift, nil
}

// maxUnsigned returns the largest value representable in numBits. numBits 0
// yields 0.
func maxUnsigned(numBits int) uint64 {
	return ^uint64(0) >> uint(64-numBits)
}
