package navbits

import "math"

// MatchFlags selects which metadata fields MatchMetadata compares.
type MatchFlags uint

// Individual metadata comparisons.
const (
	MatchTime MatchFlags = 1 << iota
	MatchSatellite
	MatchObservation
	MatchSource
	MatchNavType
)

// MatchAll compares every metadata field.
const MatchAll = MatchTime | MatchSatellite | MatchObservation | MatchSource | MatchNavType

// Transmit timestamps within this many seconds compare equal, absorbing
// coarser-resolution time sources (BeiDou reports at 0.1 s).
const timeToleranceSec = 0.001

// Equal reports whether both buffers carry the same metadata and the same
// bit pattern over their full used length.
func (b *Buffer) Equal(other *Buffer) bool {
	return b.MatchMetadata(other, MatchAll) && b.MatchBits(other, 0, -1)
}

// Less is a strict weak order over the raw bit pattern, independent of
// metadata, so buffers can key ordered sets for deduplication. A shorter
// buffer sorts first; equal-length buffers order lexicographically from
// bit 0.
func (b *Buffer) Less(other *Buffer) bool {
	if b.bitsUsed != other.bitsUsed {
		return b.bitsUsed < other.bitsUsed
	}

	for i := 0; i < b.bitsUsed; i++ {
		lhs, rhs := b.getBit(i), other.getBit(i)
		if !lhs && rhs {
			return true
		}

		if lhs && !rhs {
			return false
		}
	}

	return false
}

// Match reports whether the selected metadata fields match and the bit
// patterns agree over [startBit, endBit].
func (b *Buffer) Match(other *Buffer, startBit, endBit int, flags MatchFlags) bool {
	return b.MatchMetadata(other, flags) && b.MatchBits(other, startBit, endBit)
}

// MatchMetadata compares the metadata fields selected by flags. Transmit
// times match within timeToleranceSec; every other field requires exact
// equality.
func (b *Buffer) MatchMetadata(other *Buffer, flags MatchFlags) bool {
	if flags&MatchTime != 0 {
		if math.Abs(other.xmit.Sub(b.xmit).Seconds()) > timeToleranceSec {
			return false
		}
	}

	if flags&MatchSatellite != 0 && b.sat != other.sat {
		return false
	}

	if flags&MatchObservation != 0 && b.obs != other.obs {
		return false
	}

	if flags&MatchSource != 0 && b.rx != other.rx {
		return false
	}

	if flags&MatchNavType != 0 && b.nav != other.nav {
		return false
	}

	return true
}

// MatchBits compares bit-for-bit over [startBit, endBit]. endBit -1 means
// through the last used bit. Buffers of unequal used length never match;
// out-of-range bounds are clamped into the used region rather than failing.
func (b *Buffer) MatchBits(other *Buffer, startBit, endBit int) bool {
	if b.bitsUsed != other.bitsUsed {
		return false
	}

	if b.bitsUsed == 0 {
		return true
	}

	if endBit == -1 || endBit >= b.bitsUsed {
		endBit = b.bitsUsed - 1
	}

	if startBit < 0 {
		startBit = 0
	}

	if startBit >= b.bitsUsed {
		startBit = b.bitsUsed - 1
	}

	for i := startBit; i <= endBit; i++ {
		if b.getBit(i) != other.getBit(i) {
			return false
		}
	}

	return true
}
