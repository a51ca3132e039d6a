package navbits

import "math"

// BitRange addresses one contiguous piece of a split field: a logical value
// stored across non-adjacent spans of the message.
type BitRange struct {
	Start int
	Bits  int
}

// UnpackUnsigned reads numBits at startBit as an unsigned field and applies
// the integer scale.
func (b *Buffer) UnpackUnsigned(startBit, numBits int, scale uint64) (uint64, error) {
	v, err := b.Uint64(startBit, numBits)
	if err != nil {
		return 0, err
	}

	return v * scale, nil
}

// UnpackSigned reads numBits at startBit as a two's-complement field and
// applies the integer scale.
func (b *Buffer) UnpackSigned(startBit, numBits int, scale int64) (int64, error) {
	s, err := b.signExtend(startBit, numBits)
	if err != nil {
		return 0, err
	}

	return s * scale, nil
}

// UnpackUnsignedScaled reads an unsigned field and multiplies by 2^power2.
func (b *Buffer) UnpackUnsignedScaled(startBit, numBits, power2 int) (float64, error) {
	v, err := b.Uint64(startBit, numBits)
	if err != nil {
		return 0, err
	}

	return float64(v) * math.Pow(2, float64(power2)), nil
}

// UnpackSignedScaled reads a two's-complement field and multiplies by
// 2^power2.
func (b *Buffer) UnpackSignedScaled(startBit, numBits, power2 int) (float64, error) {
	s, err := b.signExtend(startBit, numBits)
	if err != nil {
		return 0, err
	}

	return float64(s) * math.Pow(2, float64(power2)), nil
}

// UnpackSemicircles reads a signed scaled field of semicircles and converts
// to radians.
func (b *Buffer) UnpackSemicircles(startBit, numBits, power2 int) (float64, error) {
	v, err := b.UnpackSignedScaled(startBit, numBits, power2)
	if err != nil {
		return 0, err
	}

	return v * math.Pi, nil
}

// UnpackSignMagnitude reads a sign bit followed by numBits-1 magnitude bits
// and applies the integer scale.
func (b *Buffer) UnpackSignMagnitude(startBit, numBits int, scale int64) (int64, error) {
	if numBits < 2 {
		return 0, ErrRange
	}

	mag, err := b.Uint64(startBit+1, numBits-1)
	if err != nil {
		return 0, err
	}

	sign, err := b.Uint64(startBit, 1)
	if err != nil {
		return 0, err
	}

	smag := int64(mag) * scale
	if sign == 1 {
		smag = -smag
	}

	return smag, nil
}

// UnpackSignMagnitudeScaled reads a sign-magnitude field and multiplies by
// 2^power2.
func (b *Buffer) UnpackSignMagnitudeScaled(startBit, numBits, power2 int) (float64, error) {
	smag, err := b.UnpackSignMagnitude(startBit, numBits, 1)
	if err != nil {
		return 0, err
	}

	return float64(smag) * math.Pow(2, float64(power2)), nil
}

// UnpackSignMagnitudeSemicircles reads a scaled sign-magnitude field of
// semicircles and converts to radians.
func (b *Buffer) UnpackSignMagnitudeSemicircles(startBit, numBits, power2 int) (float64, error) {
	v, err := b.UnpackSignMagnitudeScaled(startBit, numBits, power2)
	if err != nil {
		return 0, err
	}

	return v * math.Pi, nil
}

// UnpackString reads numChars eight-bit characters starting at startBit.
func (b *Buffer) UnpackString(startBit, numChars int) (string, error) {
	if numChars < 1 {
		return "", ErrRange
	}

	out := make([]byte, 0, numChars)
	for i := 0; i < numChars; i++ {
		v, err := b.Uint64(startBit+i*8, 8)
		if err != nil {
			return "", err
		}

		out = append(out, byte(v))
	}

	return string(out), nil
}

// UnpackBool reads a single bit as a flag.
func (b *Buffer) UnpackBool(bit int) (bool, error) {
	if bit < 0 || bit >= b.bitsUsed {
		return false, ErrOutOfRange
	}

	return b.getBit(bit), nil
}

// Split-field variants. The first range supplies the initial value
// (sign-extended when the operation is signed); each subsequent range's raw
// bits are concatenated onto the low end by shift-and-OR. This is bit
// concatenation across layout positions, not arithmetic addition.

// UnpackUnsignedSplit reads an unsigned field split across ranges and
// applies the integer scale.
func (b *Buffer) UnpackUnsignedSplit(ranges []BitRange, scale uint64) (uint64, error) {
	acc, _, err := b.uint64Split(ranges)
	if err != nil {
		return 0, err
	}

	return acc * scale, nil
}

// UnpackSignedSplit reads a two's-complement field split across ranges and
// applies the integer scale. Only the first range is sign-extended.
func (b *Buffer) UnpackSignedSplit(ranges []BitRange, scale int64) (int64, error) {
	acc, err := b.signExtendSplit(ranges)
	if err != nil {
		return 0, err
	}

	return acc * scale, nil
}

// UnpackUnsignedScaledSplit reads a split unsigned field and multiplies by
// 2^power2.
func (b *Buffer) UnpackUnsignedScaledSplit(ranges []BitRange, power2 int) (float64, error) {
	v, err := b.UnpackUnsignedSplit(ranges, 1)
	if err != nil {
		return 0, err
	}

	return float64(v) * math.Pow(2, float64(power2)), nil
}

// UnpackSignedScaledSplit reads a split two's-complement field and
// multiplies by 2^power2.
func (b *Buffer) UnpackSignedScaledSplit(ranges []BitRange, power2 int) (float64, error) {
	s, err := b.signExtendSplit(ranges)
	if err != nil {
		return 0, err
	}

	return float64(s) * math.Pow(2, float64(power2)), nil
}

// UnpackSemicirclesSplit reads a split signed scaled field of semicircles
// and converts to radians.
func (b *Buffer) UnpackSemicirclesSplit(ranges []BitRange, power2 int) (float64, error) {
	v, err := b.UnpackSignedScaledSplit(ranges, power2)
	if err != nil {
		return 0, err
	}

	return v * math.Pi, nil
}

// UnpackSignMagnitudeSplit reads a sign-magnitude field split across ranges
// and applies the integer scale. The sign bit is the first bit of the first
// range; the remaining concatenated bits are the magnitude.
func (b *Buffer) UnpackSignMagnitudeSplit(ranges []BitRange, scale int64) (int64, error) {
	acc, total, err := b.uint64Split(ranges)
	if err != nil {
		return 0, err
	}

	if total < 2 {
		return 0, ErrRange
	}

	smag := int64(acc&maxUnsigned(total-1)) * scale
	if acc>>uint(total-1) == 1 {
		smag = -smag
	}

	return smag, nil
}

// UnpackSignMagnitudeScaledSplit reads a split sign-magnitude field and
// multiplies by 2^power2.
func (b *Buffer) UnpackSignMagnitudeScaledSplit(ranges []BitRange, power2 int) (float64, error) {
	smag, err := b.UnpackSignMagnitudeSplit(ranges, 1)
	if err != nil {
		return 0, err
	}

	return float64(smag) * math.Pow(2, float64(power2)), nil
}

// UnpackSignMagnitudeSemicirclesSplit reads a split scaled sign-magnitude
// field of semicircles and converts to radians.
func (b *Buffer) UnpackSignMagnitudeSemicirclesSplit(ranges []BitRange, power2 int) (float64, error) {
	v, err := b.UnpackSignMagnitudeScaledSplit(ranges, power2)
	if err != nil {
		return 0, err
	}

	return v * math.Pi, nil
}

// uint64Split concatenates the raw bits of every range, first range highest,
// and returns the composite with its total width.
func (b *Buffer) uint64Split(ranges []BitRange) (uint64, int, error) {
	if len(ranges) == 0 {
		return 0, 0, ErrOutOfRange
	}

	var acc uint64

	total := 0
	for _, r := range ranges {
		raw, err := b.Uint64(r.Start, r.Bits)
		if err != nil {
			return 0, 0, err
		}

		total += r.Bits
		if total > 64 {
			return 0, 0, ErrRange
		}

		acc = acc<<uint(r.Bits) | raw
	}

	return acc, total, nil
}

// signExtendSplit reads the composite as two's-complement: sign-extending the
// first range then concatenating raw bits equals sign-extending the composite
// at its total width.
func (b *Buffer) signExtendSplit(ranges []BitRange) (int64, error) {
	acc, total, err := b.uint64Split(ranges)
	if err != nil {
		return 0, err
	}

	shift := uint(64 - total)

	return int64(acc<<shift) >> shift, nil
}
