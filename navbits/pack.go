package navbits

import (
	"fmt"
	"math"
)

// Encode operations append at the current used length and validate before
// mutating: a rejected append leaves the buffer unchanged.

// AppendUnsigned stores value/scale (integer division) as an unsigned field
// of numBits bits.
func (b *Buffer) AppendUnsigned(value uint64, numBits int, scale uint64) error {
	out, err := scaleUnsigned(value, numBits, scale)
	if err != nil {
		return err
	}

	return b.appendBits(out, numBits)
}

// AppendSigned stores value/scale as a two's-complement field of numBits
// bits.
func (b *Buffer) AppendSigned(value int64, numBits int, scale int64) error {
	if numBits < 1 || numBits > 64 || scale < 1 {
		return ErrRange
	}

	out := value / scale
	if err := checkSigned(out, numBits); err != nil {
		return err
	}

	return b.appendBits(uint64(out), numBits)
}

// AppendUnsignedScaled stores round(value / 2^power2) as an unsigned field,
// rounding half away from zero. The range check applies to the rounded
// result, so the exact field maximum and small negatives that round to zero
// are accepted.
func (b *Buffer) AppendUnsignedScaled(value float64, numBits, power2 int) error {
	if numBits < 1 || numBits > 64 {
		return ErrRange
	}

	scaled := math.Trunc(scaleValue(value, power2))
	if scaled < 0 || (numBits < 64 && scaled > float64(maxUnsigned(numBits))) {
		return fmt.Errorf("%w: %g in %d unsigned bits at 2^%d", ErrRange, value, numBits, power2)
	}

	return b.appendBits(uint64(scaled), numBits)
}

// AppendSignedScaled stores round(value / 2^power2) as a two's-complement
// field, rounding half away from zero.
func (b *Buffer) AppendSignedScaled(value float64, numBits, power2 int) error {
	if numBits < 1 || numBits > 64 {
		return ErrRange
	}

	out := int64(scaleValue(value, power2))
	if err := checkSigned(out, numBits); err != nil {
		return fmt.Errorf("%w: %g in %d signed bits at 2^%d", ErrRange, value, numBits, power2)
	}

	return b.appendBits(uint64(out), numBits)
}

// AppendSemicircles converts radians to semicircles before storing as a
// signed scaled field. GNSS angle fields are defined in semicircles so the
// value range maps exactly onto a two's-complement field boundary.
func (b *Buffer) AppendSemicircles(radians float64, numBits, power2 int) error {
	return b.AppendSignedScaled(radians/math.Pi, numBits, power2)
}

// AppendSignMagnitude stores value/scale as a sign bit (1 = negative)
// followed by numBits-1 magnitude bits.
func (b *Buffer) AppendSignMagnitude(value int64, numBits int, scale int64) error {
	if numBits < 2 || numBits > 64 || scale < 1 {
		return ErrRange
	}

	mag := value / scale
	var sign uint64
	if mag < 0 {
		sign = 1
		mag = -mag
	}

	if uint64(mag) > maxUnsigned(numBits-1) {
		return fmt.Errorf("%w: magnitude %d in %d bits", ErrRange, mag, numBits-1)
	}

	return b.appendBits(sign<<uint(numBits-1)|uint64(mag), numBits)
}

// AppendSignMagnitudeScaled stores round(value / 2^power2) in sign-magnitude
// form, rounding half away from zero.
func (b *Buffer) AppendSignMagnitudeScaled(value float64, numBits, power2 int) error {
	if numBits < 2 || numBits > 64 {
		return ErrRange
	}

	scaled := int64(scaleValue(value, power2))
	var sign uint64
	if scaled < 0 {
		sign = 1
		scaled = -scaled
	}

	if uint64(scaled) > maxUnsigned(numBits-1) {
		return fmt.Errorf("%w: %g in %d sign-magnitude bits at 2^%d", ErrRange, value, numBits, power2)
	}

	return b.appendBits(sign<<uint(numBits-1)|uint64(scaled), numBits)
}

// AppendSignMagnitudeSemicircles converts radians to semicircles before
// storing in scaled sign-magnitude form.
func (b *Buffer) AppendSignMagnitudeSemicircles(radians float64, numBits, power2 int) error {
	return b.AppendSignMagnitudeScaled(radians/math.Pi, numBits, power2)
}

// AppendString stores numChars eight-bit characters. Longer input is
// truncated, shorter input right-padded with spaces. Every character is
// validated against the navigation-message character set before any bit is
// written, so a rejected string leaves the buffer unchanged.
func (b *Buffer) AppendString(text string, numChars int) error {
	if numChars < 1 {
		return ErrRange
	}

	if b.bitsUsed+numChars*8 > b.capBits {
		return ErrCapacity
	}

	n := numChars
	if len(text) < n {
		n = len(text)
	}

	for i := 0; i < n; i++ {
		if !validMessageChar(text[i]) {
			return fmt.Errorf("%w: %q at index %d", ErrInvalidCharacter, text[i], i)
		}
	}

	for i := 0; i < n; i++ {
		if err := b.appendBits(uint64(text[i]), 8); err != nil {
			return err
		}
	}

	for i := n; i < numChars; i++ {
		if err := b.appendBits(uint64(' '), 8); err != nil {
			return err
		}
	}

	return nil
}

// PatchUnsigned overwrites an already-used bit span with value/scale, for
// fields only computable after initial assembly, such as parity.
func (b *Buffer) PatchUnsigned(value uint64, startBit, numBits int, scale uint64) error {
	out, err := scaleUnsigned(value, numBits, scale)
	if err != nil {
		return err
	}

	if startBit < 0 || startBit+numBits > b.bitsUsed {
		return ErrOutOfRange
	}

	b.overwriteBits(out, startBit, numBits)

	return nil
}

// PatchUnsignedSplit overwrites a logical field split across non-contiguous
// already-used ranges. The value's most significant bits go to the first
// range; each following range takes the next lower slice.
func (b *Buffer) PatchUnsignedSplit(value uint64, ranges []BitRange, scale uint64) error {
	total, err := b.checkSplit(ranges)
	if err != nil {
		return err
	}

	out, err := scaleUnsigned(value, total, scale)
	if err != nil {
		return err
	}

	b.patchSplit(out, ranges, total)

	return nil
}

// PatchSignedSplit is PatchUnsignedSplit for a two's-complement field.
func (b *Buffer) PatchSignedSplit(value int64, ranges []BitRange, scale int64) error {
	if scale < 1 {
		return ErrRange
	}

	total, err := b.checkSplit(ranges)
	if err != nil {
		return err
	}

	out := value / scale
	if err := checkSigned(out, total); err != nil {
		return err
	}

	b.patchSplit(uint64(out), ranges, total)

	return nil
}

// PatchUnsignedScaledSplit overwrites a split field with
// round(value / 2^power2) as unsigned, rounding half away from zero.
func (b *Buffer) PatchUnsignedScaledSplit(value float64, ranges []BitRange, power2 int) error {
	total, err := b.checkSplit(ranges)
	if err != nil {
		return err
	}

	scaled := math.Trunc(scaleValue(value, power2))
	if scaled < 0 || (total < 64 && scaled > float64(maxUnsigned(total))) {
		return fmt.Errorf("%w: %g in %d unsigned split bits at 2^%d", ErrRange, value, total, power2)
	}

	b.patchSplit(uint64(scaled), ranges, total)

	return nil
}

// PatchSignedScaledSplit overwrites a split field with
// round(value / 2^power2) as two's-complement, rounding half away from zero.
func (b *Buffer) PatchSignedScaledSplit(value float64, ranges []BitRange, power2 int) error {
	total, err := b.checkSplit(ranges)
	if err != nil {
		return err
	}

	out := int64(scaleValue(value, power2))
	if err := checkSigned(out, total); err != nil {
		return fmt.Errorf("%w: %g in %d signed split bits at 2^%d", ErrRange, value, total, power2)
	}

	b.patchSplit(uint64(out), ranges, total)

	return nil
}

// PatchSemicirclesSplit converts radians to semicircles before overwriting a
// split signed scaled field.
func (b *Buffer) PatchSemicirclesSplit(radians float64, ranges []BitRange, power2 int) error {
	return b.PatchSignedScaledSplit(radians/math.Pi, ranges, power2)
}

// PatchSignMagnitudeSplit overwrites a split field with value/scale in
// sign-magnitude form. The sign bit lands on the first bit of the first
// range.
func (b *Buffer) PatchSignMagnitudeSplit(value int64, ranges []BitRange, scale int64) error {
	if scale < 1 {
		return ErrRange
	}

	total, err := b.checkSplit(ranges)
	if err != nil {
		return err
	}

	if total < 2 {
		return ErrRange
	}

	mag := value / scale

	var sign uint64
	if mag < 0 {
		sign = 1
		mag = -mag
	}

	if uint64(mag) > maxUnsigned(total-1) {
		return fmt.Errorf("%w: magnitude %d in %d split bits", ErrRange, mag, total-1)
	}

	b.patchSplit(sign<<uint(total-1)|uint64(mag), ranges, total)

	return nil
}

// PatchSignMagnitudeScaledSplit overwrites a split field with
// round(value / 2^power2) in sign-magnitude form.
func (b *Buffer) PatchSignMagnitudeScaledSplit(value float64, ranges []BitRange, power2 int) error {
	total, err := b.checkSplit(ranges)
	if err != nil {
		return err
	}

	if total < 2 {
		return ErrRange
	}

	scaled := int64(scaleValue(value, power2))

	var sign uint64
	if scaled < 0 {
		sign = 1
		scaled = -scaled
	}

	if uint64(scaled) > maxUnsigned(total-1) {
		return fmt.Errorf("%w: %g in %d sign-magnitude split bits at 2^%d", ErrRange, value, total, power2)
	}

	b.patchSplit(sign<<uint(total-1)|uint64(scaled), ranges, total)

	return nil
}

// PatchSignMagnitudeSemicirclesSplit converts radians to semicircles before
// overwriting a split scaled sign-magnitude field.
func (b *Buffer) PatchSignMagnitudeSemicirclesSplit(radians float64, ranges []BitRange, power2 int) error {
	return b.PatchSignMagnitudeScaledSplit(radians/math.Pi, ranges, power2)
}

// checkSplit validates that every range lies within the used region and
// returns the total width.
func (b *Buffer) checkSplit(ranges []BitRange) (int, error) {
	if len(ranges) == 0 {
		return 0, ErrOutOfRange
	}

	total := 0
	for _, r := range ranges {
		if r.Bits < 1 || r.Bits > 64 {
			return 0, ErrRange
		}

		if r.Start < 0 || r.Start+r.Bits > b.bitsUsed {
			return 0, ErrOutOfRange
		}

		total += r.Bits
	}

	if total > 64 {
		return 0, ErrRange
	}

	return total, nil
}

func (b *Buffer) patchSplit(out uint64, ranges []BitRange, total int) {
	remaining := total
	for _, r := range ranges {
		remaining -= r.Bits
		b.overwriteBits(out>>uint(remaining), r.Start, r.Bits)
	}
}

// scaleUnsigned divides value by scale and range-checks the result against
// numBits.
func scaleUnsigned(value uint64, numBits int, scale uint64) (uint64, error) {
	if numBits < 1 || numBits > 64 || scale < 1 {
		return 0, ErrRange
	}

	out := value / scale
	if numBits < 64 && out > maxUnsigned(numBits) {
		return 0, fmt.Errorf("%w: %d in %d unsigned bits", ErrRange, out, numBits)
	}

	return out, nil
}

// checkSigned range-checks a two's-complement candidate against numBits.
func checkSigned(out int64, numBits int) error {
	if numBits == 64 {
		return nil
	}

	limit := int64(maxUnsigned(numBits - 1))
	if out > limit || out < -limit-1 {
		return fmt.Errorf("%w: %d in %d signed bits", ErrRange, out, numBits)
	}

	return nil
}

// scaleValue divides by 2^power2 and applies round-half-away-from-zero:
// add 0.5 for non-negative results, subtract 0.5 for negative, then let the
// caller truncate.
func scaleValue(value float64, power2 int) float64 {
	v := value / math.Pow(2, float64(power2))
	if v >= 0 {
		return v + 0.5
	}

	return v - 0.5
}

// validMessageChar reports whether ch belongs to the character set allowed
// in navigation message text fields: uppercase letters, digits and colon,
// space, quotes, plus, minus through slash, and the 0xF8 extension byte.
func validMessageChar(ch byte) bool {
	switch {
	case 'A' <= ch && ch <= 'Z':
		return true
	case '0' <= ch && ch <= ':':
		return true
	case ch == ' ' || ch == '"' || ch == '\'' || ch == '+':
		return true
	case '-' <= ch && ch <= '/':
		return true
	case ch == 0xF8:
		return true
	default:
		return false
	}
}
