package navbits

import "errors"

// Errors reported by the codec. Callers branch on these with errors.Is;
// wrapped forms carry the offending values.
var (
	ErrRange            = errors.New("navbits: scaled value does not fit bit width")
	ErrOutOfRange       = errors.New("navbits: requested bits beyond used length")
	ErrCapacity         = errors.New("navbits: append exceeds buffer capacity")
	ErrInvalidCharacter = errors.New("navbits: invalid character in text field")
	ErrLengthMismatch   = errors.New("navbits: buffers differ in used length")
	ErrMalformedInput   = errors.New("navbits: malformed interchange text")
)
