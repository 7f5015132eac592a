package htmltext

import (
	"errors"
	"unicode/utf8"
)

var (
	// ErrInvalidUTF8 reports input that cannot be decoded as UTF-8.
	ErrInvalidUTF8 = errors.New("invalid utf-8 input")
	// ErrBinaryInput reports input that appears to be binary rather than markup.
	ErrBinaryInput = errors.New("binary input detected")
)

const (
	minBinarySample = 64
	maxControlPct   = 2
)

// ValidateInput returns an error if src is not UTF-8 text.
func ValidateInput(src []byte) error {
	var v validator
	rest, err := v.addBytes(src)
	if err != nil {
		return err
	}
	if len(rest) > 0 {
		return ErrInvalidUTF8
	}
	return nil
}

// validator checks UTF-8 incrementally. Input with a NUL byte, or where at
// least maxControlPct percent of a sample of minBinarySample bytes or more
// are control characters, is treated as binary.
type validator struct {
	total   int
	control int
}

// addBytes validates complete runes in b and returns the trailing bytes of
// an incomplete rune.
func (v *validator) addBytes(b []byte) ([]byte, error) {
	for len(b) > 0 {
		if !utf8.FullRune(b) {
			return b, nil
		}
		r, size := utf8.DecodeRune(b)
		if r == utf8.RuneError && size == 1 {
			return nil, ErrInvalidUTF8
		}
		if r == 0 {
			return nil, ErrBinaryInput
		}
		v.total += size
		if isControlRune(r) {
			v.control++
			if v.total >= minBinarySample && v.control*100 >= v.total*maxControlPct {
				return nil, ErrBinaryInput
			}
		}
		b = b[size:]
	}
	return nil, nil
}

func isControlRune(r rune) bool {
	switch r {
	case '\n', '\r', '\t', '\f':
		return false
	}
	return r < 0x20 || r == 0x7F
}
