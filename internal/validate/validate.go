package validate

import "errors"

var (
	// ErrNotEntered is returned when either entry is empty.
	ErrNotEntered = errors.New("password not entered")
	// ErrMismatch is returned when the two entries differ.
	ErrMismatch = errors.New("passwords do not match")
)

// Check compares the two password entries. Emptiness is checked first, so
// two empty entries yield ErrNotEntered rather than a match.
func Check(pw1, pw2 string) error {
	if pw1 == "" || pw2 == "" {
		return ErrNotEntered
	}
	if pw1 != pw2 {
		return ErrMismatch
	}
	return nil
}

// Passwords reports whether the pair is acceptable, with a user-facing reason
// when it is not.
func Passwords(pw1, pw2 string) (bool, string) {
	if err := Check(pw1, pw2); err != nil {
		return false, err.Error()
	}
	return true, ""
}
