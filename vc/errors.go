package vc

import "github.com/pkg/errors"

// Error kinds per the error handling design: domain and malformed-point
// errors surface immediately to the caller (they are programmer errors
// or adversarial inputs); a failed verification is a plain boolean,
// never one of these.

// ErrDomain is returned for out-of-range indices, mismatched vector
// lengths, or a requested message length whose domain size is not a
// power of two.
var ErrDomain = errors.New("vc: domain error")

// ErrMalformedPoint is returned when a deserialized group element is
// not on the curve or is not in the prime-order subgroup.
var ErrMalformedPoint = errors.New("vc: malformed point")

// domainErrorf wraps ErrDomain with additional context.
func domainErrorf(format string, args ...interface{}) error {
	return errors.Wrapf(ErrDomain, format, args...)
}

func malformedPointErrorf(format string, args ...interface{}) error {
	return errors.Wrapf(ErrMalformedPoint, format, args...)
}
