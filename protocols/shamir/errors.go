package shamir

import "errors"

var (
	// ErrInvalidThreshold means K < 1 or K > N.
	ErrInvalidThreshold = errors.New("shamir: invalid threshold")
	// ErrInvalidShareCount means N = 0 or N >= p.
	ErrInvalidShareCount = errors.New("shamir: invalid share count")
	// ErrSecretOutOfRange means the secret is not in [0, p).
	ErrSecretOutOfRange = errors.New("shamir: secret out of range")
	// ErrDuplicateShareX means two shares have the same x coordinate.
	ErrDuplicateShareX = errors.New("shamir: duplicate share x coordinate")
	// ErrInsufficientShares means fewer than K shares were supplied.
	ErrInsufficientShares = errors.New("shamir: insufficient shares")
	// ErrNoShares means recovery was attempted on an empty set.
	ErrNoShares = errors.New("shamir: no shares")
	// ErrInvalidShare means a share is not a point of the field with nonzero x.
	ErrInvalidShare = errors.New("shamir: invalid share")
)
