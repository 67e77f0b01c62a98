package ordergen

import "errors"

// ErrSafeSearchFailure indicates the generator could not extend the
// current partial ordering without missing a deadline.
var ErrSafeSearchFailure = errors.New("ordergen: no safe job ordering found from this point")

// ErrExhaustedSkipChance indicates SearchForSafeJobOrdering's randomized
// phase never found a complete safe ordering within the allotted attempts.
var ErrExhaustedSkipChance = errors.New("ordergen: exhausted attempts without finding a safe ordering")

// ErrInvalidSkipChance indicates a skip chance outside [0, 100) was supplied.
var ErrInvalidSkipChance = errors.New("ordergen: skip chance must be in [0, 100)")

