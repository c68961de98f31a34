package region

import "github.com/cockroachdb/errors"

// ErrSize indicates a non-positive region size was requested.
var ErrSize = errors.New("region: size must be positive")
