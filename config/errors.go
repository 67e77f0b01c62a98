package config

import "errors"

// ErrInvalidSkipChance indicates a YAML document set skip_chance outside
// the [0, 100) range ordergen.SearchForSafeJobOrdering requires.
var ErrInvalidSkipChance = errors.New("config: skip_chance must be in [0, 100)")
