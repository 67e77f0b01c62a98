package cutter

import "errors"

// ErrUnfixableCut indicates a node on the safe path has no safe jobs at
// all: no local restriction can make this branch safe, so the caller
// must fall back to from-scratch safe-ordering enforcement.
var ErrUnfixableCut = errors.New("cutter: node on safe path has no safe jobs; cutting cannot fix this problem")
