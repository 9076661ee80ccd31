package clusters

import "errors"

// Errors
var (
	ErrBadConfig    = errors.New("bad run config")
	ErrBadSeed      = errors.New("bad seed graph")
	ErrOracle       = errors.New("isomorphism oracle failed")
	ErrSink         = errors.New("result sink failed")
	ErrStreamClosed = errors.New("graph stream closed")
)
