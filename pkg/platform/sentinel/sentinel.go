package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores return these (wrapped with
// context) so services and transport can classify a failure with errors.Is.
//
// - ErrSerialization: a stored value could not be decoded (bad timestamp or payload)
// - ErrStoreFailure: a key-value or relational backend call failed
// - ErrPartialBatch: a fan-out stopped after some sub-operations may have applied
// - ErrInvalidInput: caller supplied an unusable argument
// - ErrUnavailable: backend not configured or temporarily unavailable
//
// An expired or never-created interaction link is not an error; stores report
// it as absent.
var (
	ErrSerialization = errors.New("serialization")
	ErrStoreFailure  = errors.New("store failure")
	ErrPartialBatch  = errors.New("partial batch")
	ErrInvalidInput  = errors.New("invalid input")
	ErrUnavailable   = errors.New("unavailable")
)
