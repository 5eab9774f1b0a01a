package membership

import "errors"

// Construction and lookup errors.
var (
	// ErrNilStore indicates a nil GroupStore was provided.
	ErrNilStore = errors.New("membership: group store is nil")

	// ErrNilCache indicates a nil load cache was provided.
	ErrNilCache = errors.New("membership: load cache is nil")

	// ErrNilResolver indicates a nil Resolver was provided.
	ErrNilResolver = errors.New("membership: resolver is nil")

	// ErrUnexpectedCacheValue indicates the load cache returned a value
	// of an unexpected type for a raw-groups key.
	ErrUnexpectedCacheValue = errors.New("membership: cache returned unexpected value type")
)
