package keyregistry

import "errors"

// ErrKeyNotFound is returned when the registry responds 404 for a key_id.
// It is never cached, since a future deploy may register the key.
var ErrKeyNotFound = errors.New("keyregistry: key not found")

// ErrFetchFailed is returned for any transport error or malformed response
// body from the registry.
var ErrFetchFailed = errors.New("keyregistry: fetch failed")

// ErrAlgorithmMismatch is returned when a resolved record's Algorithm field
// does not match the algorithm named in the request envelope.
var ErrAlgorithmMismatch = errors.New("keyregistry: record algorithm does not match envelope")

// ErrKeyInactive is returned when a resolved record's IsActive field is not
// the literal string "true".
var ErrKeyInactive = errors.New("keyregistry: key is not active")
