package httpsig

import "errors"

// Envelope parsing errors.
var (
	// ErrInvalidEnvelope is returned when the Signature-Input/Signature
	// header pair is missing, structurally malformed, carries mismatched
	// labels, or contains more than one dictionary member (multiple
	// signatures on a single request are unsupported).
	ErrInvalidEnvelope = errors.New("httpsig: invalid signature envelope")

	// ErrInvalidKeyID is returned when the keyId parameter does not match
	// the required charset ([A-Za-z0-9._-]) or length (1..100).
	ErrInvalidKeyID = errors.New("httpsig: invalid key id")
)

// Base-string construction errors.
var (
	// ErrComponentNotPresent is returned when a covered component
	// identifier has no corresponding value on the live request. This
	// implementation takes the strict reading: a missing covered
	// component fails verification rather than being silently omitted.
	ErrComponentNotPresent = errors.New("httpsig: covered component not present on request")

	// ErrUnknownComponent is returned for an unrecognized derived
	// component identifier (one starting with "@").
	ErrUnknownComponent = errors.New("httpsig: unknown derived component")
)

// Verification errors.
var (
	// ErrUnsupportedAlgorithm is returned when the envelope's algorithm
	// is not one this verifier dispatches.
	ErrUnsupportedAlgorithm = errors.New("httpsig: unsupported algorithm")

	// ErrSignatureInvalid is returned when cryptographic verification
	// fails.
	ErrSignatureInvalid = errors.New("httpsig: signature verification failed")
)

// Key material errors.
var (
	// ErrInvalidKey is returned when key material is invalid (nil, wrong
	// size, malformed encoding, etc.).
	ErrInvalidKey = errors.New("httpsig: invalid key material")
)

// Signing errors (test-fixture construction).
var (
	// ErrNoSigner is returned when SignConfig has no Signer configured.
	ErrNoSigner = errors.New("httpsig: signer must not be nil")

	// ErrNoCoveredComponents is returned when SignConfig has an empty
	// CoveredComponents slice.
	ErrNoCoveredComponents = errors.New("httpsig: covered components must not be empty")

	// ErrNoNonce is returned when SignConfig has no Nonce set; the wire
	// format requires a nonce on every signature.
	ErrNoNonce = errors.New("httpsig: nonce is required")
)

// Digest errors (RFC 9530 Content-Digest).
var (
	// ErrDigestMismatch is returned when Content-Digest verification fails.
	ErrDigestMismatch = errors.New("httpsig: content digest mismatch")

	// ErrDigestNotFound is returned when Content-Digest header is required
	// but not present.
	ErrDigestNotFound = errors.New("httpsig: content digest not found")

	// ErrUnsupportedDigest is returned when the digest algorithm is not
	// supported.
	ErrUnsupportedDigest = errors.New("httpsig: unsupported digest algorithm")
)

// ErrMalformedHeader is returned when Signature or Signature-Input headers
// cannot be parsed, or a dictionary value is not correctly encoded.
var ErrMalformedHeader = errors.New("httpsig: malformed signature header")
