package gwerror

import "net/http"

// Kind tags the reason a gated request was refused. It is the sole
// discriminant of the error taxonomy; every *Error carries exactly one.
type Kind string

const (
	// InvalidEnvelope covers a missing, malformed, or internally
	// inconsistent Signature-Input/Signature header pair.
	InvalidEnvelope Kind = "INVALID_ENVELOPE"

	// InvalidKeyID covers a keyId that fails the charset or length rule.
	InvalidKeyID Kind = "INVALID_KEY_ID"

	// KeyNotFound covers a registry lookup that returned 404.
	KeyNotFound Kind = "KEY_NOT_FOUND"

	// KeyInactive covers a key record whose is_active field is not the
	// literal string "true".
	KeyInactive Kind = "KEY_INACTIVE"

	// TimestampFuture covers a created parameter beyond the allowed
	// clock-skew window.
	TimestampFuture Kind = "TIMESTAMP_FUTURE"

	// SignatureExpired covers an expires parameter in the past.
	SignatureExpired Kind = "SIGNATURE_EXPIRED"

	// MissingNonce covers an envelope with no nonce, despite the wire
	// format requiring one; kept distinct from InvalidEnvelope because
	// the envelope parser itself already enforces this (see httpsig) —
	// this Kind exists for callers that construct envelopes by other
	// means and still need to report the same condition.
	MissingNonce Kind = "MISSING_NONCE"

	// Replay covers a nonce already recorded by the replay guard.
	Replay Kind = "REPLAY"

	// SignatureBad covers a cryptographic verification failure.
	SignatureBad Kind = "SIGNATURE_BAD"

	// UnsupportedAlgorithm covers an algorithm name outside the accepted
	// set.
	UnsupportedAlgorithm Kind = "UNSUPPORTED_ALGORITHM"

	// RegistryUnavailable covers a transport or parse error talking to
	// the key registry.
	RegistryUnavailable Kind = "REGISTRY_UNAVAILABLE"

	// SignatureRequired covers a gated route with no signature headers
	// present at all.
	SignatureRequired Kind = "SIGNATURE_REQUIRED"
)

// kindInfo is the fixed status code and generic client message for a Kind.
type kindInfo struct {
	status  int
	title   string
	message string
}

var kindTable = map[Kind]kindInfo{
	InvalidEnvelope:      {http.StatusForbidden, "Signature Invalid", "The request's signature headers could not be parsed."},
	InvalidKeyID:         {http.StatusForbidden, "Signature Invalid", "The request's key identifier is malformed."},
	KeyNotFound:          {http.StatusForbidden, "Signature Invalid", "The request could not be authenticated."},
	KeyInactive:          {http.StatusForbidden, "Signature Invalid", "The request could not be authenticated."},
	TimestampFuture:      {http.StatusForbidden, "Signature Invalid", "The request's timestamp is outside the allowed window."},
	SignatureExpired:     {http.StatusForbidden, "Signature Invalid", "The request's signature has expired."},
	MissingNonce:         {http.StatusForbidden, "Signature Invalid", "The request is missing a required nonce."},
	Replay:               {http.StatusForbidden, "Signature Invalid", "This request has already been processed."},
	SignatureBad:         {http.StatusForbidden, "Signature Invalid", "The request's signature did not verify."},
	UnsupportedAlgorithm: {http.StatusBadRequest, "Unsupported Algorithm", "The request's signature algorithm is not supported."},
	RegistryUnavailable:  {http.StatusInternalServerError, "Service Unavailable", "The request could not be authenticated at this time."},
	SignatureRequired:    {http.StatusForbidden, "Signature Required", "This resource requires a signed request."},
}

// Status returns the HTTP status code for k. Unrecognized kinds (there
// should be none, since Kind is a closed set constructed only via the
// constants above) map to 500.
func (k Kind) Status() int {
	if info, ok := kindTable[k]; ok {
		return info.status
	}

	return http.StatusInternalServerError
}

// Title returns the short, generic page title for k.
func (k Kind) Title() string {
	if info, ok := kindTable[k]; ok {
		return info.title
	}

	return "Request Rejected"
}

// Message returns the generic, non-identifying client message for k.
func (k Kind) Message() string {
	if info, ok := kindTable[k]; ok {
		return info.message
	}

	return "The request could not be processed."
}

// String implements fmt.Stringer, returning the wire taxonomy name (e.g.
// "SIGNATURE_EXPIRED") used in log lines.
func (k Kind) String() string {
	return string(k)
}
