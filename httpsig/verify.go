package httpsig

import (
	"fmt"
	"net/http"
)

// KeyResolver returns a Verifier for the given key ID and algorithm, as
// looked up against the gateway's key registry (see package keyregistry).
// The request is provided for context only; resolvers do not inspect the
// body.
type KeyResolver func(r *http.Request, keyID string, alg Algorithm) (Verifier, error)

// AcceptedAlgorithms is the set of signature algorithms the gateway itself
// accepts on a gated request. The httpsig package's
// Algorithm registry is broader (it also supports ECDSA, RSA v1.5, and
// HMAC, for agent-side SDKs and test fixtures that don't go through the
// gateway's narrower policy); Verify enforces this narrower allowlist so a
// caller can't widen acceptance just by constructing a different Verifier.
var AcceptedAlgorithms = map[Algorithm]bool{
	AlgorithmEd25519:      true,
	AlgorithmRSAPSSSHA256: true,
}

// Verify resolves a Verifier for env's keyId and algorithm, reconstructs
// the signature base over r, and checks env's signature against it. It does
// not check expiry or replay — those are orchestrated by the gateway
// package, which also decides whether an unsupported algorithm
// should be logged differently from a cryptographic failure.
func Verify(r *http.Request, env *Envelope, resolve KeyResolver) error {
	if !AcceptedAlgorithms[env.Algorithm] {
		return fmt.Errorf("%w: %s", ErrUnsupportedAlgorithm, env.Algorithm)
	}

	verifier, err := resolve(r, env.KeyID, env.Algorithm)
	if err != nil {
		return err
	}

	base, err := env.BaseString(r)
	if err != nil {
		return err
	}

	return verifier.Verify(base, env.Signature)
}
