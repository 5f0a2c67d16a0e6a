// Package httpsig implements the gateway's HTTP message signature envelope:
// parsing and validating the Signature-Input/Signature header pair,
// reconstructing the signature base string, and verifying it against a
// resolved key, plus optional Content-Digest support per RFC 9530.
//
// The wire format is close to RFC 9421 but not identical: a request carries
// exactly one signature (ParseEnvelope rejects a second dictionary member
// outright), the keyId parameter uses that exact casing, and the
// @signature-params base-string line must echo the original parameter text
// verbatim rather than a re-serialized canonical form.
//
// # Accepted Algorithms
//
// The gateway itself only ever accepts two algorithms on a verified request
// (see AcceptedAlgorithms and Verify): ed25519 and rsa-pss-sha256 (RSASSA-PSS
// with a salt length equal to the maximum permitted by the modulus). The
// broader Algorithm registry in algorithm.go and the Signer/Verifier
// constructors in keys.go also cover ecdsa-p256-sha256, ecdsa-p384-sha384,
// rsa-pss-sha512, rsa-v1_5-sha256, and hmac-sha256, for agent-side SDK code
// and test fixtures that sign requests the gateway will deliberately reject.
//
// # Signing Requests
//
// SignRequest adds Signature-Input and Signature headers to an HTTP
// request. A nonce is mandatory; the wire format has no unsigned fallback:
//
//	signer, err := httpsig.NewEd25519Signer("my-key-id", privateKey)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	nonce, err := httpsig.GenerateNonce()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	err = httpsig.SignRequest(req, httpsig.SignConfig{
//	    Signer:            signer,
//	    CoveredComponents: []string{httpsig.ComponentMethod, httpsig.ComponentAuthority, httpsig.ComponentPath},
//	    Nonce:             nonce,
//	    Tag:               "browse",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// # Verifying Requests
//
// ParseEnvelope extracts and validates the envelope; Verify reconstructs the
// base string over the live request and checks it against a resolved key.
// Expiry and replay checks are the gateway package's job, not this
// package's — Verify only answers "is this signature valid":
//
//	env, err := httpsig.ParseEnvelope(r)
//	if err != nil {
//	    return err
//	}
//
//	resolver := keyRegistryClient.Resolver() // a *keyregistry.Client
//
//	if err := httpsig.Verify(r, env, resolver); err != nil {
//	    return err
//	}
//
// # Client Transport
//
// NewTransport creates an http.RoundTripper that automatically signs all
// outgoing requests. Pass an *http.Transport to configure proxy, TLS, and
// timeout settings. Pass nil for sensible defaults:
//
//	client := &http.Client{
//	    Transport: httpsig.NewTransport(nil, httpsig.SignConfig{
//	        Signer: signer,
//	        Nonce:  nonce,
//	    }),
//	}
//
//	resp, err := client.Get("https://api.example.com/resource")
//
// # Content-Digest
//
// Optional Content-Digest support (RFC 9530) can be used standalone or
// integrated with signing. The gateway's verification pipeline does not
// check Content-Digest:
//
//	// Standalone usage:
//	err := httpsig.SetContentDigest(req, httpsig.DigestSHA256)
//
//	// Integrated with signing (adds Content-Digest and includes it
//	// in covered components automatically):
//	err := httpsig.SignRequest(req, httpsig.SignConfig{
//	    Signer:          signer,
//	    Nonce:           nonce,
//	    DigestAlgorithm: httpsig.DigestSHA256,
//	})
package httpsig
