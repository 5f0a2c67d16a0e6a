package httpsig

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// nonceSize is the number of random bytes used to generate a nonce.
const nonceSize = 16

// defaultCoveredComponents are the default components signed when
// SignConfig.CoveredComponents is empty.
var defaultCoveredComponents = []string{ComponentMethod, ComponentAuthority, ComponentPath}

// GenerateNonce returns a cryptographically random nonce string suitable
// for use in SignConfig.Nonce. The returned value is 16 random bytes
// encoded as unpadded base64url (22 characters).
func GenerateNonce() (string, error) {
	b := make([]byte, nonceSize)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}

	return base64.RawURLEncoding.EncodeToString(b), nil
}

// SignConfig configures HTTP request signing in the gateway's wire format.
// It exists to build signed requests for tests and for agent-side SDK
// code; the gateway itself only ever verifies, never signs.
type SignConfig struct {
	// Signer produces signatures. Required.
	Signer Signer

	// Label identifies the signature in Signature/Signature-Input headers.
	// Defaults to "sig1".
	Label string

	// CoveredComponents lists the component identifiers to include in the
	// signature base. Defaults to [ComponentMethod, ComponentAuthority, ComponentPath].
	CoveredComponents []string

	// Nonce is included in signature parameters. Required: the wire format
	// has no unsigned-request fallback, every signature carries one.
	Nonce string

	// Tag is the application-specific tag for the signature (e.g. "browse"
	// or "pay").
	Tag string

	// Created sets the signature creation time. When zero, time.Now() is
	// used.
	Created time.Time

	// Expires sets the signature expiration time. When zero, no expiration
	// is set.
	Expires time.Time

	// DigestAlgorithm, when set, causes SignRequest to compute and set a
	// Content-Digest header (RFC 9530) before signing. The
	// "content-digest" component is automatically added to covered
	// components if not already present.
	DigestAlgorithm DigestAlgorithm
}

// SignRequest signs an HTTP request in-place by adding Signature-Input and
// Signature headers in the gateway's wire format.
func SignRequest(r *http.Request, cfg SignConfig) error {
	if cfg.Signer == nil {
		return ErrNoSigner
	}

	label := cfg.Label
	if label == "" {
		label = "sig1"
	}

	components := cfg.CoveredComponents
	if len(components) == 0 {
		components = defaultCoveredComponents
	}

	if cfg.Nonce == "" {
		return ErrNoNonce
	}

	if cfg.DigestAlgorithm != "" {
		if err := SetContentDigest(r, cfg.DigestAlgorithm); err != nil {
			return err
		}

		hasDigest := false
		for _, c := range components {
			if c == "content-digest" {
				hasDigest = true
				break
			}
		}

		if !hasDigest {
			components = append(components, "content-digest")
		}
	}

	created := cfg.Created
	if created.IsZero() {
		created = time.Now()
	}

	rawParams := serializeParams(components, created, cfg.Expires, cfg.Signer.KeyID(), cfg.Signer.Algorithm(), cfg.Nonce, cfg.Tag)

	env := &Envelope{
		Label:             label,
		CoveredComponents: components,
		KeyID:             cfg.Signer.KeyID(),
		Algorithm:         cfg.Signer.Algorithm(),
		Created:           created,
		HasCreated:        true,
		Nonce:             cfg.Nonce,
		Tag:               cfg.Tag,
		rawParams:         rawParams,
	}

	if !cfg.Expires.IsZero() {
		env.Expires = cfg.Expires
		env.HasExpires = true
	}

	base, err := env.BaseString(r)
	if err != nil {
		return err
	}

	sig, err := cfg.Signer.Sign(base)
	if err != nil {
		return err
	}

	encoded := base64.StdEncoding.EncodeToString(sig)

	r.Header.Set("Signature-Input", label+"="+rawParams)
	r.Header.Set("Signature", label+"=:"+encoded+":")

	return nil
}

// serializeParams produces the wire-format parameter text that follows
// "LABEL=" in the Signature-Input header:
//
//	("c1" "c2" ...); created=N[; expires=N]; keyId="ID"; alg="NAME"; nonce="N"[; tag="T"]
func serializeParams(components []string, created, expires time.Time, keyID string, alg Algorithm, nonce, tag string) string {
	var b strings.Builder

	b.WriteByte('(')
	for i, id := range components {
		if i > 0 {
			b.WriteByte(' ')
		}

		b.WriteString(strconv.Quote(id))
	}
	b.WriteByte(')')

	fmt.Fprintf(&b, "; created=%d", created.Unix())

	if !expires.IsZero() {
		fmt.Fprintf(&b, "; expires=%d", expires.Unix())
	}

	fmt.Fprintf(&b, "; keyId=%s", quoteRFC8941(keyID))
	fmt.Fprintf(&b, "; alg=%s", quoteRFC8941(alg.String()))
	fmt.Fprintf(&b, "; nonce=%s", quoteRFC8941(nonce))

	if tag != "" {
		fmt.Fprintf(&b, "; tag=%s", quoteRFC8941(tag))
	}

	return b.String()
}
