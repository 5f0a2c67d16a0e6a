package keyregistry

import (
	"crypto/ed25519"
	"crypto/rsa"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"fmt"
	"net/http"

	"github.com/shopsentry/agentgate/httpsig"
)

// Resolver adapts a Client into an httpsig.KeyResolver.
func (c *Client) Resolver() httpsig.KeyResolver {
	return func(r *http.Request, keyID string, alg httpsig.Algorithm) (httpsig.Verifier, error) {
		record, err := c.Get(r.Context(), keyID)
		if err != nil {
			return nil, err
		}

		if record.Algorithm != alg {
			return nil, fmt.Errorf("%w: record=%s envelope=%s", ErrAlgorithmMismatch, record.Algorithm, alg)
		}

		if !record.Active() {
			return nil, ErrKeyInactive
		}

		return verifierFromRecord(record)
	}
}

// verifierFromRecord decodes a record's encoded public_key field into an
// httpsig.Verifier matching its algorithm: Ed25519 keys decode to exactly
// 32 raw bytes; RSA keys parse as an SPKI RSA public key.
func verifierFromRecord(record KeyRecord) (httpsig.Verifier, error) {
	switch record.Algorithm {
	case httpsig.AlgorithmEd25519:
		raw, err := base64.StdEncoding.DecodeString(record.PublicKey)
		if err != nil {
			return nil, fmt.Errorf("%w: ed25519 public key is not valid base64: %v", httpsig.ErrInvalidKey, err)
		}

		if len(raw) != ed25519.PublicKeySize {
			return nil, fmt.Errorf("%w: ed25519 public key must be %d bytes, got %d", httpsig.ErrInvalidKey, ed25519.PublicKeySize, len(raw))
		}

		return httpsig.NewEd25519Verifier(record.KeyID, ed25519.PublicKey(raw))

	case httpsig.AlgorithmRSAPSSSHA256:
		block, _ := pem.Decode([]byte(record.PublicKey))
		if block == nil {
			return nil, fmt.Errorf("%w: rsa public key is not valid PEM", httpsig.ErrInvalidKey)
		}

		pub, err := x509.ParsePKIXPublicKey(block.Bytes)
		if err != nil {
			return nil, fmt.Errorf("%w: rsa public key does not parse as SPKI: %v", httpsig.ErrInvalidKey, err)
		}

		rsaPub, ok := pub.(*rsa.PublicKey)
		if !ok {
			return nil, fmt.Errorf("%w: rsa public key SPKI block does not contain an RSA key", httpsig.ErrInvalidKey)
		}

		return httpsig.NewRSAPSSSHA256Verifier(record.KeyID, rsaPub)

	default:
		return nil, fmt.Errorf("%w: %s", httpsig.ErrUnsupportedAlgorithm, record.Algorithm)
	}
}
