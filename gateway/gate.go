package gateway

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/shopsentry/agentgate/gwerror"
	"github.com/shopsentry/agentgate/httpsig"
	"github.com/shopsentry/agentgate/keyregistry"
	"github.com/shopsentry/agentgate/mux"
	"github.com/shopsentry/agentgate/replayguard"
)

// defaultGatedPrefix is the route policy: paths whose lowercased form
// starts with this prefix require a valid signature.
const defaultGatedPrefix = "/product/"

// defaultClockSkew is the CLOCK_SKEW_S default.
const defaultClockSkew = 60 * time.Second

// KeyRegistry is the subset of *keyregistry.Client the gate depends on,
// narrowed to an interface so tests can substitute a fake registry.
type KeyRegistry interface {
	Get(ctx context.Context, keyID string) (keyregistry.KeyRecord, error)
	Resolver() httpsig.KeyResolver
}

// Config configures a Gate.
type Config struct {
	// KeyRegistry resolves key_id to key material.
	KeyRegistry KeyRegistry

	// ReplayGuard tracks nonce single-use.
	ReplayGuard *replayguard.Guard

	// Upstream forwards admitted requests, via the proxy package's API/APP
	// upstream selection.
	Upstream http.Handler

	// GatedPrefix is the route policy prefix. Defaults to "/product/".
	GatedPrefix string

	// ClockSkew bounds how far into the future a created timestamp may
	// be. Defaults to 60s.
	ClockSkew time.Duration

	// Logger receives one sanitised line per pipeline step. Defaults to
	// a logger writing to os.Stderr.
	Logger *log.Logger

	// Now returns the current time; overridable for deterministic tests.
	// Defaults to time.Now.
	Now func() time.Time
}

// Gate is an http.Handler implementing the Gate & Proxy orchestrator.
type Gate struct {
	keys        KeyRegistry
	guard       *replayguard.Guard
	upstream    http.Handler
	gatedPrefix string
	clockSkew   time.Duration
	logger      *log.Logger
	now         func() time.Time
}

// NewGate constructs a Gate from cfg, applying defaults for zero-valued
// optional fields.
func NewGate(cfg Config) *Gate {
	gatedPrefix := cfg.GatedPrefix
	if gatedPrefix == "" {
		gatedPrefix = defaultGatedPrefix
	}

	clockSkew := cfg.ClockSkew
	if clockSkew <= 0 {
		clockSkew = defaultClockSkew
	}

	logger := cfg.Logger
	if logger == nil {
		logger = log.New(os.Stderr, "", log.LstdFlags)
	}

	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	return &Gate{
		keys:        cfg.KeyRegistry,
		guard:       cfg.ReplayGuard,
		upstream:    cfg.Upstream,
		gatedPrefix: strings.ToLower(gatedPrefix),
		clockSkew:   clockSkew,
		logger:      logger,
		now:         now,
	}
}

// ServeHTTP runs the route policy and, for gated paths, the full
// verification pipeline. Gate is registered on both the mux route that
// captures a product id (the common case, "/product/{id:int}") and a
// catch-all "/" route, so the gatedPrefix check below remains the sole
// authority on whether a path is gated; mux.VarGet only supplies the id
// for logging when the more specific route matched.
func (g *Gate) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !strings.HasPrefix(strings.ToLower(r.URL.Path), g.gatedPrefix) {
		g.upstream.ServeHTTP(w, r)
		return
	}

	productID, _ := mux.VarGet(r, "id")

	if r.Header.Get("Signature-Input") == "" && r.Header.Get("Signature") == "" {
		gwerror.Log(g.logger, "route_policy", r, gwerror.F("result", "signature_required"), gwerror.F("product_id", productID))
		gwerror.Render(w, gwerror.New(gwerror.SignatureRequired, ""))
		return
	}

	if err := g.verify(r, productID); err != nil {
		gwerror.Render(w, err)
		return
	}

	g.upstream.ServeHTTP(w, r)
}

// verify runs the key resolution, temporal, replay, and cryptographic
// checks in order. It returns nil only when the request is fully
// admitted.
func (g *Gate) verify(r *http.Request, productID string) *gwerror.Error {
	idField := gwerror.F("product_id", productID)

	env, err := httpsig.ParseEnvelope(r)
	if err != nil {
		kind := gwerror.InvalidEnvelope
		if errors.Is(err, httpsig.ErrInvalidKeyID) {
			kind = gwerror.InvalidKeyID
		}

		gerr := gwerror.Wrap(kind, err, "")
		gwerror.LogError(g.logger, "parse_envelope", r, gerr, idField)

		return gerr
	}

	record, err := g.keys.Get(r.Context(), env.KeyID)
	if err != nil {
		gerr := g.mapRegistryError(err)
		gwerror.LogError(g.logger, "key_lookup", r, gerr, gwerror.F("key_id", env.KeyID), idField)

		return gerr
	}

	if record.Algorithm != env.Algorithm {
		gerr := gwerror.New(gwerror.KeyNotFound, "")
		gwerror.LogError(g.logger, "key_lookup", r, gerr, gwerror.F("key_id", env.KeyID), idField)

		return gerr
	}

	if !record.Active() {
		gerr := gwerror.New(gwerror.KeyInactive, "")
		gwerror.LogError(g.logger, "key_active_check", r, gerr, gwerror.F("key_id", env.KeyID), idField)

		return gerr
	}

	now := g.now()

	if env.HasCreated && env.Created.After(now.Add(g.clockSkew)) {
		gerr := gwerror.New(gwerror.TimestampFuture, "")
		gwerror.LogError(g.logger, "temporal_check", r, gerr, gwerror.F("key_id", env.KeyID), idField)

		return gerr
	}

	if env.HasExpires && env.Expires.Before(now) {
		gerr := gwerror.New(gwerror.SignatureExpired, "")
		gwerror.LogError(g.logger, "temporal_check", r, gerr, gwerror.F("key_id", env.KeyID), idField)

		return gerr
	}

	if g.guard.CheckAndRecord(env.Nonce) == replayguard.Replay {
		gerr := gwerror.New(gwerror.Replay, "")
		gwerror.LogError(g.logger, "replay_check", r, gerr, gwerror.F("key_id", env.KeyID), gwerror.F("nonce", env.Nonce), idField)

		return gerr
	}

	if err := httpsig.Verify(r, env, g.keys.Resolver()); err != nil {
		gerr := g.mapVerifyError(err)
		gwerror.LogError(g.logger, "verify", r, gerr, gwerror.F("key_id", env.KeyID), gwerror.F("alg", string(env.Algorithm)), idField)

		return gerr
	}

	gwerror.Log(g.logger, "verify", r, gwerror.F("result", "admitted"), gwerror.F("key_id", env.KeyID), gwerror.F("tag", env.Tag), idField)

	return nil
}

// mapRegistryError maps a keyregistry.Client.Get error to the matching
// gwerror.Kind.
func (g *Gate) mapRegistryError(err error) *gwerror.Error {
	if errors.Is(err, keyregistry.ErrKeyNotFound) {
		return gwerror.New(gwerror.KeyNotFound, "")
	}

	return gwerror.Wrap(gwerror.RegistryUnavailable, err, "")
}

// mapVerifyError maps an httpsig.Verify error to the matching gwerror.Kind.
func (g *Gate) mapVerifyError(err error) *gwerror.Error {
	switch {
	case errors.Is(err, httpsig.ErrUnsupportedAlgorithm):
		return gwerror.New(gwerror.UnsupportedAlgorithm, "")
	case errors.Is(err, httpsig.ErrSignatureInvalid):
		return gwerror.New(gwerror.SignatureBad, "")
	case errors.Is(err, keyregistry.ErrKeyNotFound):
		return gwerror.New(gwerror.KeyNotFound, "")
	case errors.Is(err, keyregistry.ErrKeyInactive):
		return gwerror.New(gwerror.KeyInactive, "")
	case errors.Is(err, keyregistry.ErrAlgorithmMismatch):
		return gwerror.New(gwerror.KeyNotFound, "")
	case errors.Is(err, keyregistry.ErrFetchFailed):
		return gwerror.Wrap(gwerror.RegistryUnavailable, err, "")
	default:
		return gwerror.Wrap(gwerror.InvalidEnvelope, err, "")
	}
}
