// Package keyregistry fetches agent public keys from the external key
// registry service and caches them for a short, configurable TTL.
//
// Client.Get implements the bounded-time lookup: a cache hit returns
// immediately; a miss performs at most one outbound GET to
// <REGISTRY_URL>/keys/<key_id>, parses the JSON KeyRecord, and inserts it
// into the cache before returning. 404 responses are NotFound and are never
// cached, since a future deploy may add the key. Transport errors and
// malformed bodies are FetchError.
//
// Resolver adapts a Client into an httpsig.KeyResolver: it fetches the
// record, checks algorithm agreement and IsActive, and constructs the
// matching httpsig.Verifier from the record's encoded key material.
package keyregistry
