// Package gateway implements the Gate & Proxy orchestrator: the ten-step
// pipeline that parses the signature envelope, resolves and checks the
// signing key, enforces temporal and replay constraints, verifies the
// cryptographic signature, and forwards admitted requests upstream
// unmodified.
//
// Gate.ServeHTTP is an http.Handler. Paths matching the configured gated
// prefix ("/product/" by default) run the full pipeline; every other path
// is forwarded without any signature check. Every failure short-circuits
// to gwerror.Render with the first Kind the pipeline hits, and is logged
// via gwerror.Log/LogError with sanitised fields.
package gateway
