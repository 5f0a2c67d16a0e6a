// Package gwerror implements the gateway's error taxonomy: a single tagged
// variant (Kind) covering every client-visible failure the gateway can
// produce, one HTML rendering function, and a log-line sanitiser.
//
// The taxonomy is deliberately flat. Each Kind carries a fixed HTTP status
// and a generic client-facing message; no error hierarchy, no per-step
// custom types. A failing pipeline step wraps its cause in an *Error and
// returns it; the orchestrator's only job on failure is to call Render and
// Log with that one value.
//
// Messages never confirm whether a key exists, echo request headers, or
// include signature or key material, per the propagation policy: unverified
// requests get a generic reason, not a diagnosis.
package gwerror
