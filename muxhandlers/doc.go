// Package muxhandlers provides HTTP middleware handlers for the mux router.
//
// The subset kept here covers the ambient concerns every response gets in
// front of the signature-verification gateway, whether or not the request
// was on a gated route: panic recovery, request-ID propagation, the
// security response headers, trusted-proxy header handling, a request body
// size ceiling, a per-request timeout, and a server identification header.
//
// # Proxy Headers Middleware
//
// ProxyHeadersMiddleware populates request fields from reverse proxy headers
// when the request originates from a trusted proxy. It sets r.RemoteAddr from
// X-Forwarded-For or X-Real-IP, r.URL.Scheme from X-Forwarded-Proto or
// X-Forwarded-Scheme, and r.Host from X-Forwarded-Host. When EnableForwarded
// is true, the RFC 7239 Forwarded header is also parsed as a lowest-priority
// fallback. A trusted proxy list (IPs and CIDRs) restricts which peers are
// allowed to set these headers, preventing spoofing from untrusted clients.
// When TrustedProxies is empty, DefaultTrustedProxies (RFC 1918, RFC 4193,
// and loopback ranges) is used.
//
//	mw, err := muxhandlers.ProxyHeadersMiddleware(muxhandlers.ProxyHeadersConfig{
//	    TrustedProxies:  []string{"10.0.0.0/8", "172.16.0.0/12"},
//	    EnableForwarded: true,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	r.Use(mw)
//
// # Security Headers Middleware
//
// SecurityHeadersMiddleware sets the restrictive response headers the
// gateway applies to every response: Content-Security-Policy,
// X-Content-Type-Options, X-Frame-Options, and Referrer-Policy.
//
// # Recovery, Request ID, Timeout, Request Size Limit, Server
//
// RecoveryMiddleware turns a downstream panic into a 500 response.
// RequestIDMiddleware generates or propagates an X-Request-ID header and
// stores it in the request context. TimeoutMiddleware bounds handler
// execution time. RequestSizeLimitMiddleware caps request body size.
// ServerMiddleware sets an X-Server-Hostname identification header.
package muxhandlers
