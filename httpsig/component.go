package httpsig

import (
	"fmt"
	"net/http"
	"strings"

	"golang.org/x/net/idna"
)

// Derived component identifiers. The gateway recognizes the full RFC 9421
// Section 2.2 set; the wire format only covers a subset of these, the rest
// are carried for richness and for test fixture signing.
const (
	ComponentMethod        = "@method"
	ComponentAuthority     = "@authority"
	ComponentPath          = "@path"
	ComponentQuery         = "@query"
	ComponentTargetURI     = "@target-uri"
	ComponentScheme        = "@scheme"
	ComponentRequestTarget = "@request-target"
)

// defaultContentType is substituted for the "content-type" component when
// the request carries no Content-Type header: agent requests are JSON
// bodies by convention, so an absent header is treated as the implicit
// default rather than a verification failure.
const defaultContentType = "application/json"

// componentValue extracts the value of a covered component from an HTTP
// request. Derived components start with "@". Header field names are
// lowercased and multi-value headers are joined with ", ". A component with
// no corresponding value on the request fails closed: this gateway takes
// the strict reading of a missing covered component, never silently
// omitting it from the base string.
func componentValue(id string, r *http.Request) (string, error) {
	if strings.HasPrefix(id, "@") {
		return derivedComponentValue(id, r)
	}

	if strings.EqualFold(id, "host") {
		return authority(r)
	}

	return headerComponentValue(id, r)
}

// derivedComponentValue extracts the value of a derived component identifier.
//
// @path deviates from RFC 9421 here: the wire format's "path" component
// covers path and query together (there is no separate @query component on
// gated requests), matching how the agent-facing SDKs build their
// signature base.
func derivedComponentValue(id string, r *http.Request) (string, error) {
	switch id {
	case ComponentMethod:
		return strings.ToUpper(r.Method), nil

	case ComponentAuthority:
		a, err := authority(r)
		if err != nil {
			return "", err
		}

		return a, nil

	case ComponentPath:
		return requestTarget(r), nil

	case ComponentQuery:
		return "?" + r.URL.RawQuery, nil

	case ComponentTargetURI:
		return targetURI(r)

	case ComponentScheme:
		return scheme(r), nil

	case ComponentRequestTarget:
		return requestTarget(r), nil

	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownComponent, id)
	}
}

// headerComponentValue extracts the value of a header field. Multiple
// values for the same header are joined with ", ". "host" is handled
// separately by componentValue, routed through authority so it normalizes
// identically to @authority. "content-type" falls back to
// defaultContentType instead of failing, since the gateway only ever
// proxies JSON agent traffic.
func headerComponentValue(id string, r *http.Request) (string, error) {
	canon := http.CanonicalHeaderKey(id)
	values := r.Header[canon]

	switch {
	case len(values) == 0 && strings.EqualFold(id, "content-type"):
		return defaultContentType, nil

	case len(values) == 0:
		return "", fmt.Errorf("%w: header %q not present", ErrComponentNotPresent, id)
	}

	return strings.Join(values, ", "), nil
}

// authority returns the authority component (host[:port]) from the
// request, with the hostname normalized through IDNA (so a punycode and a
// Unicode form of the same agent hostname sign identically) and the port,
// if present, preserved verbatim. "host" and "@authority" both resolve
// through this function so a signer covering either signs the same
// normalized value the gateway reconstructs.
func authority(r *http.Request) (string, error) {
	host := r.Host
	if host == "" && r.URL != nil {
		host = r.URL.Host
	}

	if host == "" {
		return "", fmt.Errorf("%w: request has no authority", ErrComponentNotPresent)
	}

	hostname, port, hasPort := splitHostPort(host)

	normalized, err := idna.Lookup.ToASCII(hostname)
	if err != nil {
		// Not every authority is a DNS hostname (it may be a bare IP
		// literal); fall back to a lowercase-only normalization rather
		// than failing the whole request over it.
		normalized = strings.ToLower(hostname)
	}

	if hasPort {
		return normalized + ":" + port, nil
	}

	return normalized, nil
}

// splitHostPort splits a host[:port] string without the strict validation
// net.SplitHostPort applies, since authority strings may be bare IPv6
// literals in brackets or hostnames without a port.
func splitHostPort(host string) (hostname string, port string, hasPort bool) {
	if strings.HasPrefix(host, "[") {
		if idx := strings.Index(host, "]"); idx != -1 {
			hostname = host[:idx+1]
			rest := host[idx+1:]
			if strings.HasPrefix(rest, ":") {
				return hostname, rest[1:], true
			}

			return hostname, "", false
		}
	}

	if idx := strings.LastIndex(host, ":"); idx != -1 && !strings.Contains(host[idx+1:], ":") {
		return host[:idx], host[idx+1:], true
	}

	return host, "", false
}

// scheme returns the request scheme (http or https).
func scheme(r *http.Request) string {
	if r.TLS != nil {
		return "https"
	}

	if r.URL != nil && r.URL.Scheme != "" {
		return strings.ToLower(r.URL.Scheme)
	}

	return "http"
}

// targetURI reconstructs the full target URI for the request.
func targetURI(r *http.Request) (string, error) {
	a, err := authority(r)
	if err != nil {
		return "", err
	}

	return scheme(r) + "://" + a + requestTarget(r), nil
}

// requestTarget returns the request target (path + optional query).
func requestTarget(r *http.Request) string {
	path := r.URL.Path
	if path == "" {
		path = "/"
	}

	if r.URL.RawQuery != "" {
		return path + "?" + r.URL.RawQuery
	}

	return path
}
