// Package proxy forwards admitted requests to one of two configured
// upstreams: requests whose path begins with "/api" go to API_UPSTREAM_URL,
// everything else to APP_UPSTREAM_URL.
// Both are httputil.ReverseProxy instances; the original method, path,
// query, headers (including the two signature headers, unchanged), and
// body are forwarded as-is, and the upstream's response is streamed back
// unmodified.
package proxy
