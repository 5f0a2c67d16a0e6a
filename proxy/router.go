package proxy

import (
	"fmt"
	"log"
	"net/http"
	"net/http/httputil"
	"net/url"
	"strings"
)

// apiPrefix is the path prefix routed to the API upstream.
const apiPrefix = "/api"

// Router selects between the API and APP upstreams by path prefix and
// forwards the request unmodified.
type Router struct {
	api *httputil.ReverseProxy
	app *httputil.ReverseProxy
}

// Config configures a Router.
type Config struct {
	// APIUpstreamURL receives requests whose path begins with "/api".
	APIUpstreamURL string

	// APPUpstreamURL receives all other requests.
	APPUpstreamURL string

	// Logger receives upstream connection errors. When nil, the standard
	// library's default ReverseProxy logging is used.
	Logger *log.Logger
}

// NewRouter constructs a Router from cfg. Returns an error if either
// upstream URL fails to parse.
func NewRouter(cfg Config) (*Router, error) {
	apiProxy, err := newReverseProxy(cfg.APIUpstreamURL, cfg.Logger)
	if err != nil {
		return nil, fmt.Errorf("proxy: api upstream: %w", err)
	}

	appProxy, err := newReverseProxy(cfg.APPUpstreamURL, cfg.Logger)
	if err != nil {
		return nil, fmt.Errorf("proxy: app upstream: %w", err)
	}

	return &Router{api: apiProxy, app: appProxy}, nil
}

// ServeHTTP forwards r to the API upstream if its path begins with "/api",
// otherwise to the APP upstream, streaming the response back unmodified.
func (router *Router) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if strings.HasPrefix(r.URL.Path, apiPrefix) {
		router.api.ServeHTTP(w, r)
		return
	}

	router.app.ServeHTTP(w, r)
}

func newReverseProxy(rawURL string, logger *log.Logger) (*httputil.ReverseProxy, error) {
	target, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid upstream url %q: %w", rawURL, err)
	}

	rp := httputil.NewSingleHostReverseProxy(target)
	if logger != nil {
		rp.ErrorLog = logger
	}

	return rp, nil
}
