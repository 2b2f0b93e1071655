package rest

import (
	"net/http"
	"time"

	"github.com/gregjones/httpcache"
	"golang.org/x/time/rate"
)

// TransportConfig selects the optional layers of the HTTP transport stack.
type TransportConfig struct {
	// Timeout bounds a whole request including body read. Zero means no limit.
	Timeout time.Duration

	// Cache enables an in-memory ETag/Cache-Control cache for GET requests.
	// Entries are keyed by URL only, so it should stay off when several
	// users share one process.
	Cache bool

	// RateLimit caps outgoing requests per second. Zero disables limiting.
	RateLimit float64
	Burst     int

	// Base is the innermost transport; http.DefaultTransport when nil.
	Base http.RoundTripper
}

// NewHTTPClient builds the transport stack:
//  1. httpcache (optional, conditional GET caching; hits skip the limiter)
//  2. rate limiter (optional, waits honour the request context, never retries)
//  3. base transport
func NewHTTPClient(cfg TransportConfig) *http.Client {
	var rt http.RoundTripper = http.DefaultTransport
	if cfg.Base != nil {
		rt = cfg.Base
	}

	if cfg.RateLimit > 0 {
		burst := cfg.Burst
		if burst < 1 {
			burst = 1
		}
		rt = &limitedTransport{
			next:    rt,
			limiter: rate.NewLimiter(rate.Limit(cfg.RateLimit), burst),
		}
	}

	if cfg.Cache {
		cacheTransport := httpcache.NewMemoryCacheTransport()
		cacheTransport.Transport = rt
		rt = cacheTransport
	}

	return &http.Client{
		Transport: rt,
		Timeout:   cfg.Timeout,
	}
}

// limitedTransport delays each round trip until the limiter grants a token.
type limitedTransport struct {
	next    http.RoundTripper
	limiter *rate.Limiter
}

func (t *limitedTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if err := t.limiter.Wait(req.Context()); err != nil {
		if req.Body != nil {
			_ = req.Body.Close()
		}
		return nil, err
	}
	return t.next.RoundTrip(req)
}
