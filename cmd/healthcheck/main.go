package main

import (
	"context"
	"net/http"
	"net/url"
	"os"
	"time"

	_ "golang.org/x/crypto/x509roots/fallback" // Embed CA certs for scratch container

	"github.com/ericfisherdev/crmclient/internal/config"
)

func main() {
	os.Exit(check())
}

// check exits 0 when the API origin answers at all. Any status below 500
// counts, since unauthenticated requests are expected to get 401 or 404.
func check() int {
	target := probeURL(os.Getenv("CRMCLIENT_BASE_URL"))

	client := &http.Client{Timeout: 5 * time.Second}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, target, nil)
	if err != nil {
		return 1
	}

	resp, err := client.Do(req)
	if err != nil {
		return 1
	}
	_ = resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		return 1
	}

	return 0
}

// probeURL falls back to the production origin when raw is empty or is not
// an absolute http(s) URL.
func probeURL(raw string) string {
	if raw == "" {
		return config.DefaultBaseURL
	}

	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return config.DefaultBaseURL
	}

	return u.String()
}
