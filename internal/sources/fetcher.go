package sources

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

const maxResponseSize = 10 << 20

var browserHeaders = map[string]string{
	"User-Agent": "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 " +
		"(KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,application/json;q=0.9,*/*;q=0.8",
	"Accept-Language": "en-US,en;q=0.5",
}

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// fetcher is the HTTP plumbing shared by every adapter.
type fetcher struct {
	httpClient  HTTPClient
	rateLimiter *rate.Limiter
}

func newFetcher(httpClient HTTPClient, timeout time.Duration, maxRequestsPerSecond float32) *fetcher {
	if httpClient == nil {
		if timeout <= 0 {
			timeout = 15 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	f := &fetcher{httpClient: httpClient}
	if maxRequestsPerSecond > 0 {
		f.rateLimiter = rate.NewLimiter(rate.Limit(maxRequestsPerSecond), 1)
	}
	return f
}

func (f *fetcher) get(ctx context.Context, url string) ([]byte, error) {

	if f.rateLimiter != nil {
		if err := f.rateLimiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}
	for key, value := range browserHeaders {
		req.Header.Set(key, value)
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error sending request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("request to %v failed with status %v", req.URL.Host, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("error reading response: %w", err)
	}
	return body, nil
}
