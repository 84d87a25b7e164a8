package retrieve

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/temoto/robotstxt"
	"golang.org/x/net/html"
	"golang.org/x/time/rate"

	"github.com/ppiankov/veracity/internal/model"
)

const httpMaxBodyBytes = 2_000_000

// HTTPBackend is the live implementation of Backend. It fetches the
// source's page, honors robots.txt per host, and rate-limits per host.
// Failures bubble up to the retriever, which retries and then treats the
// source as having no evidence.
type HTTPBackend struct {
	client    *http.Client
	userAgent string

	mu       sync.RWMutex
	robots   map[string]*robotstxt.RobotsData
	limiters map[string]*rate.Limiter
	perHost  rate.Limit
	burst    int
}

// NewHTTPBackend creates a live backend. requestsPerSecond and burst
// bound the per-host request rate.
func NewHTTPBackend(userAgent string, timeout time.Duration, requestsPerSecond float64, burst int) *HTTPBackend {
	if burst <= 0 {
		burst = 2
	}
	return &HTTPBackend{
		client:    &http.Client{Timeout: timeout},
		userAgent: userAgent,
		robots:    make(map[string]*robotstxt.RobotsData),
		limiters:  make(map[string]*rate.Limiter),
		perHost:   rate.Limit(requestsPerSecond),
		burst:     burst,
	}
}

// Fetch retrieves the source page and returns its visible text as one
// document.
func (b *HTTPBackend) Fetch(ctx context.Context, claim model.Claim, source model.Source) ([]Document, error) {
	target := source.URL

	allowed, err := b.allowedByRobots(ctx, target)
	if err == nil && !allowed {
		return nil, fmt.Errorf("robots.txt disallows %s", target)
	}

	if err := b.limiter(target).Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", b.userAgent)

	resp, err := b.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", target, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("fetch %s: status %d", target, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, httpMaxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", target, err)
	}

	text := extractText(string(body))
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}
	return []Document{{URL: target, Text: text}}, nil
}

// allowedByRobots checks robots.txt for the target, caching the parsed
// rules per host. An unreachable robots.txt allows fetching by default.
func (b *HTTPBackend) allowedByRobots(ctx context.Context, rawURL string) (bool, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false, fmt.Errorf("parse URL: %w", err)
	}

	b.mu.RLock()
	data, ok := b.robots[parsed.Host]
	b.mu.RUnlock()

	if !ok {
		robotsURL := fmt.Sprintf("%s://%s/robots.txt", parsed.Scheme, parsed.Host)
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, robotsURL, nil)
		if err != nil {
			return true, nil
		}
		req.Header.Set("User-Agent", b.userAgent)
		resp, err := b.client.Do(req)
		if err != nil {
			return true, nil
		}
		defer func() { _ = resp.Body.Close() }()

		data, err = robotstxt.FromResponse(resp)
		if err != nil {
			return true, nil
		}
		b.mu.Lock()
		b.robots[parsed.Host] = data
		b.mu.Unlock()
	}

	return data.TestAgent(parsed.Path, b.userAgent), nil
}

// limiter returns the per-host rate limiter, creating it on first use.
func (b *HTTPBackend) limiter(rawURL string) *rate.Limiter {
	host := ""
	if parsed, err := url.Parse(rawURL); err == nil {
		host = parsed.Host
	}

	b.mu.RLock()
	lim, ok := b.limiters[host]
	b.mu.RUnlock()
	if ok {
		return lim
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if lim, ok := b.limiters[host]; ok {
		return lim
	}
	lim = rate.NewLimiter(b.perHost, b.burst)
	b.limiters[host] = lim
	return lim
}

// extractText walks the HTML tree and collects text nodes, skipping
// script and style subtrees.
func extractText(htmlContent string) string {
	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return htmlContent
	}

	var buf strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "iframe":
				return
			}
		}
		if n.Type == html.TextNode {
			if text := strings.TrimSpace(n.Data); text != "" {
				buf.WriteString(text)
				buf.WriteString(" ")
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return buf.String()
}
