package fetch

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/matzehuels/chordsheet/pkg/buildinfo"
	"github.com/matzehuels/chordsheet/pkg/cache"
	errs "github.com/matzehuels/chordsheet/pkg/errors"
	"github.com/matzehuels/chordsheet/pkg/httputil"
	"github.com/matzehuels/chordsheet/pkg/observability"
)

const (
	httpTimeout = 15 * time.Second

	// MaxBodySize bounds how much of a page is read.
	MaxBodySize = 8 << 20
)

// UserAgent is sent with every request. Some chord sites refuse clients
// that do not look like a browser.
var UserAgent = "Mozilla/5.0 (compatible; chordsheet/" + buildinfo.Version + ")"

// Client fetches pages with caching and retry.
type Client struct {
	http     *http.Client
	cache    cache.Cache
	keyer    cache.Keyer
	ttl      time.Duration
	headers  map[string]string
	attempts int
	delay    time.Duration
	public   bool
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithCache stores fetched pages in ch under keys from keyer.
func WithCache(ch cache.Cache, keyer cache.Keyer) Option {
	return func(c *Client) {
		c.cache = ch
		if keyer != nil {
			c.keyer = keyer
		}
	}
}

// WithTTL sets how long fetched pages are cached.
func WithTTL(ttl time.Duration) Option {
	return func(c *Client) { c.ttl = ttl }
}

// WithHeader adds a header to every request.
func WithHeader(key, value string) Option {
	return func(c *Client) { c.headers[key] = value }
}

// WithRetry sets the attempt count and initial backoff delay.
func WithRetry(attempts int, delay time.Duration) Option {
	return func(c *Client) {
		c.attempts = attempts
		c.delay = delay
	}
}

// WithPublicOnly refuses loopback, private, link-local and other
// non-public destinations, including ones reached through redirects or
// DNS names. Servers fetching on behalf of remote callers need it.
func WithPublicOnly() Option {
	return func(c *Client) { c.public = true }
}

// NewClient creates a Client. Without [WithCache] nothing is cached.
func NewClient(opts ...Option) *Client {
	c := &Client{
		http:     &http.Client{Timeout: httpTimeout},
		cache:    cache.NewNullCache(),
		keyer:    cache.NewDefaultKeyer(),
		ttl:      cache.TTLPage,
		headers:  map[string]string{"User-Agent": UserAgent},
		attempts: 3,
		delay:    time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.public {
		c.http = publicOnly(c.http)
	}
	return c
}

// With returns a copy of c with opts applied on top.
func (c *Client) With(opts ...Option) *Client {
	out := *c
	out.headers = make(map[string]string, len(c.headers))
	for k, v := range c.headers {
		out.headers[k] = v
	}
	for _, opt := range opts {
		opt(&out)
	}
	if out.public && !c.public {
		out.http = publicOnly(out.http)
	}
	return &out
}

// PublicOnly reports whether the client refuses non-public destinations.
func (c *Client) PublicOnly() bool { return c.public }

// Page returns the body of url, from cache unless refresh is set.
// hit reports whether the body came from the cache.
func (c *Client) Page(ctx context.Context, url string, refresh bool) (body string, hit bool, err error) {
	if err := c.checkURL(url); err != nil {
		return "", false, err
	}
	key := c.keyer.PageKey(url)
	if !refresh {
		if data, ok, _ := c.cache.Get(ctx, key); ok {
			observability.Cache().OnCache(ctx, observability.CacheHit, "page", 0)
			return string(data), true, nil
		}
		observability.Cache().OnCache(ctx, observability.CacheMiss, "page", 0)
	}

	err = httputil.Retry(ctx, c.attempts, c.delay, func() error {
		var ferr error
		body, ferr = c.GetText(ctx, url)
		return ferr
	})
	if err != nil {
		return "", false, err
	}
	if err := c.cache.Set(ctx, key, []byte(body), c.ttl); err == nil {
		observability.Cache().OnCache(ctx, observability.CacheStore, "page", len(body))
	}
	return body, false, nil
}

func (c *Client) checkURL(rawURL string) error {
	if err := errs.ValidateURL(rawURL); err != nil {
		return err
	}
	if !c.public {
		return nil
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return errs.Wrap(errs.ErrCodeInvalidInput, err, "invalid URL")
	}
	if err := checkHost(u.Hostname()); err != nil {
		return errs.Wrap(errs.ErrCodeInvalidInput, err, "refusing to fetch %s", u.Hostname())
	}
	return nil
}

// GetText performs a single GET request and returns the body as a string.
func (c *Client) GetText(ctx context.Context, url string) (string, error) {
	body, err := c.doRequest(ctx, url)
	if err != nil {
		return "", err
	}
	defer body.Close()
	data, err := io.ReadAll(io.LimitReader(body, MaxBodySize))
	if err != nil {
		return "", &httputil.RetryableError{Err: errs.Wrap(errs.ErrCodeNetwork, err, "read response body")}
	}
	return string(data), nil
}

func (c *Client) doRequest(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidInput, err, "build request")
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}

	hooks := observability.Fetch()
	hooks.OnFetch(ctx, url)
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		hooks.OnFetchDone(ctx, url, 0, time.Since(start), err)
		var blocked *BlockedAddressError
		if errors.As(err, &blocked) {
			return nil, errs.Wrap(errs.ErrCodeInvalidInput, err, "refusing to fetch %s", blocked.Host)
		}
		if ctx.Err() != nil {
			return nil, errs.Wrap(errs.ErrCodeTimeout, err, "fetch %s", url)
		}
		return nil, &httputil.RetryableError{Err: errs.Wrap(errs.ErrCodeNetwork, err, "fetch %s", url)}
	}
	hooks.OnFetchDone(ctx, url, resp.StatusCode, time.Since(start), nil)

	if err := checkStatus(resp); err != nil {
		resp.Body.Close()
		return nil, err
	}
	return resp.Body, nil
}

func checkStatus(resp *http.Response) error {
	code := resp.StatusCode
	switch {
	case code >= 200 && code < 300:
		return nil
	case code == http.StatusNotFound:
		return errs.New(errs.ErrCodeNotFound, "page not found: %s", resp.Request.URL)
	case code == http.StatusTooManyRequests:
		secs, _ := strconv.Atoi(resp.Header.Get("Retry-After"))
		return &httputil.RetryableError{Err: errs.RateLimited(time.Duration(secs)*time.Second, "rate limited by %s", resp.Request.URL.Host)}
	case code >= 500:
		return &httputil.RetryableError{Err: errs.New(errs.ErrCodeNetwork, "unexpected status %d", code)}
	default:
		return errs.New(errs.ErrCodeNetwork, "unexpected status %d", code)
	}
}
