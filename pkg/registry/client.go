package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/glorpus-work/kitctl/internal/logger"
	"github.com/glorpus-work/kitctl/pkg/auth"
	"github.com/glorpus-work/kitctl/pkg/errors"
	"github.com/glorpus-work/kitctl/pkg/fsutil"
	cmap "github.com/orcaman/concurrent-map/v2"
	"golang.org/x/sync/singleflight"
)

const userAgent = "kitctl/1.0"

// Options configures an HTTPClient.
type Options struct {
	URL     string
	Timeout time.Duration
	// Retries bounds the number of retries after the first attempt.
	Retries int
	// RetryInterval is the initial backoff interval. Zero uses the backoff default.
	RetryInterval time.Duration
	// CacheDir holds cached documents on disk. Empty disables the disk cache.
	CacheDir string
	// CacheTTL is how long a fetched document is reused. Zero disables caching.
	CacheTTL time.Duration
	// Auth is applied to every request when set.
	Auth auth.Authenticator
}

// HTTPClient fetches package documents from an npm compatible registry.
type HTTPClient struct {
	baseURL string
	client  *http.Client
	opts    Options

	memory cmap.ConcurrentMap[string, *Metadata]
	group  singleflight.Group
	now    func() time.Time
}

// NewHTTPClient creates a registry client.
func NewHTTPClient(opts Options) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(opts.URL, "/"),
		client:  &http.Client{Timeout: opts.Timeout},
		opts:    opts,
		memory:  cmap.New[*Metadata](),
		now:     time.Now,
	}
}

// FetchMetadata returns the registry document for name, from cache when fresh.
func (c *HTTPClient) FetchMetadata(ctx context.Context, name string) (*Metadata, error) {
	if name == "" {
		return nil, errors.InvalidPackage(name)
	}
	if md, ok := c.cached(name); ok {
		return md, nil
	}

	// The fetch outlives any single caller; each caller stops waiting when
	// its own context ends.
	fetchCtx := context.WithoutCancel(ctx)
	ch := c.group.DoChan(name, func() (interface{}, error) {
		md, err := c.fetch(fetchCtx, name)
		if err != nil {
			return nil, err
		}
		c.store(name, md)
		return md, nil
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		if res.Shared {
			logger.Debug("Shared registry fetch", logger.Fields{"package": name})
		}
		return res.Val.(*Metadata), nil
	}
}

// Invalidate drops any cached document for name.
func (c *HTTPClient) Invalidate(name string) {
	c.memory.Remove(name)
	if path := c.cachePath(name); path != "" {
		_ = os.Remove(path)
	}
}

func (c *HTTPClient) fetch(ctx context.Context, name string) (*Metadata, error) {
	docURL, err := c.packageURL(name)
	if err != nil {
		return nil, err
	}

	var md *Metadata
	attempt := 0
	operation := func() error {
		attempt++
		var err error
		md, err = c.get(ctx, docURL, name)
		return err
	}
	notify := func(err error, wait time.Duration) {
		logger.Warn("Registry request failed, retrying", logger.Fields{
			"package": name,
			"attempt": attempt,
			"wait":    wait.String(),
			"error":   err.Error(),
		})
	}

	if err := backoff.RetryNotify(operation, c.backOff(ctx), notify); err != nil {
		return nil, err
	}
	md.FetchedAt = c.now()
	return md, nil
}

func (c *HTTPClient) backOff(ctx context.Context) backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	if c.opts.RetryInterval > 0 {
		b.InitialInterval = c.opts.RetryInterval
	}
	retries := c.opts.Retries
	if retries < 0 {
		retries = 0
	}
	return backoff.WithContext(backoff.WithMaxRetries(b, uint64(retries)), ctx)
}

// get performs a single request. Errors that retrying cannot fix are wrapped
// in backoff.Permanent.
func (c *HTTPClient) get(ctx context.Context, docURL, name string) (*Metadata, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, docURL, http.NoBody)
	if err != nil {
		return nil, backoff.Permanent(errors.Wrap(err, "failed to create request"))
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")
	if c.opts.Auth != nil {
		if err := c.opts.Auth.Apply(req); err != nil {
			return nil, backoff.Permanent(errors.Wrap(err, "failed to authenticate registry request"))
		}
	}

	resp, err := c.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, backoff.Permanent(ctx.Err())
		}
		return nil, fmt.Errorf("%w: %w", errors.ErrRegistryUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusNotFound:
		return nil, backoff.Permanent(fmt.Errorf("%w: %s", errors.ErrPackageNotInRegistry, name))
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= http.StatusInternalServerError:
		return nil, fmt.Errorf("%w: HTTP %d", errors.ErrRegistryUnavailable, resp.StatusCode)
	default:
		return nil, backoff.Permanent(fmt.Errorf("%w: HTTP %d", errors.ErrRegistryResponse, resp.StatusCode))
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read response body")
	}
	md, err := parseDocument(data)
	if err != nil {
		return nil, backoff.Permanent(fmt.Errorf("%w: %w", errors.ErrRegistryResponse, err))
	}
	if md.Name == "" {
		md.Name = name
	}
	return md, nil
}

// packageURL builds <registry>/<name>, escaping the slash of scoped names.
func (c *HTTPClient) packageURL(name string) (string, error) {
	base, err := url.Parse(c.baseURL)
	if err != nil || base.Scheme == "" || base.Host == "" {
		return "", fmt.Errorf("%w: invalid registry URL %q", errors.ErrRegistryResponse, c.baseURL)
	}
	return c.baseURL + "/" + url.PathEscape(name), nil
}

func (c *HTTPClient) fresh(md *Metadata) bool {
	return md != nil && c.opts.CacheTTL > 0 && md.FetchedAt.Add(c.opts.CacheTTL).After(c.now())
}

func (c *HTTPClient) cached(name string) (*Metadata, bool) {
	if c.opts.CacheTTL <= 0 {
		return nil, false
	}
	if md, ok := c.memory.Get(name); ok && c.fresh(md) {
		return md, true
	}

	path := c.cachePath(name)
	if path == "" {
		return nil, false
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}
	var md Metadata
	if err := json.Unmarshal(data, &md); err != nil {
		logger.Debug("Ignoring unreadable registry cache entry", logger.Fields{"path": path, "error": err.Error()})
		return nil, false
	}
	if !c.fresh(&md) {
		return nil, false
	}
	c.memory.Set(name, &md)
	return &md, true
}

func (c *HTTPClient) store(name string, md *Metadata) {
	if c.opts.CacheTTL <= 0 {
		return
	}
	c.memory.Set(name, md)

	path := c.cachePath(name)
	if path == "" {
		return
	}
	data, err := json.Marshal(md)
	if err != nil {
		return
	}
	if err := fsutil.WriteFileAtomic(path, data, fsutil.FileModeSecure); err != nil {
		logger.Warn("Failed to write registry cache", logger.Fields{"path": path, "error": err.Error()})
	}
}

func (c *HTTPClient) cachePath(name string) string {
	if c.opts.CacheDir == "" {
		return ""
	}
	return filepath.Join(c.opts.CacheDir, url.PathEscape(name)+".json")
}
