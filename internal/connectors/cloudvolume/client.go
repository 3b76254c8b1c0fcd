package cloudvolume

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"google.golang.org/api/option"
	storage "google.golang.org/api/storage/v1"

	"github.com/cajal/microns-kit/internal/core/domain"
	"github.com/cajal/microns-kit/internal/logger"
)

// DefaultTimeout is the default HTTP request timeout.
const DefaultTimeout = 30 * time.Second

// maxInfoSize bounds the info manifest read (they are a few KB in practice).
const maxInfoSize = 1 << 20

// Client fetches precomputed volume manifests.
type Client struct {
	http *http.Client
	gcs  *storage.Service
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the HTTP client used for https:// paths.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithStorageService overrides the Cloud Storage service used for gs://
// paths. Used by tests to point at a stub server.
func WithStorageService(svc *storage.Service) Option {
	return func(c *Client) { c.gcs = svc }
}

// NewClient creates a volume client.
func NewClient(opts ...Option) *Client {
	c := &Client{
		http: &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchInfo downloads and parses the info manifest of the volume at cvPath.
// Supported path forms, with an optional "precomputed://" prefix:
//
//	https://bucket.example.org/path/to/volume
//	gs://bucket/path/to/volume
func (c *Client) FetchInfo(ctx context.Context, cvPath string) (*Info, error) {
	path := strings.TrimPrefix(strings.TrimSpace(cvPath), "precomputed://")

	var (
		body io.ReadCloser
		err  error
	)
	switch {
	case strings.HasPrefix(path, "gs://"):
		body, err = c.openGCS(ctx, strings.TrimPrefix(path, "gs://"))
	case strings.HasPrefix(path, "https://"), strings.HasPrefix(path, "http://"):
		body, err = c.openHTTP(ctx, path)
	default:
		return nil, fmt.Errorf("%w: unsupported volume path %q", domain.ErrInvalidInput, cvPath)
	}
	if err != nil {
		return nil, err
	}
	defer body.Close()

	var info Info
	if err := json.NewDecoder(io.LimitReader(body, maxInfoSize)).Decode(&info); err != nil {
		return nil, fmt.Errorf("decode info for %s: %w", cvPath, err)
	}
	if len(info.Scales) == 0 {
		return nil, fmt.Errorf("%w: volume %s has no scales", domain.ErrInvalidInput, cvPath)
	}

	logger.Debug("fetched info for %s: %d mips, data type %s", cvPath, len(info.Scales), info.DataType)
	return &info, nil
}

// openHTTP fetches <path>/info over plain HTTP(S).
func (c *Client) openHTTP(ctx context.Context, path string) (io.ReadCloser, error) {
	url := strings.TrimSuffix(path, "/") + "/info"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	if resp.StatusCode == http.StatusNotFound {
		resp.Body.Close()
		return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, url)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("fetch %s: status %d", url, resp.StatusCode)
	}
	return resp.Body, nil
}

// openGCS fetches <object>/info from a bucket through the Cloud Storage JSON
// API. Public buckets need no credentials.
func (c *Client) openGCS(ctx context.Context, path string) (io.ReadCloser, error) {
	bucket, object, ok := strings.Cut(path, "/")
	if !ok || bucket == "" || object == "" {
		return nil, fmt.Errorf("%w: malformed gs path %q", domain.ErrInvalidInput, path)
	}

	if c.gcs == nil {
		svc, err := storage.NewService(ctx, option.WithoutAuthentication())
		if err != nil {
			return nil, fmt.Errorf("create storage service: %w", err)
		}
		c.gcs = svc
	}

	obj := strings.TrimSuffix(object, "/") + "/info"
	resp, err := c.gcs.Objects.Get(bucket, obj).Context(ctx).Download()
	if err != nil {
		return nil, fmt.Errorf("download gs://%s/%s: %w", bucket, obj, err)
	}
	return resp.Body, nil
}
