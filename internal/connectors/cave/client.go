package cave

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/cajal/microns-kit/internal/core/domain"
	"github.com/cajal/microns-kit/internal/logger"
)

// DefaultServer is the global CAVE deployment serving the MICrONS datastacks.
const DefaultServer = "https://global.daf-apis.com"

// DefaultTimeout is the default HTTP request timeout.
const DefaultTimeout = 30 * time.Second

// DatastackInfo is the info service record for a datastack.
type DatastackInfo struct {
	Description         string        `json:"description"`
	ViewerSite          string        `json:"viewer_site"`
	LocalServer         string        `json:"local_server"`
	SegmentationSource  string        `json:"segmentation_source"`
	SynapseTable        string        `json:"synapse_table"`
	SomaTable           string        `json:"soma_table"`
	AlignedVolume       AlignedVolume `json:"aligned_volume"`
	ViewerResolutionX   float64       `json:"viewer_resolution_x"`
	ViewerResolutionY   float64       `json:"viewer_resolution_y"`
	ViewerResolutionZ   float64       `json:"viewer_resolution_z"`
}

// AlignedVolume identifies the imagery volume a datastack is aligned to.
type AlignedVolume struct {
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
	Description string `json:"description"`
	ImageSource string `json:"image_source"`
}

// Client talks to one datastack of a CAVE deployment.
type Client struct {
	server    string
	datastack string
	token     string
	http      *http.Client

	mu     sync.Mutex
	pinned int // 0 = not pinned
}

// Option configures a Client.
type Option func(*Client)

// WithToken sets the bearer token for authenticated deployments.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// NewClient creates a client for a datastack. An empty server selects
// DefaultServer.
func NewClient(server, datastack string, opts ...Option) (*Client, error) {
	if datastack == "" {
		return nil, fmt.Errorf("%w: datastack name is required", domain.ErrInvalidInput)
	}
	if server == "" {
		server = DefaultServer
	}

	c := &Client{
		server:    strings.TrimSuffix(server, "/"),
		datastack: datastack,
		http:      &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Datastack returns the datastack name the client is bound to.
func (c *Client) Datastack() string {
	return c.datastack
}

// DatastackInfo fetches the datastack record from the info service.
func (c *Client) DatastackInfo(ctx context.Context) (*DatastackInfo, error) {
	var info DatastackInfo
	path := fmt.Sprintf("/info/api/v2/datastack/full/%s", c.datastack)
	if err := c.getJSON(ctx, path, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// MaterializationVersions returns the available materialization versions,
// newest first.
func (c *Client) MaterializationVersions(ctx context.Context) ([]int, error) {
	var versions []int
	path := fmt.Sprintf("/materialize/api/v2/datastack/%s/versions", c.datastack)
	if err := c.getJSON(ctx, path, &versions); err != nil {
		return nil, err
	}
	sort.Sort(sort.Reverse(sort.IntSlice(versions)))
	return versions, nil
}

// PinVersion pins the client to a materialization version after verifying it
// exists.
func (c *Client) PinVersion(ctx context.Context, version int) error {
	versions, err := c.MaterializationVersions(ctx)
	if err != nil {
		return err
	}
	for _, v := range versions {
		if v == version {
			c.mu.Lock()
			c.pinned = version
			c.mu.Unlock()
			logger.Info("datastack %s pinned to materialization version %d", c.datastack, version)
			return nil
		}
	}
	return fmt.Errorf("%w: materialization version %d for datastack %s",
		domain.ErrNotFound, version, c.datastack)
}

// PinLatest pins the client to the newest materialization version and
// returns it.
func (c *Client) PinLatest(ctx context.Context) (int, error) {
	versions, err := c.MaterializationVersions(ctx)
	if err != nil {
		return 0, err
	}
	if len(versions) == 0 {
		return 0, fmt.Errorf("%w: datastack %s has no materialization versions",
			domain.ErrNotFound, c.datastack)
	}

	c.mu.Lock()
	c.pinned = versions[0]
	c.mu.Unlock()
	logger.Info("datastack %s pinned to latest materialization version %d", c.datastack, versions[0])
	return versions[0], nil
}

// Version returns the pinned materialization version.
func (c *Client) Version() (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pinned == 0 {
		return 0, domain.ErrNoVersionPinned
	}
	return c.pinned, nil
}

// getJSON performs a GET against the deployment and decodes the JSON body.
// Every request carries a request id for correlation with server logs.
func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	url := c.server + path
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &APIError{StatusCode: resp.StatusCode, Endpoint: path}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", url, err)
	}
	return nil
}
