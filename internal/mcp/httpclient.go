package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/meltforce/liftlog/internal/models"
	"github.com/meltforce/liftlog/internal/progress"
)

// HTTPClient implements DataSource by calling the LiftLog REST API.
// Used for remote MCP mode where the binary runs locally (stdio) but
// data lives on the remote server (accessed over Tailscale).
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

// Compile-time check: HTTPClient satisfies DataSource.
var _ DataSource = (*HTTPClient)(nil)

// NewHTTPClient creates an HTTPClient targeting the given base URL.
func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *HTTPClient) get(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("httpclient: create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("httpclient: %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("httpclient: reading %s: %w", path, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("httpclient: %s: status %d: %s", path, resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return body, nil
}

func getJSON[T any](ctx context.Context, c *HTTPClient, path string) (T, error) {
	var out T
	body, err := c.get(ctx, path)
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return out, fmt.Errorf("httpclient: decoding %s: %w", path, err)
	}
	return out, nil
}

func (c *HTTPClient) State(ctx context.Context) (*models.AppState, error) {
	return getJSON[*models.AppState](ctx, c, "/api/v1/state")
}

func (c *HTTPClient) Sessions(ctx context.Context) ([]models.Session, error) {
	return getJSON[[]models.Session](ctx, c, "/api/v1/sessions")
}

func (c *HTTPClient) VolumeByDate(ctx context.Context) ([]progress.VolumePoint, error) {
	return getJSON[[]progress.VolumePoint](ctx, c, "/api/v1/progress/volume")
}

func (c *HTTPClient) LoadEvolution(ctx context.Context, exerciseID string) ([]progress.LoadPoint, error) {
	return getJSON[[]progress.LoadPoint](ctx, c, "/api/v1/progress/evolution/"+url.PathEscape(exerciseID))
}

func (c *HTTPClient) GroupDistribution(ctx context.Context) ([]progress.GroupCount, error) {
	return getJSON[[]progress.GroupCount](ctx, c, "/api/v1/progress/distribution")
}

func (c *HTTPClient) Catalog(ctx context.Context) ([]models.CatalogExercise, error) {
	return getJSON[[]models.CatalogExercise](ctx, c, "/api/v1/catalog")
}
