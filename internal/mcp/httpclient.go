package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lifeops/lifeops/internal/fitness"
	"github.com/lifeops/lifeops/internal/models"
	"github.com/lifeops/lifeops/internal/overview"
)

// HTTPClient implements DataSource by calling the lifeops REST API.
// Used for remote MCP mode where the binary runs locally (stdio) but
// data lives on the remote server (accessed over Tailscale).
type HTTPClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// Compile-time check: HTTPClient satisfies DataSource.
var _ DataSource = (*HTTPClient)(nil)

// NewHTTPClient creates an HTTPClient targeting the given base URL. The API
// key is optional; read endpoints do not require it.
func NewHTTPClient(baseURL, apiKey string) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *HTTPClient) get(ctx context.Context, path string, params url.Values, v any) error {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("httpclient: create request: %w", err)
	}
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("httpclient: %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("httpclient: read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Error != "" {
			return fmt.Errorf("httpclient: %s returned %d: %s", path, resp.StatusCode, apiErr.Error)
		}
		return fmt.Errorf("httpclient: %s returned %d: %s", path, resp.StatusCode, body)
	}

	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("httpclient: decode %s: %w", path, err)
	}
	return nil
}

func (c *HTTPClient) RecentWorkouts(ctx context.Context, limit int) ([]fitness.DateGroup, error) {
	params := url.Values{}
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}
	var groups []fitness.DateGroup
	if err := c.get(ctx, "/api/v1/fitness/workouts", params, &groups); err != nil {
		return nil, err
	}
	return groups, nil
}

func (c *HTTPClient) History(ctx context.Context, locale string) (*overview.HistoryView, error) {
	params := url.Values{}
	if locale != "" {
		params.Set("locale", locale)
	}
	var v overview.HistoryView
	if err := c.get(ctx, "/api/v1/fitness/history", params, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

func (c *HTTPClient) Weekly(ctx context.Context, today string) (*overview.WeeklyView, error) {
	params := url.Values{}
	if today != "" {
		params.Set("today", today)
	}
	var v overview.WeeklyView
	if err := c.get(ctx, "/api/v1/fitness/weekly", params, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

func (c *HTTPClient) Workout(ctx context.Context, id uuid.UUID) (*overview.WorkoutDetail, error) {
	var v overview.WorkoutDetail
	if err := c.get(ctx, "/api/v1/fitness/workouts/"+id.String(), nil, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

func (c *HTTPClient) ExerciseTypes(ctx context.Context) ([]models.ExerciseTypeRow, error) {
	var types []models.ExerciseTypeRow
	if err := c.get(ctx, "/api/v1/fitness/exercise-types", nil, &types); err != nil {
		return nil, err
	}
	return types, nil
}

func (c *HTTPClient) Home(ctx context.Context) (*overview.HomeSummary, error) {
	var v overview.HomeSummary
	if err := c.get(ctx, "/api/v1/overview", nil, &v); err != nil {
		return nil, err
	}
	return &v, nil
}
