package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"claims-dashboard/internal/core/config"
	"claims-dashboard/internal/core/httpclient"
	"claims-dashboard/internal/core/logger"
	"claims-dashboard/internal/core/metrics"
	"claims-dashboard/internal/features/claims/domain"
	"claims-dashboard/internal/features/claims/ports"

	"go.uber.org/zap"
)

const defaultSheetsBaseURL = "https://sheets.googleapis.com"

// SheetsAdapter implements the ClaimSource port against the Google Sheets
// values read API.
type SheetsAdapter struct {
	// client is the HTTP client used for API requests.
	client *http.Client
	// config holds the spreadsheet credentials and range.
	config config.SheetsConfig
	// baseURL is the API endpoint, overridable in tests.
	baseURL string
	// metrics is optional; nil disables instrumentation.
	metrics *metrics.Metrics
	logger  *zap.Logger
}

// NewSheetsAdapter creates a new SheetsAdapter. It fails fast with
// ports.ErrMissingConfig when any of the three required configuration values
// is empty, before any network call is possible.
func NewSheetsAdapter(cfg config.SheetsConfig, client *http.Client, m *metrics.Metrics) (*SheetsAdapter, error) {
	if cfg.APIKey == "" || cfg.SpreadsheetID == "" || cfg.Range == "" {
		return nil, fmt.Errorf("%w: SHEETS_API_KEY, SHEETS_SPREADSHEET_ID and SHEETS_RANGE are all required", ports.ErrMissingConfig)
	}
	if client == nil {
		client = httpclient.NewClient(10 * time.Second)
	}

	return &SheetsAdapter{
		client:  client,
		config:  cfg,
		baseURL: defaultSheetsBaseURL,
		metrics: m,
		logger:  logger.Get(),
	}, nil
}

// valuesResponse represents the JSON structure of a values read from the
// Sheets API.
type valuesResponse struct {
	Range  string     `json:"range"`
	Values [][]string `json:"values"`
}

// FetchClaims issues one GET for the configured range and returns the rows
// normalized into claims. An empty range yields an empty slice.
func (a *SheetsAdapter) FetchClaims(ctx context.Context) ([]domain.Claim, error) {
	rows, err := a.fetchRows(ctx)
	if err != nil {
		return nil, err
	}

	claims, dropped := MapRows(rows)
	if a.metrics != nil && dropped > 0 {
		a.metrics.RowsDropped.Add(float64(dropped))
	}

	a.logger.Debug("Fetched claims from sheet",
		zap.Int("rows", len(rows)),
		zap.Int("claims", len(claims)),
		zap.Int("dropped", dropped),
	)
	return claims, nil
}

// HealthCheck verifies the spreadsheet is reachable and readable with the
// configured credentials.
func (a *SheetsAdapter) HealthCheck(ctx context.Context) error {
	if _, err := a.fetchRows(ctx); err != nil {
		return fmt.Errorf("sheets health check failed: %w", err)
	}
	return nil
}

// fetchRows retrieves the raw two-dimensional cell array at the configured
// range. Non-2xx statuses are classified into the ports error taxonomy.
func (a *SheetsAdapter) fetchRows(ctx context.Context) ([][]string, error) {
	endpoint := fmt.Sprintf("%s/v4/spreadsheets/%s/values/%s?key=%s",
		a.baseURL,
		url.PathEscape(a.config.SpreadsheetID),
		url.PathEscape(a.config.Range),
		url.QueryEscape(a.config.APIKey),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach sheets API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		switch resp.StatusCode {
		case http.StatusBadRequest:
			return nil, fmt.Errorf("%w (status %d)", ports.ErrBadRequest, resp.StatusCode)
		case http.StatusForbidden:
			return nil, fmt.Errorf("%w (status %d)", ports.ErrAccessDenied, resp.StatusCode)
		case http.StatusNotFound:
			return nil, fmt.Errorf("%w (status %d)", ports.ErrNotFound, resp.StatusCode)
		default:
			return nil, fmt.Errorf("sheets API returned status %d", resp.StatusCode)
		}
	}

	var body valuesResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode sheets response: %w", err)
	}

	// Absent or empty values means zero rows in range, not an error.
	if len(body.Values) == 0 {
		return [][]string{}, nil
	}
	return body.Values, nil
}
