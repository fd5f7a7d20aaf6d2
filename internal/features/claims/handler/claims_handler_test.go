package handler

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"claims-dashboard/internal/features/claims/domain"
	"claims-dashboard/internal/features/claims/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubClaimSource is a fixed-result implementation of ports.ClaimSource.
type stubClaimSource struct {
	claims []domain.Claim
}

func (s *stubClaimSource) FetchClaims(ctx context.Context) ([]domain.Claim, error) {
	return s.claims, nil
}

func (s *stubClaimSource) HealthCheck(ctx context.Context) error {
	return nil
}

func handlerClaims() []domain.Claim {
	return []domain.Claim{
		{ClaimNumber: 101, Status: domain.StatusQueued, ClaimDate: "2024-03-01", Company: "Beta SA", Reason: "Demora", CustomerEmail: "ana@example.com"},
		{ClaimNumber: 102, Status: domain.StatusFinished, ClaimDate: "2024-03-03", Company: "Alfa SRL", Reason: "Faltante", CustomerEmail: "bruno@example.com"},
		{ClaimNumber: 103, Status: domain.StatusInProgress, ClaimDate: "2024-03-02", Company: "Beta SA", Reason: "Demora", CustomerEmail: "carla@example.com"},
	}
}

// newTestApp builds a fiber app with a loaded store and the claim routes
// mounted. The caller owns no teardown; the refresh schedule never fires
// again within the test with an hour-long interval.
func newTestApp(t *testing.T, claims []domain.Claim) (*fiber.App, *service.ClaimsStore) {
	t.Helper()

	store := service.NewClaimsStore(&stubClaimSource{claims: claims}, nil, nil, time.Hour)
	store.Start(context.Background())
	t.Cleanup(store.Stop)

	require.Eventually(t, func() bool {
		return !store.Snapshot().Loading
	}, time.Second, 10*time.Millisecond)

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("requestid", "test-ray-id")
		return c.Next()
	})
	NewClaimsHandler(store).RegisterRoutes(app)
	return app, store
}

func TestClaimsHandler_ListClaims_DefaultSort(t *testing.T) {
	app, _ := newTestApp(t, handlerClaims())

	req := httptest.NewRequest("GET", "/claims", nil)
	resp, err := app.Test(req)

	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var page ClaimsPage
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&page))
	assert.Equal(t, 3, page.Total)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 15, page.PerPage)
	assert.False(t, page.Loading)

	// Most recent claim date first.
	require.Len(t, page.Claims, 3)
	assert.Equal(t, 102, page.Claims[0].ClaimNumber)
	assert.Equal(t, 103, page.Claims[1].ClaimNumber)
	assert.Equal(t, 101, page.Claims[2].ClaimNumber)
}

func TestClaimsHandler_ListClaims_Pagination(t *testing.T) {
	app, _ := newTestApp(t, handlerClaims())

	req := httptest.NewRequest("GET", "/claims?sort=claim_number&dir=asc&page=2&per_page=2", nil)
	resp, err := app.Test(req)

	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var page ClaimsPage
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&page))
	assert.Equal(t, 3, page.Total)
	assert.Equal(t, 2, page.TotalPages)
	require.Len(t, page.Claims, 1)
	assert.Equal(t, 103, page.Claims[0].ClaimNumber)
}

func TestClaimsHandler_ListClaims_PageBeyondEnd(t *testing.T) {
	app, _ := newTestApp(t, handlerClaims())

	req := httptest.NewRequest("GET", "/claims?page=9", nil)
	resp, err := app.Test(req)

	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var page ClaimsPage
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&page))
	assert.Empty(t, page.Claims)
	assert.Equal(t, 3, page.Total)
}

func TestClaimsHandler_ListClaims_Pending(t *testing.T) {
	app, _ := newTestApp(t, handlerClaims())

	req := httptest.NewRequest("GET", "/claims?pending=true", nil)
	resp, err := app.Test(req)

	require.NoError(t, err)

	var page ClaimsPage
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&page))
	assert.Equal(t, 2, page.Total)
	for _, claim := range page.Claims {
		assert.NotEqual(t, domain.StatusFinished, claim.Status)
	}
}

func TestClaimsHandler_ListClaims_AppliesStoreFilters(t *testing.T) {
	app, store := newTestApp(t, handlerClaims())

	store.SetFilters(domain.Filters{Companies: []string{"Beta SA"}})

	req := httptest.NewRequest("GET", "/claims", nil)
	resp, err := app.Test(req)

	require.NoError(t, err)

	var page ClaimsPage
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&page))
	assert.Equal(t, 2, page.Total)
}

func TestClaimsHandler_ListClaims_UnknownSortField(t *testing.T) {
	app, _ := newTestApp(t, handlerClaims())

	req := httptest.NewRequest("GET", "/claims?sort=bogus", nil)
	resp, err := app.Test(req)

	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	var errResp ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&errResp))
	assert.Contains(t, errResp.Message, "unknown sort field")
	assert.Equal(t, "test-ray-id", errResp.RayID)
}

func TestClaimsHandler_GetClaim(t *testing.T) {
	app, _ := newTestApp(t, handlerClaims())

	t.Run("Found", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/claims/102", nil)
		resp, err := app.Test(req)

		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		var claim domain.Claim
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&claim))
		assert.Equal(t, domain.StatusFinished, claim.Status)
	})

	t.Run("NotFound", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/claims/999", nil)
		resp, err := app.Test(req)

		require.NoError(t, err)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	})

	t.Run("NotANumber", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/claims/abc", nil)
		resp, err := app.Test(req)

		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})
}

func TestClaimsHandler_GetSummary(t *testing.T) {
	app, store := newTestApp(t, handlerClaims())

	// The summary covers the full list even when filters are active.
	store.SetFilters(domain.Filters{Companies: []string{"Beta SA"}})

	req := httptest.NewRequest("GET", "/claims/summary", nil)
	resp, err := app.Test(req)

	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var summary domain.KPISummary
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&summary))
	assert.Equal(t, 3, summary.Total)
	assert.Equal(t, 1, summary.Queued.Count)
	assert.Equal(t, 1, summary.Finished.Count)
}

func TestClaimsHandler_GetStatusChart(t *testing.T) {
	app, _ := newTestApp(t, handlerClaims())

	req := httptest.NewRequest("GET", "/claims/charts/status", nil)
	resp, err := app.Test(req)

	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var chart StatusChartResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&chart))
	assert.False(t, chart.Empty)
	require.Len(t, chart.Points, 3)
	assert.Equal(t, "En Cola", chart.Points[0].Label)
}

func TestClaimsHandler_GetStatusChart_Empty(t *testing.T) {
	app, _ := newTestApp(t, []domain.Claim{})

	req := httptest.NewRequest("GET", "/claims/charts/status", nil)
	resp, err := app.Test(req)

	require.NoError(t, err)

	var chart StatusChartResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&chart))
	assert.True(t, chart.Empty)
}

func TestClaimsHandler_ChartsUseFilteredClaims(t *testing.T) {
	app, store := newTestApp(t, handlerClaims())

	store.SetFilters(domain.Filters{Companies: []string{"Beta SA"}})

	req := httptest.NewRequest("GET", "/claims/charts/companies", nil)
	resp, err := app.Test(req)

	require.NoError(t, err)

	var groups []domain.GroupCount
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&groups))
	require.Len(t, groups, 1)
	assert.Equal(t, "Beta SA", groups[0].Name)
	assert.Equal(t, 2, groups[0].Count)
}

func TestClaimsHandler_GetTimelineChart(t *testing.T) {
	app, _ := newTestApp(t, handlerClaims())

	req := httptest.NewRequest("GET", "/claims/charts/timeline", nil)
	resp, err := app.Test(req)

	require.NoError(t, err)

	var points []domain.TimelinePoint
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&points))
	require.Len(t, points, 3)
	assert.Equal(t, "2024-03-01", points[0].Date)
	assert.Equal(t, "2024-03-03", points[2].Date)
}

func TestClaimsHandler_FilterLifecycle(t *testing.T) {
	app, store := newTestApp(t, handlerClaims())

	t.Run("Get", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/claims/filters", nil)
		resp, err := app.Test(req)

		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		var state FilterState
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&state))
		assert.Equal(t, []string{"Alfa SRL", "Beta SA"}, state.Companies)
		assert.Equal(t, []string{"Demora", "Faltante"}, state.Reasons)
	})

	t.Run("Put", func(t *testing.T) {
		body := `{"status":"FINALIZADO","search_query":"ana"}`
		req := httptest.NewRequest("PUT", "/claims/filters", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)

		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Equal(t, domain.StatusFinished, store.Filters().Status)
		assert.Equal(t, "ana", store.Filters().SearchQuery)
	})

	t.Run("PatchKeepsUntouchedFields", func(t *testing.T) {
		body := `{"search_query":"bruno"}`
		req := httptest.NewRequest("PATCH", "/claims/filters", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)

		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Equal(t, "bruno", store.Filters().SearchQuery)
		assert.Equal(t, domain.StatusFinished, store.Filters().Status, "untouched field survives the patch")
	})

	t.Run("Delete", func(t *testing.T) {
		req := httptest.NewRequest("DELETE", "/claims/filters", nil)
		resp, err := app.Test(req)

		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Equal(t, domain.Filters{}, store.Filters())
	})

	t.Run("PutInvalidBody", func(t *testing.T) {
		req := httptest.NewRequest("PUT", "/claims/filters", strings.NewReader("{"))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)

		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})
}
