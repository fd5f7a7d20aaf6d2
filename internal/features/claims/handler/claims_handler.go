package handler

import (
	"strconv"

	"claims-dashboard/internal/features/claims/domain"
	"claims-dashboard/internal/features/claims/service"

	"github.com/gofiber/fiber/v2"
)

const defaultPerPage = 15

// ClaimsHandler handles HTTP requests for claim records, aggregations and
// filter state.
type ClaimsHandler struct {
	store *service.ClaimsStore
}

// NewClaimsHandler creates a new ClaimsHandler.
func NewClaimsHandler(store *service.ClaimsStore) *ClaimsHandler {
	return &ClaimsHandler{store: store}
}

// ErrorResponse represents an error response with Ray ID.
type ErrorResponse struct {
	// Message is the error description.
	Message string `json:"message"`
	// RayID is the unique request identifier for tracing.
	RayID string `json:"ray_id,omitempty"`
}

// ClaimsPage is one page of filtered, sorted claims plus the store state
// the dashboard needs alongside them.
type ClaimsPage struct {
	Claims     []domain.Claim `json:"claims"`
	Total      int            `json:"total"`
	Page       int            `json:"page"`
	PerPage    int            `json:"per_page"`
	TotalPages int            `json:"total_pages"`
	Loading    bool           `json:"loading"`
	Error      string         `json:"error,omitempty"`
}

// FilterState is the active filter criteria together with the selectable
// company and reason options derived from the current record list.
type FilterState struct {
	Filters   domain.Filters `json:"filters"`
	Companies []string       `json:"companies"`
	Reasons   []string       `json:"reasons"`
}

// FilterPatch carries a partial filter update. Only non-nil fields replace
// their counterpart in the current state.
type FilterPatch struct {
	DateRange   *domain.DateRange `json:"date_range"`
	Status      *domain.Status    `json:"status"`
	Companies   *[]string         `json:"companies"`
	Reasons     *[]string         `json:"reasons"`
	SearchQuery *string           `json:"search_query"`
}

func errorResponse(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(ErrorResponse{
		Message: message,
		RayID:   c.Locals("requestid").(string),
	})
}

// ListClaims godoc
// @Summary List claims
// @Description Returns the claims matching the active filters, sorted and paginated
// @Tags claims
// @Produce json
// @Param sort query string false "Sort field (defaults to claim_date)"
// @Param dir query string false "Sort direction: asc or desc (defaults to desc)"
// @Param page query int false "Page number (defaults to 1)"
// @Param per_page query int false "Page size (defaults to 15)"
// @Param pending query bool false "Exclude finished claims"
// @Success 200 {object} ClaimsPage
// @Failure 400 {object} ErrorResponse
// @Router /claims [get]
func (h *ClaimsHandler) ListClaims(c *fiber.Ctx) error {
	sortField := c.Query("sort", domain.SortClaimDate)
	if !domain.KnownSortField(sortField) {
		return errorResponse(c, fiber.StatusBadRequest, "unknown sort field: "+sortField)
	}

	dir := c.Query("dir", "desc")
	if dir != "asc" && dir != "desc" {
		return errorResponse(c, fiber.StatusBadRequest, "dir must be asc or desc")
	}

	page := c.QueryInt("page", 1)
	if page < 1 {
		return errorResponse(c, fiber.StatusBadRequest, "page must be positive")
	}
	perPage := c.QueryInt("per_page", defaultPerPage)
	if perPage < 1 {
		return errorResponse(c, fiber.StatusBadRequest, "per_page must be positive")
	}

	view := h.store.Snapshot()
	claims := domain.Filter(view.Claims, view.Filters)

	if c.QueryBool("pending") {
		pending := make([]domain.Claim, 0, len(claims))
		for _, claim := range claims {
			if claim.Status != domain.StatusFinished {
				pending = append(pending, claim)
			}
		}
		claims = pending
	}

	domain.SortBy(claims, sortField, dir == "desc")

	total := len(claims)
	totalPages := (total + perPage - 1) / perPage

	start := (page - 1) * perPage
	if start > total {
		start = total
	}
	end := start + perPage
	if end > total {
		end = total
	}

	return c.JSON(ClaimsPage{
		Claims:     claims[start:end],
		Total:      total,
		Page:       page,
		PerPage:    perPage,
		TotalPages: totalPages,
		Loading:    view.Loading,
		Error:      view.Error,
	})
}

// GetClaim godoc
// @Summary Get one claim
// @Description Looks a claim up by its claim number
// @Tags claims
// @Produce json
// @Param number path int true "Claim number"
// @Success 200 {object} domain.Claim
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /claims/{number} [get]
func (h *ClaimsHandler) GetClaim(c *fiber.Ctx) error {
	number, err := strconv.Atoi(c.Params("number"))
	if err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "claim number must be an integer")
	}

	claim, ok := h.store.ClaimByNumber(number)
	if !ok {
		return errorResponse(c, fiber.StatusNotFound, "claim not found")
	}
	return c.JSON(claim)
}

// GetSummary godoc
// @Summary KPI summary
// @Description Returns per-status counts and percentages over the full record list
// @Tags claims
// @Produce json
// @Success 200 {object} domain.KPISummary
// @Router /claims/summary [get]
func (h *ClaimsHandler) GetSummary(c *fiber.Ctx) error {
	return c.JSON(domain.Summarize(h.store.Claims()))
}

// StatusChartResponse is the status distribution plus an explicit marker for
// the nothing-to-chart case.
type StatusChartResponse struct {
	Points []domain.ChartPoint `json:"points"`
	Empty  bool                `json:"empty"`
}

// GetStatusChart godoc
// @Summary Status distribution
// @Description Returns the per-status distribution over the full record list
// @Tags charts
// @Produce json
// @Success 200 {object} StatusChartResponse
// @Router /claims/charts/status [get]
func (h *ClaimsHandler) GetStatusChart(c *fiber.Ctx) error {
	dist := domain.StatusBreakdown(h.store.Claims())
	return c.JSON(StatusChartResponse{Points: dist.Points, Empty: dist.Empty()})
}

// GetTimelineChart godoc
// @Summary Claims per day
// @Description Returns daily claim counts over the filtered record list, in ascending calendar order
// @Tags charts
// @Produce json
// @Success 200 {array} domain.TimelinePoint
// @Router /claims/charts/timeline [get]
func (h *ClaimsHandler) GetTimelineChart(c *fiber.Ctx) error {
	return c.JSON(domain.Timeline(h.store.FilteredClaims()))
}

// GetCompanyChart godoc
// @Summary Claims per company
// @Description Returns per-company claim counts over the filtered record list, sorted by descending count
// @Tags charts
// @Produce json
// @Success 200 {array} domain.GroupCount
// @Router /claims/charts/companies [get]
func (h *ClaimsHandler) GetCompanyChart(c *fiber.Ctx) error {
	return c.JSON(domain.CountByCompany(h.store.FilteredClaims()))
}

// GetReasonChart godoc
// @Summary Top claim reasons
// @Description Returns the ten most frequent reasons over the filtered record list
// @Tags charts
// @Produce json
// @Success 200 {array} domain.GroupCount
// @Router /claims/charts/reasons [get]
func (h *ClaimsHandler) GetReasonChart(c *fiber.Ctx) error {
	return c.JSON(domain.CountByReason(h.store.FilteredClaims()))
}

// GetFilters godoc
// @Summary Current filter state
// @Description Returns the active filters and the selectable company/reason options
// @Tags filters
// @Produce json
// @Success 200 {object} FilterState
// @Router /claims/filters [get]
func (h *ClaimsHandler) GetFilters(c *fiber.Ctx) error {
	return c.JSON(FilterState{
		Filters:   h.store.Filters(),
		Companies: h.store.Companies(),
		Reasons:   h.store.Reasons(),
	})
}

// PutFilters godoc
// @Summary Replace filter state
// @Description Replaces the active filters wholesale
// @Tags filters
// @Accept json
// @Produce json
// @Success 200 {object} FilterState
// @Failure 400 {object} ErrorResponse
// @Router /claims/filters [put]
func (h *ClaimsHandler) PutFilters(c *fiber.Ctx) error {
	var filters domain.Filters
	if err := c.BodyParser(&filters); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "invalid filter payload")
	}

	h.store.SetFilters(filters)
	return h.GetFilters(c)
}

// PatchFilters godoc
// @Summary Update filter state
// @Description Updates only the filter fields present in the payload
// @Tags filters
// @Accept json
// @Produce json
// @Success 200 {object} FilterState
// @Failure 400 {object} ErrorResponse
// @Router /claims/filters [patch]
func (h *ClaimsHandler) PatchFilters(c *fiber.Ctx) error {
	var patch FilterPatch
	if err := c.BodyParser(&patch); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "invalid filter payload")
	}

	filters := h.store.Filters()
	if patch.DateRange != nil {
		filters.DateRange = *patch.DateRange
	}
	if patch.Status != nil {
		filters.Status = *patch.Status
	}
	if patch.Companies != nil {
		filters.Companies = *patch.Companies
	}
	if patch.Reasons != nil {
		filters.Reasons = *patch.Reasons
	}
	if patch.SearchQuery != nil {
		filters.SearchQuery = *patch.SearchQuery
	}

	h.store.SetFilters(filters)
	return h.GetFilters(c)
}

// DeleteFilters godoc
// @Summary Reset filter state
// @Description Resets every filter to its default
// @Tags filters
// @Produce json
// @Success 200 {object} FilterState
// @Router /claims/filters [delete]
func (h *ClaimsHandler) DeleteFilters(c *fiber.Ctx) error {
	h.store.ClearFilters()
	return h.GetFilters(c)
}

// RegisterRoutes mounts the claim endpoints on the app.
func (h *ClaimsHandler) RegisterRoutes(app *fiber.App) {
	app.Get("/claims", h.ListClaims)
	app.Get("/claims/summary", h.GetSummary)
	app.Get("/claims/charts/status", h.GetStatusChart)
	app.Get("/claims/charts/timeline", h.GetTimelineChart)
	app.Get("/claims/charts/companies", h.GetCompanyChart)
	app.Get("/claims/charts/reasons", h.GetReasonChart)
	app.Get("/claims/filters", h.GetFilters)
	app.Put("/claims/filters", h.PutFilters)
	app.Patch("/claims/filters", h.PatchFilters)
	app.Delete("/claims/filters", h.DeleteFilters)
	app.Get("/claims/:number", h.GetClaim)
}
