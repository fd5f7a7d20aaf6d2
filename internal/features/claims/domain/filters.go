package domain

import (
	"slices"
	"strings"
	"time"
)

// DateRange bounds claims by claim date. Empty strings mean unbounded.
type DateRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Filters describes the active set of view criteria for the dashboard.
// The zero value applies no filtering; clearing filters resets to it.
type Filters struct {
	DateRange DateRange `json:"date_range"`
	// Status filters by exact status. Empty means no status filter.
	Status Status `json:"status"`
	// Companies restricts to claims against any of these companies.
	Companies []string `json:"companies"`
	// Reasons restricts to claims with any of these motives.
	Reasons []string `json:"reasons"`
	// SearchQuery is a case-insensitive substring matched against every
	// searchable field of the claim.
	SearchQuery string `json:"search_query"`
}

// dateLayouts are tried in order when interpreting claim and filter dates.
var dateLayouts = []string{"2006-01-02", time.RFC3339, "2006-01-02T15:04:05"}

func parseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Matches reports whether the claim passes every active criterion.
// Date bounds are inclusive: only a claim date strictly before the start or
// strictly after the end rejects. A claim date that cannot be parsed is
// never rejected by the date criteria.
func (f Filters) Matches(c Claim) bool {
	if d, ok := parseDate(c.ClaimDate); ok {
		if f.DateRange.Start != "" {
			if start, ok := parseDate(f.DateRange.Start); ok && d.Before(start) {
				return false
			}
		}
		if f.DateRange.End != "" {
			if end, ok := parseDate(f.DateRange.End); ok && d.After(end) {
				return false
			}
		}
	}

	if f.Status != "" && c.Status != f.Status {
		return false
	}
	if len(f.Companies) > 0 && !slices.Contains(f.Companies, c.Company) {
		return false
	}
	if len(f.Reasons) > 0 && !slices.Contains(f.Reasons, c.Reason) {
		return false
	}

	if f.SearchQuery != "" {
		query := strings.ToLower(f.SearchQuery)
		matched := false
		for _, v := range c.searchValues() {
			if strings.Contains(strings.ToLower(v), query) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}

	return true
}

// Filter returns the subset of claims matching the filter state, preserving
// input order.
func Filter(claims []Claim, f Filters) []Claim {
	out := make([]Claim, 0, len(claims))
	for _, c := range claims {
		if f.Matches(c) {
			out = append(out, c)
		}
	}
	return out
}
