package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleClaims() []Claim {
	return []Claim{
		{ClaimNumber: 1, Status: StatusQueued, ClaimDate: "2024-01-01", Company: "Acme Corp", Reason: "Producto dañado", CustomerEmail: "a@x.com"},
		{ClaimNumber: 2, Status: StatusInProgress, ClaimDate: "2024-01-05", Company: "Globex", Reason: "Entrega tardía", CustomerEmail: "b@x.com"},
		{ClaimNumber: 3, Status: StatusFinished, ClaimDate: "2024-01-10", Company: "Acme Corp", Reason: "Producto dañado", CustomerEmail: "c@x.com"},
		{ClaimNumber: 4, Status: StatusFinished, ClaimDate: "2024-02-01", Company: "Initech", Reason: "Facturación", CustomerEmail: "d@x.com"},
		{ClaimNumber: 5, Status: StatusQueued, ClaimDate: "2024-02-15", Company: "Globex", Reason: "Entrega tardía", CustomerEmail: "e@x.com"},
	}
}

// TestFilters_Matches_ZeroValue verifies the zero value filter accepts everything.
func TestFilters_Matches_ZeroValue(t *testing.T) {
	for _, c := range sampleClaims() {
		assert.True(t, Filters{}.Matches(c))
	}
}

// TestFilters_Matches_Status verifies exact status filtering (spec scenario:
// two finished claims out of five).
func TestFilters_Matches_Status(t *testing.T) {
	f := Filters{Status: StatusFinished}
	got := Filter(sampleClaims(), f)

	require.Len(t, got, 2)
	assert.Equal(t, 3, got[0].ClaimNumber)
	assert.Equal(t, 4, got[1].ClaimNumber)
}

// TestFilters_Matches_DateRange verifies inclusive bounds.
func TestFilters_Matches_DateRange(t *testing.T) {
	f := Filters{DateRange: DateRange{Start: "2024-01-05", End: "2024-01-10"}}
	got := Filter(sampleClaims(), f)

	require.Len(t, got, 2)
	assert.Equal(t, 2, got[0].ClaimNumber) // boundary equality with start passes
	assert.Equal(t, 3, got[1].ClaimNumber) // boundary equality with end passes
}

// TestFilters_Matches_UnparsableClaimDate verifies that an unparsable claim
// date is never rejected by date criteria.
func TestFilters_Matches_UnparsableClaimDate(t *testing.T) {
	c := Claim{ClaimNumber: 9, Status: StatusQueued, ClaimDate: "pronto"}
	f := Filters{DateRange: DateRange{Start: "2024-01-01", End: "2024-12-31"}}

	assert.True(t, f.Matches(c))
}

// TestFilters_Matches_Sets verifies company and reason membership filters.
func TestFilters_Matches_Sets(t *testing.T) {
	claims := sampleClaims()

	byCompany := Filter(claims, Filters{Companies: []string{"Acme Corp"}})
	assert.Len(t, byCompany, 2)

	byReason := Filter(claims, Filters{Reasons: []string{"Entrega tardía", "Facturación"}})
	assert.Len(t, byReason, 3)

	both := Filter(claims, Filters{Companies: []string{"Globex"}, Reasons: []string{"Entrega tardía"}})
	assert.Len(t, both, 2)
}

// TestFilters_Matches_Search verifies case-insensitive substring search over
// every field (spec scenario: "acme" matches company "Acme Corp").
func TestFilters_Matches_Search(t *testing.T) {
	claims := sampleClaims()

	got := Filter(claims, Filters{SearchQuery: "acme"})
	assert.Len(t, got, 2)

	got = Filter(claims, Filters{SearchQuery: "b@x.com"})
	require.Len(t, got, 1)
	assert.Equal(t, 2, got[0].ClaimNumber)

	// Claim number participates in search.
	got = Filter(claims, Filters{SearchQuery: "4"})
	assert.NotEmpty(t, got)

	got = Filter(claims, Filters{SearchQuery: "no-match-anywhere"})
	assert.Empty(t, got)
}

// TestFilter_SubsetAndIdempotent verifies that filtering yields a subset of
// the input and that filtering a filtered list is a no-op.
func TestFilter_SubsetAndIdempotent(t *testing.T) {
	claims := sampleClaims()
	states := []Filters{
		{},
		{Status: StatusQueued},
		{SearchQuery: "x.com"},
		{DateRange: DateRange{Start: "2024-01-02"}},
		{Companies: []string{"Globex"}, SearchQuery: "entrega"},
	}

	for _, f := range states {
		filtered := Filter(claims, f)
		for _, c := range filtered {
			assert.Contains(t, claims, c)
		}
		assert.Equal(t, filtered, Filter(filtered, f))
	}
}
