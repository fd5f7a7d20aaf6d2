package domain

import "sort"

// Sortable field names, matching the JSON tags of Claim.
const (
	SortClaimDate = "claim_date"
)

// SortBy orders claims by the named field, in place, using a stable sort.
// Field names follow the JSON tags of Claim; an unknown field leaves the
// order unchanged. Date fields compare chronologically when both values
// parse, falling back to a lexicographic comparison otherwise.
func SortBy(claims []Claim, field string, descending bool) {
	less := lessFunc(field)
	if less == nil {
		return
	}
	sort.SliceStable(claims, func(i, j int) bool {
		if descending {
			return less(claims[j], claims[i])
		}
		return less(claims[i], claims[j])
	})
}

// KnownSortField reports whether the named field can be sorted on.
func KnownSortField(field string) bool {
	return lessFunc(field) != nil
}

func lessFunc(field string) func(a, b Claim) bool {
	switch field {
	case "claim_number":
		return func(a, b Claim) bool { return a.ClaimNumber < b.ClaimNumber }
	case "needs_replacement":
		return func(a, b Claim) bool { return !a.NeedsReplacement && b.NeedsReplacement }
	case SortClaimDate:
		return func(a, b Claim) bool { return lessDate(a.ClaimDate, b.ClaimDate) }
	case "recorded_at":
		return func(a, b Claim) bool { return lessDate(a.RecordedAt, b.RecordedAt) }
	case "estimated_delivery":
		return func(a, b Claim) bool { return lessDate(a.EstimatedDelivery, b.EstimatedDelivery) }
	case "status":
		return stringLess(func(c Claim) string { return string(c.Status) })
	case "customer_email":
		return stringLess(func(c Claim) string { return c.CustomerEmail })
	case "account_number":
		return stringLess(func(c Claim) string { return c.AccountNumber })
	case "service":
		return stringLess(func(c Claim) string { return c.Service })
	case "company":
		return stringLess(func(c Claim) string { return c.Company })
	case "claim_origin":
		return stringLess(func(c Claim) string { return c.ClaimOrigin })
	case "provider_name":
		return stringLess(func(c Claim) string { return c.ProviderName })
	case "warehouse":
		return stringLess(func(c Claim) string { return c.Warehouse })
	case "description":
		return stringLess(func(c Claim) string { return c.Description })
	case "reason":
		return stringLess(func(c Claim) string { return c.Reason })
	default:
		return nil
	}
}

func stringLess(key func(Claim) string) func(a, b Claim) bool {
	return func(a, b Claim) bool { return key(a) < key(b) }
}

func lessDate(a, b string) bool {
	ta, okA := parseDate(a)
	tb, okB := parseDate(b)
	if okA && okB {
		return ta.Before(tb)
	}
	return a < b
}
