package domain

import "sort"

// StatusKPI holds the count and share of one status.
type StatusKPI struct {
	// Count is the number of claims in this status.
	Count int `json:"count"`
	// Percentage is the share of the total, 0 when there are no claims.
	Percentage float64 `json:"percentage"`
}

// KPISummary aggregates the headline numbers for the dashboard cards.
type KPISummary struct {
	Total      int       `json:"total"`
	Queued     StatusKPI `json:"queued"`
	InProgress StatusKPI `json:"in_progress"`
	Finished   StatusKPI `json:"finished"`
}

// Summarize computes the KPI summary over a claim list. An empty list yields
// all-zero counts and percentages, never a division by zero.
func Summarize(claims []Claim) KPISummary {
	total := len(claims)
	counts := map[Status]int{}
	for _, c := range claims {
		counts[c.Status]++
	}

	kpi := func(s Status) StatusKPI {
		count := counts[s]
		var pct float64
		if total > 0 {
			pct = 100 * float64(count) / float64(total)
		}
		return StatusKPI{Count: count, Percentage: pct}
	}

	return KPISummary{
		Total:      total,
		Queued:     kpi(StatusQueued),
		InProgress: kpi(StatusInProgress),
		Finished:   kpi(StatusFinished),
	}
}

// ChartPoint is one labeled value in a proportional chart.
type ChartPoint struct {
	Label string `json:"label"`
	Value int    `json:"value"`
}

// Distribution holds one point per status, in enumeration order.
type Distribution struct {
	Points []ChartPoint `json:"points"`
}

// Empty reports whether every point is zero, i.e. there is nothing to chart.
func (d Distribution) Empty() bool {
	for _, p := range d.Points {
		if p.Value > 0 {
			return false
		}
	}
	return true
}

// StatusBreakdown computes the per-status distribution for proportional
// (pie-style) display.
func StatusBreakdown(claims []Claim) Distribution {
	counts := map[Status]int{}
	for _, c := range claims {
		counts[c.Status]++
	}

	points := make([]ChartPoint, 0, len(AllStatuses))
	for _, s := range AllStatuses {
		points = append(points, ChartPoint{Label: s.Label(), Value: counts[s]})
	}
	return Distribution{Points: points}
}

// GroupCount is the number of claims sharing one field value.
type GroupCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// reasonLimit caps the reason grouping to the highest counts.
const reasonLimit = 10

// countByField counts occurrences per distinct key in a single left-to-right
// scan and sorts by descending count. The sort is stable over first-occurrence
// order, which fixes the tie-break.
func countByField(claims []Claim, key func(Claim) string) []GroupCount {
	counts := map[string]int{}
	var order []string
	for _, c := range claims {
		k := key(c)
		if _, seen := counts[k]; !seen {
			order = append(order, k)
		}
		counts[k]++
	}

	out := make([]GroupCount, 0, len(order))
	for _, k := range order {
		out = append(out, GroupCount{Name: k, Count: counts[k]})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out
}

// CountByCompany counts claims per company, sorted by descending count.
func CountByCompany(claims []Claim) []GroupCount {
	return countByField(claims, func(c Claim) string { return c.Company })
}

// CountByReason counts claims per reason, sorted by descending count and
// truncated to the top ten. Fewer than ten distinct reasons are all kept.
func CountByReason(claims []Claim) []GroupCount {
	out := countByField(claims, func(c Claim) string { return c.Reason })
	if len(out) > reasonLimit {
		out = out[:reasonLimit]
	}
	return out
}

// TimelinePoint is the claims count for one calendar day.
type TimelinePoint struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// Timeline buckets claims by the date portion of ClaimDate and returns the
// buckets in ascending calendar order. A claim date that cannot be parsed
// buckets under its raw value. Calling twice on the same input yields
// identical output.
func Timeline(claims []Claim) []TimelinePoint {
	counts := map[string]int{}
	for _, c := range claims {
		day := c.ClaimDate
		if d, ok := parseDate(c.ClaimDate); ok {
			day = d.Format("2006-01-02")
		}
		counts[day]++
	}

	days := make([]string, 0, len(counts))
	for day := range counts {
		days = append(days, day)
	}
	sort.Strings(days)

	out := make([]TimelinePoint, 0, len(days))
	for _, day := range days {
		out = append(out, TimelinePoint{Date: day, Count: counts[day]})
	}
	return out
}
