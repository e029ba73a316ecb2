package core

import (
	"sort"
	"time"
)

type (
	// Bucket is a named count used for distributions and category charts.
	Bucket struct {
		Name  string
		Count int
	}

	// DatePoint is one bar of the rent-by-date chart.
	DatePoint struct {
		Day    string // YYYY-MM-DD grouping key
		Label  string // short display label, e.g. "Jan 2"
		Amount float64
	}

	// TenantStats summarizes a tenant record list.
	TenantStats struct {
		TotalTenants int
		TotalRent    float64
		DueToday     int
		ChartSeries  []DatePoint
		// IncomeDistribution always carries the three fixed income
		// buckets, zero counts included. Records whose label matches
		// none of them land in Unclassified.
		IncomeDistribution []Bucket
		Unclassified       int
	}

	// IssueStats summarizes an issue record list.
	IssueStats struct {
		TotalIssues int
		// ByCategory lists (category, count) pairs in first-occurrence
		// order of the input.
		ByCategory []Bucket
		Urgent     int
		// CategoryDistribution always carries the four fixed buckets,
		// zero counts included.
		CategoryDistribution []Bucket
	}
)

// chartDays caps the rent-by-date series at the most recent distinct days.
const chartDays = 7

// ComputeTenantStats aggregates the tenant list. It is pure: same input and
// reference time always yield the same output, and it never fails.
func ComputeTenantStats(tenants []Tenant, now time.Time) TenantStats {
	stats := TenantStats{
		TotalTenants: len(tenants),
		IncomeDistribution: []Bucket{
			{Name: IncomeAbove10k},
			{Name: Income5kTo10k},
			{Name: IncomeBelow5k},
		},
	}

	today := now.Format("2006-01-02")
	byDay := make(map[string]float64)
	for _, t := range tenants {
		stats.TotalRent += float64(t.Amount)

		if day := t.DueDay(); day != "" {
			byDay[day] += float64(t.Amount)
			if day == today {
				stats.DueToday++
			}
		}

		switch t.MonthlyIncome {
		case IncomeAbove10k:
			stats.IncomeDistribution[0].Count++
		case Income5kTo10k:
			stats.IncomeDistribution[1].Count++
		case IncomeBelow5k:
			stats.IncomeDistribution[2].Count++
		default:
			stats.Unclassified++
		}
	}

	days := make([]string, 0, len(byDay))
	for day := range byDay {
		days = append(days, day)
	}
	sort.Strings(days)
	if len(days) > chartDays {
		days = days[len(days)-chartDays:]
	}
	for _, day := range days {
		stats.ChartSeries = append(stats.ChartSeries, DatePoint{
			Day:    day,
			Label:  DateLabel(day),
			Amount: byDay[day],
		})
	}

	return stats
}

// ComputeIssueStats aggregates the issue list. Pure and total, like
// ComputeTenantStats.
func ComputeIssueStats(issues []Issue) IssueStats {
	stats := IssueStats{
		TotalIssues: len(issues),
		CategoryDistribution: []Bucket{
			{Name: CategoryPlumbing},
			{Name: CategoryElectrical},
			{Name: CategoryHVAC},
			{Name: CategoryOther},
		},
	}

	index := make(map[string]int)
	for _, is := range issues {
		cat := is.BucketCategory()
		pos, seen := index[cat]
		if !seen {
			pos = len(stats.ByCategory)
			index[cat] = pos
			stats.ByCategory = append(stats.ByCategory, Bucket{Name: cat})
		}
		stats.ByCategory[pos].Count++

		if is.Urgent() {
			stats.Urgent++
		}

		switch is.Category {
		case CategoryPlumbing:
			stats.CategoryDistribution[0].Count++
		case CategoryElectrical:
			stats.CategoryDistribution[1].Count++
		case CategoryHVAC:
			stats.CategoryDistribution[2].Count++
		default:
			stats.CategoryDistribution[3].Count++
		}
	}

	return stats
}
