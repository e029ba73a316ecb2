package core

import "strings"

// Tenant filter selector values. "sent" and "pending" key off the email-sent
// status; FilterAll passes everything.
const (
	FilterAll     = "all"
	FilterSent    = "sent"
	FilterPending = "pending"
)

// FilterTenants returns the tenants matching both the free-text query and the
// status selector. The text stage is a case-insensitive substring match over
// name or email; an empty query matches every record. Output preserves input
// order and the input slice is never mutated.
func FilterTenants(tenants []Tenant, query, status string) []Tenant {
	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]Tenant, 0, len(tenants))
	for _, t := range tenants {
		if !matches(q, t.Name, t.Email) {
			continue
		}
		switch status {
		case FilterSent:
			if !t.EmailWasSent() {
				continue
			}
		case FilterPending:
			if t.EmailWasSent() {
				continue
			}
		}
		out = append(out, t)
	}
	return out
}

// FilterIssues returns the issues matching both the free-text query and the
// category selector. The text stage checks reporter name, address, and
// description; the category stage is exact equality unless the selector is
// FilterAll.
func FilterIssues(issues []Issue, query, category string) []Issue {
	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]Issue, 0, len(issues))
	for _, is := range issues {
		if !matches(q, is.Name, is.Address, is.Description) {
			continue
		}
		if category != "" && category != FilterAll && is.Category != category {
			continue
		}
		out = append(out, is)
	}
	return out
}

func matches(query string, fields ...string) bool {
	if query == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), query) {
			return true
		}
	}
	return false
}
