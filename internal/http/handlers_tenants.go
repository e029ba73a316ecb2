package http

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"propdash/internal/core"
	applog "propdash/internal/log"
	"propdash/internal/view"
)

type (
	// barView is one pre-scaled bar of a server-rendered chart.
	barView struct {
		Label  string
		Amount string
		Width  int
	}

	// distView is one row of a distribution legend.
	distView struct {
		Name  string
		Count int
		Width int
	}

	tenantsPageData struct {
		Phase  view.Phase
		ErrMsg string

		Query  string
		Status string

		TotalTenants int
		TotalRent    string
		DueToday     int
		Unclassified int
		Chart        []barView
		Income       []distView

		Tenants []core.Tenant
		FormURL string
	}
)

// handleTenantsPage renders the tenant dashboard. The first request triggers
// the one fetch per page activation; search and filter inputs arrive as query
// parameters and only affect the visible subset.
func (s *Server) handleTenantsPage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if s.templates == nil {
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}

	snap := s.tenants.Load(r.Context())
	query := queryParam(r, "q", "")
	status := queryParam(r, "status", core.FilterAll)

	data := tenantsPageData{
		Phase:   snap.Phase,
		ErrMsg:  snap.ErrMsg,
		Query:   query,
		Status:  status,
		FormURL: s.forms.Rent,
	}

	if snap.Phase == view.PhaseReady {
		stats := core.ComputeTenantStats(snap.Records, time.Now())
		data.TotalTenants = stats.TotalTenants
		data.TotalRent = formatMoney(stats.TotalRent)
		data.DueToday = stats.DueToday
		data.Unclassified = stats.Unclassified

		var maxAmount float64
		for _, p := range stats.ChartSeries {
			if p.Amount > maxAmount {
				maxAmount = p.Amount
			}
		}
		for _, p := range stats.ChartSeries {
			data.Chart = append(data.Chart, barView{
				Label:  p.Label,
				Amount: formatMoney(p.Amount),
				Width:  barWidth(p.Amount, maxAmount),
			})
		}

		maxCount := 0
		for _, b := range stats.IncomeDistribution {
			if b.Count > maxCount {
				maxCount = b.Count
			}
		}
		for _, b := range stats.IncomeDistribution {
			data.Income = append(data.Income, distView{
				Name:  b.Name,
				Count: b.Count,
				Width: barWidth(float64(b.Count), float64(maxCount)),
			})
		}

		data.Tenants = core.FilterTenants(snap.Records, query, status)
	}

	if err := s.templates.ExecuteTemplate(w, "tenants.html", data); err != nil {
		slog.ErrorContext(r.Context(), "Tenants template execution failed", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// handleTenantDetail renders the detail modal partial and marks the record
// as selected.
func (s *Server) handleTenantDetail(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	id, err := strconv.Atoi(queryParam(r, "id", ""))
	if err != nil {
		http.Error(w, "invalid tenant id", http.StatusBadRequest)
		return
	}

	tenant, ok := s.tenants.Select(func(t core.Tenant) bool { return t.RowNumber == id })
	if !ok {
		http.NotFound(w, r)
		return
	}

	data := struct {
		Tenant  core.Tenant
		Amount  string
		DueDate string
	}{
		Tenant:  tenant,
		Amount:  formatMoney(float64(tenant.Amount)),
		DueDate: longDate(tenant.DueDay(), tenant.DueDate),
	}
	if err := s.templates.ExecuteTemplate(w, "tenant_detail.html", data); err != nil {
		slog.ErrorContext(r.Context(), "Tenant detail template failed", "error", err, "id", id)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (s *Server) handleTenantDetailClose(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	s.tenants.CloseDetail()
	w.WriteHeader(http.StatusNoContent)
}

// handleTenantsRefresh is the manual retry affordance. Overlapping retries
// share the in-flight fetch instead of stacking requests.
func (s *Server) handleTenantsRefresh(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	snap := s.tenants.Retry(r.Context())
	applog.FromContext(r.Context()).InfoContext(r.Context(), "Tenant refresh completed",
		applog.FieldPhase, snap.Phase, applog.FieldRecords, len(snap.Records))
	http.Redirect(w, r, "/tenants", http.StatusSeeOther)
}

// handleTenantStatsAPI serves the aggregated numbers as ordered (label,
// value) pairs for external chart consumers.
func (s *Server) handleTenantStatsAPI(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	snap := s.tenants.Load(r.Context())
	if snap.Phase != view.PhaseReady {
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": snap.ErrMsg})
		return
	}

	stats := core.ComputeTenantStats(snap.Records, time.Now())
	chart := make([]labelValue, 0, len(stats.ChartSeries))
	for _, p := range stats.ChartSeries {
		chart = append(chart, labelValue{Label: p.Label, Value: p.Amount})
	}
	income := make([]labelValue, 0, len(stats.IncomeDistribution))
	for _, b := range stats.IncomeDistribution {
		income = append(income, labelValue{Label: b.Name, Value: float64(b.Count)})
	}

	writeJSON(w, http.StatusOK, struct {
		TotalTenants       int          `json:"totalTenants"`
		TotalRent          float64      `json:"totalRent"`
		DueToday           int          `json:"dueToday"`
		ChartSeries        []labelValue `json:"chartSeries"`
		IncomeDistribution []labelValue `json:"incomeDistribution"`
		Unclassified       int          `json:"unclassified"`
	}{
		TotalTenants:       stats.TotalTenants,
		TotalRent:          stats.TotalRent,
		DueToday:           stats.DueToday,
		ChartSeries:        chart,
		IncomeDistribution: income,
		Unclassified:       stats.Unclassified,
	})
}

// longDate renders a YYYY-MM-DD day as "January 5, 2024", falling back to
// the raw upstream value when it does not parse.
func longDate(day, raw string) string {
	t, err := time.Parse("2006-01-02", day)
	if err != nil {
		return raw
	}
	return t.Format("January 2, 2006")
}
