package http

import (
	"log/slog"
	"net/http"

	"propdash/internal/core"
	applog "propdash/internal/log"
	"propdash/internal/view"
)

type issuesPageData struct {
	Phase  view.Phase
	ErrMsg string

	Query    string
	Category string

	TotalIssues int
	Urgent      int
	ByCategory  []distView
	Categories  []distView

	Issues  []core.Issue
	FormURL string
}

// handleIssuesPage renders the maintenance issues dashboard.
func (s *Server) handleIssuesPage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if s.templates == nil {
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}

	snap := s.issues.Load(r.Context())
	query := queryParam(r, "q", "")
	category := queryParam(r, "category", core.FilterAll)

	data := issuesPageData{
		Phase:    snap.Phase,
		ErrMsg:   snap.ErrMsg,
		Query:    query,
		Category: category,
		FormURL:  s.forms.Issue,
	}

	if snap.Phase == view.PhaseReady {
		stats := core.ComputeIssueStats(snap.Records)
		data.TotalIssues = stats.TotalIssues
		data.Urgent = stats.Urgent

		maxCount := 0
		for _, b := range stats.ByCategory {
			if b.Count > maxCount {
				maxCount = b.Count
			}
		}
		for _, b := range stats.ByCategory {
			data.ByCategory = append(data.ByCategory, distView{
				Name:  b.Name,
				Count: b.Count,
				Width: barWidth(float64(b.Count), float64(maxCount)),
			})
		}

		maxCount = 0
		for _, b := range stats.CategoryDistribution {
			if b.Count > maxCount {
				maxCount = b.Count
			}
		}
		for _, b := range stats.CategoryDistribution {
			data.Categories = append(data.Categories, distView{
				Name:  b.Name,
				Count: b.Count,
				Width: barWidth(float64(b.Count), float64(maxCount)),
			})
		}

		data.Issues = core.FilterIssues(snap.Records, query, category)
	}

	if err := s.templates.ExecuteTemplate(w, "issues.html", data); err != nil {
		slog.ErrorContext(r.Context(), "Issues template execution failed", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// handleIssueDetail renders the issue detail modal partial.
func (s *Server) handleIssueDetail(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	id := queryParam(r, "id", "")
	if id == "" {
		http.Error(w, "missing issue id", http.StatusBadRequest)
		return
	}

	issue, ok := s.issues.Select(func(i core.Issue) bool { return i.ID.String() == id })
	if !ok {
		http.NotFound(w, r)
		return
	}

	data := struct {
		Issue    core.Issue
		Category string
		Urgent   bool
	}{
		Issue:    issue,
		Category: issue.BucketCategory(),
		Urgent:   issue.Urgent(),
	}
	if err := s.templates.ExecuteTemplate(w, "issue_detail.html", data); err != nil {
		slog.ErrorContext(r.Context(), "Issue detail template failed", "error", err, "id", id)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (s *Server) handleIssueDetailClose(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	s.issues.CloseDetail()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleIssuesRefresh(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	snap := s.issues.Retry(r.Context())
	applog.FromContext(r.Context()).InfoContext(r.Context(), "Issue refresh completed",
		applog.FieldPhase, snap.Phase, applog.FieldRecords, len(snap.Records))
	http.Redirect(w, r, "/issues", http.StatusSeeOther)
}

// handleIssueStatsAPI serves the issue aggregates as ordered (label, value)
// pairs.
func (s *Server) handleIssueStatsAPI(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	snap := s.issues.Load(r.Context())
	if snap.Phase != view.PhaseReady {
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": snap.ErrMsg})
		return
	}

	stats := core.ComputeIssueStats(snap.Records)
	byCategory := make([]labelValue, 0, len(stats.ByCategory))
	for _, b := range stats.ByCategory {
		byCategory = append(byCategory, labelValue{Label: b.Name, Value: float64(b.Count)})
	}
	distribution := make([]labelValue, 0, len(stats.CategoryDistribution))
	for _, b := range stats.CategoryDistribution {
		distribution = append(distribution, labelValue{Label: b.Name, Value: float64(b.Count)})
	}

	writeJSON(w, http.StatusOK, struct {
		TotalIssues          int          `json:"totalIssues"`
		Urgent               int          `json:"urgent"`
		ByCategory           []labelValue `json:"byCategory"`
		CategoryDistribution []labelValue `json:"categoryDistribution"`
	}{
		TotalIssues:          stats.TotalIssues,
		Urgent:               stats.Urgent,
		ByCategory:           byCategory,
		CategoryDistribution: distribution,
	})
}
