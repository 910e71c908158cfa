package http

import (
	"net/http"

	"mawazna/internal/core"
	"mawazna/internal/message"
)

// handleMonthlyPartial renders the monthly summary fragment for the
// requested year+month (defaults: current month).
func (s *Server) handleMonthlyPartial(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	mp := ParseMonthParams(r.URL.Query())
	snap := s.svc.Snapshot()
	summary := core.SummarizeMonth(snap.DailyRecords, mp.Year, mp.Month)
	s.render(w, r, "monthly.html", struct {
		Summary core.MonthSummary
	}{Summary: summary})
}

// handleShareMonthly redirects to a WhatsApp link with the formatted
// monthly summary message.
func (s *Server) handleShareMonthly(w http.ResponseWriter, r *http.Request) {
	mp := ParseMonthParams(r.URL.Query())
	snap := s.svc.Snapshot()
	summary := core.SummarizeMonth(snap.DailyRecords, mp.Year, mp.Month)

	text := message.Format(snap.Templates.Monthly, message.FromMonthSummary(snap.Profile.OfficeName, summary))
	link := message.ShareLink(s.linkBase, snap.Profile.WhatsApp, text)
	http.Redirect(w, r, link, http.StatusSeeOther)
}
