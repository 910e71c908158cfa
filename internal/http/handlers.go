package http

import (
	"log/slog"
	"net/http"
	"time"

	"mawazna/internal/core"
)

// indexData feeds the main layout: the active tab plus the snapshot
// slices the tab templates render from.
type indexData struct {
	Tab      string
	Profile  core.UserProfile
	Settings core.MessageTemplates
	Records  []core.DailyRecord
	Clients  []core.Client
	Summary  core.MonthSummary
	Today    string
}

func validTab(tab string) string {
	switch tab {
	case "daily", "monthly", "debts", "settings":
		return tab
	default:
		return "daily"
	}
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	snap := s.svc.Snapshot()
	if !snap.IsLoggedIn {
		s.render(w, r, "login.html", nil)
		return
	}

	now := time.Now()
	mp := ParseMonthParams(r.URL.Query())
	data := indexData{
		Tab:      validTab(r.URL.Query().Get("tab")),
		Profile:  snap.Profile,
		Settings: snap.Templates,
		Records:  snap.DailyRecords,
		Clients:  snap.Clients,
		Summary:  core.SummarizeMonth(snap.DailyRecords, mp.Year, mp.Month),
		Today:    now.Format(core.DateLayout),
	}
	s.render(w, r, "index.html", data)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if resp := RequirePOST(r); resp != nil {
		resp.Write(w)
		return
	}
	if resp := ParseFormOrFail(r); resp != nil {
		resp.Write(w)
		return
	}

	email := formValue(r, "email")
	password := r.Form.Get("password") // never stored, only checked for presence
	mobile := formValue(r, "mobile")

	if email == "" || password == "" {
		UnprocessableEntityError("email and password are required").Write(w)
		return
	}

	if err := s.svc.Login(r.Context(), email, mobile); err != nil {
		slog.ErrorContext(r.Context(), "Login persist error", "error", err)
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if resp := RequirePOST(r); resp != nil {
		resp.Write(w)
		return
	}
	if err := s.svc.Logout(r.Context()); err != nil {
		slog.ErrorContext(r.Context(), "Logout persist error", "error", err)
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
