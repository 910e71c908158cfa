package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"mawazna/internal/core"
	"mawazna/internal/message"
	"mawazna/internal/services"
	"mawazna/internal/store/memory"
)

func newTestServer(t *testing.T, seed *core.AppState) *Server {
	t.Helper()
	var st *memory.Store
	if seed != nil {
		st = memory.Seed(*seed)
	} else {
		st = memory.New()
	}
	svc := services.NewStateService(st, nil)
	svc.Load(context.Background())
	srv := NewServer(":0", svc, message.DefaultLinkBase)
	t.Cleanup(func() { _ = srv.Shutdown(context.Background()) })
	return srv
}

func loggedInState() *core.AppState {
	s := core.DefaultState()
	s.IsLoggedIn = true
	s.Profile.OfficeName = "مكتب النور"
	s.Profile.WhatsApp = "+966501234567"
	return &s
}

func postForm(srv *Server, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, req)
	return rec
}

func get(srv *Server, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, req)
	return rec
}

func TestHealthEndpoints(t *testing.T) {
	srv := newTestServer(t, nil)
	if rec := get(srv, "/healthz"); rec.Code != http.StatusOK || rec.Body.String() != "ok" {
		t.Fatalf("healthz: %d %q", rec.Code, rec.Body.String())
	}
	if rec := get(srv, "/readyz"); rec.Code != http.StatusOK {
		t.Fatalf("readyz: %d", rec.Code)
	}
}

func TestIndexShowsLoginWhenLoggedOut(t *testing.T) {
	srv := newTestServer(t, nil)
	rec := get(srv, "/")
	if rec.Code != http.StatusOK {
		t.Fatalf("index: %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `action="/login"`) {
		t.Fatalf("expected login form, got: %.200s", rec.Body.String())
	}
}

func TestLoginFlow(t *testing.T) {
	srv := newTestServer(t, nil)

	// missing password is rejected
	rec := postForm(srv, "/login", url.Values{"email": {"a@b.c"}})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}

	rec = postForm(srv, "/login", url.Values{
		"email": {"a@b.c"}, "password": {"anything"}, "mobile": {"0501234567"},
	})
	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/" {
		t.Fatalf("login redirect: %d %q", rec.Code, rec.Header().Get("Location"))
	}

	snap := srv.svc.Snapshot()
	if !snap.IsLoggedIn || snap.Profile.Email != "a@b.c" || snap.Profile.Mobile != "0501234567" {
		t.Fatalf("login not applied: %+v", snap.Profile)
	}

	rec = postForm(srv, "/logout", url.Values{})
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("logout redirect: %d", rec.Code)
	}
	if srv.svc.Snapshot().IsLoggedIn {
		t.Fatalf("still logged in after logout")
	}
}

func TestCreateRecord(t *testing.T) {
	srv := newTestServer(t, loggedInState())

	rec := postForm(srv, "/records", url.Values{
		"date": {"2024-01-15"}, "cash": {"100"}, "network": {"50.25"},
		"withdrawals": {"25"}, "drawer_cash": {"125.25"},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("create record: %d %s", rec.Code, rec.Body.String())
	}
	if trigger := rec.Header().Get("HX-Trigger"); !strings.Contains(trigger, "records:changed") {
		t.Fatalf("missing refresh trigger: %q", trigger)
	}

	snap := srv.svc.Snapshot()
	if len(snap.DailyRecords) != 1 {
		t.Fatalf("record not stored")
	}
	got := snap.DailyRecords[0]
	if got.ID == "" || got.Date != "2024-01-15" {
		t.Fatalf("record fields: %+v", got)
	}
	if got.Cash.Cents != 10000 || got.Network.Cents != 5025 {
		t.Fatalf("amounts misparsed: %+v", got)
	}
}

func TestCreateRecordRejectsBadInput(t *testing.T) {
	srv := newTestServer(t, loggedInState())

	rec := postForm(srv, "/records", url.Values{"date": {"15/01/2024"}})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("bad date: %d", rec.Code)
	}

	rec = postForm(srv, "/records", url.Values{"cash": {"-5"}})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("negative cash: %d", rec.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/records", nil)
	w := httptest.NewRecorder()
	srv.Handler.ServeHTTP(w, req)
	if w.Code != http.StatusMethodNotAllowed {
		t.Fatalf("GET records: %d", w.Code)
	}
}

func TestDeleteRecordUnknownID(t *testing.T) {
	srv := newTestServer(t, loggedInState())
	rec := postForm(srv, "/records/delete", url.Values{"id": {"ghost"}})
	if rec.Code != http.StatusOK {
		t.Fatalf("delete unknown: %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "not found") {
		t.Fatalf("expected warning body, got %q", rec.Body.String())
	}
	if trigger := rec.Header().Get("HX-Trigger"); strings.Contains(trigger, "records:changed") {
		t.Fatalf("unknown delete must not trigger refresh: %q", trigger)
	}
}

func TestShareRecordRedirect(t *testing.T) {
	st := loggedInState()
	st.DailyRecords = append(st.DailyRecords, core.DailyRecord{
		ID: "r1", Date: "2024-01-15",
		Cash: core.Money{Cents: 10000}, DrawerCash: core.Money{Cents: 10000},
	})
	srv := newTestServer(t, st)

	rec := get(srv, "/records/share?id=r1")
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("share: %d", rec.Code)
	}
	loc := rec.Header().Get("Location")
	if !strings.HasPrefix(loc, "https://wa.me/966501234567?text=") {
		t.Fatalf("share link: %q", loc)
	}
	if strings.Contains(loc, "{{") || strings.Contains(loc, " ") {
		t.Fatalf("link body not formatted/encoded: %q", loc)
	}

	if rec := get(srv, "/records/share?id=ghost"); rec.Code != http.StatusNotFound {
		t.Fatalf("share unknown: %d", rec.Code)
	}
}

func TestClientLifecycle(t *testing.T) {
	srv := newTestServer(t, loggedInState())

	rec := postForm(srv, "/clients", url.Values{
		"name": {"Ali"}, "phone": {"0501112222"}, "balance": {"200"}, "type": {"DEBTOR"},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("create client: %d %s", rec.Code, rec.Body.String())
	}

	snap := srv.svc.Snapshot()
	if len(snap.Clients) != 1 || snap.Clients[0].Balance.Cents != 20000 {
		t.Fatalf("client not stored: %+v", snap.Clients)
	}
	clientID := snap.Clients[0].ID

	rec = postForm(srv, "/clients/transactions", url.Values{
		"client_id": {clientID}, "amount": {"-50"}, "note": {"repayment"},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("post transaction: %d %s", rec.Code, rec.Body.String())
	}

	snap = srv.svc.Snapshot()
	if snap.Clients[0].Balance.Cents != 15000 || len(snap.Clients[0].Transactions) != 1 {
		t.Fatalf("ledger not updated: %+v", snap.Clients[0])
	}

	rec = postForm(srv, "/clients/delete", url.Values{"id": {clientID}})
	if rec.Code != http.StatusOK {
		t.Fatalf("delete client: %d", rec.Code)
	}
	if len(srv.svc.Snapshot().Clients) != 0 {
		t.Fatalf("client not removed")
	}
}

func TestTransactionUnknownClient(t *testing.T) {
	srv := newTestServer(t, loggedInState())
	rec := postForm(srv, "/clients/transactions", url.Values{
		"client_id": {"ghost"}, "amount": {"100"},
	})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "not found") {
		t.Fatalf("expected warning body, got %q", rec.Body.String())
	}
}

func TestCreateClientValidation(t *testing.T) {
	srv := newTestServer(t, loggedInState())
	rec := postForm(srv, "/clients", url.Values{"name": {"  "}})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("blank name: %d", rec.Code)
	}
	if len(srv.svc.Snapshot().Clients) != 0 {
		t.Fatalf("invalid client stored")
	}
}

func TestShareClientUsesClientPhone(t *testing.T) {
	st := loggedInState()
	st.Clients = append(st.Clients,
		core.Client{ID: "c1", Name: "Ali", Phone: "0501112222", Balance: core.Money{Cents: 15000},
			Transactions: []core.DebtTransaction{}, InitialType: core.Debtor},
		core.Client{ID: "c2", Name: "Sara", Balance: core.Money{Cents: -500},
			Transactions: []core.DebtTransaction{}, InitialType: core.Creditor},
	)
	srv := newTestServer(t, st)

	rec := get(srv, "/clients/share?id=c1")
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("share client: %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); !strings.HasPrefix(loc, "https://wa.me/0501112222?text=") {
		t.Fatalf("expected client phone in link: %q", loc)
	}

	// no client phone falls back to the office line
	rec = get(srv, "/clients/share?id=c2")
	if loc := rec.Header().Get("Location"); !strings.HasPrefix(loc, "https://wa.me/966501234567?text=") {
		t.Fatalf("expected office fallback: %q", loc)
	}
}

func TestUpdateProfileAndTemplates(t *testing.T) {
	srv := newTestServer(t, loggedInState())

	rec := postForm(srv, "/settings/profile", url.Values{
		"office_name": {"مكتب جديد"}, "email": {"x@y.z"}, "whatsapp": {"+966555"},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("update profile: %d", rec.Code)
	}
	snap := srv.svc.Snapshot()
	if snap.Profile.OfficeName != "مكتب جديد" || snap.Profile.WhatsApp != "+966555" {
		t.Fatalf("profile not updated: %+v", snap.Profile)
	}

	rec = postForm(srv, "/settings/templates", url.Values{
		"daily": {"يومية {{income_total}}"}, "monthly": {"m"}, "debt": {"d {{debt_balance}}"},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("update templates: %d", rec.Code)
	}
	snap = srv.svc.Snapshot()
	if snap.Templates.Daily != "يومية {{income_total}}" || snap.Templates.Debt != "d {{debt_balance}}" {
		t.Fatalf("templates not updated: %+v", snap.Templates)
	}
}

func TestSecurityHeadersApplied(t *testing.T) {
	srv := newTestServer(t, nil)
	rec := get(srv, "/")
	if rec.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Fatalf("missing nosniff header")
	}
	if rec.Header().Get("Content-Security-Policy") == "" {
		t.Fatalf("missing CSP header")
	}
}

func TestPartialsRender(t *testing.T) {
	st := loggedInState()
	st.DailyRecords = append(st.DailyRecords, core.DailyRecord{ID: "r1", Date: "2024-01-15", Cash: core.Money{Cents: 15000}})
	st.Clients = append(st.Clients, core.Client{ID: "c1", Name: "Ali",
		Transactions: []core.DebtTransaction{}, InitialType: core.Debtor})
	srv := newTestServer(t, st)

	rec := get(srv, "/ui/records")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "2024-01-15") {
		t.Fatalf("records partial: %d %.200s", rec.Code, rec.Body.String())
	}

	rec = get(srv, "/ui/clients")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "Ali") {
		t.Fatalf("clients partial: %d %.200s", rec.Code, rec.Body.String())
	}

	rec = get(srv, "/ui/monthly?year=2024&month=1")
	if rec.Code != http.StatusOK {
		t.Fatalf("monthly partial: %d", rec.Code)
	}
}
