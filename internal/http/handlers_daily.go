package http

import (
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"mawazna/internal/core"
	"mawazna/internal/message"
	"mawazna/internal/state"
)

func (s *Server) handleCreateRecord(w http.ResponseWriter, r *http.Request) {
	if resp := RequirePOST(r); resp != nil {
		resp.Write(w)
		return
	}
	if resp := ParseFormOrFail(r); resp != nil {
		resp.Write(w)
		return
	}

	date := formValue(r, "date")
	if date == "" {
		date = time.Now().Format(core.DateLayout)
	} else if _, err := time.Parse(core.DateLayout, date); err != nil {
		UnprocessableEntityError("invalid date").Write(w)
		return
	}

	rec := core.DailyRecord{
		ID:   uuid.NewString(),
		Date: date,
		Note: formValue(r, "note"),
	}

	fields := []struct {
		name string
		dst  *core.Money
	}{
		{"cash", &rec.Cash},
		{"network", &rec.Network},
		{"transfer", &rec.Transfer},
		{"withdrawals", &rec.Withdrawals},
		{"drawer_cash", &rec.DrawerCash},
	}
	for _, f := range fields {
		cents, err := core.ParseDecimalToCents(formValue(r, f.name))
		if err != nil {
			UnprocessableEntityError("invalid amount: " + f.name).Write(w)
			return
		}
		f.dst.Cents = cents
	}

	if err := s.svc.AddDailyRecord(r.Context(), rec); err != nil {
		slog.ErrorContext(r.Context(), "Record persist error", "error", err, "id", rec.ID)
	}

	NewHTMXResponse().
		TriggerRecordsChanged().
		TriggerFormReset().
		TriggerSuccessNotification("Record saved").
		BodyHTML(`<div class="success">Saved reconciliation for ` + template.HTMLEscapeString(rec.Date) + `</div>`).
		Write(w)
}

func (s *Server) handleDeleteRecord(w http.ResponseWriter, r *http.Request) {
	if resp := RequireMethod(r, http.MethodDelete, http.MethodPost); resp != nil {
		resp.Write(w)
		return
	}
	if resp := ParseFormOrFail(r); resp != nil {
		resp.Write(w)
		return
	}

	id := formValue(r, "id")
	if id == "" {
		BadRequestError("missing record id").Write(w)
		return
	}

	outcome, err := s.svc.DeleteDailyRecord(r.Context(), id)
	if err != nil {
		slog.ErrorContext(r.Context(), "Record delete persist error", "error", err, "id", id)
	}
	if outcome == state.NotFound {
		NewHTMXResponse().
			TriggerWarningNotification("Record already removed").
			BodyHTML(`<div class="warning">Record not found</div>`).
			Write(w)
		return
	}

	NewHTMXResponse().
		TriggerRecordsChanged().
		TriggerSuccessNotification("Record deleted").
		Write(w)
}

// handleShareRecord redirects to the WhatsApp deep link carrying the
// formatted daily message. Fire and forget: nothing is read back.
func (s *Server) handleShareRecord(w http.ResponseWriter, r *http.Request) {
	snap := s.svc.Snapshot()
	id := r.URL.Query().Get("id")

	var rec *core.DailyRecord
	for i := range snap.DailyRecords {
		if snap.DailyRecords[i].ID == id {
			rec = &snap.DailyRecords[i]
			break
		}
	}
	if rec == nil {
		NotFoundError("record not found").Write(w)
		return
	}

	text := message.Format(snap.Templates.Daily, message.FromDailyRecord(snap.Profile.OfficeName, *rec))
	link := message.ShareLink(s.linkBase, snap.Profile.WhatsApp, text)
	http.Redirect(w, r, link, http.StatusSeeOther)
}

// handleRecordsPartial renders the daily records list fragment.
func (s *Server) handleRecordsPartial(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	snap := s.svc.Snapshot()
	s.render(w, r, "records_list.html", struct {
		Records []core.DailyRecord
	}{Records: snap.DailyRecords})
}
