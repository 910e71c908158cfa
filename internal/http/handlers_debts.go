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

func (s *Server) handleCreateClient(w http.ResponseWriter, r *http.Request) {
	if resp := RequirePOST(r); resp != nil {
		resp.Write(w)
		return
	}
	if resp := ParseFormOrFail(r); resp != nil {
		resp.Write(w)
		return
	}

	balance, err := core.ParseSignedCents(formValue(r, "balance"))
	if err != nil {
		// blank opening balance means zero
		if formValue(r, "balance") != "" {
			UnprocessableEntityError("invalid opening balance").Write(w)
			return
		}
		balance = 0
	}

	initialType := core.DebtType(formValue(r, "type"))
	if initialType == "" {
		initialType = core.Debtor
	}

	client := core.Client{
		ID:           uuid.NewString(),
		Name:         formValue(r, "name"),
		Phone:        formValue(r, "phone"),
		Balance:      core.Money{Cents: balance},
		Transactions: []core.DebtTransaction{},
		InitialType:  initialType,
	}
	if err := client.Validate(); err != nil {
		UnprocessableEntityError("invalid client: " + err.Error()).Write(w)
		return
	}

	if err := s.svc.AddClient(r.Context(), client); err != nil {
		slog.ErrorContext(r.Context(), "Client persist error", "error", err, "id", client.ID)
	}

	NewHTMXResponse().
		TriggerClientsChanged().
		TriggerFormReset().
		TriggerSuccessNotification("Client added").
		BodyHTML(`<div class="success">Added client ` + template.HTMLEscapeString(client.Name) + `</div>`).
		Write(w)
}

func (s *Server) handleDeleteClient(w http.ResponseWriter, r *http.Request) {
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
		BadRequestError("missing client id").Write(w)
		return
	}

	outcome, err := s.svc.DeleteClient(r.Context(), id)
	if err != nil {
		slog.ErrorContext(r.Context(), "Client delete persist error", "error", err, "id", id)
	}
	if outcome == state.NotFound {
		NewHTMXResponse().
			TriggerWarningNotification("Client already removed").
			BodyHTML(`<div class="warning">Client not found</div>`).
			Write(w)
		return
	}

	NewHTMXResponse().
		TriggerClientsChanged().
		TriggerSuccessNotification("Client deleted").
		Write(w)
}

// handlePostTransaction appends a signed ledger entry and moves the
// client balance in the same step. An unknown client id leaves the
// state untouched and surfaces a warning instead of silent success.
func (s *Server) handlePostTransaction(w http.ResponseWriter, r *http.Request) {
	if resp := RequirePOST(r); resp != nil {
		resp.Write(w)
		return
	}
	if resp := ParseFormOrFail(r); resp != nil {
		resp.Write(w)
		return
	}

	clientID := formValue(r, "client_id")
	if clientID == "" {
		BadRequestError("missing client id").Write(w)
		return
	}

	amount, err := core.ParseSignedCents(formValue(r, "amount"))
	if err != nil {
		UnprocessableEntityError("invalid amount").Write(w)
		return
	}

	date := formValue(r, "date")
	if date == "" {
		date = time.Now().Format(core.DateLayout)
	}

	tx := core.DebtTransaction{
		ID:     uuid.NewString(),
		Amount: core.Money{Cents: amount},
		Date:   date,
		Note:   formValue(r, "note"),
	}

	outcome, err := s.svc.AddDebtTransaction(r.Context(), clientID, tx)
	if err != nil {
		slog.ErrorContext(r.Context(), "Transaction persist error", "error", err, "client_id", clientID)
	}
	if outcome == state.NotFound {
		NewHTMXResponse().
			Status(http.StatusUnprocessableEntity).
			TriggerWarningNotification("Client no longer exists").
			BodyHTML(`<div class="warning">Client not found, transaction dropped</div>`).
			Write(w)
		return
	}

	NewHTMXResponse().
		TriggerClientsChanged().
		TriggerFormReset().
		TriggerSuccessNotification("Transaction posted").
		Write(w)
}

// handleShareClient redirects to a WhatsApp link with the formatted
// debt balance message for one client.
func (s *Server) handleShareClient(w http.ResponseWriter, r *http.Request) {
	snap := s.svc.Snapshot()
	id := r.URL.Query().Get("id")

	var client *core.Client
	for i := range snap.Clients {
		if snap.Clients[i].ID == id {
			client = &snap.Clients[i]
			break
		}
	}
	if client == nil {
		NotFoundError("client not found").Write(w)
		return
	}

	// Send to the client's own number when present, otherwise the office line.
	phone := client.Phone
	if phone == "" {
		phone = snap.Profile.WhatsApp
	}

	text := message.Format(snap.Templates.Debt, message.FromClient(snap.Profile.OfficeName, *client))
	link := message.ShareLink(s.linkBase, phone, text)
	http.Redirect(w, r, link, http.StatusSeeOther)
}

// handleClientsPartial renders the debt ledger fragment.
func (s *Server) handleClientsPartial(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	snap := s.svc.Snapshot()
	s.render(w, r, "clients_list.html", struct {
		Clients []core.Client
	}{Clients: snap.Clients})
}
