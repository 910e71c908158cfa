package http

import (
	"log/slog"
	"net/http"

	"mawazna/internal/core"
)

// handleUpdateProfile replaces the office profile wholesale.
func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	if resp := RequirePOST(r); resp != nil {
		resp.Write(w)
		return
	}
	if resp := ParseFormOrFail(r); resp != nil {
		resp.Write(w)
		return
	}

	profile := core.UserProfile{
		Email:        formValue(r, "email"),
		Mobile:       formValue(r, "mobile"),
		OfficeName:   formValue(r, "office_name"),
		OfficeMobile: formValue(r, "office_mobile"),
		WhatsApp:     formValue(r, "whatsapp"),
		Address:      formValue(r, "address"),
		LogoURL:      formValue(r, "logo_url"),
	}

	if err := s.svc.UpdateProfile(r.Context(), profile); err != nil {
		slog.ErrorContext(r.Context(), "Profile persist error", "error", err)
	}

	NewHTMXResponse().
		TriggerSuccessNotification("Profile saved").
		BodyHTML(`<div class="success">Profile saved</div>`).
		Write(w)
}

// handleUpdateTemplates replaces the message templates wholesale. The
// raw form values are kept verbatim: templates legitimately contain
// newlines and placeholder braces.
func (s *Server) handleUpdateTemplates(w http.ResponseWriter, r *http.Request) {
	if resp := RequirePOST(r); resp != nil {
		resp.Write(w)
		return
	}
	if resp := ParseFormOrFail(r); resp != nil {
		resp.Write(w)
		return
	}

	templates := core.MessageTemplates{
		Daily:   r.Form.Get("daily"),
		Monthly: r.Form.Get("monthly"),
		Debt:    r.Form.Get("debt"),
	}

	if err := s.svc.UpdateTemplates(r.Context(), templates); err != nil {
		slog.ErrorContext(r.Context(), "Templates persist error", "error", err)
	}

	NewHTMXResponse().
		TriggerSuccessNotification("Templates saved").
		BodyHTML(`<div class="success">Templates saved</div>`).
		Write(w)
}
