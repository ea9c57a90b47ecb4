// internal/app/features/site/contact.go
package site

import (
	"html/template"
	"net/http"
	"strings"

	"github.com/dimondcastle/cms/internal/app/system/inputval"
	"github.com/dimondcastle/cms/internal/app/system/network"
	"github.com/dimondcastle/cms/internal/app/system/normalize"
	"github.com/dimondcastle/cms/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/gorilla/csrf"
	"go.uber.org/zap"
)

// ContactVM is the view model for the contact page and its form.
type ContactVM struct {
	BaseVM
	CSRFField template.HTML
	Sent      bool
	Reference string
	Error     string
	Name      string
	Email     string
	Phone     string
	Subject   string
	Body      string
}

// ContactForm renders the contact page with the submission form.
func (h *Handler) ContactForm(locale string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vm := ContactVM{
			BaseVM:    h.base(r, locale),
			CSRFField: csrf.TemplateField(r),
		}
		vm.Title = "Contact"
		if locale == models.LocaleAR {
			vm.Title = "اتصل بنا"
		}

		if r.URL.Query().Get("sent") == "1" {
			vm.Sent = true
			vm.Reference = r.URL.Query().Get("ref")
		}

		templates.Render(w, r, "site/contact", vm)
	}
}

// contactInput carries the contact form fields through validation.
type contactInput struct {
	Name    string `validate:"required,max=200" label:"Name"`
	Email   string `validate:"required,email,max=254" label:"Email"`
	Phone   string `validate:"max=40" label:"Phone"`
	Subject string `validate:"max=300" label:"Subject"`
	Body    string `validate:"required,max=10000" label:"Message"`
}

// SubmitContact handles the contact form POST. CSRF is enforced by the
// site router middleware; submissions are rate limited per client IP.
func (h *Handler) SubmitContact(locale string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		renderError := func(msg string) {
			vm := ContactVM{
				BaseVM:    h.base(r, locale),
				CSRFField: csrf.TemplateField(r),
				Error:     msg,
				Name:      r.FormValue("name"),
				Email:     r.FormValue("email"),
				Phone:     r.FormValue("phone"),
				Subject:   r.FormValue("subject"),
				Body:      r.FormValue("body"),
			}
			vm.Title = "Contact"
			if locale == models.LocaleAR {
				vm.Title = "اتصل بنا"
			}
			templates.Render(w, r, "site/contact", vm)
		}

		if err := r.ParseForm(); err != nil {
			renderError("Invalid form submission.")
			return
		}

		ip := network.GetClientIP(r)
		allowed, _, _ := h.limiter.CheckAllowed(r.Context(), ip)
		if !allowed {
			renderError("Too many messages. Please try again later.")
			return
		}

		in := contactInput{
			Name:    strings.TrimSpace(r.FormValue("name")),
			Email:   normalize.Email(r.FormValue("email")),
			Phone:   strings.TrimSpace(r.FormValue("phone")),
			Subject: strings.TrimSpace(r.FormValue("subject")),
			Body:    strings.TrimSpace(r.FormValue("body")),
		}
		if res := inputval.Validate(in); res.HasErrors() {
			renderError(res.First())
			return
		}

		msg, err := h.messages.Insert(r.Context(), models.ContactMessage{
			Name:    in.Name,
			Email:   in.Email,
			Phone:   in.Phone,
			Subject: in.Subject,
			Body:    in.Body,
		})
		if err != nil {
			h.logger.Error("failed to store contact message", zap.Error(err))
			renderError("Something went wrong. Please try again.")
			return
		}

		h.limiter.Record(r.Context(), ip)
		h.logger.Info("contact message received", zap.String("reference", msg.Reference))

		dest := "/contact?sent=1&ref=" + msg.Reference
		if locale == models.LocaleAR {
			dest = "/ar/contact?sent=1&ref=" + msg.Reference
		}
		http.Redirect(w, r, dest, http.StatusSeeOther)
	}
}
