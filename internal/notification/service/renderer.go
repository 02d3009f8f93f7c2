// Package service renders the account emails and delivers them through a mail provider.
package service

import (
	"bytes"
	"embed"
	"html/template"

	apperrors "github.com/allisson/accounts/internal/errors"
	"github.com/allisson/accounts/internal/notification/domain"
)

//go:embed templates/*.html
var templatesFS embed.FS

type emailKind struct {
	template string
	subject  string
	category string
}

var emailKinds = map[string]emailKind{
	domain.EventTypeVerificationEmail: {
		template: "verification.html",
		subject:  "Verify your email",
		category: "Email Verification",
	},
	domain.EventTypeWelcomeEmail: {
		template: "welcome.html",
		subject:  "Welcome",
		category: "Welcome Email",
	},
	domain.EventTypePasswordRecoveryEmail: {
		template: "password_recovery.html",
		subject:  "Reset your password",
		category: "Password Reset",
	},
	domain.EventTypePasswordResetSuccessEmail: {
		template: "password_reset_success.html",
		subject:  "Password reset successful",
		category: "Password Reset",
	},
}

type templateData struct {
	AppName  string
	Name     string
	Code     string
	ResetURL string
}

// Renderer turns an email payload into a message using the embedded HTML templates.
type Renderer struct {
	templates *template.Template
	appName   string
}

// NewRenderer parses the embedded templates. appName is shown in the header and footer of every email.
func NewRenderer(appName string) (*Renderer, error) {
	templates, err := template.ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to parse email templates")
	}
	return &Renderer{templates: templates, appName: appName}, nil
}

// Render builds the message for the given event type.
// Returns domain.ErrUnknownEventType for event types without a template.
func (r *Renderer) Render(eventType string, payload domain.EmailPayload) (*domain.Message, error) {
	kind, ok := emailKinds[eventType]
	if !ok {
		return nil, apperrors.Wrapf(domain.ErrUnknownEventType, "event type %q", eventType)
	}

	var buf bytes.Buffer
	data := templateData{
		AppName:  r.appName,
		Name:     payload.Name,
		Code:     payload.Code,
		ResetURL: payload.ResetURL,
	}
	if err := r.templates.ExecuteTemplate(&buf, kind.template, data); err != nil {
		return nil, apperrors.Wrap(err, "failed to render email")
	}

	subject := kind.subject
	if eventType == domain.EventTypeWelcomeEmail {
		subject = "Welcome to " + r.appName
	}

	return &domain.Message{
		ToEmail:  payload.Email,
		ToName:   payload.Name,
		Subject:  subject,
		HTML:     buf.String(),
		Category: kind.category,
	}, nil
}
