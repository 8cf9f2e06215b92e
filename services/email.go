package services

import (
	"fmt"
	"log"
	"strings"

	"evidencias_app_go/config"

	"github.com/resend/resend-go/v2"
)

// Email represents an email message
type Email struct {
	To       []string
	Subject  string
	HTMLBody string
	TextBody string
}

// SendEmail sends an email using the Resend API. In test mode the email is
// logged to the console instead of sent.
func SendEmail(cfg *config.Config, email *Email) error {
	if cfg.EmailTestMode {
		logEmailToConsole(email)
		return nil
	}

	if cfg.ResendAPIKey == "" {
		return fmt.Errorf("RESEND_API_KEY not configured")
	}

	client := resend.NewClient(cfg.ResendAPIKey)

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("%s <%s>", cfg.EmailFromName, cfg.EmailFrom),
		To:      email.To,
		Subject: email.Subject,
		Html:    email.HTMLBody,
		Text:    email.TextBody,
	}

	sent, err := client.Emails.Send(params)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	log.Printf("Email sent to %s (id: %s)", strings.Join(email.To, ", "), sent.Id)
	return nil
}

// SendEmailAsync sends an email in a goroutine so handlers never block on it
func SendEmailAsync(cfg *config.Config, email *Email) {
	go func() {
		if err := SendEmail(cfg, email); err != nil {
			log.Printf("[WARNING] Async email to %s failed: %v", strings.Join(email.To, ", "), err)
		}
	}()
}

// BuildWelcomeEmail builds the email sent when an account is created
func BuildWelcomeEmail(toEmail, nombre, usuario string) *Email {
	if nombre == "" {
		nombre = usuario
	}
	return &Email{
		To:      []string{toEmail},
		Subject: "Bienvenido al sistema de gestión de evidencias",
		HTMLBody: fmt.Sprintf(
			"<p>Hola %s,</p><p>Tu cuenta <strong>%s</strong> fue creada. Ya puedes iniciar sesión en el sistema de gestión de expedientes e indicios.</p>",
			nombre, usuario),
		TextBody: fmt.Sprintf(
			"Hola %s,\n\nTu cuenta %s fue creada. Ya puedes iniciar sesión en el sistema de gestión de expedientes e indicios.\n",
			nombre, usuario),
	}
}

func logEmailToConsole(email *Email) {
	log.Println("==================== EMAIL (test mode) ====================")
	log.Printf("To:      %s", strings.Join(email.To, ", "))
	log.Printf("Subject: %s", email.Subject)
	log.Printf("Body:\n%s", email.TextBody)
	log.Println("===========================================================")
}
