// FILE: internal/pkg/mailer/email_service.go
package mailer

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

type IEmailService interface {
	SendSellerWelcome(toEmail, name, businessName, loginURL string) error
}

type emailService struct {
	dialer      *gomail.Dialer
	senderEmail string
	senderName  string
}

// NewEmailService returns a no-op sender when host is empty so local setups work without SMTP.
func NewEmailService(host string, port int, username, password, senderName string) IEmailService {
	if host == "" {
		return noopEmailService{}
	}
	return &emailService{
		dialer:      gomail.NewDialer(host, port, username, password),
		senderEmail: username,
		senderName:  senderName,
	}
}

func (s *emailService) SendSellerWelcome(toEmail, name, businessName, loginURL string) error {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.senderEmail, s.senderName)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", "Your seller account is ready")

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Welcome, %s!</h2>
			<p>A seller account for <strong>%s</strong> has been created for you.</p>
			<p>Sign in with this email address and the password given to you by the administrator:</p>
			<a href="%s" style="background-color: #2E7D32; color: white; padding: 10px 20px; text-decoration: none; border-radius: 5px; display: inline-block;">Sign in</a>
			<p>Please change your password after your first login.</p>
		</div>
	`, name, businessName, loginURL)
	m.SetBody("text/html", body)

	return s.dialer.DialAndSend(m)
}

type noopEmailService struct{}

func (noopEmailService) SendSellerWelcome(string, string, string, string) error {
	return nil
}
