// Package transport implements the concrete email delivery mechanisms:
// direct SMTP with user credentials and the local Outlook desktop client.
package transport

import (
	"fmt"
	"io"
	"log"
	"strings"

	gomail "gopkg.in/gomail.v2"
)

// smtpHosts maps a service hint to its submission host. Both providers use
// STARTTLS on port 587.
var smtpHosts = map[string]string{
	"outlook": "smtp.office365.com",
	"gmail":   "smtp.gmail.com",
}

const smtpPort = 587

// SMTPSender sends mail through a provider's SMTP submission endpoint
type SMTPSender struct {
	service string
}

// NewSMTPSender creates a sender for the given service hint ("outlook" or
// "gmail"). An empty hint defaults to outlook.
func NewSMTPSender(service string) *SMTPSender {
	if service == "" {
		service = "outlook"
	}
	return &SMTPSender{
		service: strings.ToLower(service),
	}
}

// Send delivers one plain-text message with an optional binary attachment.
// Authentication failures are reported distinctly from other transport
// failures so the user knows to check credentials rather than connectivity.
func (s *SMTPSender) Send(recipient, subject, body string, attachment []byte, attachmentName, username, password string) (bool, string) {
	host, ok := smtpHosts[s.service]
	if !ok {
		return false, fmt.Sprintf("Unknown email service %q (supported: outlook, gmail)", s.service)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", username)
	m.SetHeader("To", recipient)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	if len(attachment) > 0 && attachmentName != "" {
		m.Attach(attachmentName, gomail.SetCopyFunc(func(w io.Writer) error {
			_, err := w.Write(attachment)
			return err
		}))
	}

	d := gomail.NewDialer(host, smtpPort, username, password)

	if err := d.DialAndSend(m); err != nil {
		log.Printf("SMTP error: %v", err)
		if isAuthError(err) {
			return false, fmt.Sprintf("SMTP authentication failed: %v. If two-factor auth is enabled, use an app password.", err)
		}
		return false, fmt.Sprintf("SMTP error: %v", err)
	}

	return true, "Email sent successfully"
}

// isAuthError recognizes SMTP authentication rejections. 535 is the standard
// reply code for failed AUTH; providers vary in the accompanying text.
func isAuthError(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "535") ||
		strings.Contains(msg, "authentication") ||
		strings.Contains(msg, "username and password not accepted")
}
