package notify

import (
	"fmt"
	"log"
	"net/smtp"
)

// Mailer sends fire-and-forget mail. The core never waits on delivery; the
// only caller today is the password-reset flow.
type Mailer struct {
	server       string
	port         string
	user         string
	password     string
	from         string
	authDisabled bool
}

func NewMailer(server, port, user, password, from string, authDisabled bool) *Mailer {
	return &Mailer{
		server:       server,
		port:         port,
		user:         user,
		password:     password,
		from:         from,
		authDisabled: authDisabled,
	}
}

func (m *Mailer) SendPasswordReset(to, resetToken string) {
	subject := "Password reset request"
	body := fmt.Sprintf("Use this token to reset your password: %s\n\nIt expires in 30 minutes.", resetToken)
	m.send(to, subject, body)
}

func (m *Mailer) send(to, subject, body string) {
	if m == nil || m.server == "" {
		log.Printf("mail not configured, dropping %q to %s", subject, to)
		return
	}

	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s", m.from, to, subject, body)
	addr := fmt.Sprintf("%s:%s", m.server, m.port)

	auth := smtp.PlainAuth("", m.user, m.password, m.server)
	if m.authDisabled {
		auth = nil
	}

	go func() {
		if err := smtp.SendMail(addr, auth, m.from, []string{to}, []byte(msg)); err != nil {
			log.Printf("Failed to send email to %s: %v", to, err)
		}
	}()
}
