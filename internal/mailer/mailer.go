package mailer

import (
	"fmt"

	gomail "gopkg.in/gomail.v2"
)

// Mailer sends plain-text mail. Tests substitute a recording fake.
type Mailer interface {
	Send(to, subject, body string) error
}

// SMTP sends through a single SMTP account (STARTTLS on the usual 587).
type SMTP struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTP(host string, port int, username, password, from string) *SMTP {
	return &SMTP{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
	}
}

func (s *SMTP) Send(to, subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", s.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	if err := s.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("mailer: send to %s: %w", to, err)
	}
	return nil
}

// ApplicationSubject is the subject line for a new-application notice.
func ApplicationSubject(jobTitle string) string {
	return "New Application for " + jobTitle
}

// ApplicationBody composes the notice sent to the job's poster.
func ApplicationBody(employerName, applicantName, applicantEmail, jobTitle, message, resumeURL string) string {
	if resumeURL == "" {
		resumeURL = "No resume uploaded"
	}
	return fmt.Sprintf(`Hello %s,

%s has applied for your job posting: %s

Email: %s
Message: %s

Resume: %s

Regards,
JobBoard Team
`, employerName, applicantName, jobTitle, applicantEmail, message, resumeURL)
}
