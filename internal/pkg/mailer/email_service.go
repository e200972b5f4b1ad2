package mailer

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

type IEmailService interface {
	SendReportNotice(itemType, itemId, reason, reporterId string) error
}

type emailService struct {
	dialer      *gomail.Dialer
	senderEmail string
	inboxEmail  string
}

func NewEmailService(host string, port int, username, password, senderEmail, inboxEmail string) IEmailService {
	d := gomail.NewDialer(host, port, username, password)

	return &emailService{
		dialer:      d,
		senderEmail: senderEmail,
		inboxEmail:  inboxEmail,
	}
}

// SendReportNotice mails a new abuse report to the moderation inbox. Failures
// are surfaced to the caller, which logs and continues — report persistence
// never depends on mail delivery.
func (s *emailService) SendReportNotice(itemType, itemId, reason, reporterId string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.senderEmail)
	m.SetHeader("To", s.inboxEmail)
	m.SetHeader("Subject", fmt.Sprintf("New abuse report: %s %s", itemType, itemId))

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>New Abuse Report</h2>
			<p><b>Item:</b> %s %s</p>
			<p><b>Reporter:</b> %s</p>
			<p><b>Reason:</b></p>
			<p>%s</p>
		</div>
	`, itemType, itemId, reporterId, reason)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		fmt.Printf("[MAILER ERROR] Failed to send report notice for %s %s: %v\n", itemType, itemId, err)
		return err
	}

	fmt.Printf("[MAILER] Report notice sent for %s %s\n", itemType, itemId)
	return nil
}
