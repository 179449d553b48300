package service

import (
	"context"
	"fmt"

	mail "github.com/go-mail/mail/v2"
	"github.com/taibui324/la-gougah/backend/models"
)

type SMTPOptions struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// Mailer delivers contact form inquiries over SMTP.
type Mailer struct {
	dialer *mail.Dialer
	from   string
}

func NewMailer(o SMTPOptions) *Mailer {
	d := mail.NewDialer(o.Host, o.Port, o.Username, o.Password)
	d.StartTLSPolicy = mail.OpportunisticStartTLS
	from := o.From
	if from == "" {
		from = o.Username
	}
	return &Mailer{dialer: d, from: from}
}

func (m *Mailer) SendInquiry(ctx context.Context, in *models.ContactInquiry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	msg := inquiryMessage(m.from, in)
	return m.dialer.DialAndSend(msg)
}

func inquiryMessage(from string, in *models.ContactInquiry) *mail.Message {
	msg := mail.NewMessage()
	msg.SetHeader("From", from)
	msg.SetHeader("To", in.ToEmail)
	msg.SetAddressHeader("Reply-To", in.Email, in.Name)
	msg.SetHeader("Subject", "Website contact: "+in.Name)
	body := fmt.Sprintf("Name: %s\nEmail: %s\nPhone: %s\n\n%s\n", in.Name, in.Email, in.Phone, in.Message)
	msg.SetBody("text/plain", body)
	return msg
}
