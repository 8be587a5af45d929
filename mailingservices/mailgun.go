package mailingservices

import (
	"context"
	"fmt"
	"time"

	"github.com/mailgun/mailgun-go/v4"
	log "github.com/sirupsen/logrus"
	"github.com/techagentng/studyfocus/config"
)

// Mailer sends the transactional emails of the service.
type Mailer interface {
	SendWelcomeMessage(email, nickname string) error
	SendLeaderNotice(email, title, body string) error
}

type Mailgun struct {
	Client mailgun.Mailgun
	From   string
}

// Init builds the Mailgun client. Without an API key the mailer stays disabled and every send is a no-op.
func (mail *Mailgun) Init(conf *config.Config) {
	if conf.MailgunApiKey == "" || conf.MgDomain == "" {
		log.Warn("mailgun is not configured, emails are disabled")
		return
	}
	mail.Client = mailgun.NewMailgun(conf.MgDomain, conf.MailgunApiKey)
	mail.From = conf.MgEmailFrom
}

func (mail *Mailgun) SendWelcomeMessage(email, nickname string) error {
	subject := "Welcome to StudyFocus!"
	body := fmt.Sprintf("Hi %s,\n\nYour account is ready. Find a study group and start learning together.", nickname)
	return mail.send(email, subject, body)
}

func (mail *Mailgun) SendLeaderNotice(email, title, body string) error {
	return mail.send(email, "[StudyFocus] "+title, body)
}

func (mail *Mailgun) send(to, subject, body string) error {
	if mail.Client == nil {
		return nil
	}
	m := mail.Client.NewMessage(mail.From, subject, body, to)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, id, err := mail.Client.Send(ctx, m)
	if err != nil {
		return fmt.Errorf("mailgun send to %s: %w", to, err)
	}
	log.WithFields(log.Fields{"to": to, "id": id}).Debug("email sent")
	return nil
}
