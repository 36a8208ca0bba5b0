package service

import (
	"fmt"
	"html"

	"gopkg.in/gomail.v2"
)

type EmailService struct {
	SMTPHost string
	SMTPPort int
	Username string
	Password string
	From     string
}

func NewEmailService(host string, port int, username, password string, from string) *EmailService {
	return &EmailService{
		SMTPHost: host,
		SMTPPort: port,
		Username: username,
		Password: password,
		From:     from,
	}
}

func (e *EmailService) SendEmail(to, subject, body string) error {
	mail := gomail.NewMessage()
	mail.SetHeader("From", e.From)
	mail.SetHeader("To", to)
	mail.SetHeader("Subject", subject)
	mail.SetBody("text/html", body)

	dialer := gomail.NewDialer(e.SMTPHost, e.SMTPPort, e.Username, e.Password)
	dialer.SSL = e.SMTPPort == 465

	return dialer.DialAndSend(mail)
}

// Notifier sends account notices in the background. Delivery problems are
// logged and never reach the request that triggered them. A nil mailer
// disables it.
type Notifier struct {
	mailer     EmailInterface
	logger     LoggerInterface
	serverName string
}

func NewNotifier(mailer EmailInterface, logger LoggerInterface, serverName string) *Notifier {
	return &Notifier{mailer: mailer, logger: logger, serverName: serverName}
}

func (n *Notifier) enabled() bool {
	return n != nil && n.mailer != nil
}

func (n *Notifier) Welcome(to, accountName string) {
	if !n.enabled() {
		return
	}
	subject := fmt.Sprintf("Welcome to %s", n.serverName)
	body := fmt.Sprintf(WelcomeEmail, html.EscapeString(n.serverName), html.EscapeString(accountName))
	n.send(to, subject, body)
}

func (n *Notifier) PasswordChanged(to, accountName string) {
	if !n.enabled() {
		return
	}
	subject := fmt.Sprintf("%s: your password was changed", n.serverName)
	body := fmt.Sprintf(PasswordChangedEmail, html.EscapeString(accountName), html.EscapeString(n.serverName))
	n.send(to, subject, body)
}

func (n *Notifier) send(to, subject, body string) {
	go func() {
		if err := n.mailer.SendEmail(to, subject, body); err != nil {
			n.logger.Warning(fmt.Sprintf("Notifier.send(): error sending %q to %s: %v", subject, to, err))
		}
	}()
}
