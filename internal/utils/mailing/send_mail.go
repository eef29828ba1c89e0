package mailing

import (
	"fmt"
	"html"
	"strconv"

	"fittrack/internal/utils"

	"gopkg.in/gomail.v2"
)

type MailConfig struct {
	AppURL       string
	SMTPHost     string
	SMTPPort     string
	SMTPSender   string
	SMTPEmail    string
	SMTPPassword string
}

type Mailer interface {
	SendMail(toEmail string, subject string, body string) error
}

type smtpMailer struct {
	config MailConfig
}

func LoadMailConfig() MailConfig {
	return MailConfig{
		AppURL:       utils.GetConfig("APP_URL"),
		SMTPHost:     utils.GetConfig("SMTP_HOST"),
		SMTPPort:     utils.GetConfig("SMTP_PORT"),
		SMTPSender:   utils.GetConfig("SMTP_SENDER_NAME"),
		SMTPEmail:    utils.GetConfig("SMTP_AUTH_EMAIL"),
		SMTPPassword: utils.GetConfig("SMTP_AUTH_PASSWORD"),
	}
}

// NewMailer returns nil when SMTP is not configured.
func NewMailer(config MailConfig) Mailer {
	if config.SMTPHost == "" {
		return nil
	}
	return &smtpMailer{config: config}
}

func (m *smtpMailer) SendMail(toEmail string, subject string, body string) error {
	mailer := gomail.NewMessage()
	mailer.SetAddressHeader("From", m.config.SMTPEmail, m.config.SMTPSender)
	mailer.SetHeader("To", toEmail)
	mailer.SetHeader("Subject", subject)
	mailer.SetBody("text/html", body)

	port, err := strconv.Atoi(m.config.SMTPPort)
	if err != nil {
		return err
	}
	dialer := gomail.NewDialer(
		m.config.SMTPHost,
		port,
		m.config.SMTPEmail,
		m.config.SMTPPassword,
	)

	return dialer.DialAndSend(mailer)
}

func WelcomeMail(username, appURL string) (string, string) {
	subject := "Welcome to FitTrack"
	body := fmt.Sprintf(
		"<p>Hi %s,</p><p>your FitTrack account is ready. Finish onboarding to set your daily goals:</p><p><a href=\"%s/onboarding\">%s/onboarding</a></p>",
		html.EscapeString(username), appURL, appURL,
	)
	return subject, body
}
