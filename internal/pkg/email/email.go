// Package email delivers the notification sent to a feedback submitter when
// an administrator responds. Without SMTP credentials sending is a no-op.
package email

import (
	"bytes"
	"crypto/tls"
	"fmt"
	"html/template"
	"mime"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// EmailService is the mailer the feedback service depends on
type EmailService interface {
	SendFeedbackResponseEmail(toEmail, toName, message, response string) error
}

// SMTPConfig mirrors the smtp section of config.yaml. UseTLS selects
// implicit TLS (port 465); otherwise net/smtp upgrades with STARTTLS when
// the server offers it.
type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromName  string
	FromEmail string
	UseTLS    bool
}

const feedbackResponseSubject = "[CamNote] 피드백에 대한 답변이 등록되었습니다"

var feedbackResponseTmpl = template.Must(template.New("feedback_response").Funcs(template.FuncMap{
	"lines": func(s string) []string { return strings.Split(s, "\n") },
}).Parse(`<html>
<body>
<div style="font-family: sans-serif; max-width: 600px; margin: 0 auto;">
<h2 style="color: #333;">CamNote 피드백 답변</h2>
<p>{{.Name}}님, 안녕하세요.</p>
<p>보내주신 피드백:</p>
<blockquote style="border-left: 3px solid #ccc; padding-left: 12px; color: #555;">{{range $i, $l := lines .Message}}{{if $i}}<br>{{end}}{{$l}}{{end}}</blockquote>
<p>관리자 답변:</p>
<blockquote style="border-left: 3px solid #4a86e8; padding-left: 12px;">{{range $i, $l := lines .Response}}{{if $i}}<br>{{end}}{{$l}}{{end}}</blockquote>
<p>감사합니다.<br>CamNote 드림</p>
</div>
</body>
</html>
`))

// EmailServiceImpl sends mail over SMTP
type EmailServiceImpl struct {
	config SMTPConfig
	logger zerolog.Logger
	send   func(toEmail, subject, htmlBody string) error
}

func NewEmailService(config SMTPConfig, logger zerolog.Logger) *EmailServiceImpl {
	s := &EmailServiceImpl{config: config, logger: logger}
	s.send = s.deliver
	return s
}

// Configured reports whether host and credentials are all set
func (s *EmailServiceImpl) Configured() bool {
	return s.config.Host != "" && s.config.Username != "" && s.config.Password != ""
}

func (s *EmailServiceImpl) SendFeedbackResponseEmail(toEmail, toName, message, response string) error {
	if !s.Configured() {
		s.logger.Warn().Str("toEmail", toEmail).Msg("SMTP not configured, feedback response email skipped")
		return nil
	}

	var body bytes.Buffer
	err := feedbackResponseTmpl.Execute(&body, struct{ Name, Message, Response string }{toName, message, response})
	if err != nil {
		return fmt.Errorf("render feedback response email: %w", err)
	}
	return s.send(toEmail, feedbackResponseSubject, body.String())
}

func (s *EmailServiceImpl) compose(toEmail, subject, htmlBody string) []byte {
	var msg bytes.Buffer
	from := mime.QEncoding.Encode("utf-8", s.config.FromName) + " <" + s.config.FromEmail + ">"
	for _, h := range [][2]string{
		{"From", from},
		{"To", toEmail},
		{"Subject", mime.QEncoding.Encode("utf-8", subject)},
		{"Date", time.Now().Format(time.RFC1123Z)},
		{"MIME-Version", "1.0"},
		{"Content-Type", "text/html; charset=UTF-8"},
	} {
		msg.WriteString(h[0] + ": " + h[1] + "\r\n")
	}
	msg.WriteString("\r\n")
	msg.WriteString(htmlBody)
	return msg.Bytes()
}

func (s *EmailServiceImpl) deliver(toEmail, subject, htmlBody string) error {
	addr := net.JoinHostPort(s.config.Host, strconv.Itoa(s.config.Port))
	auth := smtp.PlainAuth("", s.config.Username, s.config.Password, s.config.Host)
	msg := s.compose(toEmail, subject, htmlBody)

	var err error
	if s.config.UseTLS {
		err = s.sendImplicitTLS(addr, auth, toEmail, msg)
	} else {
		err = smtp.SendMail(addr, auth, s.config.FromEmail, []string{toEmail}, msg)
	}
	if err != nil {
		s.logger.Error().Err(err).Str("server", addr).Str("toEmail", toEmail).Msg("Failed to send email")
		return fmt.Errorf("send email: %w", err)
	}
	return nil
}

func (s *EmailServiceImpl) sendImplicitTLS(addr string, auth smtp.Auth, toEmail string, msg []byte) error {
	conn, err := tls.Dial("tcp", addr, &tls.Config{ServerName: s.config.Host})
	if err != nil {
		return fmt.Errorf("dial: %w", err)
	}
	c, err := smtp.NewClient(conn, s.config.Host)
	if err != nil {
		conn.Close()
		return fmt.Errorf("smtp handshake: %w", err)
	}
	defer c.Close()

	if err := c.Auth(auth); err != nil {
		return fmt.Errorf("auth: %w", err)
	}
	if err := c.Mail(s.config.FromEmail); err != nil {
		return fmt.Errorf("MAIL FROM: %w", err)
	}
	if err := c.Rcpt(toEmail); err != nil {
		return fmt.Errorf("RCPT TO: %w", err)
	}
	w, err := c.Data()
	if err != nil {
		return fmt.Errorf("DATA: %w", err)
	}
	if _, err := w.Write(msg); err != nil {
		return fmt.Errorf("write body: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("end DATA: %w", err)
	}
	return c.Quit()
}
