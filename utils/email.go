package utils

import (
	"fmt"
	"io"
	"strings"

	"gopkg.in/gomail.v2"
)

// Sender is what booking code and the notifier depend on; Mailer is the
// SMTP implementation. Delivery is best-effort for callers whose primary
// state is already committed.
type Sender interface {
	Send(to, subject, body string) error
	SendWithAttachment(to, subject, body string, pdf []byte, nameHint string) error
}

type Mailer struct {
	Host string
	Port int
	User string
	Pass string
	From string
}

func NewMailer(host string, port int, user, pass, from string) *Mailer {
	return &Mailer{Host: host, Port: port, User: user, Pass: pass, From: from}
}

func (m *Mailer) Send(to, subject, body string) error {
	if to == "" {
		return fmt.Errorf("no email address provided")
	}
	msg := m.message(to, subject, body)
	return m.dialer().DialAndSend(msg)
}

func (m *Mailer) SendWithAttachment(to, subject, body string, pdf []byte, nameHint string) error {
	if to == "" {
		return fmt.Errorf("no email address provided")
	}
	msg := m.message(to, subject, body)
	filename := "Receipt_" + strings.ReplaceAll(nameHint, " ", "_") + ".pdf"
	msg.Attach(filename, gomail.SetCopyFunc(func(w io.Writer) error {
		_, err := w.Write(pdf)
		return err
	}))
	return m.dialer().DialAndSend(msg)
}

func (m *Mailer) message(to, subject, body string) *gomail.Message {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.From)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", body)
	return msg
}

func (m *Mailer) dialer() *gomail.Dialer {
	return gomail.NewDialer(m.Host, m.Port, m.User, m.Pass)
}
