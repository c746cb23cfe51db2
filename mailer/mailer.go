package mailer

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"html"
	"mime"
	"net/smtp"
	"strings"
	"time"
)

// Attachment is a file forwarded with a ticket email.
type Attachment struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Ticket is a support message submitted through the portal contact form.
type Ticket struct {
	Subject     string
	Type        string // complaint category chosen on the form
	Body        string
	Username    string
	Email       string
	Phone       string
	Attachments []Attachment
}

// Mailer sends ticket emails over SMTP with plain auth.
type Mailer struct {
	host       string
	port       string
	from       string
	password   string
	replyTo    string
	recipients []string
	send       func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func New(host, port, from, password, replyTo string, recipients []string) *Mailer {
	return &Mailer{
		host:       host,
		port:       port,
		from:       from,
		password:   password,
		replyTo:    replyTo,
		recipients: recipients,
		send:       smtp.SendMail,
	}
}

// Enabled reports whether the mailer has enough configuration to send.
func (m *Mailer) Enabled() bool {
	return m.host != "" && m.from != "" && len(m.recipients) > 0
}

// SendTicket forwards one support ticket to the configured recipients.
func (m *Mailer) SendTicket(t Ticket) error {
	if !m.Enabled() {
		return fmt.Errorf("mailer: smtp host, sender or recipients not configured")
	}
	msg := buildMessage(m.from, m.replyTo, m.recipients, t, time.Now())
	auth := smtp.PlainAuth("", m.from, m.password, m.host)
	addr := m.host + ":" + m.port
	if err := m.send(addr, auth, m.from, m.recipients, msg); err != nil {
		return fmt.Errorf("mailer: send: %w", err)
	}
	return nil
}

// Send delivers a standalone HTML email to explicit recipients, bypassing the
// configured ticket recipient list.
func (m *Mailer) Send(to []string, subject, htmlBody string) error {
	if m.host == "" || m.from == "" || len(to) == 0 {
		return fmt.Errorf("mailer: smtp host, sender or recipients not configured")
	}
	var b bytes.Buffer
	fmt.Fprintf(&b, "From: %s\r\n", m.from)
	fmt.Fprintf(&b, "To: %s\r\n", strings.Join(to, ", "))
	fmt.Fprintf(&b, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", subject))
	fmt.Fprintf(&b, "Date: %s\r\n", time.Now().Format(time.RFC1123Z))
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=utf-8\r\n\r\n")
	b.WriteString(htmlBody)
	auth := smtp.PlainAuth("", m.from, m.password, m.host)
	if err := m.send(m.host+":"+m.port, auth, m.from, to, b.Bytes()); err != nil {
		return fmt.Errorf("mailer: send: %w", err)
	}
	return nil
}

// buildMessage renders a multipart/mixed MIME message: an HTML body part
// followed by base64 attachment parts.
func buildMessage(from, replyTo string, to []string, t Ticket, at time.Time) []byte {
	boundary := "portal-ticket-boundary"
	var b bytes.Buffer

	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", strings.Join(to, ", "))
	if replyTo != "" {
		fmt.Fprintf(&b, "Reply-To: %s\r\n", replyTo)
	} else if t.Email != "" {
		fmt.Fprintf(&b, "Reply-To: %s\r\n", t.Email)
	}
	fmt.Fprintf(&b, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", "[Tiket] "+t.Subject))
	fmt.Fprintf(&b, "Date: %s\r\n", at.Format(time.RFC1123Z))
	b.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&b, "Content-Type: multipart/mixed; boundary=%q\r\n\r\n", boundary)

	fmt.Fprintf(&b, "--%s\r\n", boundary)
	b.WriteString("Content-Type: text/html; charset=utf-8\r\n\r\n")
	b.WriteString(ticketHTML(t, at))
	b.WriteString("\r\n")

	for _, a := range t.Attachments {
		ct := a.ContentType
		if ct == "" {
			ct = "application/octet-stream"
		}
		fmt.Fprintf(&b, "--%s\r\n", boundary)
		fmt.Fprintf(&b, "Content-Type: %s\r\n", ct)
		b.WriteString("Content-Transfer-Encoding: base64\r\n")
		fmt.Fprintf(&b, "Content-Disposition: attachment; filename=%q\r\n\r\n", a.Filename)
		b.WriteString(wrap76(base64.StdEncoding.EncodeToString(a.Data)))
		b.WriteString("\r\n")
	}
	fmt.Fprintf(&b, "--%s--\r\n", boundary)
	return b.Bytes()
}

// ticketHTML renders the email body with a sender footer so staff can reply
// without looking the user up.
func ticketHTML(t Ticket, at time.Time) string {
	var b strings.Builder
	b.WriteString("<html><body>")
	fmt.Fprintf(&b, "<h2>%s</h2>", html.EscapeString(t.Subject))
	fmt.Fprintf(&b, "<p>%s</p>", strings.ReplaceAll(html.EscapeString(t.Body), "\n", "<br>"))
	b.WriteString("<hr>")
	b.WriteString("<table>")
	row := func(label, value string) {
		if value == "" {
			return
		}
		fmt.Fprintf(&b, "<tr><td><b>%s</b></td><td>%s</td></tr>", label, html.EscapeString(value))
	}
	row("Kategori", t.Type)
	row("Username", t.Username)
	row("Email", t.Email)
	row("Telepon", t.Phone)
	row("Dikirim", at.Format("02 Jan 2006 15:04:05 MST"))
	b.WriteString("</table></body></html>")
	return b.String()
}

func wrap76(s string) string {
	var b strings.Builder
	for len(s) > 76 {
		b.WriteString(s[:76])
		b.WriteString("\r\n")
		s = s[76:]
	}
	b.WriteString(s)
	return b.String()
}
