package server

import (
	"encoding/json"
	"fmt"
	"html"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/kudetabet/portal/mailer"
	"github.com/kudetabet/portal/notify"
)

// maxTicketSize caps the whole ticket form, attachments included, at 10 MiB.
const maxTicketSize = 10 << 20

// handleTicket forwards a support form submission to the customer service
// inbox. Attachments ride along as MIME parts.
func (s *Server) handleTicket(w http.ResponseWriter, r *http.Request) {
	if !s.mail.Enabled() {
		writeError(w, http.StatusServiceUnavailable, "email relay not configured", "MAIL_DISABLED")
		return
	}
	if err := r.ParseMultipartForm(maxTicketSize); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form", "BAD_REQUEST")
		return
	}
	subject := r.FormValue("subject")
	body := r.FormValue("message")
	if subject == "" || body == "" {
		writeError(w, http.StatusBadRequest, "subject and message are required", "BAD_REQUEST")
		return
	}

	ticket := mailer.Ticket{Subject: subject, Type: r.FormValue("type"), Body: body}
	if p, err := s.profiles.Get(r.Context(), userID(r)); err == nil {
		ticket.Username = p.Username
		ticket.Email = p.Email
		ticket.Phone = p.Phone
	}
	if r.MultipartForm != nil {
		// Accept files under any field name; the form posts attachment, attachment2, ...
		for _, headers := range r.MultipartForm.File {
			for _, header := range headers {
				f, err := header.Open()
				if err != nil {
					continue
				}
				data, err := io.ReadAll(f)
				f.Close()
				if err != nil {
					continue
				}
				ticket.Attachments = append(ticket.Attachments, mailer.Attachment{
					Filename:    header.Filename,
					ContentType: header.Header.Get("Content-Type"),
					Data:        data,
				})
			}
		}
	}
	if err := s.mail.SendTicket(ticket); err != nil {
		log.Printf("mailer: ticket: %v", err)
		writeError(w, http.StatusBadGateway, "ticket delivery failed", "MAIL_FAILED")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"ok":      true,
		"message": "Tiket Anda telah dikirim. Tim kami akan segera menghubungi Anda.",
	})
}

// handleDepositNotify relays a deposit form into the staff Telegram chat.
func (s *Server) handleDepositNotify(w http.ResponseWriter, r *http.Request) {
	if !s.telegram.Enabled() {
		writeError(w, http.StatusServiceUnavailable, "telegram relay not configured", "TELEGRAM_DISABLED")
		return
	}
	var in notify.DepositRequest
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body", "BAD_REQUEST")
		return
	}
	if in.Amount <= 0 {
		writeError(w, http.StatusBadRequest, "amount must be positive", "BAD_REQUEST")
		return
	}
	if p, err := s.profiles.Get(r.Context(), userID(r)); err == nil {
		if in.Username == "" {
			in.Username = p.Username
		}
		if in.Email == "" {
			in.Email = p.Email
		}
	}
	msg := notify.FormatDeposit(in, time.Now())
	if err := s.telegram.Send(r.Context(), msg); err != nil {
		log.Printf("telegram: deposit notify: %v", err)
		writeError(w, http.StatusBadGateway, "notification delivery failed", "TELEGRAM_FAILED")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"ok":      true,
		"message": "Permintaan deposit Anda telah diteruskan ke admin.",
	})
}

// sendResetMail emails a password reset link. Runs off the request goroutine.
func (s *Server) sendResetMail(email, token string) {
	link := s.cfg.BaseURL + "/reset-password?token=" + token
	body := fmt.Sprintf(
		"<html><body><p>Klik tautan berikut untuk mengatur ulang password Anda:</p>"+
			"<p><a href=%q>%s</a></p>"+
			"<p>Tautan berlaku selama 1 jam.</p></body></html>",
		link, html.EscapeString(link))
	if err := s.mail.Send([]string{email}, "Reset Password", body); err != nil {
		log.Printf("mailer: reset mail: %v", err)
	}
}
