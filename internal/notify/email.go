package notify

import (
	"context"
	"fmt"
	"log/slog"
	"mime"
	"net"
	"net/smtp"
	"strings"
	"time"
)

// defaultSMTPTimeout bounds a send whose context carries no deadline.
const defaultSMTPTimeout = 10 * time.Second

// BookingEmail is the customer-facing message about one booking.
type BookingEmail struct {
	To           string
	CustomerName string
	BusinessName string
	ServiceName  string
	Date         string
	Time         string
	Status       string
}

// EmailSender reports success; failures are logged by the implementation.
type EmailSender interface {
	Send(ctx context.Context, msg BookingEmail) bool
}

type NoopEmailSender struct{}

func (NoopEmailSender) Send(context.Context, BookingEmail) bool { return true }

// SMTPEmailSender sends plain-text mail via unauthenticated SMTP.
type SMTPEmailSender struct {
	addr   string
	from   string
	logger *slog.Logger

	sendMail func(ctx context.Context, addr, from, to string, msg []byte) error
}

func NewSMTPEmailSender(host, port, from string, logger *slog.Logger) *SMTPEmailSender {
	host = strings.TrimSpace(host)
	port = strings.TrimSpace(port)
	from = strings.TrimSpace(from)
	if from == "" {
		from = "no-reply@booking-engine.local"
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &SMTPEmailSender{
		addr:     fmt.Sprintf("%s:%s", host, port),
		from:     from,
		logger:   logger,
		sendMail: sendMail,
	}
}

func (s *SMTPEmailSender) Send(ctx context.Context, msg BookingEmail) bool {
	to := stripCRLF(strings.TrimSpace(msg.To))
	if to == "" {
		return false
	}
	subject, body := render(msg)
	raw := buildMessage(s.from, to, subject, body)
	if err := s.sendMail(ctx, s.addr, s.from, to, []byte(raw)); err != nil {
		s.logger.Warn("smtp send failed", "to", msg.To, "err", err)
		return false
	}
	return true
}

func render(msg BookingEmail) (string, string) {
	var subject, lead string
	switch msg.Status {
	case "confirmed":
		subject = "Your booking is confirmed"
		lead = "your booking has been confirmed"
	case "cancelled":
		subject = "Your booking was cancelled"
		lead = "your booking has been cancelled"
	default:
		subject = "We received your booking"
		lead = "we received your booking request"
	}
	if msg.BusinessName != "" {
		subject += " - " + msg.BusinessName
	}

	body := fmt.Sprintf(
		"Hi %s,\n\n%s.\n\nService: %s\nDate: %s\nTime: %s\n",
		msg.CustomerName, lead, msg.ServiceName, msg.Date, msg.Time,
	)
	return subject, body
}

// buildMessage Q-encodes the subject so no header value can carry a raw
// line break.
func buildMessage(from, to, subject, body string) string {
	return fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n%s\r\n",
		stripCRLF(from),
		stripCRLF(to),
		mime.QEncoding.Encode("utf-8", subject),
		body,
	)
}

func stripCRLF(s string) string {
	return strings.NewReplacer("\r", "", "\n", "").Replace(s)
}

// sendMail is smtp.SendMail with the dial and the whole conversation bound
// to ctx.
func sendMail(ctx context.Context, addr, from, to string, msg []byte) error {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		return err
	}

	deadline, ok := ctx.Deadline()
	if !ok {
		deadline = time.Now().Add(defaultSMTPTimeout)
	}

	var d net.Dialer
	dialCtx, cancel := context.WithDeadline(ctx, deadline)
	defer cancel()
	conn, err := d.DialContext(dialCtx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("smtp dial: %w", err)
	}
	if err := conn.SetDeadline(deadline); err != nil {
		conn.Close()
		return err
	}

	c, err := smtp.NewClient(conn, host)
	if err != nil {
		conn.Close()
		return fmt.Errorf("smtp greeting: %w", err)
	}
	defer c.Close()

	if err := c.Mail(from); err != nil {
		return err
	}
	if err := c.Rcpt(to); err != nil {
		return err
	}
	w, err := c.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(msg); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	return c.Quit()
}
