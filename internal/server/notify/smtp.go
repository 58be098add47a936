package notify

import (
	"context"
	"crypto/tls"
	"fmt"
	"mime"
	"net"
	"net/mail"
	"net/smtp"
	"strings"
	"time"

	"github.com/DavidCuartasC/LogisticsManagementSystem/internal/server/config"
)

const defaultTimeout = 30 * time.Second

// SMTPMailer sends HTML emails through an SMTP relay, either over implicit
// TLS (port 465) or upgrading with STARTTLS when the server offers it.
type SMTPMailer struct {
	cfg  config.SMTPConfig
	dial func(ctx context.Context, network, addr string) (net.Conn, error)
}

func NewSMTPMailer(cfg config.SMTPConfig) *SMTPMailer {
	if cfg.From == "" {
		cfg.From = cfg.Username
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = defaultTimeout
	}
	d := &net.Dialer{Timeout: cfg.Timeout}
	return &SMTPMailer{cfg: cfg, dial: d.DialContext}
}

func (m *SMTPMailer) SendVerificationCode(ctx context.Context, to Recipient, code string, ttl time.Duration) error {
	body, err := renderVerification(to.Name, code, ttl)
	if err != nil {
		return fmt.Errorf("render verification email: %w", err)
	}
	return m.Send(ctx, to.Email, verificationSubject, body)
}

func (m *SMTPMailer) SendTemporaryPassword(ctx context.Context, to Recipient, password string) error {
	body, err := renderTemporaryPassword(to.Name, password)
	if err != nil {
		return fmt.Errorf("render reset email: %w", err)
	}
	return m.Send(ctx, to.Email, resetSubject, body)
}

// Send delivers one HTML message to a single recipient.
func (m *SMTPMailer) Send(ctx context.Context, to, subject, body string) error {
	msg := buildMessage(mail.Address{Name: m.cfg.FromName, Address: m.cfg.From}, to, subject, body)

	conn, err := m.connect(ctx)
	if err != nil {
		return err
	}

	c, err := smtp.NewClient(conn, m.cfg.Host)
	if err != nil {
		conn.Close()
		return fmt.Errorf("failed to create SMTP client: %w", err)
	}
	defer c.Close()

	if err = c.Hello("localhost"); err != nil {
		return fmt.Errorf("failed to send HELO: %w", err)
	}

	if !m.cfg.ImplicitTLS {
		if ok, _ := c.Extension("STARTTLS"); ok {
			if err = c.StartTLS(&tls.Config{ServerName: m.cfg.Host}); err != nil {
				return fmt.Errorf("failed to start TLS: %w", err)
			}
		}
	}

	if m.cfg.Username != "" && m.cfg.Password != "" {
		auth := smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
		if err = c.Auth(auth); err != nil {
			return fmt.Errorf("failed to authenticate (user: %s): %w", m.cfg.Username, err)
		}
	}

	if err = c.Mail(m.cfg.From); err != nil {
		return fmt.Errorf("failed to set sender (%s): %w", m.cfg.From, err)
	}
	if err = c.Rcpt(to); err != nil {
		return fmt.Errorf("failed to set recipient (%s): %w", to, err)
	}

	w, err := c.Data()
	if err != nil {
		return fmt.Errorf("failed to get data writer: %w", err)
	}
	if _, err = w.Write(msg); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}
	if err = w.Close(); err != nil {
		return fmt.Errorf("failed to close data writer: %w", err)
	}

	return c.Quit()
}

// connect dials the relay and bounds all further IO by the configured
// timeout or the ctx deadline, whichever comes first.
func (m *SMTPMailer) connect(ctx context.Context) (net.Conn, error) {
	addr := m.cfg.Addr()

	conn, err := m.dial(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to dial SMTP server %s: %w", addr, err)
	}

	deadline := time.Now().Add(m.cfg.Timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	if err := conn.SetDeadline(deadline); err != nil {
		conn.Close()
		return nil, err
	}

	if !m.cfg.ImplicitTLS {
		return conn, nil
	}

	tlsConn := tls.Client(conn, &tls.Config{ServerName: m.cfg.Host})
	if err := tlsConn.HandshakeContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed TLS handshake with %s: %w", addr, err)
	}
	return tlsConn, nil
}

func buildMessage(from mail.Address, to, subject, body string) []byte {
	headers := [][2]string{
		{"From", from.String()},
		{"To", to},
		{"Subject", mime.QEncoding.Encode("utf-8", subject)},
		{"MIME-Version", "1.0"},
		{"Content-Type", "text/html; charset=UTF-8"},
		{"Content-Transfer-Encoding", "8bit"},
	}

	var msg strings.Builder
	for _, h := range headers {
		fmt.Fprintf(&msg, "%s: %s\r\n", h[0], h[1])
	}
	msg.WriteString("\r\n")
	msg.WriteString(body)

	return []byte(msg.String())
}
