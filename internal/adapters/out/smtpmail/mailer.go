// Package smtpmail sends notification emails over SMTP.
package smtpmail

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net"
	"net/mail"
	"net/smtp"
	"net/textproto"
	"strings"
	"time"

	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"
)

// ErrSMTPDisabled is returned by Send when delivery is switched off. It is
// permanent: retrying will not help until the configuration changes.
var ErrSMTPDisabled = errors.New("smtp: delivery disabled")

// Settings configures the SMTP relay. With Enabled false every Send fails
// with ErrSMTPDisabled.
type Settings struct {
	Enabled  bool          `mapstructure:"enabled"`
	Host     string        `mapstructure:"host"`
	Port     int           `mapstructure:"port"`
	Username string        `mapstructure:"username"`
	Password string        `mapstructure:"password"`
	From     string        `mapstructure:"from"`
	UseTLS   bool          `mapstructure:"use_tls"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

type client interface {
	Mail(string) error
	Rcpt(string) error
	Data() (io.WriteCloser, error)
	Quit() error
	Close() error
	StartTLS(*tls.Config) error
	Auth(smtp.Auth) error
	Extension(string) (bool, string)
}

type dialFunc func(ctx context.Context, cfg Settings) (net.Conn, client, error)

// Mailer sends plain-text emails through an SMTP relay, one connection per
// message.
type Mailer struct {
	cfg  Settings
	dial dialFunc
}

var _ ports.Mailer = (*Mailer)(nil)

// NewMailer validates cfg and creates a Mailer. A zero timeout defaults to
// 10 seconds.
//
// Example:
//
//	mailer, err := smtpmail.NewMailer(smtpmail.Settings{
//		Enabled: true,
//		Host:    "smtp.example.com",
//		Port:    587,
//		From:    "noreply@example.com",
//		UseTLS:  true,
//	})
func NewMailer(cfg Settings) (*Mailer, error) {
	if cfg.Enabled {
		if strings.TrimSpace(cfg.Host) == "" {
			return nil, errs.NewValueIsRequiredError("smtp.host")
		}
		if cfg.Port == 0 {
			return nil, errs.NewValueIsRequiredError("smtp.port")
		}
		if _, err := mail.ParseAddress(cfg.From); err != nil {
			return nil, errs.NewValueIsInvalidErrorWithCause("smtp.from", err)
		}
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	return &Mailer{cfg: cfg, dial: dial}, nil
}

// Send delivers one plain-text message. Connection problems and 4xx replies
// come back as errs.DeliveryTransientError; anything else is permanent.
func (m *Mailer) Send(ctx context.Context, msg ports.EmailMessage) error {
	if !m.cfg.Enabled {
		return ErrSMTPDisabled
	}

	to := strings.TrimSpace(msg.To)
	if _, err := mail.ParseAddress(to); err != nil {
		return fmt.Errorf("smtp: invalid recipient address %q: %w", to, err)
	}

	conn, c, err := m.dial(ctx, m.cfg)
	if err != nil {
		return classify("dial", err)
	}
	defer conn.Close()
	defer c.Close()

	// The whole exchange shares the caller's deadline.
	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	if strings.TrimSpace(m.cfg.Username) != "" {
		if err = c.Auth(smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)); err != nil {
			return classify("auth", err)
		}
	}

	if err = c.Mail(m.cfg.From); err != nil {
		return classify("mail from", err)
	}
	if err = c.Rcpt(to); err != nil {
		return classify("rcpt to", err)
	}

	wc, err := c.Data()
	if err != nil {
		return classify("data", err)
	}
	if _, err = io.WriteString(wc, formatMessage(m.cfg.From, to, msg.Subject, msg.Body)); err != nil {
		_ = wc.Close()
		return classify("write body", err)
	}
	if err = wc.Close(); err != nil {
		return classify("close data", err)
	}

	// The message is accepted at this point; a failed QUIT is not worth a resend.
	_ = c.Quit()
	return nil
}

func classify(op string, err error) error {
	var protoErr *textproto.Error
	if errors.As(err, &protoErr) {
		if protoErr.Code >= 400 && protoErr.Code < 500 {
			return errs.NewDeliveryTransientError("smtp "+op, err)
		}
		return fmt.Errorf("smtp: %s: %w", op, err)
	}

	var netErr net.Error
	if errors.As(err, &netErr) || errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return errs.NewDeliveryTransientError("smtp "+op, err)
	}
	return fmt.Errorf("smtp: %s: %w", op, err)
}

func dial(ctx context.Context, cfg Settings) (net.Conn, client, error) {
	address := net.JoinHostPort(cfg.Host, fmt.Sprint(cfg.Port))
	dialer := &net.Dialer{Timeout: cfg.Timeout}

	var (
		conn net.Conn
		err  error
	)
	if cfg.UseTLS {
		tlsDialer := &tls.Dialer{NetDialer: dialer, Config: &tls.Config{ServerName: cfg.Host}}
		conn, err = tlsDialer.DialContext(ctx, "tcp", address)
	} else {
		conn, err = dialer.DialContext(ctx, "tcp", address)
	}
	if err != nil {
		return nil, nil, err
	}

	c, err := smtp.NewClient(conn, cfg.Host)
	if err != nil {
		_ = conn.Close()
		return nil, nil, err
	}

	if !cfg.UseTLS {
		if ok, _ := c.Extension("STARTTLS"); ok {
			if err = c.StartTLS(&tls.Config{ServerName: cfg.Host}); err != nil {
				_ = c.Close()
				_ = conn.Close()
				return nil, nil, err
			}
		}
	}

	return conn, c, nil
}

func formatMessage(from, to, subject, body string) string {
	headers := []string{
		"From: " + from,
		"To: " + to,
		"Subject: " + escapeHeader(subject),
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=UTF-8",
		"",
	}
	return strings.Join(headers, "\r\n") + "\r\n" + body
}

func escapeHeader(value string) string {
	value = strings.ReplaceAll(value, "\r", " ")
	return strings.ReplaceAll(value, "\n", " ")
}
