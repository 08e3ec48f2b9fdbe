package smtpmail

import (
	"bytes"
	"context"
	"crypto/tls"
	"errors"
	"io"
	"net"
	"net/smtp"
	"net/textproto"
	"testing"
	"time"

	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClient struct {
	rcptErr error
	from    string
	rcpt    string
	body    bytes.Buffer
	quit    bool
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

func (c *fakeClient) Mail(from string) error {
	c.from = from
	return nil
}

func (c *fakeClient) Rcpt(to string) error {
	c.rcpt = to
	return c.rcptErr
}

func (c *fakeClient) Data() (io.WriteCloser, error) {
	return nopWriteCloser{&c.body}, nil
}

func (c *fakeClient) Quit() error {
	c.quit = true
	return nil
}

func (c *fakeClient) Close() error                    { return nil }
func (c *fakeClient) StartTLS(*tls.Config) error      { return nil }
func (c *fakeClient) Auth(smtp.Auth) error            { return nil }
func (c *fakeClient) Extension(string) (bool, string) { return false, "" }

func newTestMailer(t *testing.T, c *fakeClient, dialErr error) *Mailer {
	t.Helper()

	m, err := NewMailer(Settings{Enabled: true, Host: "smtp.example.com", Port: 587, From: "noreply@example.com"})
	require.NoError(t, err)

	m.dial = func(context.Context, Settings) (net.Conn, client, error) {
		if dialErr != nil {
			return nil, nil, dialErr
		}
		server, conn := net.Pipe()
		t.Cleanup(func() { _ = server.Close() })
		return conn, c, nil
	}
	return m
}

var testMessage = ports.EmailMessage{To: "client@example.com", Subject: "Your order\r\nhas been delivered", Body: "See the files."}

func TestNewMailer_Validates(t *testing.T) {
	_, err := NewMailer(Settings{Enabled: true, Port: 587, From: "noreply@example.com"})
	require.ErrorIs(t, err, errs.ErrValueIsRequired)

	_, err = NewMailer(Settings{Enabled: true, Host: "smtp.example.com", Port: 587, From: "not an address"})
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	m, err := NewMailer(Settings{})
	require.NoError(t, err)
	assert.Equal(t, 10*time.Second, m.cfg.Timeout)
}

func TestMailer_SendDisabled(t *testing.T) {
	m, err := NewMailer(Settings{})
	require.NoError(t, err)

	err = m.Send(context.Background(), testMessage)
	require.ErrorIs(t, err, ErrSMTPDisabled)
	assert.NotErrorIs(t, err, errs.ErrDeliveryTransient)
}

func TestMailer_Send(t *testing.T) {
	c := &fakeClient{}
	m := newTestMailer(t, c, nil)

	require.NoError(t, m.Send(context.Background(), testMessage))

	assert.Equal(t, "noreply@example.com", c.from)
	assert.Equal(t, "client@example.com", c.rcpt)
	assert.True(t, c.quit)
	assert.Contains(t, c.body.String(), "Subject: Your order  has been delivered\r\n")
	assert.Contains(t, c.body.String(), "\r\n\r\nSee the files.")
}

func TestMailer_SendRejectsBadRecipient(t *testing.T) {
	m := newTestMailer(t, &fakeClient{}, nil)

	err := m.Send(context.Background(), ports.EmailMessage{To: "nobody", Subject: "s", Body: "b"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, errs.ErrDeliveryTransient)
}

func TestMailer_SendClassifiesFailures(t *testing.T) {
	tests := []struct {
		name      string
		dialErr   error
		rcptErr   error
		transient bool
	}{
		{"dial refused", &net.OpError{Op: "dial", Err: errors.New("connection refused")}, nil, true},
		{"mailbox busy", nil, &textproto.Error{Code: 450, Msg: "mailbox busy"}, true},
		{"no such user", nil, &textproto.Error{Code: 550, Msg: "no such user"}, false},
		{"connection dropped", nil, io.ErrUnexpectedEOF, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestMailer(t, &fakeClient{rcptErr: tt.rcptErr}, tt.dialErr)

			err := m.Send(context.Background(), testMessage)
			require.Error(t, err)
			assert.Equal(t, tt.transient, errors.Is(err, errs.ErrDeliveryTransient))
		})
	}
}
