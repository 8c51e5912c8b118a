package mail

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/smtp"
	"time"
)

// RelayConfig identifies the SMTP relay and the credentials used for AUTH.
type RelayConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	Timeout  time.Duration
}

// Addr returns the dialable relay address.
func (c RelayConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Session is a single authenticated connection to the relay. Lifetime is
// strictly scoped: Dial, zero or more Send calls, Close. A Session is not
// safe for concurrent use.
type Session struct {
	client *smtp.Client
	conn   net.Conn
}

// Dial opens a connection to the relay, negotiates STARTTLS and
// authenticates. Any failure is a *TransportError naming the stage.
func Dial(ctx context.Context, cfg RelayConfig) (*Session, error) {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	dialer := &net.Dialer{Timeout: timeout}
	conn, err := dialer.DialContext(ctx, "tcp", cfg.Addr())
	if err != nil {
		return nil, transportErr("connect", err)
	}

	client, err := smtp.NewClient(conn, cfg.Host)
	if err != nil {
		conn.Close()
		return nil, transportErr("greeting", err)
	}

	if ok, _ := client.Extension("STARTTLS"); ok {
		if err := client.StartTLS(&tls.Config{ServerName: cfg.Host}); err != nil {
			client.Close()
			return nil, transportErr("starttls", err)
		}
	}

	if cfg.Username != "" {
		auth := smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host)
		if err := client.Auth(auth); err != nil {
			client.Close()
			return nil, transportErr("auth", err)
		}
	}

	return &Session{client: client, conn: conn}, nil
}

// Send submits one message. The context deadline, if any, bounds the whole
// MAIL/RCPT/DATA exchange via a connection deadline.
func (s *Session) Send(ctx context.Context, from string, recipients []string, raw []byte) error {
	if deadline, ok := ctx.Deadline(); ok {
		s.conn.SetDeadline(deadline)
		defer s.conn.SetDeadline(time.Time{})
	}

	if err := s.client.Mail(from); err != nil {
		return transportErr("mail-from", err)
	}
	for _, rcpt := range recipients {
		if err := s.client.Rcpt(rcpt); err != nil {
			return transportErr("rcpt-to", err)
		}
	}
	w, err := s.client.Data()
	if err != nil {
		return transportErr("data", err)
	}
	if _, err := w.Write(raw); err != nil {
		w.Close()
		return transportErr("write", err)
	}
	if err := w.Close(); err != nil {
		return transportErr("data-close", err)
	}
	return nil
}

// Close ends the session, preferring a clean QUIT. Safe to call after a
// failed Send.
func (s *Session) Close() error {
	if err := s.client.Quit(); err != nil {
		return s.client.Close()
	}
	return nil
}

// SMTPSender sends each envelope on a fresh session: dial, authenticate,
// send, close. One bad recipient can therefore never corrupt session state
// shared with the rest of the batch.
type SMTPSender struct {
	cfg RelayConfig
}

// NewSMTPSender creates a per-message SMTP sender for the given relay.
func NewSMTPSender(cfg RelayConfig) *SMTPSender {
	return &SMTPSender{cfg: cfg}
}

// Send delivers one built envelope. The session is closed on every exit path.
func (s *SMTPSender) Send(ctx context.Context, env *Envelope) error {
	sess, err := Dial(ctx, s.cfg)
	if err != nil {
		return err
	}
	defer sess.Close()
	return sess.Send(ctx, env.From, env.Recipients, env.Raw)
}
