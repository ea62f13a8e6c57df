package notify

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"
)

// Email sends the order message to the shop's inbox over SMTP.
type Email struct {
	dialer *gomail.Dialer
	from   string
	to     string
}

func NewEmail(host string, port int, user, pass, to string) *Email {
	return &Email{dialer: gomail.NewDialer(host, port, user, pass), from: user, to: to}
}

func (e *Email) Name() string { return "email" }

func (e *Email) Send(ctx context.Context, message string) error {
	if e.dialer.Host == "" || e.to == "" {
		return fmt.Errorf("smtp not configured")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	m := gomail.NewMessage()
	m.SetHeader("From", e.from)
	m.SetHeader("To", e.to)
	m.SetHeader("Subject", "Simosh: yangi buyurtma")
	m.SetBody("text/plain", message)

	// gomail has no context support; run the dial in a goroutine so the
	// notifier's timeout still bounds the call.
	done := make(chan error, 1)
	go func() { done <- e.dialer.DialAndSend(m) }()
	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}
