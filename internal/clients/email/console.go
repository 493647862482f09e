package email

import (
	"context"
	"fmt"
	log "github.com/sirupsen/logrus"
	"net/mail"
	"strings"
	"sync"
	"time"
)

// ConsoleTransport prints messages to the log instead of delivering them.
type ConsoleTransport struct {
	from mail.Address

	mu   sync.Mutex
	sent []Message
}

func NewConsoleTransport(fromName, fromAddress string) *ConsoleTransport {
	return &ConsoleTransport{from: mail.Address{Name: fromName, Address: fromAddress}}
}

func (t *ConsoleTransport) Deliver(_ context.Context, msg Message) error {
	body := new(strings.Builder)
	_, _ = fmt.Fprintf(body, "From: %s\r\n", t.from.String())
	_, _ = fmt.Fprintf(body, "To: %s\r\n", msg.To)
	_, _ = fmt.Fprintf(body, "Date: %s\r\n", time.Now().Format(time.RFC1123Z))
	_, _ = fmt.Fprintf(body, "Subject: %s\r\n\r\n", msg.Subject)
	_, _ = fmt.Fprint(body, msg.Text)

	log.Info(body.String())

	t.mu.Lock()
	t.sent = append(t.sent, msg)
	t.mu.Unlock()
	return nil
}

// Sent returns a copy of every message delivered so far.
func (t *ConsoleTransport) Sent() []Message {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]Message(nil), t.sent...)
}
