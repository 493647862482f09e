package email

import (
	"context"
	"fmt"
	"github.com/maxaizer/uninotify/internal/config"
	"github.com/maxaizer/uninotify/internal/logger"
	"github.com/maxaizer/uninotify/internal/metrics"
	log "github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

type Transport interface {
	Deliver(ctx context.Context, msg Message) error
}

// Sender renders a template and hands the result to a transport.
// Send never returns an error: failures are logged and reported as false.
type Sender struct {
	renderer    *Renderer
	transport   Transport
	rateLimiter *rate.Limiter
}

func NewSender(renderer *Renderer, transport Transport) *Sender {
	return &Sender{renderer: renderer, transport: transport}
}

func NewSenderFromConfig(cfg config.EmailConfig) (*Sender, error) {
	renderer, err := NewRenderer(cfg.FromName)
	if err != nil {
		return nil, err
	}

	var transport Transport
	switch cfg.Provider {
	case config.EmailProviderConsole:
		transport = NewConsoleTransport(cfg.FromName, cfg.FromAddress)
	case config.EmailProviderSendgrid:
		transport = NewSendgridTransport(cfg.SendgridAPIKey, cfg.FromName, cfg.FromAddress)
	default:
		return nil, fmt.Errorf("unknown email provider: %q", cfg.Provider)
	}

	sender := NewSender(renderer, transport)
	if cfg.MaxSendsPerSecond > 0 {
		sender.SetRateLimit(cfg.MaxSendsPerSecond)
	}
	return sender, nil
}

func (s *Sender) SetRateLimit(maxSendsPerSecond float32) {
	s.rateLimiter = rate.NewLimiter(rate.Limit(maxSendsPerSecond), 1)
}

func (s *Sender) Send(ctx context.Context, kind TemplateKind, address string, data Data) bool {
	ok := s.send(ctx, kind, address, data)

	outcome := metrics.OutcomeSent
	if !ok {
		outcome = metrics.OutcomeFailed
	}
	metrics.EmailsCounter.WithLabelValues(string(kind), outcome).Inc()
	return ok
}

func (s *Sender) send(ctx context.Context, kind TemplateKind, address string, data Data) bool {
	if address == "" {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeEmail).Errorf("no recipient address for %s email", kind)
		return false
	}

	msg, err := s.renderer.Render(kind, address, data)
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeEmail).Errorf("can't render %s email to %s: %v", kind, address, err)
		return false
	}

	if s.rateLimiter != nil {
		if err := s.rateLimiter.Wait(ctx); err != nil {
			log.WithField(logger.ErrorTypeField, logger.ErrorTypeEmail).Errorf("rate limiter wait for %s: %v", address, err)
			return false
		}
	}

	if err := s.transport.Deliver(ctx, msg); err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeEmail).Errorf("can't deliver %s email to %s: %v", kind, address, err)
		return false
	}

	log.Debugf("%s email sent to %s", kind, address)
	return true
}
