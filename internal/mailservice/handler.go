package mailservice

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sushihentaime/inkpost/internal/common"
	"golang.org/x/exp/rand"
	"golang.org/x/time/rate"
)

func NewMailService(mb common.MessageConsumer, cfg SMTPConfig, logger MailLogger) *MailService {
	return newMailService(mb, NewMailer(cfg, NewTemplate()), cfg.RatePerSec, logger)
}

func newMailService(mb common.MessageConsumer, m Mailer, ratePerSec float64, logger MailLogger) *MailService {
	limit := rate.Inf
	if ratePerSec > 0 {
		limit = rate.Limit(ratePerSec)
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &MailService{
		mb:         mb,
		m:          m,
		logger:     logger,
		limiter:    rate.NewLimiter(limit, 1),
		maxRetries: defaultMaxRetries,
		baseDelay:  defaultBaseDelay,
		ctx:        ctx,
		cancel:     cancel,
	}
}

// SendWelcomeEmail starts consuming user.created events in the background and
// mails each new user. Every delivery is acked once handled, including the
// ones that could not be sent after all retries.
func (s *MailService) SendWelcomeEmail() error {
	msgs, err := s.mb.Consume(common.UserCreatedQueue, consumerName)
	if err != nil {
		return err
	}

	s.done = make(chan struct{})
	go func() {
		defer close(s.done)

		for {
			select {
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				s.handle(msg)

			case <-s.ctx.Done():
				s.logger.Info("stopping welcome mailer")
				return
			}
		}
	}()

	return nil
}

// handle acks a delivery once it is sent, undecodable, or out of retries.
// A delivery interrupted by shutdown is requeued.
func (s *MailService) handle(msg amqp.Delivery) {
	var data common.UserCreatedMessage
	if err := json.Unmarshal(msg.Body, &data); err != nil {
		s.logger.Error("could not unmarshal message", slog.String("error", err.Error()))
		msg.Ack(false)
		return
	}

	payload := welcomeData{
		Fullname: data.Fullname,
		Username: data.Username,
	}

	for attempt := 0; attempt < s.maxRetries; attempt++ {
		if err := s.limiter.Wait(s.ctx); err != nil {
			s.requeue(msg, data.Email)
			return
		}

		err := s.m.send(data.Email, payload, welcomeTemplate)
		if err == nil {
			s.logger.Info("welcome email sent", slog.String("email", data.Email))
			msg.Ack(false)
			return
		}

		// exponential backoff with full jitter
		delay := time.Duration(rand.Int63n(int64(s.baseDelay) << uint(attempt)))
		s.logger.Info("delaying welcome email", slog.String("email", data.Email), slog.Int("attempt", attempt), slog.Duration("delay", delay))

		select {
		case <-time.After(delay):
		case <-s.ctx.Done():
			s.requeue(msg, data.Email)
			return
		}
	}

	s.logger.Error("could not send welcome email", slog.String("email", data.Email))
	msg.Ack(false)
}

func (s *MailService) requeue(msg amqp.Delivery, email string) {
	s.logger.Info("requeueing welcome email", slog.String("email", email))
	if err := msg.Nack(false, true); err != nil {
		s.logger.Error("could not requeue message", slog.String("email", email), slog.String("error", err.Error()))
	}
}

// Close stops the consumer loop started by SendWelcomeEmail and waits for it to exit.
func (s *MailService) Close() {
	s.cancel()
	if s.done == nil {
		return
	}

	select {
	case <-s.done:
	case <-time.After(5 * time.Second):
	}
}
