package service

import (
	"context"
	"sync"

	"github.com/hr-records-api/internal/config"
	"github.com/hr-records-api/internal/mail"
	"github.com/hr-records-api/internal/models"
	"github.com/rs/zerolog"
)

const mailQueueSize = 256

// mailService is the concrete implementation of MailService. Messages are
// delivered by a bounded pool of workers reading from a buffered queue.
type mailService struct {
	sender   mail.Sender
	loginURL string
	log      zerolog.Logger
	queue    chan *mail.Message
	ctx      context.Context
	cancel   context.CancelFunc
	wg       sync.WaitGroup
	done     chan struct{}
	running  bool
	mu       sync.Mutex
	// Semaphore: buffered channel to limit concurrent deliveries
	sem chan struct{}
}

// newMailService creates a new MailService
func newMailService(sender mail.Sender, cfg config.SMTPConfig, log zerolog.Logger) *mailService {
	maxWorkers := cfg.Workers
	if maxWorkers < 1 {
		maxWorkers = 1
	}

	log.Info().Int("max_workers", maxWorkers).Msg("Initializing mail service worker pool")

	return &mailService{
		sender:   sender,
		loginURL: cfg.LoginURL,
		log:      log.With().Str("service", "mail").Logger(),
		queue:    make(chan *mail.Message, mailQueueSize),
		sem:      make(chan struct{}, maxWorkers),
	}
}

// Start dispatches queued messages until ctx is cancelled or Stop is called
func (s *mailService) Start(ctx context.Context) {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return
	}
	s.running = true
	s.ctx, s.cancel = context.WithCancel(ctx)
	s.done = make(chan struct{})
	done := s.done
	s.mu.Unlock()
	defer close(done)

	s.log.Info().Msg("Mail dispatcher started")

	for {
		select {
		case <-s.ctx.Done():
			s.log.Info().Msg("Mail dispatcher stopping")
			return
		case msg := <-s.queue:
			// Acquire semaphore slot - blocks if all workers are busy (backpressure)
			select {
			case s.sem <- struct{}{}:
			case <-s.ctx.Done():
				s.log.Warn().Str("to", msg.To).Msg("Mail dropped due to shutdown")
				return
			}
			if s.ctx.Err() != nil {
				<-s.sem
				s.log.Warn().Str("to", msg.To).Msg("Mail dropped due to shutdown")
				return
			}

			s.wg.Add(1)
			go s.deliver(msg)
		}
	}
}

// Stop cancels the dispatcher and waits for in-flight deliveries. The
// dispatcher has returned before the wait starts, so no delivery is added
// to the group concurrently with Wait.
func (s *mailService) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}

	s.cancel()
	<-s.done
	s.wg.Wait()
	s.running = false
	s.log.Info().Msg("Mail dispatcher stopped")
}

// deliver sends one message, recovering from sender panics
func (s *mailService) deliver(msg *mail.Message) {
	defer s.wg.Done()
	defer func() { <-s.sem }()
	defer func() {
		if r := recover(); r != nil {
			s.log.Error().
				Interface("panic", r).
				Str("to", msg.To).
				Msg("Mail delivery panicked - recovered")
		}
	}()

	// In-flight deliveries finish even after Stop
	if err := s.sender.Send(context.WithoutCancel(s.ctx), msg); err != nil {
		s.log.Error().Err(err).Str("to", msg.To).Msg("Mail delivery failed")
		return
	}
	s.log.Info().Str("to", msg.To).Str("subject", msg.Subject).Msg("Mail delivered")
}

// SendWelcome queues the credentials email for a new employee. It never
// blocks: when the queue is full the message is dropped and false returned.
func (s *mailService) SendWelcome(employee *models.Employee, password string) bool {
	msg, err := mail.WelcomeMessage(employee.EmailValue(), mail.WelcomeData{
		Name:      employee.FullName(),
		Documento: employee.Documento,
		Password:  password,
		LoginURL:  s.loginURL,
	})
	if err != nil {
		s.log.Error().Err(err).Int64("documento", employee.Documento).Msg("Failed to render welcome email")
		return false
	}

	select {
	case s.queue <- msg:
		return true
	default:
		s.log.Warn().Int64("documento", employee.Documento).Msg("Mail queue full, welcome email dropped")
		return false
	}
}
