package email

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"gopkg.in/gomail.v2"

	"nutribook/internal/logger"
	"nutribook/internal/metrics"
)

const (
	queueKey       = "emails"
	failedQueueKey = "emails:failed"
	maxTries       = 3

	TypeBookingConfirmation = "booking_confirmation"
	TypeBookingCancellation = "booking_cancellation"
)

type EmailJob struct {
	Type    string    `json:"type"`
	To      string    `json:"to"`
	Name    string    `json:"name"`
	Subject string    `json:"subject"`
	Body    string    `json:"body"`
	Tries   int       `json:"tries"`
	Created time.Time `json:"created"`
}

// Deliverer hands a rendered email to the outside world.
type Deliverer interface {
	Deliver(job EmailJob) error
}

type SMTPConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
	FromName string
}

type smtpDeliverer struct {
	cfg    SMTPConfig
	dialer *gomail.Dialer
}

func NewSMTPDeliverer(cfg SMTPConfig) Deliverer {
	return &smtpDeliverer{
		cfg:    cfg,
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password),
	}
}

func (d *smtpDeliverer) Deliver(job EmailJob) error {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", d.cfg.From, d.cfg.FromName)
	m.SetAddressHeader("To", job.To, job.Name)
	m.SetHeader("Subject", job.Subject)
	m.SetBody("text/plain", job.Body)

	return d.dialer.DialAndSend(m)
}

type Service struct {
	redis      *redis.Client
	deliverer  Deliverer
	retryDelay time.Duration
}

func New(rdb *redis.Client, deliverer Deliverer) *Service {
	return &Service{
		redis:      rdb,
		deliverer:  deliverer,
		retryDelay: 5 * time.Second,
	}
}

func (s *Service) Send(ctx context.Context, emailType, to, name, subject, body string) error {
	job := EmailJob{
		Type:    emailType,
		To:      to,
		Name:    name,
		Subject: subject,
		Body:    body,
		Tries:   0,
		Created: time.Now(),
	}

	data, err := json.Marshal(job)
	if err != nil {
		logger.Errorf("Failed to marshal email job: %v", err)
		return err
	}

	if err := s.redis.LPush(ctx, queueKey, data).Err(); err != nil {
		logger.Errorf("Failed to queue email to %s: %v", to, err)
		return err
	}

	logger.Infof("Email queued: %s to %s", subject, to)
	return nil
}

// Start consumes the queue until ctx is cancelled.
func (s *Service) Start(ctx context.Context) {
	logger.Info("Email worker started")

	for {
		select {
		case <-ctx.Done():
			logger.Info("Email worker stopped")
			return
		default:
			s.processNext(ctx)
			metrics.EmailQueueLength.Set(float64(s.QueueLength(ctx)))
		}
	}
}

func (s *Service) processNext(ctx context.Context) {
	result, err := s.redis.BRPop(ctx, 2*time.Second, queueKey).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) && ctx.Err() == nil {
			logger.Warn("Email queue unavailable", "error", err)
			sleep(ctx, time.Second)
		}
		return
	}

	var job EmailJob
	if err := json.Unmarshal([]byte(result[1]), &job); err != nil {
		logger.Errorf("Bad email data: %v", err)
		return
	}

	job.Tries++
	logger.Infof("Sending email to %s (attempt %d)", job.To, job.Tries)
	if err := s.deliverer.Deliver(job); err != nil {
		logger.Errorf("Failed to send email to %s: %v", job.To, err)
		metrics.RecordEmail(job.Type, "failed")

		if job.Tries < maxTries {
			sleep(ctx, s.retryDelay)
			if rerr := s.requeue(ctx, job); rerr != nil {
				logger.WithError(rerr).Error("Email dropped: requeue failed", "to", job.To, "attempt", job.Tries)
				metrics.RecordEmail(job.Type, "dropped")
				return
			}
			logger.Infof("Retrying email to %s (attempt %d)", job.To, job.Tries+1)
		} else {
			logger.Errorf("Email to %s failed after %d attempts", job.To, maxTries)
			if serr := s.saveFailed(ctx, job, err); serr != nil {
				logger.WithError(serr).Error("Email dropped: failed queue unavailable", "to", job.To)
				metrics.RecordEmail(job.Type, "dropped")
			}
		}
		return
	}

	metrics.RecordEmail(job.Type, "success")
	logger.Infof("Email sent successfully to %s", job.To)
}

// requeue pushes job back even when shutting down so it is not lost.
func (s *Service) requeue(ctx context.Context, job EmailJob) error {
	data, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("marshal email job: %w", err)
	}
	if err := s.redis.LPush(context.WithoutCancel(ctx), queueKey, data).Err(); err != nil {
		return fmt.Errorf("requeue email: %w", err)
	}
	return nil
}

func (s *Service) saveFailed(ctx context.Context, job EmailJob, cause error) error {
	failed := map[string]interface{}{
		"job":   job,
		"error": cause.Error(),
		"time":  time.Now(),
	}
	data, err := json.Marshal(failed)
	if err != nil {
		return fmt.Errorf("marshal failed email: %w", err)
	}
	if err := s.redis.LPush(context.WithoutCancel(ctx), failedQueueKey, data).Err(); err != nil {
		return fmt.Errorf("save failed email: %w", err)
	}
	logger.Errorf("Email moved to failed queue: %s", job.To)
	return nil
}

func (s *Service) QueueLength(ctx context.Context) int64 {
	length, _ := s.redis.LLen(ctx, queueKey).Result()
	return length
}

func (s *Service) Close() error {
	return s.redis.Close()
}

// BookingDetails is what a booking email tells its recipient.
type BookingDetails struct {
	BookingID        string
	With             string
	Date             string
	Time             string
	ConsultationType string
	Amount           float64
	PaymentID        string
}

func (s *Service) SendBookingConfirmation(ctx context.Context, to, name string, d BookingDetails) error {
	subject := "Appointment Confirmed - " + d.Date + " at " + d.Time
	body := fmt.Sprintf(`Hi %s,

Your consultation is confirmed!

With: %s
Date: %s
Time: %s
Type: %s
Amount paid: %.2f
Payment reference: %s
Booking ID: %s

- NutriBook Team`, name, d.With, d.Date, d.Time, d.ConsultationType, d.Amount, d.PaymentID, d.BookingID)

	return s.Send(ctx, TypeBookingConfirmation, to, name, subject, body)
}

func (s *Service) SendCancellation(ctx context.Context, to, name string, d BookingDetails) error {
	subject := "Appointment Cancelled - " + d.Date + " at " + d.Time
	body := fmt.Sprintf(`Hi %s,

The following consultation has been cancelled:

With: %s
Date: %s
Time: %s
Booking ID: %s

- NutriBook Team`, name, d.With, d.Date, d.Time, d.BookingID)

	return s.Send(ctx, TypeBookingCancellation, to, name, subject, body)
}

// sleep waits for d or until ctx is done.
func sleep(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-t.C:
	case <-ctx.Done():
	}
}
