package email

import (
	"context"
	"encoding/json"
	"fmt"
	"net/smtp"
	"time"

	"github.com/redis/go-redis/v9"

	"gymgate/internal/logger"
	"gymgate/internal/metrics"
)

const (
	queueKey       = "emails"
	failedQueueKey = "emails:failed"
	maxTries       = 3
)

type EmailJob struct {
	To      string    `json:"to"`
	Name    string    `json:"name"`
	Type    string    `json:"type"`
	Subject string    `json:"subject"`
	Body    string    `json:"body"`
	Tries   int       `json:"tries"`
	Created time.Time `json:"created"`
}

type Service struct {
	redis    *redis.Client
	from     string
	fromName string
	smtpHost string
	smtpPort string
	smtpUser string
	smtpPass string
}

func New(fromEmail, fromName, smtpHost, smtpPort, smtpUser, smtpPass, redisAddr string) *Service {
	return &Service{
		redis: redis.NewClient(&redis.Options{
			Addr: redisAddr,
		}),
		from:     fromEmail,
		fromName: fromName,
		smtpHost: smtpHost,
		smtpPort: smtpPort,
		smtpUser: smtpUser,
		smtpPass: smtpPass,
	}
}

func (s *Service) Send(ctx context.Context, to, name, emailType, subject, body string) error {
	job := EmailJob{
		To:      to,
		Name:    name,
		Type:    emailType,
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

func (s *Service) Start(ctx context.Context) {
	logger.Info("Email service started")

	for {
		select {
		case <-ctx.Done():
			logger.Info("Email service stopped")
			return
		default:
			s.processNext(ctx)
		}
	}
}

func (s *Service) processNext(ctx context.Context) {
	result, err := s.redis.BRPop(ctx, 2*time.Second, queueKey).Result()
	if err != nil {
		return
	}

	var job EmailJob
	if err := json.Unmarshal([]byte(result[1]), &job); err != nil {
		logger.Errorf("Bad email data: %v", err)
		return
	}

	job.Tries++
	logger.Infof("Sending email to %s (attempt %d)", job.To, job.Tries)
	if err := s.sendNow(job); err != nil {
		logger.Errorf("Failed to send email to %s: %v", job.To, err)

		if job.Tries < maxTries {
			time.Sleep(5 * time.Second)
			data, _ := json.Marshal(job)
			s.redis.LPush(context.Background(), queueKey, data)
			logger.Infof("Retrying email to %s (attempt %d)", job.To, job.Tries+1)
		} else {
			logger.Errorf("Email to %s failed after %d attempts", job.To, maxTries)
			metrics.RecordEmail(job.Type, "failed")
			s.saveFailed(job, err)
		}
		return
	}

	metrics.RecordEmail(job.Type, "sent")
	logger.Infof("Email sent successfully to %s", job.To)
}

func (s *Service) sendNow(job EmailJob) error {
	message := fmt.Sprintf("From: %s <%s>\r\n", s.fromName, s.from)
	message += fmt.Sprintf("To: %s\r\n", job.To)
	message += fmt.Sprintf("Subject: %s\r\n", job.Subject)
	message += "\r\n" + job.Body

	var auth smtp.Auth
	if s.smtpUser != "" && s.smtpPass != "" {
		auth = smtp.PlainAuth("", s.smtpUser, s.smtpPass, s.smtpHost)
	}

	addr := s.smtpHost + ":" + s.smtpPort
	return smtp.SendMail(addr, auth, s.from, []string{job.To}, []byte(message))
}

func (s *Service) saveFailed(job EmailJob, err error) {
	failed := map[string]interface{}{
		"job":   job,
		"error": err.Error(),
		"time":  time.Now(),
	}
	data, _ := json.Marshal(failed)
	s.redis.LPush(context.Background(), failedQueueKey, data)
	logger.Errorf("Email moved to failed queue: %s", job.To)
}

func (s *Service) QueueLength(ctx context.Context) int64 {
	length, _ := s.redis.LLen(ctx, queueKey).Result()
	return length
}

func (s *Service) Close() error {
	return s.redis.Close()
}

func (s *Service) SendOwnerWelcome(ctx context.Context, email, name, gymName string, trialEnd time.Time) error {
	subject := "Your gym is live on GymGate"
	body := fmt.Sprintf(`Hi %s,

%s is set up and ready for members.

Your free trial runs until %s. Create your plans, register members and
hand out QR codes; upgrade any time from your dashboard.

- The GymGate team`, name, gymName, trialEnd.Format("Jan 2, 2006"))

	return s.Send(ctx, email, name, "owner_welcome", subject, body)
}

func (s *Service) SendMemberWelcome(ctx context.Context, email, name, gymName, planName string, validUntil time.Time) error {
	subject := "Welcome to " + gymName
	body := fmt.Sprintf(`Hi %s,

Your membership at %s is active!

Plan: %s
Valid until: %s

Show the QR code from your profile at the front desk to check in.

- %s via GymGate`, name, gymName, planName, validUntil.Format("Jan 2, 2006"), gymName)

	return s.Send(ctx, email, name, "welcome", subject, body)
}

func (s *Service) SendRenewalConfirmation(ctx context.Context, email, name, planName string, validUntil time.Time) error {
	subject := "Membership Renewed - " + planName
	body := fmt.Sprintf(`Hi %s,

Your membership has been renewed.

Plan: %s
Valid until: %s

See you at the gym!

- GymGate`, name, planName, validUntil.Format("Jan 2, 2006"))

	return s.Send(ctx, email, name, "renewal", subject, body)
}

func (s *Service) SendExpiryReminder(ctx context.Context, email, name string, daysLeft int, validUntil time.Time) error {
	subject := "Your membership expires soon"
	body := fmt.Sprintf(`Hi %s,

Your membership expires in %d day(s), on %s.

Renew at the front desk to keep checking in without interruption.

- GymGate`, name, daysLeft, validUntil.Format("Jan 2, 2006"))

	return s.Send(ctx, email, name, "expiry_reminder", subject, body)
}
