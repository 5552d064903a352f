package mail

import (
	"fmt"
	"net/smtp"

	"go.uber.org/zap"

	"volunflow/internal/model"
)

// Notifier is best-effort outbound mail: every send is non-blocking,
// failures are logged and never retried, and no caller's HTTP response
// depends on delivery.
type Notifier interface {
	SendOTP(email string, otp int)
	SendApproval(email string)
	SendNotification(email string, n model.Notification)
	SendContact(name, email, number, message string)
}

// Config holds the SMTP transport settings.
type Config struct {
	Host         string
	Port         string
	Username     string
	Password     string
	From         string
	ContactInbox string
}

// SMTPNotifier sends plain-text mail over SMTP.
type SMTPNotifier struct {
	cfg    Config
	logger *zap.Logger
}

// NewSMTPNotifier builds a notifier from transport settings.
func NewSMTPNotifier(cfg Config, logger *zap.Logger) *SMTPNotifier {
	return &SMTPNotifier{cfg: cfg, logger: logger}
}

// SendOTP emails a freshly generated verification code.
func (s *SMTPNotifier) SendOTP(email string, otp int) {
	s.dispatch(email, "Your OTP Code",
		fmt.Sprintf("Your OTP code is %d. It is valid for 5 minutes.", otp))
}

// SendApproval tells an account its registration was approved.
func (s *SMTPNotifier) SendApproval(email string) {
	s.dispatch(email, "Registration Approved",
		"Your registration has been approved. Welcome aboard!")
}

// SendNotification forwards an in-app notification by mail.
func (s *SMTPNotifier) SendNotification(email string, n model.Notification) {
	s.dispatch(email, n.Title, n.Desc)
}

// SendContact forwards a contact-form submission to the platform inbox.
func (s *SMTPNotifier) SendContact(name, email, number, message string) {
	body := fmt.Sprintf("Name: %s\nEmail: %s\nPhone Number: %s\n\nMessage:\n%s\n",
		name, email, number, message)
	s.dispatch(s.cfg.ContactInbox, "Contact Us Form Submission from "+name, body)
}

func (s *SMTPNotifier) dispatch(to, subject, body string) {
	go func() {
		if err := s.send(to, subject, body); err != nil {
			s.logger.Error("send mail failed",
				zap.String("to", to),
				zap.String("subject", subject),
				zap.Error(err))
		}
	}()
}

func (s *SMTPNotifier) send(to, subject, body string) error {
	if s.cfg.Host == "" || s.cfg.Username == "" || s.cfg.Password == "" {
		return fmt.Errorf("smtp not configured")
	}

	addr := s.cfg.Host + ":" + s.cfg.Port
	msg := "From: " + s.cfg.From + "\r\n" +
		"To: " + to + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"Content-Type: text/plain; charset=\"utf-8\"\r\n\r\n" +
		body + "\r\n"

	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	return smtp.SendMail(addr, auth, s.cfg.From, []string{to}, []byte(msg))
}
