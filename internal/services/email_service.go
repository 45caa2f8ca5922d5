package services

import (
	"fmt"
	"html"

	"gopkg.in/gomail.v2"

	"taskhub/internal/models"
)

type EmailService interface {
	SendWelcomeEmail(email, displayName string) error
	SendTaskAssignedEmail(email string, task *models.Task) error
}

type emailService struct {
	dialer *gomail.Dialer
	from   string
}

func NewEmailService(smtpHost string, smtpPort int, smtpUser, smtpPassword, fromEmail string) EmailService {
	dialer := gomail.NewDialer(smtpHost, smtpPort, smtpUser, smtpPassword)
	return &emailService{
		dialer: dialer,
		from:   fromEmail,
	}
}

func (s *emailService) SendWelcomeEmail(email, displayName string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", email)
	m.SetHeader("Subject", "Welcome to TaskHub!")

	body := fmt.Sprintf(`
		<h2>Welcome, %s!</h2>
		<p>Your account has been created. Log in and head to your landing page
		to see the modules available to you.</p>
	`, html.EscapeString(displayName))

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send welcome email: %w", err)
	}
	return nil
}

func (s *emailService) SendTaskAssignedEmail(email string, task *models.Task) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", email)
	m.SetHeader("Subject", fmt.Sprintf("Task assigned: %s", task.Title))

	due := "no deadline"
	if task.Deadline != nil {
		due = task.Deadline.Format("2006-01-02 15:04 MST")
	}
	body := fmt.Sprintf(`
		<h3>%s</h3>
		<p>Priority: <strong>%s</strong><br>
		Status: <strong>%s</strong><br>
		Deadline: <strong>%s</strong></p>
	`, html.EscapeString(task.Title), task.Priority, task.Status, due)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send task assigned email: %w", err)
	}
	return nil
}
