package email

import (
	"context"
	"fmt"
	"net/smtp"

	"storyshare-backend/pkg/logger"
)

// ResetPasswordData carries everything the reset email needs.
type ResetPasswordData struct {
	Email     string `json:"email"`
	ResetLink string `json:"resetLink"`
	ExpiresIn string `json:"expiresIn"`
}

type EmailService interface {
	SendResetPasswordEmail(ctx context.Context, data ResetPasswordData) error
}

type smtpEmailService struct {
	smtpAddr string
	smtpFrom string
}

// NewSMTPEmailService sends mail through a plain SMTP relay. In
// development that is typically a local catcher such as Mailpit.
func NewSMTPEmailService(smtpHost, smtpPort, from string) EmailService {
	return &smtpEmailService{
		smtpAddr: smtpHost + ":" + smtpPort,
		smtpFrom: from,
	}
}

func (s *smtpEmailService) SendResetPasswordEmail(ctx context.Context, data ResetPasswordData) error {
	subject := "Reset password"
	body := fmt.Sprintf(`Hello, please click on this link to reset your password.

	%s

	The link is valid for %s. If you did not request a password reset, you can ignore this email.`,
		data.ResetLink, data.ExpiresIn)

	msg := []byte(fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s",
		s.smtpFrom, data.Email, subject, body))

	if err := smtp.SendMail(s.smtpAddr, nil, s.smtpFrom, []string{data.Email}, msg); err != nil {
		logger.Info("Failed to send reset password email", map[string]interface{}{
			"error":     err.Error(),
			"to":        data.Email,
			"smtp_addr": s.smtpAddr,
		})
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}
