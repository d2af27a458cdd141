package email

import (
	"fmt"
	"net/smtp"
	"sort"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
)

// EmailService defines the interface for email operations
type EmailService interface {
	SendWelcomeEmail(toEmail, toName string, openingCoins int) error
	SendRedemptionEmail(toEmail, toName, rewardName string, coinsUsed int) error
}

// SMTPConfig holds configuration for SMTP server
type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromName  string
	FromEmail string
	BaseURL   string
}

// Configured reports whether enough settings are present to talk to a server
func (c SMTPConfig) Configured() bool {
	return c.Host != "" && c.Username != "" && c.Password != ""
}

// sendFunc matches smtp.SendMail
type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// EmailServiceImpl implements EmailService
type EmailServiceImpl struct {
	config SMTPConfig
	logger zerolog.Logger
	send   sendFunc
}

// NewEmailService creates a new EmailService
func NewEmailService(config SMTPConfig, logger zerolog.Logger) EmailService {
	return &EmailServiceImpl{
		config: config,
		logger: logger,
		send:   smtp.SendMail,
	}
}

// SendWelcomeEmail greets a newly registered account
func (s *EmailServiceImpl) SendWelcomeEmail(toEmail, toName string, openingCoins int) error {
	subject := "Welcome to SkillSwap"
	body := fmt.Sprintf(`
		<html>
		<body>
			<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
				<h2 style="color: #333;">Welcome to SkillSwap!</h2>
				<p>Hello %s,</p>
				<p>Your account is ready and you start with <strong>%d coins</strong>.
				Spend them to request mentors, and earn more by teaching what you know.</p>
				<p><a href="%s">Open SkillSwap</a></p>
				<p>Happy learning,<br>The SkillSwap Team</p>
			</div>
		</body>
		</html>
	`, toName, openingCoins, s.config.BaseURL)

	return s.sendHTMLEmail(toEmail, subject, body)
}

// SendRedemptionEmail confirms a reward redemption
func (s *EmailServiceImpl) SendRedemptionEmail(toEmail, toName, rewardName string, coinsUsed int) error {
	subject := "Your SkillSwap reward: " + rewardName
	body := fmt.Sprintf(`
		<html>
		<body>
			<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
				<p>Hello %s,</p>
				<p>You redeemed <strong>%s</strong> for %d coins.</p>
				<p>The SkillSwap Team</p>
			</div>
		</body>
		</html>
	`, toName, rewardName, coinsUsed)

	return s.sendHTMLEmail(toEmail, subject, body)
}

// buildMessage renders headers in a stable order followed by the HTML body
func (s *EmailServiceImpl) buildMessage(toEmail, subject, htmlBody string) []byte {
	headers := map[string]string{
		"From":         fmt.Sprintf("%s <%s>", s.config.FromName, s.config.FromEmail),
		"To":           toEmail,
		"Subject":      subject,
		"MIME-Version": "1.0",
		"Content-Type": "text/html; charset=UTF-8",
	}

	keys := make([]string, 0, len(headers))
	for key := range headers {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var message strings.Builder
	for _, key := range keys {
		fmt.Fprintf(&message, "%s: %s\r\n", key, headers[key])
	}
	message.WriteString("\r\n")
	message.WriteString(htmlBody)
	return []byte(message.String())
}

// sendHTMLEmail sends an HTML email, or only logs it when SMTP is not configured
func (s *EmailServiceImpl) sendHTMLEmail(toEmail, subject, htmlBody string) error {
	if !s.config.Configured() {
		s.logger.Info().
			Str("toEmail", toEmail).
			Str("subject", subject).
			Msg("SMTP not configured - email not sent")
		return nil
	}

	auth := smtp.PlainAuth("", s.config.Username, s.config.Password, s.config.Host)
	serverAddress := s.config.Host + ":" + strconv.Itoa(s.config.Port)

	if err := s.send(serverAddress, auth, s.config.FromEmail, []string{toEmail}, s.buildMessage(toEmail, subject, htmlBody)); err != nil {
		s.logger.Error().Err(err).Str("server", serverAddress).Msg("Failed to send email")
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}
