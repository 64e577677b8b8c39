package email

import (
	"fmt"
	"net/smtp"
	"strings"

	"github.com/Dan9191/risk-engine/internal/config"
	"github.com/Dan9191/risk-engine/internal/models"
	"github.com/jordan-wright/email"
	"github.com/sirupsen/logrus"
)

// Sender handles sending emails via SMTP
type Sender struct {
	cfg    *config.Config
	logger *logrus.Logger
}

// NewSender creates a new email sender
func NewSender(cfg *config.Config, logger *logrus.Logger) *Sender {
	return &Sender{
		cfg:    cfg,
		logger: logger,
	}
}

// SendInterventionNotice emails the case team about an intervention applied to a user
func (s *Sender) SendInterventionNotice(user *models.Snapshot, iv models.Intervention) error {
	if len(s.cfg.AlertRecipients) == 0 {
		return nil
	}

	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = s.cfg.AlertRecipients
	e.Subject, e.Text = InterventionNotice(user, iv)

	addr := fmt.Sprintf("%s:%s", s.cfg.SMTPHost, s.cfg.SMTPPort)
	var auth smtp.Auth
	if s.cfg.SMTPUsername != "" {
		auth = smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)
	}
	if err := e.Send(addr, auth); err != nil {
		s.logger.Errorf("Failed to send intervention notice for user %s: %v", user.ID, err)
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.logger.Infof("Email sent to %s: %s", strings.Join(e.To, ", "), e.Subject)
	return nil
}

// InterventionNotice builds the subject and plain-text body of an intervention notice
func InterventionNotice(user *models.Snapshot, iv models.Intervention) (string, []byte) {
	subject := fmt.Sprintf("[%s] %s: %s", user.Status, iv.Action, user.Name)

	var b strings.Builder
	fmt.Fprintf(&b, "Customer: %s (%s)\n", user.Name, user.ID)
	if user.Occupation != "" {
		fmt.Fprintf(&b, "Occupation: %s\n", user.Occupation)
	}
	fmt.Fprintf(&b, "Risk score: %d (%s)\n", user.RiskScore, user.Status)
	if category := user.Category(); category != "" {
		fmt.Fprintf(&b, "Distress category: %s\n", category)
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "Action: %s\n", iv.Action)
	if iv.Category != "" {
		fmt.Fprintf(&b, "Type: %s\n", iv.Category)
	}
	fmt.Fprintf(&b, "%s\n", iv.Message)
	b.WriteString("\nBest regards,\nRisk Engine")
	return subject, []byte(b.String())
}
