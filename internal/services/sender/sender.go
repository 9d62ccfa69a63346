// Package sender отправляет письма пользователям по сообщениям из очереди:
// восстановление пароля и решения модератора по заявкам.
package sender

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/unilocal/unilocal/internal/lib/sl"
	"github.com/unilocal/unilocal/internal/lib/smtp"
	"github.com/unilocal/unilocal/internal/models"
)

// SenderService читает сообщения очередей уведомлений и отправляет письма.
type SenderService struct {
	transport smtp.TransportInterface
	log       *slog.Logger
}

// NewSenderService создает новый экземпляр SenderService.
func NewSenderService(transport smtp.TransportInterface, log *slog.Logger) *SenderService {
	return &SenderService{
		transport: transport,
		log:       log,
	}
}

// SendPasswordReset отправляет письмо со ссылкой восстановления пароля.
func (s *SenderService) SendPasswordReset(body []byte) error {
	var message models.ResetEmail
	if err := json.Unmarshal(body, &message); err != nil {
		s.log.Error("Failed to unmarshal message body", "error", sl.Err(err))
		return fmt.Errorf("error unmarshalling message: %w", err)
	}

	to := []string{message.Email}
	subject := "Восстановление пароля UniLocal"
	bodyText := fmt.Sprintf("Здравствуйте, %s!\n\nВы запросили восстановление пароля.\nКод восстановления: %s\n\nКод действует один час. Если вы не запрашивали восстановление, проигнорируйте это письмо.",
		message.Username, message.Token)

	return s.sendEmail(to, subject, bodyText)
}

// SendModerationDecision отправляет автору заявки решение модератора.
func (s *SenderService) SendModerationDecision(body []byte) error {
	var message models.DecisionEmail
	if err := json.Unmarshal(body, &message); err != nil {
		s.log.Error("Failed to unmarshal message body", "error", sl.Err(err))
		return fmt.Errorf("error unmarshalling message: %w", err)
	}

	to := []string{message.Email}
	subject := "Решение по вашей заявке на UniLocal"
	verdict := "одобрена и опубликована"
	if message.Status == models.StatusRejected {
		verdict = "отклонена модератором"
	}
	bodyText := fmt.Sprintf("Здравствуйте, %s!\n\nВаша заявка на место «%s» %s.",
		message.Username, message.PlaceName, verdict)

	return s.sendEmail(to, subject, bodyText)
}

func (s *SenderService) sendEmail(to []string, subject, bodyText string) error {
	msg := strings.Join([]string{
		"From: " + s.transport.GetSMTPUser(),
		"To: " + strings.Join(to, ";"),
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"UTF-8\"",
		"",
		bodyText,
	}, "\r\n")

	client, err := s.transport.Connect()
	if err != nil {
		s.log.Error("Failed to connect to SMTP server", "error", sl.Err(err))
		return err
	}
	defer client.Close()

	if err := client.Mail(s.transport.GetSMTPUser()); err != nil {
		s.log.Error("Failed to set MAIL FROM", "from", s.transport.GetSMTPUser(), "error", sl.Err(err))
		return err
	}

	for _, addr := range to {
		if err := client.Rcpt(addr); err != nil {
			s.log.Error("Failed to set RCPT TO", "recipient", addr, "error", sl.Err(err))
			return err
		}
	}

	wc, err := client.Data()
	if err != nil {
		s.log.Error("Failed to get Data writer", "error", sl.Err(err))
		return err
	}

	_, err = wc.Write([]byte(msg))
	if err != nil {
		s.log.Error("Failed to write email body", "error", sl.Err(err))
		return err
	}

	if err = wc.Close(); err != nil {
		s.log.Error("Failed to close Data writer", "error", sl.Err(err))
		return err
	}

	if err = client.Quit(); err != nil {
		s.log.Error("Failed to quit SMTP client", "error", sl.Err(err))
		return err
	}

	s.log.Info("email sent successfully", "to", to)
	return nil
}
