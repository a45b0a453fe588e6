// FILE: internal/pkg/mailer/email_service.go
package mailer

import (
	"fmt"

	"adorder-be/internal/pkg/logger"

	"gopkg.in/gomail.v2"
)

type IEmailService interface {
	SendCancellationProcessed(toEmail, clientName, requestType, status string, adminNote *string) error
	SendPaymentReceipt(toEmail, pgOrderId string, amount, pointAmount, newBalance int64) error
}

type emailService struct {
	dialer      *gomail.Dialer
	senderEmail string
	senderName  string
	logger      logger.ILogger
}

// NewEmailService returns a mailer that silently skips delivery when no SMTP
// host is configured.
func NewEmailService(host string, port int, username, password, senderName string, log logger.ILogger) IEmailService {
	var d *gomail.Dialer
	if host != "" {
		d = gomail.NewDialer(host, port, username, password)
	}
	return &emailService{
		dialer:      d,
		senderEmail: username,
		senderName:  senderName,
		logger:      log,
	}
}

func (s *emailService) send(toEmail, subject, body string) error {
	if s.dialer == nil {
		s.logger.Debug("MAILER", "SMTP not configured, skipping email", map[string]interface{}{"to": toEmail, "subject": subject})
		return nil
	}

	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.senderEmail, s.senderName)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		s.logger.Error("MAILER", "Failed to send email", map[string]interface{}{"to": toEmail, "subject": subject, "error": err.Error()})
		return err
	}
	s.logger.Info("MAILER", "Email sent", map[string]interface{}{"to": toEmail, "subject": subject})
	return nil
}

var requestTypeLabels = map[string]string{
	"pause":  "일시정지",
	"cancel": "취소",
	"refund": "환불",
}

func (s *emailService) SendCancellationProcessed(toEmail, clientName, requestType, status string, adminNote *string) error {
	label := requestTypeLabels[requestType]
	if label == "" {
		label = requestType
	}
	result := "승인"
	if status == "rejected" {
		result = "반려"
	}

	note := ""
	if adminNote != nil && *adminNote != "" {
		note = fmt.Sprintf("<p>관리자 메모: %s</p>", *adminNote)
	}

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>%s 요청이 %s되었습니다</h2>
			<p>대상 광고: <strong>%s</strong></p>
			%s
		</div>
	`, label, result, clientName, note)

	return s.send(toEmail, fmt.Sprintf("[AdOrder] %s 요청 %s", label, result), body)
}

func (s *emailService) SendPaymentReceipt(toEmail, pgOrderId string, amount, pointAmount, newBalance int64) error {
	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>포인트 충전이 완료되었습니다</h2>
			<p>주문번호: %s</p>
			<p>결제 금액: %d원</p>
			<p>충전 포인트: %dP</p>
			<p>현재 잔액: %dP</p>
		</div>
	`, pgOrderId, amount, pointAmount, newBalance)

	return s.send(toEmail, "[AdOrder] 포인트 충전 완료", body)
}
