package email

import (
	"context"
	"fmt"
	"html"

	"gopkg.in/gomail.v2"

	"github.com/buildingai/cozepkg/internal/application/cozepackage/usecases"
	sharedConfig "github.com/buildingai/cozepkg/internal/shared/config"
	"github.com/buildingai/cozepkg/internal/shared/logger"
)

var _ usecases.RefundNotifier = (*RefundNotifier)(nil)

// Sender delivers prepared messages. *gomail.Dialer satisfies it.
type Sender interface {
	DialAndSend(m ...*gomail.Message) error
}

type SMTPEmailService struct {
	fromAddress string
	fromName    string
	sender      Sender
}

func NewSMTPEmailService(cfg sharedConfig.EmailConfig) *SMTPEmailService {
	return NewSMTPEmailServiceWithSender(cfg, gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword))
}

func NewSMTPEmailServiceWithSender(cfg sharedConfig.EmailConfig, sender Sender) *SMTPEmailService {
	return &SMTPEmailService{
		fromAddress: cfg.FromAddress,
		fromName:    cfg.FromName,
		sender:      sender,
	}
}

func (s *SMTPEmailService) Send(to, subject, htmlBody, plainBody string) error {
	m := gomail.NewMessage()
	if s.fromName != "" {
		m.SetAddressHeader("From", s.fromAddress, s.fromName)
	} else {
		m.SetHeader("From", s.fromAddress)
	}
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", plainBody)
	m.AddAlternative("text/html", htmlBody)

	if err := s.sender.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// RefundNotifier mails operators when a user's order enters refund review.
type RefundNotifier struct {
	mail   *SMTPEmailService
	to     string
	logger logger.Interface
}

func NewRefundNotifier(mail *SMTPEmailService, to string, logger logger.Interface) *RefundNotifier {
	return &RefundNotifier{mail: mail, to: to, logger: logger}
}

func (n *RefundNotifier) NotifyRefundRequested(_ context.Context, notice usecases.RefundNotice) error {
	if n.to == "" {
		return nil
	}

	subject := fmt.Sprintf("Refund requested for order %s", notice.OrderNo)

	plainBody := fmt.Sprintf(`A refund was requested.

Order:   %s
User:    %s
Package: %s
Amount:  %s
Reason:  %s
`, notice.OrderNo, notice.UserID, notice.PackageName, notice.RefundAmount, notice.Reason)

	htmlBody := fmt.Sprintf(`
		<html>
		<body>
			<h2>Refund requested</h2>
			<table>
				<tr><td>Order</td><td>%s</td></tr>
				<tr><td>User</td><td>%s</td></tr>
				<tr><td>Package</td><td>%s</td></tr>
				<tr><td>Amount</td><td>%s</td></tr>
				<tr><td>Reason</td><td>%s</td></tr>
			</table>
		</body>
		</html>
	`,
		html.EscapeString(notice.OrderNo),
		html.EscapeString(notice.UserID),
		html.EscapeString(notice.PackageName),
		html.EscapeString(notice.RefundAmount),
		html.EscapeString(notice.Reason),
	)

	if err := n.mail.Send(n.to, subject, htmlBody, plainBody); err != nil {
		n.logger.Warnw("failed to send refund notification", "order_no", notice.OrderNo, "error", err)
		return err
	}
	n.logger.Infow("refund notification sent", "order_no", notice.OrderNo, "to", n.to)
	return nil
}
