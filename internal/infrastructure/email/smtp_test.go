package email

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"

	"github.com/buildingai/cozepkg/internal/application/cozepackage/usecases"
	sharedConfig "github.com/buildingai/cozepkg/internal/shared/config"
	"github.com/buildingai/cozepkg/internal/shared/logger"
)

type recordingSender struct {
	messages []*gomail.Message
	err      error
}

func (s *recordingSender) DialAndSend(m ...*gomail.Message) error {
	if s.err != nil {
		return s.err
	}
	s.messages = append(s.messages, m...)
	return nil
}

func newNotifier(sender Sender, to string) *RefundNotifier {
	svc := NewSMTPEmailServiceWithSender(sharedConfig.EmailConfig{FromAddress: "noreply@example.com", FromName: "Coze"}, sender)
	return NewRefundNotifier(svc, to, logger.NewNop())
}

func TestRefundNotifier_SendsEscapedMail(t *testing.T) {
	sender := &recordingSender{}
	n := newNotifier(sender, "ops@example.com")

	err := n.NotifyRefundRequested(context.Background(), usecases.RefundNotice{
		OrderNo:      "COZE1700000000000",
		UserID:       "u-1",
		PackageName:  "<Monthly>",
		RefundAmount: "79.99",
		Reason:       "other: changed my mind",
	})
	require.NoError(t, err)
	require.Len(t, sender.messages, 1)

	m := sender.messages[0]
	assert.Equal(t, []string{"ops@example.com"}, m.GetHeader("To"))
	assert.Equal(t, []string{"Refund requested for order COZE1700000000000"}, m.GetHeader("Subject"))

	var buf bytes.Buffer
	_, err = m.WriteTo(&buf)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "&lt;Monthly&gt;")
	assert.Contains(t, buf.String(), "79.99")
}

func TestRefundNotifier_NoRecipientIsNoop(t *testing.T) {
	sender := &recordingSender{}
	require.NoError(t, newNotifier(sender, "").NotifyRefundRequested(context.Background(), usecases.RefundNotice{OrderNo: "X"}))
	assert.Empty(t, sender.messages)
}

func TestRefundNotifier_PropagatesSendError(t *testing.T) {
	sender := &recordingSender{err: errors.New("smtp down")}
	err := newNotifier(sender, "ops@example.com").NotifyRefundRequested(context.Background(), usecases.RefundNotice{OrderNo: "X"})
	assert.ErrorContains(t, err, "smtp down")
}
