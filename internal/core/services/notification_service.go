package services

import (
	"context"
	"errors"
	"fmt"
	"html"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/partner_ledger_app/internal/apperrors"
	"github.com/SscSPs/partner_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/partner_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/partner_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/partner_ledger_app/internal/utils"
	"github.com/google/uuid"
)

// ErrNoChatID marks an alert that cannot be delivered because the partner has no chat configured.
var ErrNoChatID = errors.New("partner has no telegram chat id")

// MessageSender delivers an HTML message to a chat.
type MessageSender interface {
	SendMessage(ctx context.Context, chatID, text string) error
}

// ChatBoundMessage confirms a successful "/start <partnerID>" binding.
const ChatBoundMessage = "Kết nối thành công! Bạn sẽ nhận được thông báo về các giao dịch qua bot này."

// telegramBinder is recorded as last_updated_by when a partner binds its own chat.
const telegramBinder = "telegram"

type notificationService struct {
	BaseService
	partnerRepo portsrepo.PartnerRepositoryFacade
	txnRepo     portsrepo.TransactionReader
	logRepo     portsrepo.NotificationLogRepository
	sender      MessageSender
	now         func() time.Time
}

// NewNotificationService creates the service that delivers partner notifications.
func NewNotificationService(partnerRepo portsrepo.PartnerRepositoryFacade, txnRepo portsrepo.TransactionReader, logRepo portsrepo.NotificationLogRepository, sender MessageSender) portssvc.NotificationSvc {
	return &notificationService{
		partnerRepo: partnerRepo,
		txnRepo:     txnRepo,
		logRepo:     logRepo,
		sender:      sender,
		now:         time.Now,
	}
}

var _ portssvc.NotificationSvc = (*notificationService)(nil)

// SendDebtAlert returns ErrNoChatID when the partner opted out or has no chat, and the
// delivery error otherwise. Every delivery attempt is logged, successful or not.
func (s *notificationService) SendDebtAlert(ctx context.Context, alert portssvc.DebtAlert) error {
	partner, err := s.partnerRepo.FindPartnerByID(ctx, alert.PartnerID)
	if err != nil {
		return fmt.Errorf("failed to find partner %s: %w", alert.PartnerID, err)
	}
	if !partner.WantsTelegram() {
		s.LogInfo(ctx, "Skipping debt alert, partner has no telegram chat", slog.String("partner_id", partner.PartnerID))
		return ErrNoChatID
	}

	message := RenderDebtAlert(partner, alert)
	if err := s.deliver(ctx, partner, alert.TransactionID, message); err != nil {
		return fmt.Errorf("failed to deliver debt alert: %w", err)
	}
	s.LogInfo(ctx, "Debt alert delivered", slog.String("partner_id", partner.PartnerID))
	return nil
}

// SendTransactionNotice has the same skip and logging rules as SendDebtAlert.
func (s *notificationService) SendTransactionNotice(ctx context.Context, transactionID string) error {
	txn, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return fmt.Errorf("failed to find transaction %s: %w", transactionID, err)
	}
	partner, err := s.partnerRepo.FindPartnerByID(ctx, txn.PartnerID)
	if err != nil {
		return fmt.Errorf("failed to find partner %s: %w", txn.PartnerID, err)
	}
	if !partner.WantsTelegram() {
		s.LogInfo(ctx, "Skipping transaction notice, partner has no telegram chat", slog.String("partner_id", partner.PartnerID))
		return ErrNoChatID
	}

	message := RenderTransactionNotice(txn)
	if err := s.deliver(ctx, partner, txn.TransactionID, message); err != nil {
		return fmt.Errorf("failed to deliver transaction notice: %w", err)
	}
	s.LogInfo(ctx, "Transaction notice delivered",
		slog.String("partner_id", partner.PartnerID),
		slog.String("transaction_id", txn.TransactionID))
	return nil
}

// deliver sends message to the partner's chat and records the attempt.
func (s *notificationService) deliver(ctx context.Context, partner *domain.Partner, transactionID, message string) error {
	sendErr := s.sender.SendMessage(ctx, *partner.TelegramChatID, message)

	entry := domain.NotificationLog{
		LogID:     uuid.NewString(),
		PartnerID: partner.PartnerID,
		Channel:   domain.ChannelTelegram,
		Message:   message,
		Status:    domain.NotificationSuccess,
		CreatedAt: s.now(),
	}
	if transactionID != "" {
		entry.TransactionID = &transactionID
	}
	if sendErr != nil {
		msg := sendErr.Error()
		entry.Status = domain.NotificationFailed
		entry.Error = &msg
	}
	if err := s.logRepo.SaveNotificationLog(ctx, entry); err != nil {
		s.LogError(ctx, err, "Failed to record notification log", slog.String("partner_id", partner.PartnerID))
	}

	if sendErr != nil {
		s.LogError(ctx, sendErr, "Telegram delivery failed", slog.String("partner_id", partner.PartnerID))
		return sendErr
	}
	return nil
}

func (s *notificationService) BindTelegramChat(ctx context.Context, partnerID, chatID string) error {
	partnerID = strings.TrimSpace(partnerID)
	chatID = strings.TrimSpace(chatID)
	if partnerID == "" || chatID == "" {
		return apperrors.NewValidationError("partner id and chat id are required")
	}

	partner, err := s.partnerRepo.FindPartnerByID(ctx, partnerID)
	if err != nil {
		return fmt.Errorf("failed to find partner %s: %w", partnerID, err)
	}

	partner.TelegramChatID = &chatID
	partner.NotificationPreference = domain.NotifyTelegram
	partner.LastUpdatedAt = s.now()
	partner.LastUpdatedBy = telegramBinder
	if err := s.partnerRepo.UpdatePartner(ctx, *partner); err != nil {
		s.LogError(ctx, err, "Failed to bind telegram chat", slog.String("partner_id", partnerID))
		return fmt.Errorf("failed to bind telegram chat: %w", err)
	}
	s.LogInfo(ctx, "Telegram chat bound", slog.String("partner_id", partnerID))

	if err := s.sender.SendMessage(ctx, chatID, ChatBoundMessage); err != nil {
		s.LogWarn(ctx, "Failed to confirm telegram binding",
			slog.String("partner_id", partnerID),
			slog.String("error", err.Error()))
	}
	return nil
}

func (s *notificationService) ListNotificationLogs(ctx context.Context, partnerID string, limit int) ([]domain.NotificationLog, error) {
	if _, err := s.partnerRepo.FindPartnerByID(ctx, partnerID); err != nil {
		return nil, fmt.Errorf("failed to find partner %s: %w", partnerID, err)
	}
	logs, err := s.logRepo.ListNotificationLogsByPartner(ctx, partnerID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list notification logs: %w", err)
	}
	if logs == nil {
		logs = []domain.NotificationLog{}
	}
	return logs, nil
}

// RenderDebtAlert builds the Telegram HTML body for an over-limit alert.
func RenderDebtAlert(partner *domain.Partner, alert portssvc.DebtAlert) string {
	direction := "Quý khách đang nợ chúng tôi"
	if alert.DebtAmount.IsNegative() {
		direction = "Chúng tôi đang nợ quý khách"
	}
	return fmt.Sprintf(
		"<b>⚠️ Cảnh báo vượt hạn mức công nợ</b>\n"+
			"Đối tác: <b>%s</b>\n"+
			"%s: <b>%s</b>\n"+
			"Hạn mức: %s\n"+
			"Vui lòng liên hệ để đối soát công nợ.",
		html.EscapeString(partner.Name),
		direction,
		utils.FormatVND(alert.DebtAmount.Abs()),
		utils.FormatVND(alert.DebtLimit),
	)
}

// RenderTransactionNotice builds the Telegram HTML body sent for each recorded transaction.
func RenderTransactionNotice(txn *domain.Transaction) string {
	kind := "Xuất hàng"
	if txn.Type == domain.TransactionIn {
		kind = "Nhập hàng"
	}
	vehicle := txn.VehicleNumber
	if vehicle == "" {
		vehicle = "-"
	}
	product := txn.ProductID
	if product == "" {
		product = "-"
	}
	return fmt.Sprintf(
		"<b>Thông báo %s</b>\n\n"+
			"📅 Ngày: %s\n"+
			"🚛 Số xe: %s\n"+
			"📦 Sản phẩm: %s\n"+
			"📊 Số lượng: %s\n"+
			"💰 Thành tiền: %s\n\n"+
			"Vui lòng kiểm tra thông tin và phản hồi nếu có sai sót.\n"+
			"Xin cảm ơn!",
		kind,
		txn.CreatedAt.In(domain.BusinessLocation).Format("02/01/2006"),
		html.EscapeString(vehicle),
		html.EscapeString(product),
		txn.Quantity.String(),
		utils.FormatVND(txn.Amount()),
	)
}
