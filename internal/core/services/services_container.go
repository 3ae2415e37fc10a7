package services

import (
	portsrepo "github.com/SscSPs/partner_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/partner_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/partner_ledger_app/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies.
// queue may be nil, in which case neither over-limit alerts nor transaction
// notices are scheduled.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, queue portssvc.NotificationEnqueuer, sender MessageSender) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// The debt engine is read-only and backs several other services.
	container.Debt = NewDebtService(repos.TransactionRepo, repos.PartnerRepo)

	container.Partner = NewPartnerService(repos.PartnerRepo)

	txnOpts := []TransactionServiceOption{}
	if queue != nil {
		txnOpts = append(txnOpts, WithDebtAlerts(container.Debt, queue), WithTransactionNotices(queue))
	}
	container.Transaction = NewTransactionService(repos.TransactionRepo, repos.PartnerRepo, txnOpts...)

	container.Payment = NewPaymentService(repos.PaymentRepo, repos.TransactionRepo, repos.PartnerRepo)

	container.User = NewUserService(repos.UserRepo, TokenConfig{
		Secret: cfg.JWTSecret,
		Expiry: cfg.JWTExpiryDuration,
		Issuer: cfg.JWTIssuer,
	})

	container.Notification = NewNotificationService(repos.PartnerRepo, repos.TransactionRepo, repos.NotificationRepo, sender)
	container.Reconcile = NewReconcileService(container.Debt, repos.PartnerRepo)
	container.Report = NewReportService(repos.TransactionRepo)

	return container
}
