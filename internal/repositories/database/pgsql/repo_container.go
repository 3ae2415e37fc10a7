package pgsql

import (
	portsrepo "github.com/SscSPs/partner_ledger_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		PartnerRepo:      newPgxPartnerRepository(dbPool),
		TransactionRepo:  newPgxTransactionRepository(dbPool),
		PaymentRepo:      newPgxPaymentRepository(dbPool),
		UserRepo:         newPgxUserRepository(dbPool),
		NotificationRepo: newPgxNotificationLogRepository(dbPool),
	}
}
