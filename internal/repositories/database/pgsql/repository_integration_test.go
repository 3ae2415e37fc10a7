package pgsql_test

import (
	"context"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/SscSPs/partner_ledger_app/internal/apperrors"
	"github.com/SscSPs/partner_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/partner_ledger_app/internal/core/ports/repositories"
	"github.com/SscSPs/partner_ledger_app/internal/repositories/database/pgsql"
	"github.com/SscSPs/partner_ledger_app/internal/utils"
	"github.com/SscSPs/partner_ledger_app/pkg/database"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

type RepositorySuite struct {
	suite.Suite
	ctx       context.Context
	container *tcpostgres.PostgresContainer
	pool      *pgxpool.Pool
	repos     portsrepo.RepositoryProvider
	base      time.Time
}

func TestRepositorySuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping postgres integration tests in short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)
	suite.Run(t, new(RepositorySuite))
}

func (s *RepositorySuite) SetupSuite() {
	s.ctx = context.Background()
	container, err := tcpostgres.Run(s.ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("ledger_test"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	s.Require().NoError(err, "failed to start postgres container")
	s.container = container

	dsn, err := container.ConnectionString(s.ctx, "sslmode=disable")
	s.Require().NoError(err)

	migrationsDir, err := filepath.Abs("../../../../migrations")
	s.Require().NoError(err)
	s.Require().NoError(database.RunMigrations(dsn, "file://"+migrationsDir, utils.DiscardLogger()))

	s.pool, err = database.NewPgxPool(s.ctx, dsn, true)
	s.Require().NoError(err)
	s.repos = pgsql.NewRepositoryProvider(s.pool)
	s.base = time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
}

func (s *RepositorySuite) TearDownSuite() {
	if s.pool != nil {
		s.pool.Close()
	}
	if s.container != nil {
		if err := s.container.Terminate(context.Background()); err != nil {
			slog.Default().Warn("failed to terminate postgres container", slog.String("error", err.Error()))
		}
	}
}

func (s *RepositorySuite) SetupTest() {
	_, err := s.pool.Exec(s.ctx, `TRUNCATE notification_logs, payment_transactions, payments, transactions, partners, users`)
	s.Require().NoError(err)
}

func (s *RepositorySuite) savePartner(id, name string, typ domain.PartnerType) domain.Partner {
	p := domain.Partner{
		PartnerID:              id,
		Name:                   name,
		Type:                   typ,
		IsActive:               true,
		DebtLimit:              decimal.NewFromInt(1000),
		NotificationPreference: domain.NotifyNone,
		AuditFields:            domain.AuditFields{CreatedAt: s.base, CreatedBy: "u1", LastUpdatedAt: s.base, LastUpdatedBy: "u1"},
	}
	s.Require().NoError(s.repos.PartnerRepo.SavePartner(s.ctx, p))
	return p
}

func (s *RepositorySuite) txn(id, partnerID string, typ domain.TransactionType, qty, price int64, status domain.PaymentStatus, offset time.Duration) domain.Transaction {
	at := s.base.Add(offset)
	return domain.Transaction{
		TransactionID: id,
		PartnerID:     partnerID,
		Type:          typ,
		ProductID:     "rice",
		Quantity:      decimal.NewFromInt(qty),
		Price:         decimal.NewFromInt(price),
		PaymentStatus: status,
		PaymentMethod: domain.MethodCash,
		AuditFields:   domain.AuditFields{CreatedAt: at, CreatedBy: "u1", LastUpdatedAt: at, LastUpdatedBy: "u1"},
	}
}

func (s *RepositorySuite) currentDebt(partnerID string) decimal.Decimal {
	p, err := s.repos.PartnerRepo.FindPartnerByID(s.ctx, partnerID)
	s.Require().NoError(err)
	return p.CurrentDebt
}

func (s *RepositorySuite) TestPartner_FindAndList() {
	s.savePartner("p2", "Beta", domain.PartnerCustomer)
	s.savePartner("p1", "Alpha", domain.PartnerSupplier)

	_, err := s.repos.PartnerRepo.FindPartnerByID(s.ctx, "missing")
	s.ErrorIs(err, apperrors.ErrNotFound)

	all, err := s.repos.PartnerRepo.ListPartners(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(all, 2)
	s.Equal("Alpha", all[0].Name)

	suppliers, err := s.repos.PartnerRepo.ListPartnersByType(s.ctx, domain.PartnerSupplier)
	s.Require().NoError(err)
	s.Require().Len(suppliers, 1)
	s.Equal("p1", suppliers[0].PartnerID)

	s.Require().NoError(s.repos.PartnerRepo.UpdateDebtLimit(s.ctx, "p1", decimal.NewFromInt(5), "u2", s.base))
	p, err := s.repos.PartnerRepo.FindPartnerByID(s.ctx, "p1")
	s.Require().NoError(err)
	s.True(decimal.NewFromInt(5).Equal(p.DebtLimit))
	s.Equal("u2", p.LastUpdatedBy)
}

func (s *RepositorySuite) TestSaveTransaction_MaintainsCurrentDebt() {
	s.savePartner("p1", "Alpha", domain.PartnerBoth)

	s.Require().NoError(s.repos.TransactionRepo.SaveTransaction(s.ctx, s.txn("t1", "p1", domain.TransactionIn, 10, 100, domain.PaymentPending, 0)))
	s.Require().NoError(s.repos.TransactionRepo.SaveTransaction(s.ctx, s.txn("t2", "p1", domain.TransactionOut, 5, 100, domain.PaymentPending, time.Hour)))
	s.Require().NoError(s.repos.TransactionRepo.SaveTransaction(s.ctx, s.txn("t3", "p1", domain.TransactionOut, 9, 100, domain.PaymentPaid, 2*time.Hour)))

	s.True(decimal.NewFromInt(-500).Equal(s.currentDebt("p1")), "got %s", s.currentDebt("p1"))

	txns, err := s.repos.TransactionRepo.ListTransactionsByPartner(s.ctx, "p1")
	s.Require().NoError(err)
	s.Require().Len(txns, 3)
	s.Equal("t1", txns[0].TransactionID)

	err = s.repos.TransactionRepo.SaveTransaction(s.ctx, s.txn("t4", "ghost", domain.TransactionIn, 1, 1, domain.PaymentPending, 0))
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *RepositorySuite) TestSaveBarter_BothLegsOrNone() {
	s.savePartner("p1", "Alpha", domain.PartnerBoth)
	out := s.txn("b-out", "p1", domain.TransactionOut, 3, 100, domain.PaymentPaid, 0)
	out.PaymentMethod = domain.MethodBarter
	in := s.txn("b-in", "p1", domain.TransactionIn, 2, 150, domain.PaymentPaid, 0)
	in.PaymentMethod = domain.MethodBarter
	s.Require().NoError(s.repos.TransactionRepo.SaveBarter(s.ctx, out, in))

	// Reusing an ID fails the second insert and the whole batch rolls back.
	dupOut := s.txn("b-out2", "p1", domain.TransactionOut, 1, 1, domain.PaymentPaid, time.Hour)
	dupIn := s.txn("b-in", "p1", domain.TransactionIn, 1, 1, domain.PaymentPaid, time.Hour)
	err := s.repos.TransactionRepo.SaveBarter(s.ctx, dupOut, dupIn)
	s.ErrorIs(err, apperrors.ErrDuplicate)

	found, err := s.repos.TransactionRepo.FindTransactionsByIDs(s.ctx, []string{"b-out", "b-in", "b-out2"})
	s.Require().NoError(err)
	s.Len(found, 2)
	s.NotContains(found, "b-out2")
	s.True(s.currentDebt("p1").IsZero())
}

func (s *RepositorySuite) TestRecomputeCurrentDebt() {
	s.savePartner("p1", "Alpha", domain.PartnerBoth)
	s.Require().NoError(s.repos.TransactionRepo.SaveTransaction(s.ctx, s.txn("t1", "p1", domain.TransactionIn, 2, 100, domain.PaymentPending, 0)))
	s.Require().NoError(s.repos.TransactionRepo.SaveTransaction(s.ctx, s.txn("t2", "p1", domain.TransactionOut, 7, 100, domain.PaymentPartial, time.Hour)))
	s.Require().NoError(s.repos.TransactionRepo.SaveTransaction(s.ctx, s.txn("t3", "p1", domain.TransactionOut, 9, 100, domain.PaymentPaid, 2*time.Hour)))

	_, err := s.pool.Exec(s.ctx, `UPDATE partners SET current_debt = 42 WHERE partner_id = 'p1'`)
	s.Require().NoError(err)

	previous, current, err := s.repos.PartnerRepo.RecomputeCurrentDebt(s.ctx, "p1", s.base.Add(time.Hour))
	s.Require().NoError(err)
	s.True(decimal.NewFromInt(42).Equal(previous), "got %s", previous)
	s.True(decimal.NewFromInt(500).Equal(current), "got %s", current)
	s.True(decimal.NewFromInt(500).Equal(s.currentDebt("p1")))

	previous, current, err = s.repos.PartnerRepo.RecomputeCurrentDebt(s.ctx, "p1", s.base.Add(2*time.Hour))
	s.Require().NoError(err)
	s.True(previous.Equal(current))

	_, _, err = s.repos.PartnerRepo.RecomputeCurrentDebt(s.ctx, "ghost", s.base)
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *RepositorySuite) TestListTransactionsPage() {
	s.savePartner("p1", "Alpha", domain.PartnerBoth)
	for i, id := range []string{"a", "b", "c", "d", "e"} {
		s.Require().NoError(s.repos.TransactionRepo.SaveTransaction(s.ctx,
			s.txn(id, "p1", domain.TransactionOut, 1, 10, domain.PaymentPending, time.Duration(i)*time.Minute)))
	}

	var seen []string
	var token *string
	for page := 0; page < 5; page++ {
		txns, next, err := s.repos.TransactionRepo.ListTransactionsPage(s.ctx, domain.TransactionFilter{PartnerID: "p1"}, 2, token)
		s.Require().NoError(err)
		for _, t := range txns {
			seen = append(seen, t.TransactionID)
		}
		if next == nil {
			break
		}
		token = next
	}
	s.Equal([]string{"a", "b", "c", "d", "e"}, seen)

	filtered, err := s.repos.TransactionRepo.ListTransactions(s.ctx, domain.TransactionFilter{Type: domain.TransactionIn})
	s.Require().NoError(err)
	s.Empty(filtered)
}

func (s *RepositorySuite) TestListTransactions_CreatedWindow() {
	s.savePartner("p1", "Alpha", domain.PartnerBoth)
	for i, id := range []string{"a", "b", "c"} {
		s.Require().NoError(s.repos.TransactionRepo.SaveTransaction(s.ctx,
			s.txn(id, "p1", domain.TransactionOut, 1, 10, domain.PaymentPending, time.Duration(i)*time.Hour)))
	}

	from := s.base.Add(time.Hour)
	before := s.base.Add(2 * time.Hour)
	txns, err := s.repos.TransactionRepo.ListTransactions(s.ctx, domain.TransactionFilter{CreatedFrom: &from, CreatedBefore: &before})
	s.Require().NoError(err)
	s.Require().Len(txns, 1)
	s.Equal("b", txns[0].TransactionID)
}

func (s *RepositorySuite) TestSavePaymentWithSettlement() {
	s.savePartner("p1", "Alpha", domain.PartnerBoth)
	s.Require().NoError(s.repos.TransactionRepo.SaveTransaction(s.ctx, s.txn("t1", "p1", domain.TransactionOut, 5, 100, domain.PaymentPending, 0)))
	s.Require().NoError(s.repos.TransactionRepo.SaveTransaction(s.ctx, s.txn("t2", "p1", domain.TransactionOut, 2, 100, domain.PaymentPending, time.Hour)))

	payment := domain.Payment{
		PaymentID:      "pay1",
		PartnerID:      "p1",
		TransactionIDs: []string{"t1"},
		Amount:         decimal.NewFromInt(500),
		Method:         domain.MethodTransfer,
		Status:         domain.PaymentPaid,
		AuditFields:    domain.AuditFields{CreatedAt: s.base.Add(2 * time.Hour), CreatedBy: "u1", LastUpdatedAt: s.base.Add(2 * time.Hour), LastUpdatedBy: "u1"},
	}
	changes := []domain.StatusChange{{TransactionID: "t1", From: domain.PaymentPending, To: domain.PaymentPaid}}
	s.Require().NoError(s.repos.PaymentRepo.SavePaymentWithSettlement(s.ctx, payment, changes, decimal.NewFromInt(-500)))

	s.True(decimal.NewFromInt(200).Equal(s.currentDebt("p1")))
	t1, err := s.repos.TransactionRepo.FindTransactionByID(s.ctx, "t1")
	s.Require().NoError(err)
	s.Equal(domain.PaymentPaid, t1.PaymentStatus)

	stored, err := s.repos.PaymentRepo.FindPaymentByID(s.ctx, "pay1")
	s.Require().NoError(err)
	s.Equal([]string{"t1"}, stored.TransactionIDs)

	byTxn, err := s.repos.PaymentRepo.ListPaymentsByTransaction(s.ctx, "t1")
	s.Require().NoError(err)
	s.Len(byTxn, 1)

	// A stale From status aborts the commit and leaves no trace.
	stale := payment
	stale.PaymentID = "pay2"
	err = s.repos.PaymentRepo.SavePaymentWithSettlement(s.ctx, stale, changes, decimal.NewFromInt(-500))
	s.ErrorIs(err, apperrors.ErrValidation)
	_, err = s.repos.PaymentRepo.FindPaymentByID(s.ctx, "pay2")
	s.ErrorIs(err, apperrors.ErrNotFound)
	s.True(decimal.NewFromInt(200).Equal(s.currentDebt("p1")))
}

func (s *RepositorySuite) TestUsers() {
	now := s.base
	u := domain.User{
		UserID: "u1", Email: "Admin@Example.com", DisplayName: "Admin", Role: domain.RoleAdmin,
		PasswordHash: "hash", IsActive: true,
		AuditFields: domain.AuditFields{CreatedAt: now, CreatedBy: "system", LastUpdatedAt: now, LastUpdatedBy: "system"},
	}
	s.Require().NoError(s.repos.UserRepo.SaveUser(s.ctx, u))

	dup := u
	dup.UserID = "u2"
	dup.Email = "admin@example.com"
	s.ErrorIs(s.repos.UserRepo.SaveUser(s.ctx, dup), apperrors.ErrDuplicate)

	found, err := s.repos.UserRepo.FindUserByEmail(s.ctx, "ADMIN@example.com")
	s.Require().NoError(err)
	s.Equal("u1", found.UserID)
	s.Nil(found.LastLoginAt)

	s.Require().NoError(s.repos.UserRepo.UpdateLastLogin(s.ctx, "u1", now.Add(time.Hour)))
	found, err = s.repos.UserRepo.FindUserByID(s.ctx, "u1")
	s.Require().NoError(err)
	s.Require().NotNil(found.LastLoginAt)

	s.ErrorIs(s.repos.UserRepo.UpdateLastLogin(s.ctx, "nobody", now), apperrors.ErrNotFound)
}

func (s *RepositorySuite) TestNotificationLogs_NewestFirst() {
	s.savePartner("p1", "Alpha", domain.PartnerBoth)
	errMsg := "chat not found"
	for i, status := range []domain.NotificationStatus{domain.NotificationFailed, domain.NotificationSuccess} {
		log := domain.NotificationLog{
			LogID: []string{"l1", "l2"}[i], PartnerID: "p1", Channel: domain.ChannelTelegram,
			Message: "hi", Status: status, CreatedAt: s.base.Add(time.Duration(i) * time.Minute),
		}
		if status == domain.NotificationFailed {
			log.Error = &errMsg
		}
		s.Require().NoError(s.repos.NotificationRepo.SaveNotificationLog(s.ctx, log))
	}

	logs, err := s.repos.NotificationRepo.ListNotificationLogsByPartner(s.ctx, "p1", 10)
	s.Require().NoError(err)
	s.Require().Len(logs, 2)
	s.Equal("l2", logs[0].LogID)
	s.Require().NotNil(logs[1].Error)
	s.Equal(errMsg, *logs[1].Error)
}
