package accounting

import (
	"fmt"
	"time"

	"github.com/SscSPs/partner_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SignedDebtChange returns the effect of a transaction on the partner balance.
// IN (company receives goods) is negative: the company owes the partner.
// OUT (company ships goods) is positive: the partner owes the company.
func SignedDebtChange(txn domain.Transaction) (decimal.Decimal, error) {
	amount := txn.Amount()
	switch txn.Type {
	case domain.TransactionIn:
		return amount.Neg(), nil
	case domain.TransactionOut:
		return amount, nil
	default:
		return decimal.Zero, fmt.Errorf("unknown transaction type '%s' for transaction ID %s", txn.Type, txn.TransactionID)
	}
}

// IsOverLimit compares the absolute balance against the partner's ceiling.
// A balance exactly at the limit is not over it.
func IsOverLimit(debtAmount, debtLimit decimal.Decimal) bool {
	return debtAmount.Abs().GreaterThan(debtLimit)
}

// PartnerDebt is the running reduction for one partner.
type PartnerDebt struct {
	DebtAmount          decimal.Decimal
	LastTransactionDate *time.Time
	Count               int
}

// Add folds one transaction into the reduction. Settled transactions are ignored.
func (p *PartnerDebt) Add(txn domain.Transaction) error {
	if txn.IsSettled() {
		return nil
	}
	change, err := SignedDebtChange(txn)
	if err != nil {
		return err
	}
	p.DebtAmount = p.DebtAmount.Add(change)
	if p.LastTransactionDate == nil || txn.CreatedAt.After(*p.LastTransactionDate) {
		created := txn.CreatedAt
		p.LastTransactionDate = &created
	}
	p.Count++
	return nil
}

// AccumulateDebt reduces a single partner's transactions.
func AccumulateDebt(transactions []domain.Transaction) (PartnerDebt, error) {
	acc := PartnerDebt{DebtAmount: decimal.Zero}
	for _, txn := range transactions {
		if err := acc.Add(txn); err != nil {
			return PartnerDebt{}, err
		}
	}
	return acc, nil
}

// GroupDebtByPartner reduces a mixed set of transactions per partnerID.
// Partners whose every transaction is settled do not appear in the result.
func GroupDebtByPartner(transactions []domain.Transaction) (map[string]*PartnerDebt, error) {
	groups := make(map[string]*PartnerDebt)
	for _, txn := range transactions {
		if txn.IsSettled() {
			continue
		}
		acc, ok := groups[txn.PartnerID]
		if !ok {
			acc = &PartnerDebt{DebtAmount: decimal.Zero}
			groups[txn.PartnerID] = acc
		}
		if err := acc.Add(txn); err != nil {
			return nil, err
		}
	}
	return groups, nil
}

// SettlementDelta is the balance change when the given transactions become PAID:
// each one stops contributing its signed amount.
func SettlementDelta(settled []domain.Transaction) (decimal.Decimal, error) {
	delta := decimal.Zero
	for _, txn := range settled {
		change, err := SignedDebtChange(txn)
		if err != nil {
			return decimal.Zero, err
		}
		delta = delta.Sub(change)
	}
	return delta, nil
}
