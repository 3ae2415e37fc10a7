package mapping_test

import (
	"testing"
	"time"

	"github.com/SscSPs/partner_ledger_app/internal/core/domain"
	"github.com/SscSPs/partner_ledger_app/internal/utils/mapping"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestToModelTransaction_StoresAmount(t *testing.T) {
	m := mapping.ToModelTransaction(domain.Transaction{
		TransactionID: "t1",
		Quantity:      decimal.RequireFromString("2.5"),
		Price:         decimal.NewFromInt(1000),
	})
	assert.True(t, decimal.NewFromInt(2500).Equal(m.Amount))
	assert.False(t, m.DueDate.Valid)
}

func TestPartnerMapping_NullableChatID(t *testing.T) {
	chat := "-100123"
	m := mapping.ToModelPartner(domain.Partner{PartnerID: "p1", TelegramChatID: &chat})
	assert.True(t, m.TelegramChatID.Valid)

	back := mapping.ToDomainPartner(m)
	if assert.NotNil(t, back.TelegramChatID) {
		assert.Equal(t, chat, *back.TelegramChatID)
	}

	m.TelegramChatID.Valid = false
	assert.Nil(t, mapping.ToDomainPartner(m).TelegramChatID)
}

func TestUserMapping_LastLogin(t *testing.T) {
	at := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	d := mapping.ToDomainUser(mapping.ToModelUser(domain.User{UserID: "u1", LastLoginAt: &at}))
	if assert.NotNil(t, d.LastLoginAt) {
		assert.True(t, at.Equal(*d.LastLoginAt))
	}
}

func TestToDomainPayment_NilIDsBecomeEmpty(t *testing.T) {
	p := mapping.ToDomainPayment(mapping.ToModelPayment(domain.Payment{PaymentID: "pay1"}), nil)
	assert.NotNil(t, p.TransactionIDs)
	assert.Empty(t, p.TransactionIDs)
}
