package report_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/SscSPs/partner_ledger_app/internal/core/domain"
	"github.com/SscSPs/partner_ledger_app/internal/report"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func trade(id, product string, typ domain.TransactionType, qty, price int64, status domain.PaymentStatus) domain.Transaction {
	return domain.Transaction{
		TransactionID: id,
		PartnerID:     "p1",
		Type:          typ,
		ProductID:     product,
		Quantity:      decimal.NewFromInt(qty),
		Price:         decimal.NewFromInt(price),
		PaymentStatus: status,
	}
}

func TestSummarizeTrade(t *testing.T) {
	from := time.Date(2024, 7, 1, 0, 0, 0, 0, domain.BusinessLocation)
	to := from.AddDate(0, 1, 0)

	r, err := report.SummarizeTrade([]domain.Transaction{
		trade("t1", "rice", domain.TransactionOut, 10, 300, domain.PaymentPaid),
		trade("t2", "rice", domain.TransactionIn, 20, 100, domain.PaymentPending),
		trade("t3", "bran", domain.TransactionOut, 5, 40, domain.PaymentPartial),
	}, from, to)

	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(3200).Equal(r.Revenue), "got %s", r.Revenue)
	assert.True(t, decimal.NewFromInt(2000).Equal(r.PurchaseCost))
	assert.True(t, decimal.NewFromInt(1200).Equal(r.GrossProfit))
	assert.Equal(t, 3, r.TransactionCount)
	require.Len(t, r.ByProduct, 2)
	assert.Equal(t, "bran", r.ByProduct[0].ProductID)
	assert.Equal(t, "rice", r.ByProduct[1].ProductID)
	assert.True(t, decimal.NewFromInt(20).Equal(r.ByProduct[1].InQuantity))
	assert.True(t, decimal.NewFromInt(3000).Equal(r.ByProduct[1].OutAmount))
}

func TestSummarizeTrade_EmptyPeriod(t *testing.T) {
	r, err := report.SummarizeTrade(nil, time.Time{}, time.Time{})

	require.NoError(t, err)
	assert.True(t, r.Revenue.IsZero())
	assert.True(t, r.GrossProfit.IsZero())
	assert.NotNil(t, r.ByProduct)
	assert.Empty(t, r.ByProduct)
}

func TestSummarizeTrade_UnknownType(t *testing.T) {
	_, err := report.SummarizeTrade([]domain.Transaction{trade("t1", "rice", "SIDEWAYS", 1, 1, domain.PaymentPending)}, time.Time{}, time.Time{})
	assert.Error(t, err)
}

func TestWriteTradeReport(t *testing.T) {
	from := time.Date(2024, 7, 1, 0, 0, 0, 0, domain.BusinessLocation)
	r := domain.TradeReport{
		From:             from,
		To:               from.AddDate(0, 0, 31),
		Revenue:          decimal.NewFromInt(3200),
		PurchaseCost:     decimal.NewFromInt(2000),
		GrossProfit:      decimal.NewFromInt(1200),
		TransactionCount: 3,
		ByProduct: []domain.ProductTotals{
			{ProductID: "rice", InQuantity: decimal.NewFromInt(20), InAmount: decimal.NewFromInt(2000), OutQuantity: decimal.NewFromInt(10), OutAmount: decimal.NewFromInt(3000)},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, report.WriteTradeReport(&buf, r, from))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	cell := func(name string) string {
		v, err := f.GetCellValue(report.TradeSheetName, name)
		require.NoError(t, err)
		return v
	}
	assert.Equal(t, "Báo cáo từ 01/07/2024 đến 31/07/2024", cell("A1"))
	assert.Equal(t, "Doanh thu", cell("A3"))
	assert.Equal(t, "3200", cell("B3"))
	assert.Equal(t, "1200", cell("B5"))
	assert.Equal(t, "3", cell("B6"))
	assert.Equal(t, "Sản phẩm", cell("A8"))
	assert.Equal(t, "rice", cell("A9"))
	assert.Equal(t, "3000", cell("E9"))
	assert.Contains(t, cell("A11"), "1.200 ₫")
}
